// Package smtp implements mailer.Sender over an authenticated SMTP relay
// with mandatory STARTTLS.
package smtp

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/morningmail/morning-email/internal/mailer"
)

// Config holds the SMTP relay settings. The password is an app-specific
// credential supplied through the environment, never source.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Sender implements mailer.Sender using wneessen/go-mail.
type Sender struct {
	client *gomail.Client
	config Config
}

func New(cfg Config) (*Sender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp: failed to build client: %w", err)
	}

	return &Sender{client: client, config: cfg}, nil
}

func (s *Sender) Name() string {
	return "smtp"
}

// Open dials the relay and authenticates. A failure here means no message
// will be attempted at all.
func (s *Sender) Open(ctx context.Context) error {
	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp: dial %s:%d: %w", s.config.Host, s.config.Port, err)
	}
	return nil
}

// Send transmits one message over the open session.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg := gomail.NewMsg()

	if err := msg.FromFormat(s.config.FromName, s.config.From); err != nil {
		return fmt.Errorf("smtp: invalid sender address %q: %w", s.config.From, err)
	}
	if err := msg.AddToFormat(email.To.Name, email.To.Address); err != nil {
		return fmt.Errorf("smtp: invalid recipient address %q: %w", email.To.Address, err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.Text)
	msg.AddAlternativeString(gomail.TypeTextHTML, email.HTML)

	if err := s.client.Send(msg); err != nil {
		return fmt.Errorf("smtp: send to %s: %w", email.To.Address, err)
	}
	return nil
}

func (s *Sender) Close() error {
	return s.client.Close()
}
