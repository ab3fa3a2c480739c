// Package resend implements mailer.Sender using the Resend API.
package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/morningmail/morning-email/internal/mailer"
)

// Config holds Resend email provider configuration.
type Config struct {
	APIKey   string
	From     string
	FromName string
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

func (s *Sender) Name() string {
	return "resend"
}

// Open validates the configuration. Resend is a stateless HTTP API, so
// there is no session to establish; a bad key only becomes observable on the
// first send.
func (s *Sender) Open(ctx context.Context) error {
	if s.config.APIKey == "" {
		return errors.New("resend: missing API key")
	}
	return nil
}

// Send transmits one message through the API.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      []string{email.To.Address},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) Close() error {
	return nil
}
