// Package mailer defines the outbound email types, the transport-agnostic
// Sender contract and the fan-out Dispatcher.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Recipient pairs a display name with an email address.
type Recipient struct {
	Name    string
	Address string
}

// FormatAddress renders the recipient in RFC 5322 "Name <email>" form.
func (r Recipient) FormatAddress() string {
	if r.Name == "" {
		return r.Address
	}
	return fmt.Sprintf("%s <%s>", r.Name, r.Address)
}

// Email is a fully-prepared message ready for transmission. Rendering is
// complete before a Dispatcher ever sees one of these.
type Email struct {
	To      Recipient
	Subject string
	HTML    string
	Text    string
}

// Sender abstracts an outbound mail transport with an explicit session
// lifecycle. Open establishes and authenticates the session; Send transmits
// one prepared message over it. The split exists because an open/auth
// failure is fatal to the whole run while a single Send failure is not.
type Sender interface {
	Name() string
	Open(ctx context.Context) error
	Send(ctx context.Context, email *Email) error
	Close() error
}

// Result reports the outcome of one dispatch fan-out.
type Result struct {
	Sent   int
	Failed map[string]error // recipient address -> send error
}

// Dispatcher fans prepared emails out to all recipients over one session.
type Dispatcher struct {
	sender Sender
	log    zerolog.Logger
}

func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

// Dispatch opens the transport session and sends each email in turn. A
// session or authentication failure returns ErrSessionFailed with zero
// messages sent. An individual send failure is recorded in the result and
// does not stop the remaining recipients.
func (d *Dispatcher) Dispatch(ctx context.Context, emails []*Email) (Result, error) {
	res := Result{Failed: make(map[string]error)}

	if len(emails) == 0 {
		return res, ErrNoRecipient
	}

	if err := d.sender.Open(ctx); err != nil {
		return res, errors.Join(ErrSessionFailed, err)
	}
	defer func() {
		if err := d.sender.Close(); err != nil {
			d.log.Warn().Err(err).Str("transport", d.sender.Name()).Msg("closing mail session")
		}
	}()

	for _, email := range emails {
		if err := d.sender.Send(ctx, email); err != nil {
			d.log.Error().Err(err).Str("recipient", email.To.Address).Msg("send failed")
			res.Failed[email.To.Address] = err
			continue
		}
		res.Sent++
		d.log.Info().Str("recipient", email.To.Address).Msg("email sent")
	}

	return res, nil
}
