package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/morningmail/morning-email/internal/config"
	"github.com/morningmail/morning-email/internal/content"
	"github.com/morningmail/morning-email/internal/mailer"
	resendsender "github.com/morningmail/morning-email/internal/mailer/resend"
	smtpsender "github.com/morningmail/morning-email/internal/mailer/smtp"
	"github.com/morningmail/morning-email/internal/pipeline"
	"github.com/morningmail/morning-email/internal/weather"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log := newLogger("info")
		log.Error().Err(err).Msg("failed to load config")
		return 1
	}

	log := newLogger(cfg.LogLevel)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	sender, err := newSender(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to build mail sender")
		return 1
	}

	p := pipeline.New(pipeline.Deps{
		Fact:       content.NewFactProvider(httpClient),
		Quote:      content.NewQuoteProvider(httpClient),
		Forecast:   weather.NewOpenMeteoProvider(httpClient),
		Dispatcher: mailer.NewDispatcher(sender, log),
		Recipients: cfg.Recipients,
		Location:   cfg.Location,
		Logger:     log,
	})

	// The external scheduler may kill a stuck invocation; a signal only
	// cancels the in-flight network calls.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome := p.Run(ctx)
	if !outcome.Succeeded() {
		return 1
	}
	return 0
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	// Human-readable timestamped lines; the scheduler owns redirection of
	// the stream to a log file.
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

func newSender(cfg *config.Config) (mailer.Sender, error) {
	switch cfg.MailProvider {
	case "resend":
		return resendsender.New(resendsender.Config{
			APIKey:   cfg.ResendAPIKey,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		}), nil
	default:
		return smtpsender.New(smtpsender.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	}
}
