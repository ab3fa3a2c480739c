// Package pipeline orchestrates one run: fetch the three content sources,
// derive clothing advice, render one email per recipient and dispatch them.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/morningmail/morning-email/internal/advice"
	"github.com/morningmail/morning-email/internal/content"
	"github.com/morningmail/morning-email/internal/mailer"
	"github.com/morningmail/morning-email/internal/render"
	"github.com/morningmail/morning-email/internal/weather"
)

// FactSource is satisfied by content.FactProvider.
type FactSource interface {
	Get(ctx context.Context) (content.Fact, content.Status)
}

// QuoteSource is satisfied by content.QuoteProvider.
type QuoteSource interface {
	Get(ctx context.Context) (content.Quote, content.Status)
}

// ForecastSource is satisfied by weather.OpenMeteoProvider.
type ForecastSource interface {
	Get(ctx context.Context, loc weather.Location) (weather.Forecast, content.Status)
}

// Dispatcher is satisfied by mailer.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, emails []*mailer.Email) (mailer.Result, error)
}

// RunOutcome summarizes one pipeline execution. It exists only for logging
// and the process exit status; nothing persists it.
type RunOutcome struct {
	RunID           uuid.UUID
	Date            string
	FallbackSources []content.Source
	Sent            int
	Failed          map[string]error
	DeliveryErr     error
}

// Succeeded reports whether the run should exit zero: no fatal delivery
// error and at least one recipient delivered. Partial per-recipient failure
// still counts as success; it is logged as a warning instead.
func (o RunOutcome) Succeeded() bool {
	return o.DeliveryErr == nil && o.Sent > 0
}

// Deps bundles everything a Pipeline needs. All fields are required.
type Deps struct {
	Fact       FactSource
	Quote      QuoteSource
	Forecast   ForecastSource
	Dispatcher Dispatcher
	Recipients []mailer.Recipient
	Location   weather.Location
	Logger     zerolog.Logger

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Pipeline runs the daily email job once, synchronously, and reports the
// outcome.
type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{deps: deps}
}

// Run executes one pass: fetch, derive, render, dispatch, report. The date
// is computed exactly once here and threaded through rendering.
func (p *Pipeline) Run(ctx context.Context) RunOutcome {
	outcome := RunOutcome{
		RunID:  uuid.New(),
		Date:   p.deps.Now().Format("Monday, January 2, 2006"),
		Failed: make(map[string]error),
	}

	log := p.deps.Logger.With().Str("run_id", outcome.RunID.String()).Logger()
	log.Info().Str("date", outcome.Date).Int("recipients", len(p.deps.Recipients)).Msg("starting morning email run")

	// The three sources are independent, so fetch them together and join
	// before rendering. Each goroutine writes only its own pair and the
	// WaitGroup orders those writes before the reads below; each source
	// falls back on its own failure without affecting the others.
	var (
		wg        sync.WaitGroup
		fact      content.Fact
		factSt    content.Status
		quote     content.Quote
		quoteSt   content.Status
		forecast  weather.Forecast
		weatherSt content.Status
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		fact, factSt = p.deps.Fact.Get(ctx)
	}()
	go func() {
		defer wg.Done()
		quote, quoteSt = p.deps.Quote.Get(ctx)
	}()
	go func() {
		defer wg.Done()
		forecast, weatherSt = p.deps.Forecast.Get(ctx, p.deps.Location)
	}()
	wg.Wait()

	for _, st := range []content.Status{factSt, quoteSt, weatherSt} {
		if st.Fallback {
			outcome.FallbackSources = append(outcome.FallbackSources, st.Source)
			log.Warn().Err(st.Err).Str("source", string(st.Source)).Msg("remote source failed, using fallback content")
		}
	}

	clothing := advice.Recommend(forecast)

	emails := make([]*mailer.Email, 0, len(p.deps.Recipients))
	for _, rcpt := range p.deps.Recipients {
		rendered, err := render.Render(render.Params{
			RecipientName:   rcpt.Name,
			Date:            outcome.Date,
			Fact:            fact,
			Quote:           quote,
			Forecast:        forecast,
			Advice:          clothing,
			WeatherFallback: weatherSt.Fallback,
		})
		if err != nil {
			outcome.DeliveryErr = fmt.Errorf("render email for %s: %w", rcpt.Address, err)
			log.Error().Err(err).Str("recipient", rcpt.Address).Msg("rendering failed")
			return outcome
		}

		emails = append(emails, &mailer.Email{
			To:      rcpt,
			Subject: rendered.Subject,
			HTML:    rendered.HTML,
			Text:    rendered.Text,
		})
	}

	res, err := p.deps.Dispatcher.Dispatch(ctx, emails)
	outcome.Sent = res.Sent
	outcome.Failed = res.Failed
	if err != nil {
		outcome.DeliveryErr = err
		log.Error().Err(err).Msg("delivery failed")
		return outcome
	}

	var summary *zerolog.Event
	if len(outcome.FallbackSources) > 0 || len(res.Failed) > 0 {
		summary = log.Warn()
	} else {
		summary = log.Info()
	}
	summary.
		Str("date", outcome.Date).
		Strs("fallback_sources", sourceNames(outcome.FallbackSources)).
		Int("sent", res.Sent).
		Int("failed", len(res.Failed)).
		Msg("run complete")

	return outcome
}

func sourceNames(sources []content.Source) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
	}
	return names
}
