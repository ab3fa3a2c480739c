package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningmail/morning-email/internal/content"
	"github.com/morningmail/morning-email/internal/mailer"
	"github.com/morningmail/morning-email/internal/weather"
)

type stubFact struct {
	fact content.Fact
	st   content.Status
}

func (s stubFact) Get(ctx context.Context) (content.Fact, content.Status) {
	return s.fact, s.st
}

type stubQuote struct {
	quote content.Quote
	st    content.Status
}

func (s stubQuote) Get(ctx context.Context) (content.Quote, content.Status) {
	return s.quote, s.st
}

type stubForecast struct {
	st content.Status
}

func (s stubForecast) Get(ctx context.Context, loc weather.Location) (weather.Forecast, content.Status) {
	if s.st.Fallback {
		return weather.FallbackForecast(loc), s.st
	}
	return weather.Forecast{
		Location:   loc,
		TempMinC:   8,
		TempMaxC:   17,
		PrecipProb: 65,
		Condition:  weather.ConditionRain,
	}, s.st
}

type fakeDispatcher struct {
	emails []*mailer.Email
	result mailer.Result
	err    error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, emails []*mailer.Email) (mailer.Result, error) {
	f.emails = emails
	if f.err != nil {
		return mailer.Result{Failed: make(map[string]error)}, f.err
	}
	if f.result.Failed == nil {
		f.result = mailer.Result{Sent: len(emails), Failed: make(map[string]error)}
	}
	return f.result, nil
}

var testRecipients = []mailer.Recipient{
	{Name: "Ada", Address: "ada@example.com"},
	{Name: "Grace", Address: "grace@example.com"},
}

func newTestPipeline(dispatcher Dispatcher, statuses ...content.Status) *Pipeline {
	var factSt, quoteSt, weatherSt content.Status
	factSt = content.Status{Source: content.SourceFact}
	quoteSt = content.Status{Source: content.SourceQuote}
	weatherSt = content.Status{Source: content.SourceWeather}
	for _, st := range statuses {
		switch st.Source {
		case content.SourceFact:
			factSt = st
		case content.SourceQuote:
			quoteSt = st
		case content.SourceWeather:
			weatherSt = st
		}
	}

	fact := content.Fact{Text: "Octopuses have three hearts."}
	if factSt.Fallback {
		fact = content.Fact{Text: content.FallbackFact}
	}
	quote := content.Quote{Text: "Less is more.", Author: "Mies van der Rohe"}
	if quoteSt.Fallback {
		quote = content.FallbackQuote
	}

	return New(Deps{
		Fact:       stubFact{fact: fact, st: factSt},
		Quote:      stubQuote{quote: quote, st: quoteSt},
		Forecast:   stubForecast{st: weatherSt},
		Dispatcher: dispatcher,
		Recipients: testRecipients,
		Location:   weather.Location{City: "Goettingen", Lat: 51.5412, Lon: 9.9158},
		Logger:     zerolog.Nop(),
		Now: func() time.Time {
			return time.Date(2026, time.March, 2, 6, 30, 0, 0, time.UTC)
		},
	})
}

func TestRunHappyPath(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	p := newTestPipeline(dispatcher)

	outcome := p.Run(context.Background())

	assert.True(t, outcome.Succeeded())
	assert.Empty(t, outcome.FallbackSources)
	assert.Equal(t, 2, outcome.Sent)
	assert.Equal(t, "Monday, March 2, 2026", outcome.Date)

	// One personalized email per recipient, fully rendered before dispatch.
	require.Len(t, dispatcher.emails, 2)
	assert.Equal(t, "Good morning, Ada! Monday, March 2, 2026", dispatcher.emails[0].Subject)
	assert.Equal(t, "Good morning, Grace! Monday, March 2, 2026", dispatcher.emails[1].Subject)
	assert.Contains(t, dispatcher.emails[0].HTML, "Octopuses have three hearts.")
	assert.Contains(t, dispatcher.emails[0].Text, "Less is more.")
}

func TestRunAllSourcesDown(t *testing.T) {
	fetchErr := errors.New("connection refused")
	dispatcher := &fakeDispatcher{}
	p := newTestPipeline(dispatcher,
		content.Status{Source: content.SourceFact, Fallback: true, Err: fetchErr},
		content.Status{Source: content.SourceQuote, Fallback: true, Err: fetchErr},
		content.Status{Source: content.SourceWeather, Fallback: true, Err: fetchErr},
	)

	outcome := p.Run(context.Background())

	// A total third-party outage degrades content but never blocks delivery.
	assert.True(t, outcome.Succeeded())
	assert.ElementsMatch(t,
		[]content.Source{content.SourceFact, content.SourceQuote, content.SourceWeather},
		outcome.FallbackSources)

	require.Len(t, dispatcher.emails, 2)
	assert.Contains(t, dispatcher.emails[0].HTML, content.FallbackFact)
	assert.Contains(t, dispatcher.emails[0].HTML, content.FallbackQuote.Text)
	assert.Contains(t, dispatcher.emails[0].HTML, "neutral estimates")
}

func TestRunSessionFailureIsFatal(t *testing.T) {
	dispatcher := &fakeDispatcher{err: mailer.ErrSessionFailed}
	p := newTestPipeline(dispatcher)

	outcome := p.Run(context.Background())

	assert.False(t, outcome.Succeeded())
	assert.ErrorIs(t, outcome.DeliveryErr, mailer.ErrSessionFailed)
	assert.Zero(t, outcome.Sent)
}

func TestRunPartialDeliveryStillSucceeds(t *testing.T) {
	sendErr := errors.New("mailbox unavailable")
	dispatcher := &fakeDispatcher{result: mailer.Result{
		Sent:   1,
		Failed: map[string]error{"grace@example.com": sendErr},
	}}
	p := newTestPipeline(dispatcher)

	outcome := p.Run(context.Background())

	// Policy: any recipient success exits zero; the failure is reported.
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, 1, outcome.Sent)
	require.Len(t, outcome.Failed, 1)
	assert.ErrorIs(t, outcome.Failed["grace@example.com"], sendErr)
}

func TestRunAllRecipientsFailedIsFailure(t *testing.T) {
	sendErr := errors.New("mailbox unavailable")
	dispatcher := &fakeDispatcher{result: mailer.Result{
		Sent: 0,
		Failed: map[string]error{
			"ada@example.com":   sendErr,
			"grace@example.com": sendErr,
		},
	}}
	p := newTestPipeline(dispatcher)

	outcome := p.Run(context.Background())

	assert.False(t, outcome.Succeeded())
	assert.Zero(t, outcome.Sent)
}
