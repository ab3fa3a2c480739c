package content

import (
	"context"
	"net/http"
)

// FallbackFact is substituted when the trivia endpoint cannot be reached or
// its response cannot be parsed.
const FallbackFact = "The heart of a shrimp is located in its head."

// FactProvider fetches a random trivia sentence from uselessfacts.
type FactProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

func NewFactProvider(client *http.Client) *FactProvider {
	return &FactProvider{
		name:    "uselessfacts",
		baseURL: "https://uselessfacts.jsph.pl/api/v2/facts/random",
		client:  client,
	}
}

func (p *FactProvider) Name() string {
	return p.name
}

// Get returns today's fact. It never fails from the caller's perspective: on
// any fetch or parse error the fixed fallback fact is returned and the status
// records the cause.
func (p *FactProvider) Get(ctx context.Context) (Fact, Status) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := FetchJSON(ctx, p.client, p.baseURL, &payload); err != nil {
		return Fact{Text: FallbackFact}, Status{Source: SourceFact, Fallback: true, Err: err}
	}

	if payload.Text == "" {
		return Fact{Text: FallbackFact}, Status{Source: SourceFact, Fallback: true, Err: errEmptyPayload}
	}

	return Fact{Text: payload.Text}, Status{Source: SourceFact}
}
