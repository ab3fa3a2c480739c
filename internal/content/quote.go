package content

import (
	"context"
	"net/http"
)

// FallbackQuote is substituted when the quotations endpoint cannot be reached
// or its response cannot be parsed.
var FallbackQuote = Quote{
	Text:   "The important thing is not to stop questioning. Curiosity has its own reason for existing.",
	Author: "Albert Einstein",
}

// QuoteProvider fetches a random quotation from ZenQuotes.
type QuoteProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

func NewQuoteProvider(client *http.Client) *QuoteProvider {
	return &QuoteProvider{
		name:    "zenquotes",
		baseURL: "https://zenquotes.io/api/random",
		client:  client,
	}
}

func (p *QuoteProvider) Name() string {
	return p.name
}

// Get returns today's quote. Same failure policy as the fact provider: errors
// are swallowed and replaced with the fixed fallback quote. A response without
// an author is attributed to "Unknown" rather than treated as a failure.
func (p *QuoteProvider) Get(ctx context.Context) (Quote, Status) {
	// ZenQuotes wraps the quote in a single-element array.
	var payload []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}

	if err := FetchJSON(ctx, p.client, p.baseURL, &payload); err != nil {
		return FallbackQuote, Status{Source: SourceQuote, Fallback: true, Err: err}
	}

	if len(payload) == 0 || payload[0].Q == "" {
		return FallbackQuote, Status{Source: SourceQuote, Fallback: true, Err: errEmptyPayload}
	}

	author := payload[0].A
	if author == "" {
		author = "Unknown"
	}

	return Quote{Text: payload[0].Q, Author: author}, Status{Source: SourceQuote}
}
