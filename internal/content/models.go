package content

// Source identifies one of the remote content sources feeding the email.
type Source string

const (
	SourceFact    Source = "fact"
	SourceQuote   Source = "quote"
	SourceWeather Source = "weather"
)

// Status reports how a provider obtained its value. Fallback is true when the
// remote fetch failed and the documented default was substituted instead; Err
// then carries the underlying cause for logging. A provider never returns an
// error to its caller.
type Status struct {
	Source   Source
	Fallback bool
	Err      error
}

// Fact is a single trivia sentence.
type Fact struct {
	Text string
}

// Quote is a quotation with its author.
type Quote struct {
	Text   string
	Author string
}
