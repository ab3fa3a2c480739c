// Package render builds the morning email from already-fetched content.
//
// Rendering is pure: identical params produce byte-identical output. The
// date string is computed once per run by the caller and passed in, so
// nothing here reads the clock. All third-party text (fact, quote) passes
// through html/template's contextual escaping before it reaches the HTML
// body.
package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/morningmail/morning-email/internal/content"
	"github.com/morningmail/morning-email/internal/weather"
)

// Params carries everything one rendered email depends on.
type Params struct {
	RecipientName   string
	Date            string // preformatted, e.g. "Monday, January 2, 2006"
	Fact            content.Fact
	Quote           content.Quote
	Forecast        weather.Forecast
	Advice          []string
	WeatherFallback bool // marks the forecast section as an estimate
}

// Email is the rendered message, complete before any delivery is attempted.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("email").Parse(htmlBody))
	textTmpl = texttemplate.Must(texttemplate.New("email").Parse(textBody))
)

// Render produces the subject, HTML body and plaintext alternative for one
// recipient.
func Render(p Params) (Email, error) {
	var html bytes.Buffer
	if err := htmlTmpl.Execute(&html, p); err != nil {
		return Email{}, fmt.Errorf("render html body: %w", err)
	}

	var text bytes.Buffer
	if err := textTmpl.Execute(&text, p); err != nil {
		return Email{}, fmt.Errorf("render text body: %w", err)
	}

	return Email{
		Subject: fmt.Sprintf("Good morning, %s! %s", p.RecipientName, p.Date),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

const htmlBody = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f4f4f4; }
.container { background-color: white; padding: 30px; border-radius: 10px; }
h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
h2 { color: #2980b9; margin-top: 25px; }
.greeting { font-size: 1.2em; color: #555; }
.fun-fact { background-color: #fff3cd; padding: 15px; border-left: 4px solid #ffc107; margin: 20px 0; border-radius: 5px; }
.quote { background-color: #e8f4f8; padding: 15px; border-left: 4px solid #3498db; margin: 20px 0; font-style: italic; border-radius: 5px; }
.quote-author { text-align: right; font-weight: bold; color: #2980b9; margin-top: 10px; }
.weather { background-color: #e8f8f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
.clothing { background-color: #fef5e7; padding: 10px; border-radius: 5px; margin-top: 15px; }
.footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; text-align: center; color: #7f8c8d; font-size: 0.9em; }
</style>
</head>
<body>
<div class="container">
<h1>Good morning, {{.RecipientName}}!</h1>
<p class="greeting">{{.Date}}</p>

<div class="fun-fact">
<h2>Fun fact of the day</h2>
<p>{{.Fact.Text}}</p>
</div>

<div class="quote">
<h2>Quote of the day</h2>
<p>&quot;{{.Quote.Text}}&quot;</p>
<p class="quote-author">&mdash; {{.Quote.Author}}</p>
</div>

<div class="weather">
<h2>Weather in {{.Forecast.Location.City}}</h2>
<p><strong>Conditions:</strong> {{.Forecast.Condition}}</p>
<p><strong>Temperature:</strong> {{printf "%.1f" .Forecast.TempMinC}}&deg;C to {{printf "%.1f" .Forecast.TempMaxC}}&deg;C</p>
<p><strong>Chance of rain:</strong> {{.Forecast.PrecipProb}}%</p>
{{if .WeatherFallback}}<p><em>Live forecast unavailable; the values above are neutral estimates.</em></p>{{end}}
<div class="clothing">
<h2>What to wear today</h2>
<ol>
{{range .Advice}}<li>{{.}}</li>
{{end}}</ol>
</div>
</div>

<div class="footer">
<p>Have a wonderful day!</p>
</div>
</div>
</body>
</html>
`

const textBody = `Good morning, {{.RecipientName}}!
{{.Date}}

Fun fact of the day:
{{.Fact.Text}}

Quote of the day:
"{{.Quote.Text}}" - {{.Quote.Author}}

Weather in {{.Forecast.Location.City}}:
Conditions: {{.Forecast.Condition}}
Temperature: {{printf "%.1f" .Forecast.TempMinC}}C to {{printf "%.1f" .Forecast.TempMaxC}}C
Chance of rain: {{.Forecast.PrecipProb}}%
{{if .WeatherFallback}}(Live forecast unavailable; the values above are neutral estimates.)
{{end}}
What to wear today:
{{range $i, $a := .Advice}}{{$a}}
{{end}}
Have a wonderful day!
`
