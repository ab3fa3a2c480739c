package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/morningmail/morning-email/internal/content"
)

// OpenMeteoProvider fetches today's daily forecast aggregates from Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Get fetches today's min/max temperature, precipitation probability and
// weather code for loc. It never fails from the caller's perspective: any
// fetch or parse error yields the fallback forecast with the cause recorded
// in the status.
func (p *OpenMeteoProvider) Get(ctx context.Context, loc Location) (Forecast, content.Status) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', 4, 64))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,weathercode")
	values.Set("timezone", loc.Timezone)
	values.Set("forecast_days", "1")

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	// Daily aggregates arrive as parallel arrays, one entry per forecast day.
	var payload struct {
		Daily struct {
			TemperatureMax []float64 `json:"temperature_2m_max"`
			TemperatureMin []float64 `json:"temperature_2m_min"`
			PrecipProbMax  []int     `json:"precipitation_probability_max"`
			WeatherCode    []int     `json:"weathercode"`
		} `json:"daily"`
	}

	if err := content.FetchJSON(ctx, p.client, u, &payload); err != nil {
		return FallbackForecast(loc), content.Status{Source: content.SourceWeather, Fallback: true, Err: err}
	}

	d := payload.Daily
	if len(d.TemperatureMax) == 0 || len(d.TemperatureMin) == 0 ||
		len(d.PrecipProbMax) == 0 || len(d.WeatherCode) == 0 {
		err := errors.New("daily aggregates missing from response")
		return FallbackForecast(loc), content.Status{Source: content.SourceWeather, Fallback: true, Err: err}
	}

	code := d.WeatherCode[0]

	return Forecast{
		Location:    loc,
		TempMinC:    d.TemperatureMin[0],
		TempMaxC:    d.TemperatureMax[0],
		PrecipProb:  d.PrecipProbMax[0],
		WeatherCode: code,
		Condition:   ConditionFromCode(code),
	}, content.Status{Source: content.SourceWeather}
}
