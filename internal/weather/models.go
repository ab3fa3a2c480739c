package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionMist    Condition = "mist"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "thunderstorm"
)

// Location is the fixed place the forecast is fetched for. Coordinates come
// from configuration; they are never geocoded at runtime, so changing city is
// a configuration edit.
type Location struct {
	City     string
	Lat      float64
	Lon      float64
	Timezone string
}

// Forecast is today's daily aggregate for one location.
type Forecast struct {
	Location    Location
	TempMinC    float64
	TempMaxC    float64
	PrecipProb  int // precipitation probability, 0-100
	WeatherCode int // WMO code as reported by the provider, -1 for fallback
	Condition   Condition
}

// FallbackForecast returns the neutral forecast substituted when the remote
// fetch fails. Values are plausible but deliberately unremarkable.
func FallbackForecast(loc Location) Forecast {
	return Forecast{
		Location:    loc,
		TempMinC:    10,
		TempMaxC:    20,
		PrecipProb:  0,
		WeatherCode: -1,
		Condition:   ConditionUnknown,
	}
}

// ConditionFromCode maps a WMO weather code to a normalized condition.
// Codes outside the table map to ConditionUnknown, never an error.
func ConditionFromCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}
