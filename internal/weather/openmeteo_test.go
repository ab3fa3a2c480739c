package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocation = Location{
	City:     "Goettingen",
	Lat:      51.5412,
	Lon:      9.9158,
	Timezone: "Europe/Berlin",
}

func TestOpenMeteoProviderGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "51.5412", q.Get("latitude"))
		assert.Equal(t, "9.9158", q.Get("longitude"))
		assert.Equal(t, "1", q.Get("forecast_days"))
		assert.Contains(t, q.Get("daily"), "weathercode")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"daily":{
			"temperature_2m_max":[21.4],
			"temperature_2m_min":[12.1],
			"precipitation_probability_max":[55],
			"weathercode":[61]
		}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	forecast, st := p.Get(context.Background(), testLocation)
	require.False(t, st.Fallback)
	require.NoError(t, st.Err)

	assert.Equal(t, 21.4, forecast.TempMaxC)
	assert.Equal(t, 12.1, forecast.TempMinC)
	assert.Equal(t, 55, forecast.PrecipProb)
	assert.Equal(t, 61, forecast.WeatherCode)
	assert.Equal(t, ConditionRain, forecast.Condition)
	assert.Equal(t, "Goettingen", forecast.Location.City)
}

func TestOpenMeteoProviderFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"daily":`)
			},
		},
		{
			name: "missing daily aggregates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"daily":{"temperature_2m_max":[]}}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewOpenMeteoProvider(srv.Client())
			p.baseURL = srv.URL

			forecast, st := p.Get(context.Background(), testLocation)
			assert.True(t, st.Fallback)
			assert.Error(t, st.Err)
			assert.Equal(t, FallbackForecast(testLocation), forecast)
		})
	}
}

func TestFallbackForecastValues(t *testing.T) {
	f := FallbackForecast(testLocation)

	assert.Equal(t, 10.0, f.TempMinC)
	assert.Equal(t, 20.0, f.TempMaxC)
	assert.Equal(t, 0, f.PrecipProb)
	assert.Equal(t, ConditionUnknown, f.Condition)
}

func TestConditionFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Condition
	}{
		{0, ConditionClear},
		{2, ConditionCloudy},
		{3, ConditionCloudy},
		{45, ConditionMist},
		{48, ConditionMist},
		{51, ConditionRain},
		{65, ConditionRain},
		{81, ConditionRain},
		{71, ConditionSnow},
		{77, ConditionSnow},
		{86, ConditionSnow},
		{95, ConditionStorm},
		{99, ConditionStorm},
		{42, ConditionUnknown},
		{-1, ConditionUnknown},
		{123, ConditionUnknown},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, ConditionFromCode(tt.code), "code %d", tt.code)
	}
}
