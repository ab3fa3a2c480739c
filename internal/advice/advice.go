// Package advice derives clothing recommendations from a forecast.
package advice

import (
	"github.com/morningmail/morning-email/internal/weather"
)

// Temperature tiers are applied to the day's maximum temperature. Lower
// bounds are inclusive: a maximum of exactly 5.0 gets the jacket tier.
const (
	TierJacketMinC       = 5.0
	TierLightLayersMinC  = 15.0
	TierLightClothesMinC = 25.0

	// UmbrellaPrecipThreshold is the precipitation probability (percent) at
	// and above which rain gear is suggested.
	UmbrellaPrecipThreshold = 40
)

const (
	adviceHeavyCoat    = "Wear a heavy winter coat and warm layers."
	adviceJacket       = "Wear a jacket or a warm sweater."
	adviceLightLayers  = "Light layers are fine; keep a hoodie handy for the evening."
	adviceLightClothes = "Light clothing, a t-shirt is fine."
	adviceUmbrella     = "Bring an umbrella or a rain jacket."
)

// Recommend derives ordered clothing advice from a forecast. Pure and total:
// the temperature tier is chosen from the daily maximum, and the
// precipitation rule is applied independently, so both can appear in the
// result.
func Recommend(f weather.Forecast) []string {
	recs := make([]string, 0, 2)

	switch {
	case f.TempMaxC < TierJacketMinC:
		recs = append(recs, adviceHeavyCoat)
	case f.TempMaxC < TierLightLayersMinC:
		recs = append(recs, adviceJacket)
	case f.TempMaxC < TierLightClothesMinC:
		recs = append(recs, adviceLightLayers)
	default:
		recs = append(recs, adviceLightClothes)
	}

	if f.PrecipProb >= UmbrellaPrecipThreshold {
		recs = append(recs, adviceUmbrella)
	}

	return recs
}
