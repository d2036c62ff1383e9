package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Threshold constants for the regime ladder, in metric units.
const (
	freezingFeelsC    = 0.0
	heatFeelsC        = 35.0
	windyMS           = 10.0
	breezyMS          = 6.5
	calmMS            = 3.5
	poorVisibilityM   = 1000
	mildLowC          = 18.0
	mildHighC         = 26.0
	comfortLowC       = 10.0
	comfortHighC      = 30.0
	coldCutoffC       = 5.0
	nearClearCloudPct = 20
)

// Classify derives the categorical regime, continuous severity, daypart and
// summary for one observation. It is pure and never fails: anything it cannot
// interpret degrades toward NEUTRAL.
func Classify(obs Observation) Context {
	adv := adversities(obs)
	return Context{
		Regime:      regimeFor(obs, adv),
		Severity:    severityFor(obs),
		TimeOfDay:   timeOfDay(obs),
		Summary:     summarize(obs),
		Adversities: adv,
		Overcast:    obs.CloudCoverPct > 80,
		Muggy:       obs.HumidityPct > 70 && obs.FeelsLikeC > 24,
	}
}

func regimeFor(obs Observation, adv Adversities) Regime {
	switch {
	case isHeavyPrecipitation(obs.ConditionCode):
		return RegimePoor
	case adv.TemperatureExtreme || adv.HighWind || adv.LowVisibility:
		return RegimePoor
	case !isKnownCondition(obs.ConditionCode):
		// Unrecognized provider codes degrade to NEUTRAL rather than
		// letting the comfort bands promote weather we cannot read.
		return RegimeNeutral
	case !isPrecipitation(obs.ConditionCode) &&
		obs.FeelsLikeC >= mildLowC && obs.FeelsLikeC <= mildHighC &&
		obs.WindSpeedMS < calmMS && obs.CloudCoverPct <= nearClearCloudPct:
		return RegimePerfect
	case !isPrecipitation(obs.ConditionCode) &&
		obs.FeelsLikeC >= comfortLowC && obs.FeelsLikeC <= comfortHighC &&
		obs.WindSpeedMS < breezyMS:
		return RegimeGood
	case isLightPrecipitation(obs.ConditionCode) && obs.FeelsLikeC > coldCutoffC:
		return RegimeNeutral
	default:
		return RegimeNeutral
	}
}

func adversities(obs Observation) Adversities {
	return Adversities{
		HeavyPrecipitation: isHeavyPrecipitation(obs.ConditionCode),
		HighWind:           obs.WindSpeedMS > windyMS,
		TemperatureExtreme: obs.FeelsLikeC < freezingFeelsC || obs.FeelsLikeC > heatFeelsC,
		LowVisibility:      obs.VisibilityM > 0 && obs.VisibilityM < poorVisibilityM,
	}
}

// severityFor accumulates weighted penalties into a 0..1 scalar. It is
// independent of the regime ladder so a GOOD day with one nasty dimension
// still carries a non-zero severity.
func severityFor(obs Observation) float64 {
	score := 0.0

	switch {
	case obs.FeelsLikeC < freezingFeelsC:
		score += 0.30
	case obs.FeelsLikeC > heatFeelsC:
		score += 0.25
	case obs.FeelsLikeC < coldCutoffC:
		score += 0.15
	}

	switch {
	case isThunderstorm(obs.ConditionCode):
		score += 0.35
	case isSnow(obs.ConditionCode) && !isLightPrecipitation(obs.ConditionCode):
		score += 0.30
	case isRain(obs.ConditionCode) && !isLightPrecipitation(obs.ConditionCode):
		score += 0.30
	case isLightPrecipitation(obs.ConditionCode):
		score += 0.15
	}

	switch {
	case obs.WindSpeedMS > windyMS:
		score += 0.20
	case obs.WindSpeedMS > breezyMS:
		score += 0.10
	}

	switch {
	case obs.HumidityPct > 85:
		score += 0.10
	case obs.HumidityPct > 0 && obs.HumidityPct < 15:
		score += 0.05
	}

	if obs.VisibilityM > 0 && obs.VisibilityM < poorVisibilityM {
		score += 0.15
	}

	if obs.FeelsLikeC >= mildLowC && obs.FeelsLikeC <= 24 {
		score -= 0.10
	}

	return math.Min(1, math.Max(0, score))
}

// timeOfDay prefers sunrise/sunset proximity and falls back to wall-clock
// hour bands when the observation carries no solar data.
func timeOfDay(obs Observation) TimeOfDay {
	now := obs.ObservedAt
	if now.IsZero() {
		return Night
	}
	if !obs.Sunrise.IsZero() && !obs.Sunset.IsZero() {
		if now.Before(obs.Sunrise) || now.After(obs.Sunset) {
			return Night
		}
		if !now.After(obs.Sunrise.Add(3 * time.Hour)) {
			return Morning
		}
		if now.Before(obs.Sunset.Add(-2 * time.Hour)) {
			return Afternoon
		}
		return Evening
	}

	hour := now.UTC().Add(time.Duration(obs.TimezoneOffsetSec) * time.Second).Hour()
	switch {
	case hour >= 5 && hour < 11:
		return Morning
	case hour >= 11 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

func summarize(obs Observation) string {
	parts := []string{
		conditionLabel(obs.ConditionCode),
		fmt.Sprintf("%.0f°C (feels like %.0f°C)", obs.TemperatureC, obs.FeelsLikeC),
		fmt.Sprintf("wind %.0f m/s", obs.WindSpeedMS),
	}
	if obs.HumidityPct > 0 {
		parts = append(parts, fmt.Sprintf("humidity %d%%", obs.HumidityPct))
	}
	return strings.Join(parts, ", ")
}

func conditionLabel(code int) string {
	switch {
	case isThunderstorm(code):
		return "thunderstorm"
	case code >= 300 && code < 400:
		return "drizzle"
	case code == 500:
		return "light rain"
	case isRain(code):
		return "rain"
	case code == 600:
		return "light snow"
	case isSnow(code):
		return "snow"
	case code >= 700 && code < 800:
		return "hazy"
	case code == 800:
		return "clear sky"
	case code == 801 || code == 802:
		return "partly cloudy"
	case code > 802 && code < 900:
		return "overcast"
	default:
		return "unknown conditions"
	}
}

func isKnownCondition(code int) bool { return code >= 200 && code < 900 }

func isThunderstorm(code int) bool { return code >= 200 && code < 300 }
func isRain(code int) bool         { return code >= 500 && code < 600 }
func isSnow(code int) bool         { return code >= 600 && code < 700 }

func isPrecipitation(code int) bool {
	return isThunderstorm(code) || (code >= 300 && code < 400) || isRain(code) || isSnow(code)
}

// isLightPrecipitation covers drizzle, light rain and light snow bands.
func isLightPrecipitation(code int) bool {
	return (code >= 300 && code < 400) || code == 500 || code == 600 || code == 615 || code == 612
}

// isHeavyPrecipitation marks the bands that by themselves force a POOR
// regime: thunderstorm, moderate or heavier rain, and non-light snow.
func isHeavyPrecipitation(code int) bool {
	if isThunderstorm(code) {
		return true
	}
	if isRain(code) && code != 500 {
		return true
	}
	if isSnow(code) && !isLightPrecipitation(code) {
		return true
	}
	return false
}
