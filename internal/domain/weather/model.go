package weather

import "time"

// Regime buckets an observation by how suitable it is for being outside.
type Regime string

const (
	RegimePerfect Regime = "PERFECT"
	RegimeGood    Regime = "GOOD"
	RegimePoor    Regime = "POOR"
	RegimeNeutral Regime = "NEUTRAL"
)

// TimeOfDay is the coarse daypart bucket attached to a context.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Observation is an immutable snapshot of current conditions supplied by a
// weather provider. Condition codes follow the OpenWeather numbering
// (2xx thunderstorm, 3xx drizzle, 5xx rain, 6xx snow, 7xx atmosphere,
// 800 clear, 80x clouds).
type Observation struct {
	TemperatureC      float64   `json:"temperatureC"`
	FeelsLikeC        float64   `json:"feelsLikeC"`
	WindSpeedMS       float64   `json:"windSpeedMs"`
	CloudCoverPct     int       `json:"cloudCoverPct"`
	HumidityPct       int       `json:"humidityPct"`
	VisibilityM       int       `json:"visibilityM"`
	ConditionCode     int       `json:"conditionCode"`
	Sunrise           time.Time `json:"sunrise"`
	Sunset            time.Time `json:"sunset"`
	ObservedAt        time.Time `json:"observedAt"`
	TimezoneOffsetSec int       `json:"timezoneOffsetSec"`
}

// Adversities flags the specific poor conditions present in an observation.
// The base scorer stacks an extra penalty for each one under a POOR regime.
type Adversities struct {
	HeavyPrecipitation bool
	HighWind           bool
	TemperatureExtreme bool
	LowVisibility      bool
}

// Context is the derived weather view consumed by every scorer. It is
// computed once per recommendation request and discarded with it.
// Overcast and Muggy are the mild dampeners the base scorer applies under a
// NEUTRAL regime.
type Context struct {
	Regime      Regime
	Severity    float64
	TimeOfDay   TimeOfDay
	Summary     string
	Adversities Adversities
	Overcast    bool
	Muggy       bool
}
