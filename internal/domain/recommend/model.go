package recommend

import (
	"context"

	"github.com/yanqian/venuecast/internal/domain/filter"
	"github.com/yanqian/venuecast/internal/domain/profile"
	"github.com/yanqian/venuecast/internal/domain/scoring"
	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/internal/domain/weather"
	"github.com/yanqian/venuecast/pkg/metrics"
)

// WeatherSource supplies the current observation for a coordinate.
type WeatherSource interface {
	Current(ctx context.Context, lat, lng float64) (weather.Observation, error)
}

// VenueSource supplies candidate venues around a coordinate.
type VenueSource interface {
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]venue.Venue, error)
}

// ProfileStore reads stored preference profiles. This service never writes
// through it.
type ProfileStore interface {
	Get(ctx context.Context, id string) (profile.Profile, bool, error)
}

// DistanceCalculator returns the scalar distance between two coordinates.
type DistanceCalculator interface {
	DistanceKm(from, to venue.LatLng) float64
}

// Request describes one recommendation run.
type Request struct {
	Lat       float64          `json:"lat"`
	Lng       float64          `json:"lng"`
	RadiusKm  float64          `json:"radiusKm,omitempty"`
	Count     int              `json:"count,omitempty"`
	ProfileID string           `json:"profileId,omitempty"`
	Profile   *profile.Profile `json:"profile,omitempty"`
	Mood      string           `json:"mood,omitempty"`
	Context   string           `json:"context,omitempty"`
	Rerank    bool             `json:"rerank,omitempty"`
}

// Recommendation is one ranked venue with its derived fields attached. The
// source venue record itself is never mutated.
type Recommendation struct {
	Venue     venue.Venue       `json:"venue"`
	Leaning   venue.Leaning     `json:"leaning"`
	Category  string            `json:"category"`
	Open      venue.OpenStatus  `json:"open"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// Metadata explains how the ranked list was produced.
type Metadata struct {
	Regime             weather.Regime            `json:"regime"`
	Severity           float64                   `json:"severity"`
	TimeOfDay          weather.TimeOfDay         `json:"timeOfDay"`
	WeatherSummary     string                    `json:"weatherSummary"`
	AIRerankingApplied bool                      `json:"aiRerankingApplied"`
	RerankError        string                    `json:"rerankError,omitempty"`
	WeightsUsed        scoring.NormalizedWeights `json:"weightsUsed"`
	Filter             filter.Stats              `json:"filter"`
	TokenUsage         metrics.TokenUsage        `json:"tokenUsage,omitempty"`
}

// Response is the full recommendation result.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	Metadata        Metadata         `json:"metadata"`
}
