package scoring

import (
	"fmt"
	"math"

	"github.com/yanqian/venuecast/internal/domain/profile"
	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/internal/domain/weather"
)

// Default share of each scoring dimension. A user weight above its default
// amplifies that dimension, below dampens it.
const (
	defaultWeatherShare  = 0.30
	defaultDistanceShare = 0.20
	defaultRatingsShare  = 0.25
	defaultPriceShare    = 0.15
	defaultNoveltyShare  = 0.10

	favoriteBonus     = 8.0
	moodBonus         = 4.0
	closedPenalty     = 15.0
	notFamilyPenalty  = 12.0
	overBudgetPenalty = 12.0
	maxPriceComponent = 15.0
)

// NormalizedWeights are the user's importance dials as fractions summing
// to one.
type NormalizedWeights struct {
	Weather  float64 `json:"weather"`
	Distance float64 `json:"distance"`
	Ratings  float64 `json:"ratings"`
	Price    float64 `json:"price"`
	Novelty  float64 `json:"novelty"`
}

// NormalizeWeights divides each weight by their sum. A zero sum falls back
// to equal weighting rather than dividing by zero.
func NormalizeWeights(w profile.Weights) NormalizedWeights {
	sum := float64(w.Weather + w.Distance + w.Ratings + w.Price + w.Novelty)
	if sum <= 0 {
		return NormalizedWeights{Weather: 0.2, Distance: 0.2, Ratings: 0.2, Price: 0.2, Novelty: 0.2}
	}
	return NormalizedWeights{
		Weather:  float64(w.Weather) / sum,
		Distance: float64(w.Distance) / sum,
		Ratings:  float64(w.Ratings) / sum,
		Price:    float64(w.Price) / sum,
		Novelty:  float64(w.Novelty) / sum,
	}
}

// Input carries everything the engine needs for one venue. Open must be the
// already-resolved status so the engine stays pure.
type Input struct {
	Venue   venue.Venue
	Leaning venue.Leaning
	Open    venue.OpenStatus
	Weather weather.Context
}

// Personalize recomputes a venue's score from the base sub-components under
// the user's normalized weights plus favorite/mood bonuses and closed or
// inappropriate-venue penalties.
func Personalize(in Input, prof profile.Profile, moodTags map[string]struct{}) Breakdown {
	comp := BaseComponents(in.Venue, in.Leaning, in.Weather)
	comp.Price = priceComponent(in.Venue.PriceLevel)
	base := BaseScore(in.Leaning, in.Weather, in.Venue.OutdoorSeating)

	weights := NormalizeWeights(prof.Weights)
	total := (comp.WeatherMatch+comp.TimeCompatibility)*(weights.Weather/defaultWeatherShare) +
		comp.Distance*(weights.Distance/defaultDistanceShare) +
		comp.Popularity*(weights.Ratings/defaultRatingsShare) +
		comp.Price*(weights.Price/defaultPriceShare) +
		comp.Novelty*(weights.Novelty/defaultNoveltyShare)

	var explanations []string
	explanations = append(explanations, weatherExplanation(in.Leaning, in.Weather))

	if in.Venue.PriceLevel != nil && *in.Venue.PriceLevel > prof.Filters.MaxPriceTier {
		total -= overBudgetPenalty
		explanations = append(explanations, "above your price ceiling")
	}
	if in.Venue.HasAnyTag(prof.FavoriteSet()) {
		total += favoriteBonus
		explanations = append(explanations, "matches your favorite venue types")
	}
	if len(moodTags) > 0 && in.Venue.HasAnyTag(moodTags) {
		total += moodBonus
		explanations = append(explanations, fmt.Sprintf("fits your %s mood", prof.Mood))
	}
	if prof.Filters.OpenNowOnly && in.Open == venue.StatusClosed {
		total -= closedPenalty
		explanations = append(explanations, "currently closed")
	}
	if prof.Filters.FamilyFriendlyOnly && venue.FamilyUnfriendly(in.Venue.Types) {
		total -= notFamilyPenalty
		explanations = append(explanations, "not family friendly")
	}
	if in.Venue.Rating != nil && *in.Venue.Rating >= 4.5 && in.Venue.RatingCount >= 100 {
		explanations = append(explanations, fmt.Sprintf("highly rated (%.1f from %d reviews)", *in.Venue.Rating, in.Venue.RatingCount))
	}
	if in.Venue.DistanceKm != nil && *in.Venue.DistanceKm <= 1 {
		explanations = append(explanations, fmt.Sprintf("close by (%.1f km)", *in.Venue.DistanceKm))
	}

	personalized := int(math.Round(math.Min(100, math.Max(0, total))))
	return Breakdown{
		Base:         base,
		Components:   comp,
		Personalized: personalized,
		Confidence:   confidenceFor(personalized),
		Explanations: explanations,
	}
}

// priceComponent scores cheapness, 0-15. Missing tiers sit at the midpoint.
func priceComponent(tier *int) float64 {
	if tier == nil {
		return maxPriceComponent / 2
	}
	t := *tier
	if t < 0 {
		t = 0
	}
	if t > 4 {
		t = 4
	}
	return float64(4-t) / 4 * maxPriceComponent
}

func weatherExplanation(leaning venue.Leaning, wctx weather.Context) string {
	switch wctx.Regime {
	case weather.RegimePerfect:
		if leaning == venue.LeaningOutdoor {
			return "perfect weather for an outdoor visit"
		}
		return "great weather outside"
	case weather.RegimeGood:
		return "pleasant weather for most plans"
	case weather.RegimePoor:
		if leaning == venue.LeaningIndoor {
			return "a good shelter from bad weather"
		}
		return "rough weather for this venue"
	default:
		return "weather is unremarkable"
	}
}
