package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/venuecast/internal/domain/profile"
	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/internal/domain/weather"
)

func TestNormalizeWeightsSumsToOne(t *testing.T) {
	w := NormalizeWeights(profile.Weights{Weather: 60, Distance: 10, Ratings: 20, Price: 5, Novelty: 5})
	require.InDelta(t, 1.0, w.Weather+w.Distance+w.Ratings+w.Price+w.Novelty, 1e-9)
	require.InDelta(t, 0.6, w.Weather, 1e-9)
}

func TestNormalizeWeightsZeroSumFallsBackToEqual(t *testing.T) {
	w := NormalizeWeights(profile.Weights{})
	require.Equal(t, NormalizedWeights{Weather: 0.2, Distance: 0.2, Ratings: 0.2, Price: 0.2, Novelty: 0.2}, w)
}

func TestPersonalizeDefaultWeightsKeepComponentScale(t *testing.T) {
	// With default weights every amplification factor is 1, so the total is
	// just the component sum.
	rating := 4.0
	km := 2.0
	tier := 2
	in := Input{
		Venue: venue.Venue{
			Types:       []string{"museum"},
			Rating:      &rating,
			RatingCount: 300,
			DistanceKm:  &km,
			PriceLevel:  &tier,
		},
		Leaning: venue.LeaningIndoor,
		Open:    venue.StatusOpen,
		Weather: weather.Context{Regime: weather.RegimePoor, TimeOfDay: weather.Afternoon},
	}

	b := Personalize(in, profile.Default(), nil)

	comp := b.Components
	expected := comp.WeatherMatch + comp.TimeCompatibility + comp.Distance +
		comp.Popularity + comp.Price + comp.Novelty
	require.InDelta(t, expected, float64(b.Personalized), 0.51)
	require.Equal(t, b.Base, BaseScore(venue.LeaningIndoor, in.Weather, false))
}

func TestPersonalizeWeightAmplification(t *testing.T) {
	near := 0.5
	in := Input{
		Venue:   venue.Venue{Types: []string{"park"}, DistanceKm: &near},
		Leaning: venue.LeaningOutdoor,
		Open:    venue.StatusOpen,
		Weather: weather.Context{Regime: weather.RegimePerfect, TimeOfDay: weather.Afternoon},
	}

	distanceLover := profile.Default()
	distanceLover.Weights = profile.Weights{Weather: 10, Distance: 80, Ratings: 5, Price: 3, Novelty: 2}

	base := Personalize(in, profile.Default(), nil)
	skewed := Personalize(in, distanceLover, nil)

	// The venue is very close, so a distance-heavy profile scores it higher.
	require.Greater(t, skewed.Personalized, base.Personalized)
}

func TestPersonalizeFavoriteAndMoodBonuses(t *testing.T) {
	in := Input{
		Venue:   venue.Venue{Types: []string{"cafe"}},
		Leaning: venue.LeaningIndoor,
		Open:    venue.StatusOpen,
		Weather: weather.Context{Regime: weather.RegimeNeutral, TimeOfDay: weather.Morning},
	}

	plain := Personalize(in, profile.Default(), nil)

	fan := profile.Default()
	fan.Favorites = []string{"cafe"}
	fan.Mood = "relaxed"
	moodTags, ok := profile.MoodTags("relaxed")
	require.True(t, ok)

	boosted := Personalize(in, fan, moodTags)
	require.Equal(t, plain.Personalized+12, boosted.Personalized)
	require.Contains(t, boosted.Explanations, "matches your favorite venue types")
	require.Contains(t, boosted.Explanations, "fits your relaxed mood")
}

func TestPersonalizeClosedPenaltyOnlyUnderOpenNowOnly(t *testing.T) {
	in := Input{
		Venue:   venue.Venue{Types: []string{"museum"}},
		Leaning: venue.LeaningIndoor,
		Open:    venue.StatusClosed,
		Weather: weather.Context{Regime: weather.RegimeNeutral, TimeOfDay: weather.Afternoon},
	}

	indifferent := Personalize(in, profile.Default(), nil)

	strict := profile.Default()
	strict.Filters.OpenNowOnly = true
	penalized := Personalize(in, strict, nil)

	require.Equal(t, indifferent.Personalized-15, penalized.Personalized)
	require.Contains(t, penalized.Explanations, "currently closed")
}

func TestPersonalizeOverBudgetPenalty(t *testing.T) {
	tier := 4
	in := Input{
		Venue:   venue.Venue{Types: []string{"restaurant"}, PriceLevel: &tier},
		Leaning: venue.LeaningIndoor,
		Open:    venue.StatusOpen,
		Weather: weather.Context{Regime: weather.RegimeNeutral, TimeOfDay: weather.Evening},
	}

	frugal := profile.Default()
	frugal.Filters.MaxPriceTier = 2

	lavish := Personalize(in, profile.Default(), nil)
	capped := Personalize(in, frugal, nil)
	require.Equal(t, lavish.Personalized-12, capped.Personalized)
	require.Contains(t, capped.Explanations, "above your price ceiling")
}

func TestPersonalizeFamilyPenalty(t *testing.T) {
	in := Input{
		Venue:   venue.Venue{Types: []string{"bar"}},
		Leaning: venue.LeaningIndoor,
		Open:    venue.StatusOpen,
		Weather: weather.Context{Regime: weather.RegimeNeutral, TimeOfDay: weather.Evening},
	}

	family := profile.Default()
	family.Filters.FamilyFriendlyOnly = true

	anybody := Personalize(in, profile.Default(), nil)
	parents := Personalize(in, family, nil)
	require.Equal(t, anybody.Personalized-12, parents.Personalized)
}

func TestPersonalizeConfidenceTiers(t *testing.T) {
	require.Equal(t, ConfidenceHigh, confidenceFor(80))
	require.Equal(t, ConfidenceMedium, confidenceFor(60))
	require.Equal(t, ConfidenceLow, confidenceFor(30))
}

func TestPersonalizeStaysInRange(t *testing.T) {
	tier := 4
	in := Input{
		Venue:   venue.Venue{Types: []string{"bar"}, PriceLevel: &tier},
		Leaning: venue.LeaningOutdoor,
		Open:    venue.StatusClosed,
		Weather: weather.Context{
			Regime: weather.RegimePoor,
			Adversities: weather.Adversities{
				HeavyPrecipitation: true,
				HighWind:           true,
				TemperatureExtreme: true,
				LowVisibility:      true,
			},
		},
	}
	worst := profile.Profile{
		Weights: profile.Weights{Weather: 100},
		Filters: profile.Filters{OpenNowOnly: true, FamilyFriendlyOnly: true, MaxPriceTier: 0},
	}
	b := Personalize(in, worst, nil)
	require.GreaterOrEqual(t, b.Personalized, 0)
	require.LessOrEqual(t, b.Personalized, 100)
}
