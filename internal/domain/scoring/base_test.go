package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/internal/domain/weather"
)

func TestBaseScorePerfectWeatherPrefersOutdoor(t *testing.T) {
	wctx := weather.Context{Regime: weather.RegimePerfect}

	outdoor := BaseScore(venue.LeaningOutdoor, wctx, false)
	mixed := BaseScore(venue.LeaningMixed, wctx, false)
	indoor := BaseScore(venue.LeaningIndoor, wctx, false)

	require.Equal(t, 85, outdoor)
	require.Equal(t, 70, mixed)
	require.Equal(t, 40, indoor)
	require.Greater(t, outdoor, indoor)
}

func TestBaseScoreOutdoorSeatingBonusTracksRegime(t *testing.T) {
	perfect := weather.Context{Regime: weather.RegimePerfect}
	poor := weather.Context{Regime: weather.RegimePoor}

	require.Equal(t, 50, BaseScore(venue.LeaningIndoor, perfect, true))
	// In bad weather outdoor seating is a liability, not an asset.
	require.Greater(t,
		BaseScore(venue.LeaningIndoor, poor, false),
		BaseScore(venue.LeaningIndoor, poor, true))
}

func TestBaseScorePoorWeatherStacksAdversityPenalties(t *testing.T) {
	mild := weather.Context{Regime: weather.RegimePoor}
	nasty := weather.Context{
		Regime: weather.RegimePoor,
		Adversities: weather.Adversities{
			HeavyPrecipitation: true,
			HighWind:           true,
			TemperatureExtreme: true,
			LowVisibility:      true,
		},
	}

	require.Equal(t, 20, BaseScore(venue.LeaningOutdoor, mild, false))
	// 50 - 30 - 26 clamps at zero.
	require.Equal(t, 0, BaseScore(venue.LeaningOutdoor, nasty, false))
	require.Equal(t, 9, BaseScore(venue.LeaningMixed, nasty, false))
	// Indoor venues are sheltered from the adversity stack.
	require.Equal(t, 75, BaseScore(venue.LeaningIndoor, nasty, false))
}

func TestBaseScoreStormBounds(t *testing.T) {
	// Heavy rain with strong wind, classified rather than hand-built so the
	// scorer sees exactly what the pipeline would feed it.
	wctx := weather.Classify(weather.Observation{
		TemperatureC:  11,
		FeelsLikeC:    9,
		WindSpeedMS:   12,
		ConditionCode: 502,
	})
	require.Equal(t, weather.RegimePoor, wctx.Regime)

	museum := BaseScore(venue.LeaningIndoor, wctx, false)
	beerGarden := BaseScore(venue.LeaningOutdoor, wctx, true)

	require.Greater(t, museum, 70)
	require.Less(t, beerGarden, 40)
}

func TestBaseScoreClampsToRange(t *testing.T) {
	nasty := weather.Context{
		Regime: weather.RegimePoor,
		Adversities: weather.Adversities{
			HeavyPrecipitation: true,
			HighWind:           true,
			TemperatureExtreme: true,
			LowVisibility:      true,
		},
	}
	for _, leaning := range []venue.Leaning{venue.LeaningIndoor, venue.LeaningOutdoor, venue.LeaningMixed} {
		for _, seating := range []bool{true, false} {
			score := BaseScore(leaning, nasty, seating)
			require.GreaterOrEqual(t, score, 0)
			require.LessOrEqual(t, score, 100)
		}
	}
}

func TestBaseScoreNeutralDampeners(t *testing.T) {
	plain := weather.Context{Regime: weather.RegimeNeutral}
	dull := weather.Context{Regime: weather.RegimeNeutral, Overcast: true, Muggy: true}

	require.Equal(t, 55, BaseScore(venue.LeaningOutdoor, plain, false))
	require.Equal(t, 48, BaseScore(venue.LeaningOutdoor, dull, false))
}

func TestBaseComponentsBounds(t *testing.T) {
	rating := 4.8
	km := 0.5
	v := venue.Venue{
		Types:          []string{"cafe"},
		Rating:         &rating,
		RatingCount:    800,
		DistanceKm:     &km,
		OutdoorSeating: true,
	}
	wctx := weather.Context{Regime: weather.RegimePerfect, TimeOfDay: weather.Morning}

	comp := BaseComponents(v, venue.LeaningIndoor, wctx)
	require.LessOrEqual(t, comp.WeatherMatch, 30.0)
	require.Equal(t, 10.0, comp.TimeCompatibility)
	require.InDelta(t, 19.0, comp.Distance, 0.001)
	require.LessOrEqual(t, comp.Popularity, 25.0)
	require.Equal(t, 3.0, comp.Novelty)
	require.Zero(t, comp.Price)
}

func TestDistanceScoreDecaysAndClamps(t *testing.T) {
	near := 1.0
	far := 25.0
	require.InDelta(t, 18.0, distanceScore(&near), 0.001)
	require.Equal(t, 0.0, distanceScore(&far))
	require.Equal(t, 10.0, distanceScore(nil))
}

func TestPopularityScoreVolumeBumps(t *testing.T) {
	rating := 4.0
	require.Equal(t, 16.0, popularityScore(&rating, 0))
	require.Equal(t, 17.0, popularityScore(&rating, 5))
	require.Equal(t, 21.0, popularityScore(&rating, 700))
	require.Equal(t, 10.0, popularityScore(nil, 700))

	five := 5.0
	require.Equal(t, 25.0, popularityScore(&five, 700))
}

func TestNoveltyRewardsThinReviewTrail(t *testing.T) {
	require.Equal(t, 9.0, noveltyScore(3))
	require.Equal(t, 5.0, noveltyScore(120))
	require.Equal(t, 1.0, noveltyScore(5000))
}
