package scoring

import (
	"math"

	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/internal/domain/weather"
)

const baseline = 50.0

// BaseScore combines the weather regime with a venue's leaning into a 0-100
// suitability score. Pure: no I/O, no randomness.
func BaseScore(leaning venue.Leaning, wctx weather.Context, outdoorSeating bool) int {
	score := baseline

	switch wctx.Regime {
	case weather.RegimePerfect:
		switch leaning {
		case venue.LeaningOutdoor:
			score += 35
		case venue.LeaningMixed:
			score += 20
		case venue.LeaningIndoor:
			score -= 10
		}
		if outdoorSeating {
			score += 10
		}
	case weather.RegimeGood:
		switch leaning {
		case venue.LeaningOutdoor:
			score += 20
		case venue.LeaningMixed:
			score += 12
		case venue.LeaningIndoor:
			score -= 5
		}
		if outdoorSeating {
			score += 6
		}
	case weather.RegimePoor:
		switch leaning {
		case venue.LeaningOutdoor:
			score -= 30
		case venue.LeaningMixed:
			score -= 15
		case venue.LeaningIndoor:
			score += 25
		}
		if outdoorSeating {
			score -= 8
		}
		// Each adverse condition present stacks its own penalty, but only
		// for venues the weather actually reaches. Indoor venues shelter
		// from the specifics; the regime modifier already priced them.
		if leaning != venue.LeaningIndoor {
			if wctx.Adversities.HeavyPrecipitation {
				score -= 10
			}
			if wctx.Adversities.HighWind {
				score -= 6
			}
			if wctx.Adversities.TemperatureExtreme {
				score -= 6
			}
			if wctx.Adversities.LowVisibility {
				score -= 4
			}
		}
	default: // NEUTRAL
		score += 5
		if wctx.Overcast {
			score -= 3
		}
		if wctx.Muggy {
			score -= 4
		}
	}

	return int(math.Round(math.Min(100, math.Max(0, score))))
}

// BaseComponents derives the bounded sub-scores for one venue. The Price
// component is left zero; the weighting engine owns it.
func BaseComponents(v venue.Venue, leaning venue.Leaning, wctx weather.Context) Components {
	base := float64(BaseScore(leaning, wctx, v.OutdoorSeating))
	return Components{
		WeatherMatch:      base * 0.30,
		TimeCompatibility: timeCompatibility(v.Types, wctx.TimeOfDay),
		Distance:          distanceScore(v.DistanceKm),
		Popularity:        popularityScore(v.Rating, v.RatingCount),
		Novelty:           noveltyScore(v.RatingCount),
	}
}

// timeCompatibility scores how well a venue type fits the daypart, 0-10.
func timeCompatibility(types []string, bucket weather.TimeOfDay) float64 {
	best := 5.0
	for _, t := range types {
		if v, ok := timeAffinity[t][bucket]; ok && v > best {
			best = v
		}
	}
	return best
}

var timeAffinity = map[string]map[weather.TimeOfDay]float64{
	"cafe":       {weather.Morning: 10, weather.Afternoon: 8},
	"bakery":     {weather.Morning: 10, weather.Afternoon: 7},
	"park":       {weather.Morning: 9, weather.Afternoon: 9, weather.Evening: 7},
	"trail":      {weather.Morning: 9, weather.Afternoon: 8},
	"restaurant": {weather.Afternoon: 8, weather.Evening: 10, weather.Night: 7},
	"bar":        {weather.Evening: 9, weather.Night: 10},
	"night_club": {weather.Night: 10},
	"museum":     {weather.Morning: 7, weather.Afternoon: 9},
	"viewpoint":  {weather.Evening: 10, weather.Morning: 8},
	"spa":        {weather.Morning: 7, weather.Afternoon: 8, weather.Evening: 8},
}

// distanceScore decays linearly over a 10 km horizon, 0-20. Unknown
// distances sit at the midpoint.
func distanceScore(km *float64) float64 {
	if km == nil {
		return 10
	}
	score := 20 * (1 - *km/10)
	return math.Min(20, math.Max(0, score))
}

// popularityScore blends rating quality with review volume, 0-25.
func popularityScore(rating *float64, count int) float64 {
	if rating == nil {
		return 10
	}
	score := *rating / 5 * 20
	switch {
	case count >= 500:
		score += 5
	case count >= 100:
		score += 4
	case count >= 20:
		score += 2
	case count > 0:
		score += 1
	}
	return math.Min(25, math.Max(0, score))
}

// noveltyScore rewards venues with a thin review trail, 0-10.
func noveltyScore(count int) float64 {
	switch {
	case count < 10:
		return 9
	case count < 50:
		return 7
	case count < 200:
		return 5
	case count < 1000:
		return 3
	default:
		return 1
	}
}
