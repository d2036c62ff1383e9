package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()
	require.Equal(t, Weights{Weather: 30, Distance: 20, Ratings: 25, Price: 15, Novelty: 10}, p.Weights)
	require.Equal(t, 10.0, p.Filters.MaxRadiusKm)
	require.Equal(t, 4, p.Filters.MaxPriceTier)
	require.Empty(t, p.Favorites)
	require.Empty(t, p.Blacklist)
}

func TestAddFavoriteEvictsFromBlacklist(t *testing.T) {
	var p Profile
	p.AddBlacklist("cafe")
	p.AddFavorite("cafe")

	require.Equal(t, []string{"cafe"}, p.Favorites)
	require.Empty(t, p.Blacklist)
}

func TestAddBlacklistEvictsFromFavorites(t *testing.T) {
	var p Profile
	p.AddFavorite("bar")
	p.AddFavorite("museum")
	p.AddBlacklist("bar")

	require.Equal(t, []string{"museum"}, p.Favorites)
	require.Equal(t, []string{"bar"}, p.Blacklist)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	var p Profile
	p.AddFavorite("park")
	p.AddFavorite("park")
	require.Equal(t, []string{"park"}, p.Favorites)
}

func TestNormalizeBlacklistWins(t *testing.T) {
	p := Profile{
		Favorites: []string{"cafe", "park", "bar"},
		Blacklist: []string{"bar", "casino"},
	}
	p.Normalize()

	require.Equal(t, []string{"cafe", "park"}, p.Favorites)
	require.Equal(t, []string{"bar", "casino"}, p.Blacklist)
}

func TestNormalizeClampsWeights(t *testing.T) {
	p := Profile{Weights: Weights{Weather: 500, Distance: -3, Ratings: 50}}
	p.Normalize()
	require.Equal(t, Weights{Weather: 100, Distance: 0, Ratings: 50}, p.Weights)
}

func TestMoodPresets(t *testing.T) {
	tags, ok := MoodTags("romantic")
	require.True(t, ok)
	require.NotEmpty(t, tags)

	_, ok = MoodTags("grumpy")
	require.False(t, ok)

	require.Contains(t, Moods(), "romantic")
	require.Contains(t, Moods(), "family")
}
