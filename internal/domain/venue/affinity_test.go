package venue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyLeaning(t *testing.T) {
	require.Equal(t, LeaningIndoor, ClassifyLeaning([]string{"museum", "tourist_attraction"}))
	require.Equal(t, LeaningOutdoor, ClassifyLeaning([]string{"park", "tourist_attraction"}))
	require.Equal(t, LeaningMixed, ClassifyLeaning([]string{"tourist_attraction", "point_of_interest"}))
	require.Equal(t, LeaningMixed, ClassifyLeaning(nil))

	// Indoor beats outdoor regardless of tag order.
	require.Equal(t, LeaningIndoor, ClassifyLeaning([]string{"park", "cafe"}))
	require.Equal(t, LeaningIndoor, ClassifyLeaning([]string{"cafe", "park"}))
}

func TestLeaningTagSetsDisjoint(t *testing.T) {
	for tag := range indoorTags {
		_, both := outdoorTags[tag]
		require.False(t, both, "tag %q is in both leaning sets", tag)
	}
}

func TestCategorizePriorityOrder(t *testing.T) {
	// A museum set in a park is culture, not nature, whatever the tag order.
	require.Equal(t, "culture", Categorize([]string{"park", "museum"}))
	require.Equal(t, "culture", Categorize([]string{"museum", "park"}))

	require.Equal(t, "nature", Categorize([]string{"park"}))
	require.Equal(t, "food_drink", Categorize([]string{"cafe", "store"}))
	require.Equal(t, "nightlife", Categorize([]string{"bar"}))
	require.Equal(t, "other", Categorize([]string{"point_of_interest"}))
	require.Equal(t, "other", Categorize(nil))
}

func TestAlwaysAccessible(t *testing.T) {
	require.True(t, AlwaysAccessible([]string{"park"}))
	require.True(t, AlwaysAccessible([]string{"tourist_attraction", "viewpoint"}))
	require.False(t, AlwaysAccessible([]string{"museum"}))
}

func TestFamilyUnfriendly(t *testing.T) {
	require.True(t, FamilyUnfriendly([]string{"bar", "restaurant"}))
	require.False(t, FamilyUnfriendly([]string{"restaurant"}))
}
