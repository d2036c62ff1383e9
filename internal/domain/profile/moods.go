package profile

import "sort"

// moodPresets maps a mood key to the venue type tags it favors. Presets are
// plain package data handed to the weighting engine per request; there is no
// process-wide preference state.
var moodPresets = map[string][]string{
	"romantic":    {"restaurant", "art_gallery", "viewpoint", "garden"},
	"adventurous": {"hiking_area", "trail", "amusement_park", "zoo", "campground"},
	"relaxed":     {"spa", "cafe", "park", "library", "botanical_garden"},
	"social":      {"bar", "restaurant", "bowling_alley", "night_club"},
	"cultural":    {"museum", "art_gallery", "theater", "tourist_attraction"},
	"family":      {"zoo", "aquarium", "playground", "amusement_park", "park"},
}

// MoodTags resolves a mood key to its preset tag set. Unknown keys resolve
// to nothing rather than failing.
func MoodTags(mood string) (map[string]struct{}, bool) {
	tags, ok := moodPresets[mood]
	if !ok {
		return nil, false
	}
	return toSet(tags), true
}

// Moods lists the available preset keys.
func Moods() []string {
	keys := make([]string, 0, len(moodPresets))
	for k := range moodPresets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
