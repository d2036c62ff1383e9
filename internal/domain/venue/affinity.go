package venue

// Tag sets driving the indoor/outdoor leaning. The two sets are disjoint:
// a tag in both would make the leaning depend on map iteration order.
var (
	indoorTags = toSet(
		"museum", "art_gallery", "movie_theater", "theater", "library",
		"aquarium", "bowling_alley", "casino", "spa", "gym", "shopping_mall",
		"department_store", "book_store", "restaurant", "cafe", "bakery",
		"bar", "night_club", "liquor_store",
	)
	outdoorTags = toSet(
		"park", "campground", "beach", "zoo", "hiking_area", "trail",
		"playground", "garden", "botanical_garden", "viewpoint",
		"natural_feature", "picnic_ground", "marina", "golf_course",
		"amusement_park", "stadium",
	)

	// alwaysAccessibleTags marks venue types reachable at any hour, which
	// exempts them from open-now filtering even when hours are unknown.
	alwaysAccessibleTags = toSet(
		"park", "trail", "hiking_area", "viewpoint", "beach",
		"natural_feature", "playground", "garden", "picnic_ground",
	)

	notFamilyTags = toSet("bar", "night_club", "casino", "liquor_store")
)

// category groups venues for display. Priority is the order of this slice:
// the first category whose tag set intersects the venue's tags wins. That is
// a deliberate tie-break over the venue's own tag order, so a museum inside a
// park is always labeled culture.
var categories = []struct {
	Label string
	Tags  map[string]struct{}
}{
	{"culture", toSet("museum", "art_gallery", "theater", "library", "tourist_attraction")},
	{"nature", toSet("park", "garden", "botanical_garden", "beach", "hiking_area", "trail", "viewpoint", "natural_feature", "campground", "picnic_ground")},
	{"food_drink", toSet("restaurant", "cafe", "bakery", "food")},
	{"entertainment", toSet("movie_theater", "bowling_alley", "amusement_park", "zoo", "aquarium", "stadium", "casino")},
	{"nightlife", toSet("bar", "night_club")},
	{"wellness", toSet("spa", "gym")},
	{"shopping", toSet("shopping_mall", "department_store", "book_store", "store")},
}

// ClassifyLeaning maps a venue's type tags to an indoor/outdoor/mixed
// leaning. Indoor tags win over outdoor tags; no match means MIXED.
func ClassifyLeaning(types []string) Leaning {
	for _, t := range types {
		if _, ok := indoorTags[t]; ok {
			return LeaningIndoor
		}
	}
	for _, t := range types {
		if _, ok := outdoorTags[t]; ok {
			return LeaningOutdoor
		}
	}
	return LeaningMixed
}

// Categorize picks the highest-priority display category matching any tag.
func Categorize(types []string) string {
	tagSet := toSet(types...)
	for _, cat := range categories {
		for tag := range cat.Tags {
			if _, ok := tagSet[tag]; ok {
				return cat.Label
			}
		}
	}
	return "other"
}

// AlwaysAccessible reports whether the venue type is open-air and reachable
// around the clock.
func AlwaysAccessible(types []string) bool {
	for _, t := range types {
		if _, ok := alwaysAccessibleTags[t]; ok {
			return true
		}
	}
	return false
}

// FamilyUnfriendly reports whether any tag is in the fixed set of venue
// types excluded by family-friendly filtering.
func FamilyUnfriendly(types []string) bool {
	for _, t := range types {
		if _, ok := notFamilyTags[t]; ok {
			return true
		}
	}
	return false
}

func toSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
