package profile

// Weights are the five user importance dials, each 0-100 and independently
// settable. They are not required to sum to anything; the weighting engine
// normalizes them per request.
type Weights struct {
	Weather  int `json:"weather"`
	Distance int `json:"distance"`
	Ratings  int `json:"ratings"`
	Price    int `json:"price"`
	Novelty  int `json:"novelty"`
}

// Filters are the hard constraints applied before scoring.
type Filters struct {
	MaxRadiusKm        float64 `json:"maxRadiusKm"`
	MaxPriceTier       int     `json:"maxPriceTier"`
	MinRating          float64 `json:"minRating"`
	OpenNowOnly        bool    `json:"openNowOnly"`
	RequireAccessible  bool    `json:"requireAccessible"`
	FamilyFriendlyOnly bool    `json:"familyFriendlyOnly"`
}

// Profile is a user preference record. Favorites and blacklist are tag sets
// with the invariant that no tag appears in both: mutators apply last-write-
// wins, and Normalize lets the blacklist take precedence after bulk loads.
type Profile struct {
	ID        string   `json:"id"`
	Weights   Weights  `json:"weights"`
	Favorites []string `json:"favorites,omitempty"`
	Blacklist []string `json:"blacklist,omitempty"`
	Mood      string   `json:"mood,omitempty"`
	Filters   Filters  `json:"filters"`
}

// Default returns the profile used when a request carries no stored or
// inline preferences.
func Default() Profile {
	return Profile{
		Weights: Weights{Weather: 30, Distance: 20, Ratings: 25, Price: 15, Novelty: 10},
		Filters: Filters{
			MaxRadiusKm:  10,
			MaxPriceTier: 4,
		},
	}
}

// AddFavorite records a favorite tag, evicting it from the blacklist.
func (p *Profile) AddFavorite(tag string) {
	p.Blacklist = remove(p.Blacklist, tag)
	if !contains(p.Favorites, tag) {
		p.Favorites = append(p.Favorites, tag)
	}
}

// AddBlacklist records a blacklisted tag, evicting it from favorites.
func (p *Profile) AddBlacklist(tag string) {
	p.Favorites = remove(p.Favorites, tag)
	if !contains(p.Blacklist, tag) {
		p.Blacklist = append(p.Blacklist, tag)
	}
}

// Normalize restores the disjointness invariant on a profile assembled from
// raw input: any tag present in both sets stays blacklisted only.
func (p *Profile) Normalize() {
	for _, tag := range p.Blacklist {
		p.Favorites = remove(p.Favorites, tag)
	}
	p.Weights = clampWeights(p.Weights)
}

// BlacklistSet exposes the blacklist as a lookup set for the filter pipeline.
func (p Profile) BlacklistSet() map[string]struct{} {
	return toSet(p.Blacklist)
}

// FavoriteSet exposes favorites as a lookup set for the weighting engine.
func (p Profile) FavoriteSet() map[string]struct{} {
	return toSet(p.Favorites)
}

func clampWeights(w Weights) Weights {
	w.Weather = clamp(w.Weather)
	w.Distance = clamp(w.Distance)
	w.Ratings = clamp(w.Ratings)
	w.Price = clamp(w.Price)
	w.Novelty = clamp(w.Novelty)
	return w
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func remove(tags []string, tag string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
