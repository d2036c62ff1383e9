package venue

// Leaning marks whether a venue is enjoyed indoors, outdoors or both.
type Leaning string

const (
	LeaningIndoor  Leaning = "INDOOR"
	LeaningOutdoor Leaning = "OUTDOOR"
	LeaningMixed   Leaning = "MIXED"
)

// OpenStatus is the three-valued result of opening-hours resolution.
type OpenStatus string

const (
	StatusOpen    OpenStatus = "open"
	StatusClosed  OpenStatus = "closed"
	StatusUnknown OpenStatus = "unknown"
)

// BusinessStatus mirrors the provider operational flag.
type BusinessStatus string

const (
	StatusOperational       BusinessStatus = "OPERATIONAL"
	StatusClosedTemporarily BusinessStatus = "CLOSED_TEMPORARILY"
	StatusClosedPermanently BusinessStatus = "CLOSED_PERMANENTLY"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TimePoint is one endpoint of an opening period: a weekday (0 = Sunday,
// provider convention) and a local "HHMM" clock string.
type TimePoint struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Period is an open/close pair. A nil Close together with an Open of
// day 0 / "0000" means the venue never closes.
type Period struct {
	Open  TimePoint  `json:"open"`
	Close *TimePoint `json:"close,omitempty"`
}

// OpeningHours carries every hours signal a provider may attach: structured
// periods, per-weekday text descriptions and the provider's own open flag.
type OpeningHours struct {
	Periods     []Period `json:"periods,omitempty"`
	WeekdayText []string `json:"weekdayText,omitempty"`
	OpenNow     *bool    `json:"openNow,omitempty"`
}

// Venue is a read-only candidate record. Optional provider fields use
// pointers so absence is explicit rather than zero-valued; scoring derives
// from a venue without ever mutating it.
type Venue struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Address              string         `json:"address,omitempty"`
	Location             LatLng         `json:"location"`
	Types                []string       `json:"types"`
	Rating               *float64       `json:"rating,omitempty"`
	RatingCount          int            `json:"ratingCount,omitempty"`
	PriceLevel           *int           `json:"priceLevel,omitempty"`
	Hours                *OpeningHours  `json:"hours,omitempty"`
	BusinessStatus       BusinessStatus `json:"businessStatus,omitempty"`
	WheelchairAccessible *bool          `json:"wheelchairAccessible,omitempty"`
	OutdoorSeating       bool           `json:"outdoorSeating,omitempty"`
	UTCOffsetMinutes     *int           `json:"utcOffsetMinutes,omitempty"`
	DistanceKm           *float64       `json:"distanceKm,omitempty"`
}

// HasTag reports whether the venue carries the given type tag.
func (v Venue) HasTag(tag string) bool {
	for _, t := range v.Types {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether any venue tag is present in the given set.
func (v Venue) HasAnyTag(set map[string]struct{}) bool {
	for _, t := range v.Types {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
