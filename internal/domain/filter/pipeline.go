package filter

import (
	"log/slog"
	"time"

	"github.com/yanqian/venuecast/internal/domain/profile"
	"github.com/yanqian/venuecast/internal/domain/venue"
)

// Reason is the keyword reported for a rejected venue.
type Reason string

const (
	ReasonBlacklisted   Reason = "blacklisted"
	ReasonLowRating     Reason = "low_rating"
	ReasonTooExpensive  Reason = "too_expensive"
	ReasonTooFar        Reason = "too_far"
	ReasonClosed        Reason = "closed"
	ReasonHoursUnknown  Reason = "hours_unknown"
	ReasonNotAccessible Reason = "not_accessible"
	ReasonNotFamily     Reason = "not_family_friendly"
)

// Stats aggregates one Apply call. Built fresh per request, never persisted.
type Stats struct {
	Considered int            `json:"considered"`
	Passed     int            `json:"passed"`
	Filtered   int            `json:"filtered"`
	Reasons    map[Reason]int `json:"reasons,omitempty"`
}

// Pipeline applies the ordered hard filters. Evaluation order decides only
// which single reason gets reported; every filter is independently necessary,
// so permuting the order never changes a verdict.
type Pipeline struct {
	now    func() time.Time
	logger *slog.Logger
}

// New builds a pipeline resolving open-now checks at the given clock.
func New(now func() time.Time, logger *slog.Logger) *Pipeline {
	return &Pipeline{now: now, logger: logger}
}

type predicate struct {
	reason Reason
	reject func(v venue.Venue, prof profile.Profile) (bool, Reason)
}

// predicates returns the filters in their fixed reporting order. A predicate
// answers whether it rejects the venue and with which reason (the open-now
// check distinguishes closed from unknown hours).
func (p *Pipeline) predicates() []predicate {
	return []predicate{
		{ReasonBlacklisted, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			return v.HasAnyTag(prof.BlacklistSet()), ReasonBlacklisted
		}},
		{ReasonLowRating, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			// Venues without a rating are not judged by the floor.
			return prof.Filters.MinRating > 0 && v.Rating != nil && *v.Rating < prof.Filters.MinRating, ReasonLowRating
		}},
		{ReasonTooExpensive, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			return v.PriceLevel != nil && *v.PriceLevel > prof.Filters.MaxPriceTier, ReasonTooExpensive
		}},
		{ReasonTooFar, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			return prof.Filters.MaxRadiusKm > 0 && v.DistanceKm != nil && *v.DistanceKm > prof.Filters.MaxRadiusKm, ReasonTooFar
		}},
		{ReasonClosed, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			if !prof.Filters.OpenNowOnly || venue.AlwaysAccessible(v.Types) {
				return false, ReasonClosed
			}
			switch venue.ResolveOpen(v, p.now(), p.logger) {
			case venue.StatusClosed:
				return true, ReasonClosed
			case venue.StatusUnknown:
				return true, ReasonHoursUnknown
			default:
				return false, ReasonClosed
			}
		}},
		{ReasonNotAccessible, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			return prof.Filters.RequireAccessible && (v.WheelchairAccessible == nil || !*v.WheelchairAccessible), ReasonNotAccessible
		}},
		{ReasonNotFamily, func(v venue.Venue, prof profile.Profile) (bool, Reason) {
			return prof.Filters.FamilyFriendlyOnly && venue.FamilyUnfriendly(v.Types), ReasonNotFamily
		}},
	}
}

// Check evaluates every hard filter against one venue, short-circuiting on
// the first failure.
func (p *Pipeline) Check(v venue.Venue, prof profile.Profile) (bool, Reason) {
	return check(v, prof, p.predicates())
}

func check(v venue.Venue, prof profile.Profile, preds []predicate) (bool, Reason) {
	for _, pred := range preds {
		if reject, reason := pred.reject(v, prof); reject {
			return false, reason
		}
	}
	return true, ""
}

// Apply filters a venue list and aggregates per-reason statistics.
func (p *Pipeline) Apply(venues []venue.Venue, prof profile.Profile) ([]venue.Venue, Stats) {
	stats := Stats{Considered: len(venues), Reasons: make(map[Reason]int)}
	passed := make([]venue.Venue, 0, len(venues))
	preds := p.predicates()
	for _, v := range venues {
		ok, reason := check(v, prof, preds)
		if !ok {
			stats.Filtered++
			stats.Reasons[reason]++
			continue
		}
		passed = append(passed, v)
	}
	stats.Passed = len(passed)
	return passed, stats
}
