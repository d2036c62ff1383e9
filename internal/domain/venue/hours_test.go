package venue

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

// Wednesday 2026-06-03, times in UTC. Venues below carry a zero offset so the
// local clock equals the instant.
func wednesdayAt(hour, min int) time.Time {
	return time.Date(2026, 6, 3, hour, min, 0, 0, time.UTC)
}

func TestResolveOpenBusinessStatusWins(t *testing.T) {
	v := Venue{
		BusinessStatus: StatusClosedTemporarily,
		Hours:          &OpeningHours{OpenNow: boolPtr(true)},
	}
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenNoDataIsUnknown(t *testing.T) {
	v := Venue{BusinessStatus: StatusOperational}
	require.Equal(t, StatusUnknown, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenAlwaysOpenSentinel(t *testing.T) {
	v := Venue{
		UTCOffsetMinutes: intPtr(0),
		Hours: &OpeningHours{
			Periods: []Period{{Open: TimePoint{Day: 0, Time: "0000"}}},
		},
	}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(3, 0), discardLogger()))
}

func TestResolveOpenNoClosePeriodWithoutSentinelIsUnknown(t *testing.T) {
	// A lone open endpoint that is not the always-open sentinel cannot be
	// evaluated, so resolution falls through rather than reporting closed.
	v := Venue{
		UTCOffsetMinutes: intPtr(0),
		Hours: &OpeningHours{
			Periods: []Period{{Open: TimePoint{Day: 3, Time: "0900"}}},
		},
	}
	require.Equal(t, StatusUnknown, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))

	// With weekday text present, the later ladder step still resolves it.
	v.Hours.WeekdayText = []string{
		"Monday: Closed", "Tuesday: Closed", "Wednesday: 9:00 AM – 5:00 PM",
		"Thursday: Closed", "Friday: Closed", "Saturday: Closed", "Sunday: Closed",
	}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenByPeriods(t *testing.T) {
	v := Venue{
		UTCOffsetMinutes: intPtr(0),
		Hours: &OpeningHours{
			Periods: []Period{
				// Wednesday 09:00 - 17:00.
				{Open: TimePoint{Day: 3, Time: "0900"}, Close: &TimePoint{Day: 3, Time: "1700"}},
			},
		},
	}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(18, 0), discardLogger()))
	// Closing minute is exclusive.
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(17, 0), discardLogger()))
}

func TestResolveOpenOvernightPeriod(t *testing.T) {
	v := Venue{
		UTCOffsetMinutes: intPtr(0),
		Hours: &OpeningHours{
			Periods: []Period{
				// Opens Wednesday 18:00, closes Thursday 02:00.
				{Open: TimePoint{Day: 3, Time: "1800"}, Close: &TimePoint{Day: 4, Time: "0200"}},
			},
		},
	}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(23, 0), discardLogger()))
	// Thursday 01:00 is still inside the span.
	require.Equal(t, StatusOpen, ResolveOpen(v, time.Date(2026, 6, 4, 1, 0, 0, 0, time.UTC), discardLogger()))
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(10, 0), discardLogger()))
}

func TestResolveOpenSaturdayIntoSundayWrap(t *testing.T) {
	v := Venue{
		UTCOffsetMinutes: intPtr(0),
		Hours: &OpeningHours{
			Periods: []Period{
				// Opens Saturday 22:00, closes Sunday 03:00: wraps the week.
				{Open: TimePoint{Day: 6, Time: "2200"}, Close: &TimePoint{Day: 0, Time: "0300"}},
			},
		},
	}
	sundayEarly := time.Date(2026, 6, 7, 1, 0, 0, 0, time.UTC)
	require.Equal(t, StatusOpen, ResolveOpen(v, sundayEarly, discardLogger()))
	saturdayLate := time.Date(2026, 6, 6, 23, 0, 0, 0, time.UTC)
	require.Equal(t, StatusOpen, ResolveOpen(v, saturdayLate, discardLogger()))
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenUsesVenueLocalClock(t *testing.T) {
	v := Venue{
		UTCOffsetMinutes: intPtr(480), // UTC+8
		Hours: &OpeningHours{
			Periods: []Period{
				{Open: TimePoint{Day: 3, Time: "0900"}, Close: &TimePoint{Day: 3, Time: "1700"}},
			},
		},
	}
	// 02:00 UTC Wednesday is 10:00 local Wednesday.
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(2, 0), discardLogger()))
	// 12:00 UTC Wednesday is 20:00 local.
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenPeriodsWithoutOffsetFallThroughToText(t *testing.T) {
	v := Venue{
		Hours: &OpeningHours{
			Periods: []Period{
				{Open: TimePoint{Day: 3, Time: "0900"}, Close: &TimePoint{Day: 3, Time: "1700"}},
			},
			WeekdayText: []string{
				"Monday: 9:00 AM – 5:00 PM",
				"Tuesday: 9:00 AM – 5:00 PM",
				"Wednesday: 9:00 AM – 5:00 PM",
				"Thursday: 9:00 AM – 5:00 PM",
				"Friday: 9:00 AM – 5:00 PM",
				"Saturday: Closed",
				"Sunday: Closed",
			},
		},
	}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenByWeekdayText(t *testing.T) {
	lines := []string{
		"Monday: Closed",
		"Tuesday: 11:30 AM – 2:30 PM, 6:00 PM – 10:00 PM",
		"Wednesday: 6:00 PM – 2:00 AM",
		"Thursday: Open 24 hours",
		"Friday: 9:00 AM – 5:00 PM",
		"Saturday: 9:00 AM – 5:00 PM",
		"Sunday: Closed",
	}
	v := Venue{Hours: &OpeningHours{WeekdayText: lines}}

	monday := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, StatusClosed, ResolveOpen(v, monday, discardLogger()))

	tuesdayLunch := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)
	require.Equal(t, StatusOpen, ResolveOpen(v, tuesdayLunch, discardLogger()))
	tuesdayGap := time.Date(2026, 6, 2, 16, 0, 0, 0, time.UTC)
	require.Equal(t, StatusClosed, ResolveOpen(v, tuesdayGap, discardLogger()))

	// The Wednesday entry spans midnight.
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(23, 30), discardLogger()))
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(10, 0), discardLogger()))

	thursday := time.Date(2026, 6, 4, 4, 0, 0, 0, time.UTC)
	require.Equal(t, StatusOpen, ResolveOpen(v, thursday, discardLogger()))
}

func TestResolveOpenWeekdayTextWithNarrowSpaces(t *testing.T) {
	v := Venue{Hours: &OpeningHours{WeekdayText: []string{
		"Monday: 9:00 AM – 5:00 PM",
		"Tuesday: Closed", "Wednesday: 9:00 AM – 5:00 PM",
		"Thursday: Closed", "Friday: Closed", "Saturday: Closed", "Sunday: Closed",
	}}}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenGarbledTextFallsThrough(t *testing.T) {
	v := Venue{Hours: &OpeningHours{
		WeekdayText: []string{"Monday: varies", "Tuesday: varies", "Wednesday: varies"},
		OpenNow:     boolPtr(false),
	}}
	// Unparseable entry falls through to the explicit closed flag.
	require.Equal(t, StatusClosed, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenBarePositiveFlagIsUnknown(t *testing.T) {
	v := Venue{Hours: &OpeningHours{OpenNow: boolPtr(true)}}
	require.Equal(t, StatusUnknown, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}

func TestResolveOpenComputedBeatsProviderFlag(t *testing.T) {
	v := Venue{
		UTCOffsetMinutes: intPtr(0),
		Hours: &OpeningHours{
			Periods: []Period{
				{Open: TimePoint{Day: 3, Time: "0900"}, Close: &TimePoint{Day: 3, Time: "1700"}},
			},
			OpenNow: boolPtr(false), // stale flag
		},
	}
	require.Equal(t, StatusOpen, ResolveOpen(v, wednesdayAt(12, 0), discardLogger()))
}
