package venue

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const minutesPerWeek = 7 * 24 * 60

// ResolveOpen determines whether a venue is open at the given instant.
// Resolution order, first applicable wins:
//  1. provider business status says closed
//  2. structured periods + a known timezone offset
//  3. weekday text descriptions
//  4. an explicit provider "closed" flag
//  5. unknown
//
// A provider "open" flag with no corroborating structure is distrusted and
// resolves to unknown. When the computed value disagrees with the provider
// flag, the computed value wins and the discrepancy is logged.
func ResolveOpen(v Venue, now time.Time, logger *slog.Logger) OpenStatus {
	if v.BusinessStatus == StatusClosedPermanently || v.BusinessStatus == StatusClosedTemporarily {
		return StatusClosed
	}
	if v.Hours == nil {
		return StatusUnknown
	}

	if len(v.Hours.Periods) > 0 && v.UTCOffsetMinutes != nil {
		if open, ok := openByPeriods(v.Hours.Periods, localTime(now, v.UTCOffsetMinutes)); ok {
			if v.Hours.OpenNow != nil && *v.Hours.OpenNow != open && logger != nil {
				logger.Warn("computed open status disagrees with provider flag",
					"venue_id", v.ID, "computed", open, "provider", *v.Hours.OpenNow)
			}
			if open {
				return StatusOpen
			}
			return StatusClosed
		}
	}

	if len(v.Hours.WeekdayText) > 0 {
		if status, ok := openByWeekdayText(v.Hours.WeekdayText, localTime(now, v.UTCOffsetMinutes)); ok {
			return status
		}
	}

	if v.Hours.OpenNow != nil && !*v.Hours.OpenNow {
		return StatusClosed
	}
	return StatusUnknown
}

// localTime shifts now into the venue's local wall clock. Without an offset
// the instant is used as given, which keeps deterministic tests honest and
// matches the caller already holding a local clock.
func localTime(now time.Time, offsetMinutes *int) time.Time {
	if offsetMinutes == nil {
		return now
	}
	return now.UTC().Add(time.Duration(*offsetMinutes) * time.Minute)
}

// openByPeriods evaluates structured periods against the local wall clock.
// ok is false when no period could be interpreted, so the caller can fall
// through to the next resolution step instead of reporting closed.
func openByPeriods(periods []Period, local time.Time) (open, ok bool) {
	// The day-0 midnight sentinel with no close means the venue never
	// closes. Any other no-close single period is uninterpretable.
	if len(periods) == 1 && periods[0].Close == nil {
		if periods[0].Open.Day == 0 && periods[0].Open.Time == "0000" {
			return true, true
		}
		return false, false
	}

	cur := int(local.Weekday())*1440 + local.Hour()*60 + local.Minute()

	interpreted := false
	for _, p := range periods {
		if p.Close == nil {
			continue
		}
		openMin, ok := parseHHMM(p.Open.Time)
		if !ok {
			continue
		}
		closeMin, ok := parseHHMM(p.Close.Time)
		if !ok {
			continue
		}
		interpreted = true
		start := p.Open.Day*1440 + openMin
		end := p.Close.Day*1440 + closeMin
		if end <= start {
			// Overnight span wrapping the end of the week.
			end += minutesPerWeek
		}
		if (cur >= start && cur < end) || (cur+minutesPerWeek >= start && cur+minutesPerWeek < end) {
			return true, true
		}
	}
	return false, interpreted
}

func parseHHMM(value string) (int, bool) {
	if len(value) != 4 {
		return 0, false
	}
	hh, err := strconv.Atoi(value[:2])
	if err != nil || hh > 23 {
		return 0, false
	}
	mm, err := strconv.Atoi(value[2:])
	if err != nil || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM)`)

// openByWeekdayText parses provider weekday descriptions, which are listed
// Monday first. The second return is false when today's entry cannot be
// interpreted, letting the caller fall through.
func openByWeekdayText(lines []string, local time.Time) (OpenStatus, bool) {
	idx := (int(local.Weekday()) + 6) % 7
	if idx >= len(lines) {
		return StatusUnknown, false
	}
	_, entry, found := strings.Cut(lines[idx], ":")
	if !found {
		return StatusUnknown, false
	}
	entry = normalizeHoursText(entry)

	if strings.EqualFold(entry, "closed") {
		return StatusClosed, true
	}
	if strings.EqualFold(entry, "open 24 hours") {
		return StatusOpen, true
	}

	cur := local.Hour()*60 + local.Minute()
	parsedAny := false
	for _, span := range strings.Split(entry, ",") {
		from, until, ok := parseClockSpan(span)
		if !ok {
			continue
		}
		parsedAny = true
		if until <= from {
			// Spans midnight: open 6:00 PM, close 2:00 AM.
			if cur >= from || cur < until {
				return StatusOpen, true
			}
		} else if cur >= from && cur < until {
			return StatusOpen, true
		}
	}
	if !parsedAny {
		return StatusUnknown, false
	}
	return StatusClosed, true
}

// normalizeHoursText strips the narrow and regular no-break spaces some
// providers embed between the minutes and the AM/PM marker.
func normalizeHoursText(entry string) string {
	entry = strings.ReplaceAll(entry, " ", " ")
	entry = strings.ReplaceAll(entry, " ", " ")
	return strings.TrimSpace(entry)
}

func parseClockSpan(span string) (from, until int, ok bool) {
	matches := clockPattern.FindAllStringSubmatch(span, -1)
	if len(matches) != 2 {
		return 0, 0, false
	}
	from, ok = clockToMinutes(matches[0])
	if !ok {
		return 0, 0, false
	}
	until, ok = clockToMinutes(matches[1])
	if !ok {
		return 0, 0, false
	}
	return from, until, true
}

func clockToMinutes(match []string) (int, bool) {
	hh, err := strconv.Atoi(match[1])
	if err != nil || hh < 1 || hh > 12 {
		return 0, false
	}
	mm, err := strconv.Atoi(match[2])
	if err != nil || mm > 59 {
		return 0, false
	}
	if hh == 12 {
		hh = 0
	}
	if match[3] == "PM" {
		hh += 12
	}
	return hh*60 + mm, true
}
