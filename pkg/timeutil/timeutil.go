// Package timeutil normalizes the date/time strings found on freight
// paperwork into a single TMS wire format. Inputs arrive in whatever shape
// the upstream extraction produced, so parsing is layered: known layouts
// first, then a permissive regex sweep.
package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TMSFormat is the timestamp convention the TMS consumes. The millisecond
// field is always zero and the Z suffix is literal: this is a display
// convention, not a true UTC conversion. Whatever offset the input carried
// is discarded.
const TMSFormat = "2006-01-02T15:04:05"

var layouts = []string{
	"01/02/06 15:04",
	"01/02/2006 15:04",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02 15:04:05",
	"20060102150405-0700",
}

var (
	datePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	timePattern = regexp.MustCompile(`(\d{1,2}):(\d{1,2})`)
)

// Parse attempts to interpret text as a date/time. Known layouts are tried
// in order; when none match, a permissive regex locates a month/day/year
// (2-digit years below 50 are 2000s, the rest 1900s) and an optional
// hour:minute, defaulting to midnight. The second return is false only when
// no date could be located at all.
func Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	return parseLoose(text)
}

func parseLoose(text string) (time.Time, bool) {
	dm := datePattern.FindStringSubmatch(text)
	if dm == nil {
		return time.Time{}, false
	}

	month, _ := strconv.Atoi(dm[1])
	day, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(dm[3])

	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	hour, minute := 0, 0
	if tm := timePattern.FindStringSubmatch(text); tm != nil {
		hour, _ = strconv.Atoi(tm[1])
		minute, _ = strconv.Atoi(tm[2])
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)

	// time.Date normalizes out-of-range components; a shifted result means
	// the regex captured something that was never a real calendar date.
	if int(t.Month()) != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, false
	}

	return t, true
}

// FormatTMS renders a timestamp in the TMS wire convention,
// YYYY-MM-DDTHH:MM:SS.000Z.
func FormatTMS(t time.Time) string {
	return t.Format(TMSFormat) + ".000Z"
}

// ValidWindow reports whether an appointment window is usable: the end must
// be strictly after the start and the span must not exceed 24 hours.
func ValidWindow(start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	return end.Sub(start) <= 24*time.Hour
}
