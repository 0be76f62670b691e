package csvimport

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	nonNumRe  = regexp.MustCompile(`[^0-9.\-]`)
)

// fallbackLayouts are tried last, standing in for a permissive generic
// date constructor.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

// ParseDate turns one raw trimmed cell into a calendar date at local
// midnight. Formats are tried in strict priority order: ISO YYYY-MM-DD,
// then a slash-separated triple read day-first (D/M/YYYY), falling back
// to month-first (M/D/YYYY) only when the day-first reading is impossible
// (second component > 12). Known limitation: a genuinely ambiguous date
// like 01/02/2024 silently takes the day-first reading (February 1);
// callers cannot supply a format hint. A format that yields an impossible
// date is a failure, never clamped.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if isoDateRe.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if m := slashRe.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		if t, ok := makeDate(year, second, first); ok { // day/month
			return t, true
		}
		if t, ok := makeDate(year, first, second); ok { // month/day
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range days (Feb 30 -> Mar 1); a changed
	// component means the date never existed.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseWeight extracts a positive decimal from a noisy cell such as
// "180.5 lbs". Every character that is not a digit, '.' or '-' is stripped
// before parsing. Values outside (0, 1000] are rejected. No unit conversion
// happens here; the unit applies to the whole batch and is supplied by the
// caller.
func ParseWeight(raw string) (float64, bool) {
	cleaned := nonNumRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || v <= 0 || v > 1000 {
		return 0, false
	}
	return v, true
}
