package core

import (
	"strings"
	"time"
)

// dateLayouts are tried in order; the first successful parse wins.
// Order matters for inputs like "01/02/2025" which are valid under both
// day-first and month-first layouts: day-first is listed first and wins.
// Unpadded layouts accept both "05/03/2025" and "5/3/2025".
var dateLayouts = []string{
	"2/1/2006", // DD/MM/YYYY
	"2006-1-2", // ISO
	"2-1-2006", // DD-MM-YYYY
	"1/2/2006", // MM/DD/YYYY
	"2/1/06",   // DD/MM/YY
}

// DisplayDateLayout is the format dates are rendered and defaulted in.
const DisplayDateLayout = "02/01/2006"

// ParseDate parses a registration date against the accepted layouts.
// Returns false when no layout matches; callers treat that as a
// data-quality condition, not a fatal error.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AddMonths advances a date by the given number of months, clamping the day
// to the last valid day of the target month (Jan 31 + 1 → Feb 28/29).
// The month overflow is normalized arithmetically so durations well past
// 12 months land in the right year.
func AddMonths(date time.Time, months int) time.Time {
	total := int(date.Month()) + months
	year := date.Year() + (total-1)/12
	month := time.Month((total-1)%12 + 1)

	day := date.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ExpiringSoonDays is the inclusive "expiring soon" window in days.
const ExpiringSoonDays = 3

// Classify derives the status of an expiry date relative to today.
// Both inputs are treated as whole calendar days.
func Classify(expiry, today time.Time) Status {
	days := daysBetween(today, expiry)
	switch {
	case days < 0:
		return Status{Kind: StatusExpired, Days: -days}
	case days <= ExpiringSoonDays:
		return Status{Kind: StatusExpiringSoon, Days: days}
	default:
		return Status{Kind: StatusActive, Days: days}
	}
}

// daysBetween returns the whole-day difference to - from, ignoring any
// time-of-day component.
func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// Expiry computes a record's expiry date from its raw registration date and
// duration. Returns false when the registration date does not parse.
func Expiry(rec CustomerRecord) (time.Time, bool) {
	reg, ok := ParseDate(rec.RegDate)
	if !ok {
		return time.Time{}, false
	}
	return AddMonths(reg, rec.Duration), true
}
