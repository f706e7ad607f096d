// Package dateutils provides the date layouts found on Indian credit-card
// statements and the calendar arithmetic used by plan assembly.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts seen on statements.
const (
	DateLayoutISO        = "2006-01-02"
	DateLayoutSlash      = "02/01/2006"
	DateLayoutDash       = "02-01-2006"
	DateLayoutMonthName  = "02 Jan 2006"
	DateLayoutMonthDash  = "02-Jan-2006"
	DateLayoutShortYear  = "02 Jan 06"
	DateLayoutLongMonth  = "02 January 2006"
	DateLayoutSlashShort = "02/01/06"
)

// CommonFormats is the ordered list of layouts tried by ParseDate. Day-first
// layouts come before anything else because statements never use month-first.
var CommonFormats = []string{
	DateLayoutMonthName,
	DateLayoutSlash,
	DateLayoutISO,
	DateLayoutDash,
	DateLayoutMonthDash,
	DateLayoutLongMonth,
	DateLayoutShortYear,
	DateLayoutSlashShort,
	"2 Jan 2006",
	"2/1/2006",
}

var spaceRun = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using the statement layouts.
// Returns the parsed date (UTC midnight) and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Midnight(t), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses whitespace, and drops a trailing comma.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	dateStr = spaceRun.ReplaceAllString(dateStr, " ")
	return strings.TrimSuffix(dateStr, ",")
}

// Midnight strips the clock component and pins the date to UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b (negative when b
// is before a).
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// AddMonths adds n calendar months, clamping to the last day of the target
// month instead of overflowing (31 Jan + 1 month = 28/29 Feb).
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := EndOfMonth(first).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}
