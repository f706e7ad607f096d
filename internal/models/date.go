package models

import (
	"strings"
	"time"

	"fjacquet/emi-tracker/internal/dateutils"
)

// Date is a calendar date that keeps the raw statement text when it could not
// be parsed. Invalid dates still order deterministically by their raw text.
type Date struct {
	Time time.Time
	Raw  string
}

// NewDate wraps t, dropping its clock component.
func NewDate(t time.Time) Date {
	return Date{Time: dateutils.Midnight(t)}
}

// ParseDate parses s with the statement layouts, keeping s verbatim on failure.
func ParseDate(s string) Date {
	t, _, err := dateutils.ParseDate(s)
	if err != nil {
		return Date{Raw: strings.TrimSpace(s)}
	}
	return Date{Time: t}
}

// Valid reports whether the date was parsed.
func (d Date) Valid() bool {
	return !d.Time.IsZero()
}

// IsZero reports whether neither a parsed nor a raw value is present.
func (d Date) IsZero() bool {
	return d.Time.IsZero() && d.Raw == ""
}

// String returns the ISO form for valid dates and the raw text otherwise.
func (d Date) String() string {
	if d.Valid() {
		return d.Time.Format(dateutils.DateLayoutISO)
	}
	return d.Raw
}

// Compare orders two dates: chronologically when both parsed, lexicographically
// on String() otherwise.
func (d Date) Compare(o Date) int {
	if d.Valid() && o.Valid() {
		return d.Time.Compare(o.Time)
	}
	return strings.Compare(d.String(), o.String())
}

// Before reports whether d sorts before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// DaysUntil returns the days from d to o. ok is false when either date is
// unparsed.
func (d Date) DaysUntil(o Date) (days int, ok bool) {
	if !d.Valid() || !o.Valid() {
		return 0, false
	}
	return dateutils.DaysBetween(d.Time, o.Time), true
}

// AddMonths returns d shifted by n calendar months; unparsed dates are
// returned unchanged.
func (d Date) AddMonths(n int) Date {
	if !d.Valid() {
		return d
	}
	return Date{Time: dateutils.AddMonths(d.Time, n)}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*d = Date{}
		return nil
	}
	*d = ParseDate(string(text))
	return nil
}
