package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expected    time.Time
		expectedFmt string
	}{
		{"month name", "15 Jan 2024", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), DateLayoutMonthName},
		{"month name upper case", "15 JAN 2024", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), DateLayoutMonthName},
		{"day first slash", "03/02/2024", true, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), DateLayoutSlash},
		{"iso", "2024-02-03", true, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), DateLayoutISO},
		{"dash", "03-02-2024", true, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), DateLayoutDash},
		{"month dash", "03-Feb-2024", true, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), DateLayoutMonthDash},
		{"extra whitespace", "  15   Jan 2024 ", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), DateLayoutMonthName},
		{"empty", "", false, time.Time{}, ""},
		{"garbage", "31/31/2024", false, time.Time{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)
			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, date)
			assert.Equal(t, tc.expectedFmt, format)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, DaysBetween(a, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -5, DaysBetween(a, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(a, a.Add(13*time.Hour)))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		in       time.Time
		n        int
		expected time.Time
	}{
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 2, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), 3, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), 0, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, AddMonths(tc.in, tc.n))
	}
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, 29, EndOfMonth(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)).Day())
	assert.Equal(t, "", ToISODate(time.Time{}))
}
