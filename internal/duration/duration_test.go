package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Duration
	}{
		{"canonical", "2Y6M3D", Duration{Years: 2, Months: 6, Days: 3}},
		{"lower case with spaces", "4 y 2 w", Duration{Years: 4, Weeks: 2}},
		{"free text", "12 Months 10 Days", Duration{Months: 12, Days: 10}},
		{"last value per unit wins", "1Y 3Y", Duration{Years: 3}},
		{"weeks only", "18W", Duration{Weeks: 18}},
		{"no tokens", "life", Duration{}},
		{"empty", "", Duration{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Overflow(t *testing.T) {
	_, err := Parse("99999999999999999999Y")
	require.Error(t, err)
}

func TestAddTo(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		d     Duration
		want  time.Time
	}{
		{"years", date(2024, 1, 1), Duration{Years: 2}, date(2026, 1, 1)},
		{"month end clamps", date(2024, 1, 31), Duration{Months: 1}, date(2024, 2, 29)},
		{"leap day plus a year clamps", date(2024, 2, 29), Duration{Years: 1}, date(2025, 2, 28)},
		{"weeks then days", date(2024, 1, 1), Duration{Weeks: 2, Days: 3}, date(2024, 1, 18)},
		{"months applied before days", date(2024, 1, 31), Duration{Months: 1, Days: 1}, date(2024, 3, 1)},
		{"drops time of day", time.Date(2024, 5, 5, 13, 45, 0, 0, time.UTC), Duration{Days: 1}, date(2024, 5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddTo(tt.start, tt.d))
		})
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		y, m, d    int
	}{
		{"whole years", date(2024, 1, 1), date(2026, 1, 1), 2, 0, 0},
		{"borrows days from month", date(2024, 1, 31), date(2024, 2, 29), 0, 0, 29},
		{"mixed", date(2024, 1, 15), date(2025, 3, 20), 1, 2, 5},
		{"same day", date(2024, 6, 1), date(2024, 6, 1), 0, 0, 0},
		{"negative", date(2024, 3, 10), date(2024, 1, 5), 0, -2, -5},
		{"negative borrows days", date(2024, 3, 10), date(2024, 1, 20), 0, -1, -21},
		{"negative across month-end clamp", date(2023, 3, 30), date(2023, 1, 31), 0, -1, -28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, d := Between(tt.start, tt.end)
			assert.Equal(t, []int{tt.y, tt.m, tt.d}, []int{y, m, d})
		})
	}
}

func TestAddToThenBetween_IsCalendarExact(t *testing.T) {
	start := date(2024, 1, 1)
	d, err := Parse("2Y0M0D")
	require.NoError(t, err)

	y, m, days := Between(start, AddTo(start, d))
	assert.Equal(t, "2Y0M0D", Format(y, m, days))
}

func TestSpan(t *testing.T) {
	start := date(2024, 1, 1)
	tests := []struct {
		text string
		want string
	}{
		{"8 Years 6 Months", "8Y6M0D"},
		{"400W", "7Y8M0D"},
		{"7975Y", "7975Y0M0D"},
		{"", "0Y0M0D"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := Parse(tt.text)
			require.NoError(t, err)
			y, m, days, err := Span(start, d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(y, m, days))
		})
	}
}

func TestSpan_OutOfRange(t *testing.T) {
	start := date(2024, 1, 1)
	for _, text := range []string{"7976Y", "300000000Y", "1000000000000Y", "999999999999999999Y", "100000000000000000W", "9999Y 99999M"} {
		t.Run(text, func(t *testing.T) {
			d, err := Parse(text)
			require.NoError(t, err)
			_, _, _, err = Span(start, d)
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}

	_, _, _, err := Span(start, Duration{Days: -1})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "99Y0M0D", Format(99, 0, 0))
	assert.Equal(t, "0Y0M0D", Format(0, 0, 0))
	assert.Equal(t, "1Y11M30D", Format(1, 11, 30))
}

func TestToDays(t *testing.T) {
	days, err := ToDays("7Y0M0D")
	require.NoError(t, err)
	assert.Equal(t, 2555, days)

	days, err = ToDays("1y2m3d")
	require.NoError(t, err)
	assert.Equal(t, 365+60+3, days)
}

func TestToDays_RoundTripsFormat(t *testing.T) {
	for y := 0; y <= 100; y += 7 {
		for m := 0; m <= 24; m += 5 {
			for d := 0; d <= 60; d += 13 {
				days, err := ToDays(Format(y, m, d))
				require.NoError(t, err)
				require.Equal(t, y*365+m*30+d, days, "Format(%d, %d, %d)", y, m, d)
			}
		}
	}
}

func TestToDays_Malformed(t *testing.T) {
	for _, text := range []string{"", "7Y", "7Y0M", "1Y2M3D4W", "0D1M2Y", "P7Y0M0D0", "seven years"} {
		t.Run(text, func(t *testing.T) {
			_, err := ToDays(text)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestMustDays_PanicsOnMalformed(t *testing.T) {
	assert.Panics(t, func() { MustDays("7Y") })
	assert.Equal(t, 365, MustDays("1Y0M0D"))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 29), got)

	for _, s := range []string{"", "2024-1-01", "2023-02-29", "2024-13-01", "2024-00-10", "abcd-ef-gh", "2024/01/01"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, s)
	}
}
