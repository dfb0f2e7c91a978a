// Package duration handles the "<y>Y<m>M<d>D" period tokens used by retention
// policies and sentencing prompts.
//
// Two notions of length live here side by side. AddTo and Between follow the
// calendar, while ToDays uses a fixed approximation (365-day years, 30-day
// months) that retention durations are compared with.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30
	daysPerWeek  = 7
)

// MaxYear is the last calendar year a period may end in.
const MaxYear = 9999

var (
	// ErrMalformed is returned when text is not a canonical "<y>Y<m>M<d>D" period.
	ErrMalformed = errors.New("malformed duration")
	// ErrOutOfRange is returned when a period would end after MaxYear.
	ErrOutOfRange = errors.New("duration out of range")
)

var (
	tokenPattern     = regexp.MustCompile(`(?i)(\d+)\s*([YMWD])`)
	integerPattern   = regexp.MustCompile(`\d+`)
	canonicalPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*Y\s*(\d+)\s*M\s*(\d+)\s*D\s*$`)
)

// Duration is a loosely specified length of time as written in a prompt value,
// e.g. "2 Years 6 Months" or "18W".
type Duration struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// Parse scans text for <digits><unit> tokens. The last value seen for a unit
// wins and units that never appear are zero. Text without any token parses to
// the zero Duration.
func Parse(text string) (Duration, error) {
	var d Duration
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Duration{}, fmt.Errorf("parse %q: %w", text, err)
		}
		switch strings.ToUpper(m[2]) {
		case "Y":
			d.Years = n
		case "M":
			d.Months = n
		case "W":
			d.Weeks = n
		case "D":
			d.Days = n
		}
	}
	return d, nil
}

// AddTo applies years, months, weeks and days to date in that order. Year and
// month steps clamp to the last day of the target month, so 31 Jan plus one
// month is the last day of February.
func AddTo(date time.Time, d Duration) time.Time {
	t := dateOnly(date)
	t = addMonths(t, d.Years*12)
	t = addMonths(t, d.Months)
	t = t.AddDate(0, 0, d.Weeks*daysPerWeek)
	return t.AddDate(0, 0, d.Days)
}

// Span is the calendar period d covers when added to start, as Between reports
// it. Durations that would end after MaxYear fail with ErrOutOfRange.
func Span(start time.Time, d Duration) (years, months, days int, err error) {
	if !d.bounded() {
		return 0, 0, 0, fmt.Errorf("%w: %+v", ErrOutOfRange, d)
	}
	end := AddTo(start, d)
	if end.Year() > MaxYear || end.Before(dateOnly(start)) {
		return 0, 0, 0, fmt.Errorf("%w: %+v from %s", ErrOutOfRange, d, start.Format(time.DateOnly))
	}
	years, months, days = Between(start, end)
	return years, months, days, nil
}

// bounded keeps every unit small enough that AddTo cannot overflow.
func (d Duration) bounded() bool {
	within := func(n, limit int) bool { return n >= 0 && n <= limit }
	return within(d.Years, MaxYear) &&
		within(d.Months, MaxYear*12) &&
		within(d.Weeks, MaxYear*53) &&
		within(d.Days, MaxYear*366)
}

// Between returns the calendar period from start to end as years, months and
// days. It does not use the day approximation of ToDays. When end is before
// start every non-zero component is negative.
func Between(start, end time.Time) (years, months, days int) {
	start, end = dateOnly(start), dateOnly(end)

	totalMonths := monthIndex(end) - monthIndex(start)
	days = end.Day() - start.Day()
	switch {
	case totalMonths > 0 && days < 0:
		totalMonths--
		days = daysBetween(addMonths(start, totalMonths), end)
	case totalMonths < 0 && days > 0:
		totalMonths++
		days = daysBetween(addMonths(start, totalMonths), end)
	}
	return totalMonths / 12, totalMonths % 12, days
}

// Format renders the canonical period string. All three components are always
// present, e.g. Format(99, 0, 0) == "99Y0M0D".
func Format(years, months, days int) string {
	return strconv.Itoa(years) + "Y" + strconv.Itoa(months) + "M" + strconv.Itoa(days) + "D"
}

// ToDays converts a canonical period string to an approximate day count:
// years*365 + months*30 + days. Text that does not hold exactly three integers
// in Y, M, D order is rejected with ErrMalformed.
func ToDays(text string) (int, error) {
	if n := len(integerPattern.FindAllString(text, -1)); n != 3 {
		return 0, fmt.Errorf("%w: %q has %d integer components, want 3", ErrMalformed, text, n)
	}
	m := canonicalPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q is not in Y, M, D order", ErrMalformed, text)
	}

	parts := make([]int, 3)
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformed, text, err)
		}
		parts[i] = n
	}
	return parts[0]*daysPerYear + parts[1]*daysPerMonth + parts[2], nil
}

// MustDays is ToDays for period strings known to be canonical, such as the
// package-level defaults of the rules.
func MustDays(text string) int {
	n, err := ToDays(text)
	if err != nil {
		panic(err)
	}
	return n
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func addMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	total := monthIndex(t) + n
	year, month := floorDiv(total, 12), time.Month(total-floorDiv(total, 12)*12+1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
