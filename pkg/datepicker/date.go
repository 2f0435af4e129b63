package datepicker

import (
	"fmt"
	"strings"
	"time"

	"github.com/vango-dev/livehooks/internal/errors"
)

const (
	// Layout is the stored (normalized) form.
	Layout = "2006-01-02"

	// DisplayLayout is the form shown to users.
	DisplayLayout = "02/01/2006"

	// parseLayout accepts one or two digit months and days so that
	// "2025-3-1" normalizes to "2025-03-01".
	parseLayout        = "2006-1-2"
	parseDisplayLayout = "2/1/2006"
)

// Date is a calendar date without time or zone. The zero value is the empty
// date, which stands for "no value".
type Date struct {
	year  int
	month time.Month
	day   int
}

// Empty is the empty date.
var Empty Date

// NewDate returns the date for year, month and day. Dates that do not exist
// (February 30th, month 13) are rejected rather than normalized.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Empty, errors.New("E001").WithDetailf("year %d out of range", year)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Empty, errors.New("E001").WithDetailf("%04d-%02d-%02d is not a calendar date", year, int(month), day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Parse reads a normalized date. Blank input is the empty date. Anything
// else must be three numeric fields forming a real calendar date.
func Parse(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Empty, nil
	}
	t, err := time.Parse(parseLayout, raw)
	if err != nil {
		return Empty, errors.New("E001").WithDetailf("%q", raw).Wrap(err)
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDisplay reads a date in display form (dd/mm/yyyy).
func ParseDisplay(display string) (Date, error) {
	display = strings.TrimSpace(display)
	if display == "" {
		return Empty, nil
	}
	t, err := time.Parse(parseDisplayLayout, display)
	if err != nil {
		return Empty, errors.New("E001").WithDetailf("%q", display).Wrap(err)
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Normalize converts a display string to the stored form.
func Normalize(display string) (string, error) {
	d, err := ParseDisplay(display)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// IsZero reports whether d is the empty date.
func (d Date) IsZero() bool { return d == Empty }

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// Time returns d at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String returns the stored form, or "" for the empty date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Display returns the dd/mm/yyyy form, or "" for the empty date.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.day, int(d.month), d.year)
}

// Month is a year and month, used as the calendar's navigation cursor.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.year, Month: d.month}
}

// ParseMonth reads a month in yyyy-mm form.
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse("2006-1", strings.TrimSpace(raw))
	if err != nil {
		return Month{}, errors.New("E001").WithDetailf("month %q", raw).Wrap(err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// AddMonths moves the cursor by n months, crossing years as needed.
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns the first day of m.
func (m Month) First() Date {
	return Date{year: m.Year, month: m.Month, day: 1}
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day returns day n of m. n must be within 1..m.Days().
func (m Month) Day(n int) Date {
	return Date{year: m.Year, month: m.Month, day: n}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
