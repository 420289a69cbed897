// Package calendar provides a civil date type for the proleptic Gregorian
// calendar, with saturating construction and Monday-based week arithmetic.
//
// A Date carries no clock or zone. Arithmetic is done on day numbers, so
// spans of centuries stay exact (time.Duration tops out near 292 years).
package calendar

import (
	"fmt"
	"time"
)

// Date is a calendar date. The zero value is not a valid date; use Min for
// "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

// Min is the sentinel for "no date" and for underflowing construction.
var Min = Date{year: 1, month: time.January, day: 1}

const (
	minYear = 1
	maxYear = 9999
)

// New builds a date, clamping an out-of-range day to the month's bounds.
// A year outside 1..9999 or a month outside January..December yields Min.
func New(year int, month time.Month, day int) Date {
	if year < minYear || year > maxYear || month < time.January || month > time.December {
		return Min
	}
	if day < 1 {
		day = 1
	}
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return Date{year: year, month: month, day: day}
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Min, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// IsMin reports whether d is the Min sentinel.
func (d Date) IsMin() bool { return d == Min }

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	n := d.days()
	// 1970-01-01 was a Thursday.
	w := (n + 4) % 7
	if w < 0 {
		w += 7
	}
	return time.Weekday(w)
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func (d Date) ISOWeekday() int {
	return isoWeekday(d.Weekday())
}

// YearDay returns the day of the year, 1..366.
func (d Date) YearDay() int {
	return d.days() - New(d.year, time.January, 1).days() + 1
}

// ISOWeek returns the ISO 8601 year and week number of d.
func (d Date) ISOWeek() (year, week int) {
	return d.Time().ISOWeek()
}

// AddDays returns d shifted by n days. Results outside 1..9999 yield Min.
func (d Date) AddDays(n int) Date {
	return fromDays(d.days() + n)
}

// AddMonths returns d shifted by n months, clamping the day to the target
// month (Jan 31 + 1 month = Feb 28 or 29).
func (d Date) AddMonths(n int) Date {
	total := d.year*12 + int(d.month-1) + n
	y := floorDiv(total, 12)
	m := time.Month(total-y*12) + 1
	return New(y, m, d.day)
}

// AddYears returns d shifted by n years, clamping Feb 29 where needed.
func (d Date) AddYears(n int) Date {
	return New(d.year+n, d.month, d.day)
}

// Sub returns the number of days from o to d.
func (d Date) Sub(o Date) int {
	return d.days() - o.days()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch a, b := d.days(), o.days(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

// This returns the given weekday inside d's Monday..Sunday week.
func (d Date) This(wd time.Weekday) Date {
	return d.AddDays(isoWeekday(wd) - d.ISOWeekday())
}

// Next returns the given weekday in the week after d's week.
func (d Date) Next(wd time.Weekday) Date {
	return d.This(wd).AddDays(7)
}

// Last returns the given weekday in the week before d's week.
func (d Date) Last(wd time.Weekday) Date {
	return d.This(wd).AddDays(-7)
}

func isoWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// days returns the number of days since 1970-01-01.
func (d Date) days() int {
	y := d.year
	m := int(d.month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d.day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func fromDays(n int) Date {
	z := n + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	if y < minYear || y > maxYear {
		return Min
	}
	return Date{year: y, month: time.Month(m), day: day}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
