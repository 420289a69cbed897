// Package timex formats and reads normalized timeline expressions.
//
// Supported shapes:
//   - 2016-03-05        a date
//   - XXXX-03-05        a date with unknown year
//   - 2016, 2016-03     a year, a year-month
//   - 2016-W09          an ISO week
//   - 2016-W09-WE       the weekend of an ISO week
//   - P3D, P2W, P1Y     durations
//   - (b,e,P3D)         an interval triple
package timex

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
)

// Unknown is the wildcard for an unknown year.
const Unknown = "XXXX"

// Date formats d as YYYY-MM-DD.
func Date(d calendar.Date) string {
	return d.String()
}

// DateParts formats a date whose year may be unknown. A negative year renders
// as XXXX.
func DateParts(year int, month time.Month, day int) string {
	return fmt.Sprintf("%s-%02d-%02d", yearOrUnknown(year), int(month), day)
}

// Year formats a bare year.
func Year(year int) string {
	return fmt.Sprintf("%04d", year)
}

// YearMonth formats a year-month. A negative year renders as XXXX.
func YearMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s-%02d", yearOrUnknown(year), int(month))
}

// ISOWeek formats the ISO week containing d.
func ISOWeek(d calendar.Date) string {
	y, w := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// Week formats week n of a year without checking it against ISO numbering.
func Week(year, n int) string {
	return fmt.Sprintf("%04d-W%02d", year, n)
}

// DecadeStart formats January 1 of a year whose century is unknown:
// DecadeStart(90) is XX90-01-01.
func DecadeStart(yy int) string {
	yy %= 100
	if yy < 0 {
		yy += 100
	}
	return fmt.Sprintf("XX%02d-01-01", yy)
}

// Weekend formats the weekend of the ISO week containing d.
func Weekend(d calendar.Date) string {
	return ISOWeek(d) + "-WE"
}

// WeekOfMonth formats the nth week of a month. A negative year renders as
// XXXX.
func WeekOfMonth(year int, month time.Month, n int) string {
	return fmt.Sprintf("%s-W%02d", YearMonth(year, month), n)
}

// Season formats a season token with an optional year. A negative year
// yields the bare token.
func Season(year int, token string) string {
	if year < 0 {
		return token
	}
	return Year(year) + "-" + token
}

// Interval formats an interval triple.
func Interval(begin, end, duration string) string {
	return "(" + begin + "," + end + "," + duration + ")"
}

// DateInterval formats an interval between two known dates.
func DateInterval(begin, end calendar.Date, duration string) string {
	return Interval(Date(begin), Date(end), duration)
}

// Days formats a day-count duration.
func Days(n int) string { return "P" + strconv.Itoa(n) + "D" }

// Months formats a month-count duration.
func Months(n int) string { return "P" + strconv.Itoa(n) + "M" }

// Years formats a year-count duration.
func Years(n int) string { return "P" + strconv.Itoa(n) + "Y" }

func yearOrUnknown(year int) string {
	if year < 0 {
		return Unknown
	}
	return Year(year)
}

// ParseRange derives the exclusive date range denoted by a year, a year-month,
// an ISO week, or an interval between two known dates. It reports false for
// expressions with unknown parts or shapes it cannot reverse.
func ParseRange(s string) (begin, end calendar.Date, ok bool) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[1:len(s)-1], ",")
		if len(parts) != 3 {
			return calendar.Min, calendar.Min, false
		}
		b, err := calendar.Parse(parts[0])
		if err != nil {
			return calendar.Min, calendar.Min, false
		}
		e, err := calendar.Parse(parts[1])
		if err != nil {
			return calendar.Min, calendar.Min, false
		}
		return b, e, true
	}

	switch {
	case len(s) == 4:
		y, err := strconv.Atoi(s)
		if err != nil {
			break
		}
		b := calendar.New(y, time.January, 1)
		return b, b.AddYears(1), !b.IsMin()

	case len(s) == 7 && s[4] == '-':
		t, err := time.Parse("2006-01", s)
		if err != nil {
			break
		}
		b := calendar.FromTime(t)
		return b, b.AddMonths(1), true

	case len(s) == 8 && s[4:6] == "-W":
		y, err1 := strconv.Atoi(s[:4])
		w, err2 := strconv.Atoi(s[6:])
		if err1 != nil || err2 != nil || w < 1 || w > 53 {
			break
		}
		// Jan 4 is always in ISO week 1.
		b := calendar.New(y, time.January, 4).This(time.Monday).AddDays(7 * (w - 1))
		return b, b.AddDays(7), !b.IsMin()
	}

	return calendar.Min, calendar.Min, false
}
