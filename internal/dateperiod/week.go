package dateperiod

import (
	"strconv"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/timex"
)

// lastWeek is the cardinal "last" stands for before overflow correction.
const lastWeek = 5

// weekOfMonth handles "the first week of July", "the last week of next
// month" and "the second week of July 2016".
func (p *Parser) weekOfMonth(text string, ref calendar.Date) Resolution {
	m, ok := p.fullMatch(norm(text), PatternWeekOfMonth)
	if !ok {
		return Resolution{}
	}

	cardinal, ok := p.weekCardinal(m.Group("cardinal"))
	if !ok {
		return Resolution{}
	}

	var (
		month  time.Month
		year   int
		noYear bool
	)
	if name := norm(m.Group("month")); name != "" {
		if month, ok = p.cfg.MonthOfYear(name); !ok {
			return Resolution{}
		}
		if year, ok = p.cfg.YearFromMatch(m); !ok {
			year, noYear = ref.Year(), true
		}
	} else {
		d := ref.AddMonths(p.cfg.SwiftDayOrMonth(norm(m.Group("relmonth"))))
		month, year = d.Month(), d.Year()
	}

	monday := nthMonday(cardinal, month, year)
	if monday.Month() != month {
		cardinal--
		monday = monday.AddDays(-7)
	}

	future, past := monday, monday
	if noYear {
		if future.Before(ref) {
			future = clampedMonday(cardinal, month, year+1)
		} else {
			past = clampedMonday(cardinal, month, year-1)
		}
	}

	markYear := year
	if noYear {
		markYear = -1
	}
	return Resolution{
		Timex:   timex.WeekOfMonth(markYear, month, cardinal),
		Future:  p.span(future, future.AddDays(7)),
		Past:    p.span(past, past.AddDays(7)),
		Success: true,
	}
}

// weekOfYear handles "the first week of 2016" and "the last week of next
// year". Week 1 is the ISO week 1 of the year.
func (p *Parser) weekOfYear(text string, ref calendar.Date) Resolution {
	m, ok := p.fullMatch(norm(text), PatternWeekOfYear)
	if !ok {
		return Resolution{}
	}

	year, ok := p.yearOrSwift(m, norm(m.Group("order")), ref)
	if !ok {
		return Resolution{}
	}

	var (
		monday calendar.Date
		tx     string
	)
	if card := norm(m.Group("cardinal")); p.cfg.IsLastCardinal(card) {
		last := calendar.New(year, time.December, 31)
		monday = last.This(time.Monday)
		if _, w := last.ISOWeek(); w == 1 {
			monday = monday.AddDays(-7)
		}
		_, w := monday.ISOWeek()
		tx = timex.WeekOfMonth(year, monday.Month(), w)
	} else {
		n, ok := p.cfg.Cardinal(card)
		if !ok {
			return Resolution{}
		}
		first := calendar.New(year, time.January, 1)
		monday = first.This(time.Monday)
		if _, w := first.ISOWeek(); w != 1 {
			monday = monday.AddDays(7)
		}
		monday = monday.AddDays(7 * (n - 1))
		tx = timex.WeekOfMonth(year, monday.This(time.Sunday).Month(), n)
	}

	future, past := p.both(monday, monday.AddDays(7))
	return Resolution{Timex: tx, Future: future, Past: past, Success: true}
}

// whichWeek handles "week 22" and "week 22 of the year" in the reference
// year. The count starts from the Monday of January 1's week.
func (p *Parser) whichWeek(text string, ref calendar.Date) Resolution {
	m, ok := p.fullMatch(text, PatternWhichWeek)
	if !ok {
		return Resolution{}
	}
	n, err := strconv.Atoi(m.Group("number"))
	if err != nil || n < 1 || n > 53 {
		return Resolution{}
	}

	year := ref.Year()
	monday := calendar.New(year, time.January, 1).This(time.Monday).AddDays(7 * n)
	future, past := p.both(monday, monday.AddDays(7))
	return Resolution{Timex: timex.Week(year, n), Future: future, Past: past, Success: true}
}

func (p *Parser) weekCardinal(s string) (int, bool) {
	s = norm(s)
	if p.cfg.IsLastCardinal(s) {
		return lastWeek, true
	}
	n, ok := p.cfg.Cardinal(s)
	if !ok || n < 1 || n > lastWeek {
		return 0, false
	}
	return n, true
}

// nthMonday returns the Monday of the nth week of a month, counting weeks
// whose Monday falls in the month. The result may spill into the next month.
func nthMonday(n int, month time.Month, year int) calendar.Date {
	first := calendar.New(year, month, 1)
	monday := first.This(time.Monday)
	if monday.Before(first) {
		monday = monday.AddDays(7)
	}
	return monday.AddDays(7 * (n - 1))
}

// clampedMonday is nthMonday stepped back a week when it overflows the month.
func clampedMonday(n int, month time.Month, year int) calendar.Date {
	d := nthMonday(n, month, year)
	if d.Month() != month {
		d = d.AddDays(-7)
	}
	return d
}
