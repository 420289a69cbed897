package dateperiod

import (
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/timex"
)

// oneWordPeriod handles month names, "this week", "the weekend", "next
// month", "last year", "year to date", "month to date", and the same narrowed
// by early/mid/late.
func (p *Parser) oneWordPeriod(text string, ref calendar.Date) Resolution {
	subject := norm(text)
	m, ok := p.fullMatch(subject, PatternOneWordPeriod, PatternLaterEarlyPeriod)
	if !ok {
		return Resolution{}
	}

	mod := ModNone
	switch {
	case m.Has("early"):
		mod = ModEarly
	case m.Has("mid"):
		mod = ModMid
	case m.Has("late"):
		mod = ModLate
	}
	if mod != ModNone {
		subject = norm(m.Group("suffix"))
	}

	if p.cfg.IsYearToDate(subject) {
		future, past := p.both(calendar.New(ref.Year(), time.January, 1), ref)
		return Resolution{Timex: timex.Year(ref.Year()), Future: future, Past: past, Mod: mod, Success: true}
	}
	if p.cfg.IsMonthToDate(subject) {
		future, past := p.both(calendar.New(ref.Year(), ref.Month(), 1), ref)
		return Resolution{Timex: timex.YearMonth(ref.Year(), ref.Month()), Future: future, Past: past, Mod: mod, Success: true}
	}

	if name := norm(m.Group("month")); name != "" {
		month, ok := p.cfg.MonthOfYear(name)
		if !ok {
			return Resolution{}
		}
		futureYear, pastYear := ref.Year(), ref.Year()
		var tx string
		if swift := p.cfg.SwiftYear(subject); swift >= -1 {
			futureYear += swift
			pastYear += swift
			tx = timex.YearMonth(futureYear, month)
		} else {
			tx = timex.YearMonth(-1, month)
			if month < ref.Month() {
				futureYear++
			} else {
				pastYear--
			}
		}
		return p.monthThirds(tx, month, futureYear, pastYear, mod)
	}

	swift := p.cfg.SwiftDayOrMonth(subject)
	switch {
	case p.cfg.IsWeekOnly(subject):
		monday := ref.This(time.Monday).AddDays(7 * swift)
		begin, end := monday, monday.AddDays(7)
		switch mod {
		case ModEarly:
			end = monday.AddDays(3)
		case ModMid:
			begin, end = monday.AddDays(1), monday.AddDays(5)
		case ModLate:
			begin = monday.AddDays(3)
		}
		future, past := p.both(begin, end)
		return Resolution{Timex: timex.ISOWeek(monday), Future: future, Past: past, Mod: mod, Success: true}

	case p.cfg.IsWeekend(subject):
		saturday := ref.This(time.Saturday).AddDays(7 * swift)
		future, past := p.both(saturday, saturday.AddDays(2))
		return Resolution{Timex: timex.Weekend(saturday), Future: future, Past: past, Mod: mod, Success: true}

	case p.cfg.IsMonthOnly(subject):
		d := ref.AddMonths(swift)
		return p.monthThirds(timex.YearMonth(d.Year(), d.Month()), d.Month(), d.Year(), d.Year(), mod)

	case p.cfg.IsYearOnly(subject):
		year := ref.Year() + swift
		begin, end := calendar.New(year, time.January, 1), calendar.New(year+1, time.January, 1)
		switch mod {
		case ModEarly:
			end = calendar.New(year, time.July, 1)
		case ModMid:
			begin, end = calendar.New(year, time.April, 1), calendar.New(year, time.October, 1)
		case ModLate:
			begin = calendar.New(year, time.July, 1)
		}
		future, past := p.both(begin, end)
		return Resolution{Timex: timex.Year(year), Future: future, Past: past, Mod: mod, Success: true}
	}

	return Resolution{}
}

// monthThirds builds the whole-month range, or its early (1-15), mid (10-20)
// or late (16-end) part.
func (p *Parser) monthThirds(tx string, month time.Month, futureYear, pastYear int, mod Modifier) Resolution {
	rng := func(year int) *DateRange {
		first := calendar.New(year, month, 1)
		switch mod {
		case ModEarly:
			return p.span(first, calendar.New(year, month, 16))
		case ModMid:
			return p.span(calendar.New(year, month, 10), calendar.New(year, month, 21))
		case ModLate:
			return p.span(calendar.New(year, month, 16), first.AddMonths(1))
		}
		return p.span(first, first.AddMonths(1))
	}
	return Resolution{
		Timex:   tx,
		Future:  rng(futureYear),
		Past:    rng(pastYear),
		Mod:     mod,
		Success: true,
	}
}
