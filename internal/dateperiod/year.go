package dateperiod

import (
	"strconv"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/timex"
)

// year handles "2015", "year 2015", "2015 or so" and "from 2012 to 2015".
func (p *Parser) year(text string, ref calendar.Date) Resolution {
	if _, ok := p.match(PatternYearPeriod, text); ok {
		years := p.matches(PatternYear, text)
		if len(years) != 2 {
			return Resolution{}
		}
		by, ok1 := p.cfg.YearFromMatch(years[0])
		ey, ok2 := p.cfg.YearFromMatch(years[1])
		if !ok1 || !ok2 || !p.inYearBounds(by) || !p.inYearBounds(ey) || ey <= by {
			return Resolution{}
		}
		begin := calendar.New(by, time.January, 1)
		end := calendar.New(ey, time.January, 1)
		future, past := p.both(begin, end)
		return Resolution{
			Timex:   timex.DateInterval(begin, end, timex.Years(ey-by)),
			Future:  future,
			Past:    past,
			Success: true,
		}
	}

	m, ok := p.fullMatch(text, PatternYear, PatternYearPlusNumber)
	if !ok {
		return Resolution{}
	}
	y, ok := p.cfg.YearFromMatch(m)
	if !ok || !p.inYearBounds(y) {
		return Resolution{}
	}
	begin := calendar.New(y, time.January, 1)
	future, past := p.both(begin, begin.AddYears(1))
	return Resolution{Timex: timex.Year(y), Future: future, Past: past, Success: true}
}

// quarter handles "Q2 2016", "the second quarter of next year" and
// "2016 Q2".
func (p *Parser) quarter(text string, ref calendar.Date) Resolution {
	m, ok := p.fullMatch(text, PatternQuarter, PatternQuarterYearFront)
	if !ok {
		return Resolution{}
	}

	q, ok := p.cfg.Cardinal(norm(m.Group("cardinal")))
	if !ok || q < 1 || q > 4 {
		return Resolution{}
	}
	year, ok := p.yearOrSwift(m, norm(m.Group("order")), ref)
	if !ok {
		return Resolution{}
	}

	begin := calendar.New(year, time.Month(q*3-2), 1)
	end := begin.AddMonths(3)
	future, past := p.both(begin, end)
	return Resolution{
		Timex:   timex.DateInterval(begin, end, timex.Months(3)),
		Future:  future,
		Past:    past,
		Success: true,
	}
}

// season handles "summer", "last summer", "early summer 2016". Seasons
// produce a timex only.
func (p *Parser) season(text string, ref calendar.Date) Resolution {
	m, ok := p.fullMatch(text, PatternSeason)
	if !ok {
		return Resolution{}
	}
	token, ok := p.cfg.Season(norm(m.Group("seas")))
	if !ok {
		return Resolution{}
	}

	res := Resolution{Success: true}
	switch {
	case m.Has("early"):
		res.Mod = ModEarly
	case m.Has("mid"):
		res.Mod = ModMid
	case m.Has("late"):
		res.Mod = ModLate
	}

	year, ok := p.cfg.YearFromMatch(m)
	if !ok {
		year = -1
		if swift := p.cfg.SwiftYear(norm(m.Group("order"))); swift >= -1 {
			year = ref.Year() + swift
		}
	}
	res.Timex = timex.Season(year, token)
	return res
}

// decade handles "the 90s", "the 1990s", "the nineteen nineties", "the
// aughts", "the last two decades" and "next decade".
func (p *Parser) decade(text string, ref calendar.Date) Resolution {
	century := ref.Year() / 100
	decade := 0
	swift := 1
	hasCentury := false

	if m, ok := p.fullMatch(text, PatternDecadeWithCentury); ok {
		ds := norm(m.Group("decade"))
		if n, err := strconv.Atoi(ds); err == nil {
			decade = n
		} else if n, ok := p.cfg.WrittenDecade(ds); ok {
			decade = n
		} else if y, ok := p.cfg.SpecialDecade(ds); ok {
			century, decade = y/100, y%100
			hasCentury = true
		} else {
			return Resolution{}
		}
		if decade < 0 || decade > 90 || decade%10 != 0 {
			return Resolution{}
		}

		if cs := norm(m.Group("century")); cs != "" {
			c, ok := p.century(cs)
			if !ok {
				return Resolution{}
			}
			century = c
			hasCentury = true
		}
	} else if m, ok := p.fullMatch(text, PatternRelativeDecade); ok {
		hasCentury = true
		swift = p.cfg.SwiftDayOrMonth(norm(text))
		if ns := norm(m.Group("number")); ns != "" {
			if n, ok := p.integer(ns); ok {
				swift *= n
			}
		}

		begin := (ref.Year() % 100) / 10
		switch {
		case swift < 0:
			begin += swift
		case swift > 0:
			begin++
		}
		decade = begin * 10
	} else {
		return Resolution{}
	}

	years := 10 * max(1, abs(swift))
	beginYear := century*100 + decade

	var tx string
	if hasCentury {
		tx = timex.DateInterval(
			calendar.New(beginYear, time.January, 1),
			calendar.New(beginYear+years, time.January, 1),
			timex.Years(years),
		)
	} else {
		tx = timex.Interval(timex.DecadeStart(decade), timex.DecadeStart(decade+years), timex.Years(years))
	}

	futureYear, pastYear := beginYear, beginYear
	if !hasCentury {
		if calendar.New(beginYear, time.January, 1).Before(ref) {
			futureYear += 100
		} else {
			pastYear -= 100
		}
	}

	return Resolution{
		Timex:   tx,
		Future:  p.span(calendar.New(futureYear, time.January, 1), calendar.New(futureYear+years, time.January, 1)),
		Past:    p.span(calendar.New(pastYear, time.January, 1), calendar.New(pastYear+years, time.January, 1)),
		Success: true,
	}
}

// century reads the century part of a decade: "19", "nineteen", "two
// thousand".
func (p *Parser) century(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if n, ok := p.cfg.Number(s); ok {
		return n, true
	}
	n, ok := p.integer(s)
	if !ok {
		return 0, false
	}
	if n >= 100 {
		n /= 100
	}
	return n, true
}

// integer extracts and parses the first integer in s.
func (p *Parser) integer(s string) (int, bool) {
	extract := p.cfg.IntegerExtractor()
	parse := p.cfg.NumberParser()
	if extract == nil || parse == nil {
		return 0, false
	}
	spans := extract.Extract(s)
	if len(spans) == 0 {
		return 0, false
	}
	v, ok := parse.Parse(spans[0])
	if !ok {
		return 0, false
	}
	return int(v), true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
