package dateperiod

import (
	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/timex"
)

// monthWithYear handles "March 2016", "2016-03", "next March" and
// "March of last year".
func (p *Parser) monthWithYear(text string, ref calendar.Date) Resolution {
	m, ok := p.fullMatch(text, PatternMonthWithYear, PatternMonthNumWithYear)
	if !ok {
		return Resolution{}
	}

	month, ok := p.cfg.MonthOfYear(norm(m.Group("month")))
	if !ok {
		return Resolution{}
	}
	year, ok := p.yearOrSwift(m, norm(m.Group("order")), ref)
	if !ok {
		return Resolution{}
	}

	begin := calendar.New(year, month, 1)
	future, past := p.both(begin, begin.AddMonths(1))
	return Resolution{
		Timex:   timex.YearMonth(year, month),
		Future:  future,
		Past:    past,
		Success: true,
	}
}

// dayRange matches text stated as two days of one month.
func (p *Parser) dayRange(text string) (Match, bool) {
	return p.fullMatch(text,
		PatternMonthFrontBetween,
		PatternBetween,
		PatternMonthFrontSimpleCases,
		PatternSimpleCases,
	)
}

// simpleCases handles a day range inside one month: "the 3rd to the 5th of
// May", "May 3-5, 2016", "between the 3rd and 5th of next month".
func (p *Parser) simpleCases(text string, ref calendar.Date) Resolution {
	m, ok := p.dayRange(text)
	if !ok {
		return Resolution{}
	}

	days := m.Captures("day")
	if len(days) < 2 {
		return Resolution{}
	}
	beginDay, ok1 := p.cfg.DayOfMonth(norm(days[0]))
	endDay, ok2 := p.cfg.DayOfMonth(norm(days[1]))
	// "the 5th to the 3rd of May" is inverted, not a range into next May.
	if !ok1 || !ok2 || endDay < beginDay {
		return Resolution{}
	}

	year, hasYear := p.cfg.YearFromMatch(m)
	if !hasYear {
		year = ref.Year()
	}
	noYear := !hasYear
	month := ref.Month()

	if name := norm(m.Group("month")); name != "" {
		if month, ok = p.cfg.MonthOfYear(name); !ok {
			return Resolution{}
		}
	} else {
		rel := norm(m.Group("relmonth"))
		shifted := calendar.New(year, month, 1).AddMonths(p.cfg.SwiftDayOrMonth(rel))
		year, month = shifted.Year(), shifted.Month()
		if p.cfg.IsFuture(rel) {
			noYear = false
		}
	}

	markYear := year
	if noYear {
		markYear = -1
	}

	futureYear, pastYear := year, year
	if noYear {
		if calendar.New(year, month, beginDay).Before(ref) {
			futureYear++
		} else {
			pastYear--
		}
	}

	fb := calendar.New(futureYear, month, beginDay)
	pb := calendar.New(pastYear, month, beginDay)
	return Resolution{
		Timex: timex.Interval(
			timex.DateParts(markYear, month, beginDay),
			timex.DateParts(markYear, month, endDay),
			timex.Days(endDay-beginDay),
		),
		Future:  p.span(fb, calendar.New(futureYear, month, endDay).AddDays(1)),
		Past:    p.span(pb, calendar.New(pastYear, month, endDay).AddDays(1)),
		Success: true,
	}
}
