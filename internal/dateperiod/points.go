package dateperiod

import (
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/timex"
)

// mergeTwoTimePoints handles periods stated as two dates: "from March 3 to
// April 2", "next week Monday to Wednesday".
func (p *Parser) mergeTwoTimePoints(text string, ref calendar.Date) Resolution {
	extract := p.cfg.DateExtractor()
	parse := p.cfg.DateParser()
	if extract == nil || parse == nil {
		return Resolution{}
	}
	// A one-month day range that simpleCases turned down stays unresolved.
	if _, ok := p.dayRange(text); ok {
		return Resolution{}
	}

	spans := extract.Extract(text, ref)
	if len(spans) < 2 {
		tok := p.cfg.TokenBeforeDate()
		spans = extract.Extract(tok+text, ref)
		if len(spans) < 2 {
			return Resolution{}
		}
		for i := range spans {
			spans[i].Start -= len(tok)
		}
	}
	first, second := spans[0], spans[1]

	if m, ok := p.match(PatternWeekWithWeekDayRange, text); ok {
		if week := m.Group("week"); week != "" {
			first.Text = week + " " + first.Text
			second.Text = week + " " + second.Text
		}
	}

	pr1, ok1 := parse.Parse(first, ref)
	pr2, ok2 := parse.Parse(second, ref)
	if !ok1 || !ok2 {
		return Resolution{}
	}

	futureBegin, futureEnd := pr1.Future, pr2.Future
	pastBegin, pastEnd := pr1.Past, pr2.Past
	if futureBegin.After(futureEnd) {
		futureBegin = pastBegin
	}
	if pastEnd.Before(pastBegin) {
		pastEnd = futureEnd
	}

	return Resolution{
		Timex:       timex.Interval(pr1.Timex, pr2.Timex, timex.Days(futureEnd.Sub(futureBegin))),
		Future:      p.span(futureBegin, futureEnd.AddDays(1)),
		Past:        p.span(pastBegin, pastEnd.AddDays(1)),
		SubEntities: []SubEntity{pr1, pr2},
		Success:     true,
	}
}

// weekOfDate handles "the week of March 3rd".
func (p *Parser) weekOfDate(text string, ref calendar.Date) Resolution {
	pr, ok := p.containedDate(PatternWeekOf, text, ref)
	if !ok {
		return Resolution{}
	}

	tx := pr.Timex
	if p.opts.CalendarMode {
		tx = timex.ISOWeek(pr.Future.This(time.Monday))
	}

	week := func(d calendar.Date) *DateRange {
		monday := d.This(time.Monday)
		return p.span(monday, monday.AddDays(7))
	}
	return Resolution{
		Timex:       tx,
		Future:      week(pr.Future),
		Past:        week(pr.Past),
		Comment:     CommentWeekOf,
		SubEntities: []SubEntity{pr},
		Success:     true,
	}
}

// monthOfDate handles "the month of March 3rd".
func (p *Parser) monthOfDate(text string, ref calendar.Date) Resolution {
	pr, ok := p.containedDate(PatternMonthOf, text, ref)
	if !ok {
		return Resolution{}
	}

	month := func(d calendar.Date) *DateRange {
		first := calendar.New(d.Year(), d.Month(), 1)
		return p.span(first, first.AddMonths(1))
	}
	return Resolution{
		Timex:       pr.Timex,
		Future:      month(pr.Future),
		Past:        month(pr.Past),
		Comment:     CommentMonthOf,
		SubEntities: []SubEntity{pr},
		Success:     true,
	}
}

// containedDate parses the single date inside a "the week of"/"the month of"
// expression.
func (p *Parser) containedDate(id PatternID, text string, ref calendar.Date) (SubEntity, bool) {
	if _, ok := p.match(id, text); !ok {
		return SubEntity{}, false
	}
	extract := p.cfg.DateExtractor()
	parse := p.cfg.DateParser()
	if extract == nil || parse == nil {
		return SubEntity{}, false
	}
	spans := extract.Extract(text, ref)
	if len(spans) != 1 {
		return SubEntity{}, false
	}
	return parse.Parse(spans[0], ref)
}
