package dateperiod

import (
	"strings"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/duration"
	"github.com/basecamp/dateperiod/internal/timex"
)

// durationPeriod anchors a duration to the reference date: "the last two
// weeks", "next 3 days", "two weeks from now", "in two weeks", "rest of the
// month".
func (p *Parser) durationPeriod(text string, ref calendar.Date) Resolution {
	begin, end := ref, ref
	var (
		tx         string
		mod        Modifier
		subs       []SubEntity
		restSunday bool
	)

	if sub, ok := p.singleDuration(text); ok {
		before := norm(text[:sub.Start])
		after := norm(text[sub.Start+sub.Length:])
		dur := sub.Timex

		anchor := func(future bool) {
			if future {
				mod = ModAfter
				begin = ref.AddDays(1)
				end, _ = duration.Shift(dur, begin, true)
				return
			}
			mod = ModBefore
			end = ref
			begin, _ = duration.Shift(dur, end, false)
		}

		if p.contains(PatternPast, before) || p.contains(PatternPast, after) {
			anchor(false)
		}
		if _, ok := p.fullMatch(before, PatternFuture); ok || p.contains(PatternFuture, after) {
			anchor(true)
		}
		if p.contains(PatternFutureSuffix, after) {
			anchor(true)
		}

		// "in two weeks" is the second week out, not a two-week span.
		if _, ok := p.fullMatch(before, PatternInConnector); ok && !duration.IsMultiple(dur) {
			anchor(true)
			if one, err := duration.Collapse(dur); err == nil {
				dur = one
				begin, _ = duration.Shift(dur, end, false)
			}
		}

		tx = dur
		sub.Mod = mod
		subs = []SubEntity{sub}
	}

	if m, ok := p.match(PatternRestOfDate, text); ok {
		unit, _ := p.cfg.Unit(norm(m.Group("duration")))
		// The week runs through Sunday exclusive. Month and year stop at their
		// last day exclusive while the PnD still counts that day.
		switch unit {
		case "W":
			diff := 7 - begin.ISOWeekday()
			end = begin.AddDays(diff)
			tx = timex.Days(diff)
			restSunday = diff == 0
		case "MON":
			end = calendar.New(begin.Year(), begin.Month(), 1).AddMonths(1).AddDays(-1)
			tx = timex.Days(end.Day() - begin.Day() + 1)
		case "Y":
			end = calendar.New(begin.Year(), time.December, 31)
			tx = timex.Days(end.YearDay() - begin.YearDay() + 1)
		}
	}

	if begin.Equal(end) && !restSunday {
		return Resolution{}
	}

	future, past := p.both(begin, end)
	return Resolution{
		Timex:       timex.DateInterval(begin, end, tx),
		Future:      future,
		Past:        past,
		Mod:         mod,
		SubEntities: subs,
		Success:     true,
	}
}

// singleDuration extracts and parses the one duration in text.
func (p *Parser) singleDuration(text string) (SubEntity, bool) {
	extract := p.cfg.DurationExtractor()
	parse := p.cfg.DurationParser()
	if extract == nil || parse == nil {
		return SubEntity{}, false
	}
	spans := extract.Extract(text)
	if len(spans) != 1 {
		return SubEntity{}, false
	}
	span := spans[0]
	if span.Start < 0 || span.Start+span.Length > len(text) {
		return SubEntity{}, false
	}
	sub, ok := parse.Parse(span)
	if !ok || strings.TrimSpace(sub.Timex) == "" {
		return SubEntity{}, false
	}
	sub.Start, sub.Length = span.Start, span.Length
	return sub, true
}

func (p *Parser) contains(id PatternID, text string) bool {
	if text == "" {
		return false
	}
	_, ok := p.match(id, text)
	return ok
}
