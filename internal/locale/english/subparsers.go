package english

import (
	"strconv"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/dateparse"
	"github.com/basecamp/dateperiod/internal/dateperiod"
)

// Entity types of the spans the sub-parsers produce.
const (
	TypeDate     = "date"
	TypeDuration = "duration"
	TypeInteger  = "integer"
)

// dateSubParser finds and resolves single dates through dateparse.
type dateSubParser struct{}

func (dateSubParser) Extract(text string, _ calendar.Date) []dateperiod.CandidateSpan {
	var out []dateperiod.CandidateSpan
	for _, s := range dateparse.Extract(text) {
		out = append(out, dateperiod.CandidateSpan{
			Text:   s.Text,
			Start:  s.Start,
			Length: s.Length,
			Type:   TypeDate,
		})
	}
	return out
}

func (dateSubParser) Parse(span dateperiod.CandidateSpan, ref calendar.Date) (dateperiod.SubEntity, bool) {
	r, ok := dateparse.ParseFrom(span.Text, ref)
	if !ok {
		return dateperiod.SubEntity{}, false
	}
	return dateperiod.SubEntity{
		Text:   span.Text,
		Start:  span.Start,
		Length: span.Length,
		Type:   TypeDate,
		Timex:  r.Timex,
		Future: r.Future,
		Past:   r.Past,
	}, true
}

// durationSubParser finds "two weeks" style durations and encodes them as
// P2W.
type durationSubParser struct {
	v  *vocabulary
	re *matcher
}

func newDurationSubParser(v *vocabulary) (*durationSubParser, error) {
	re, err := compile(durationExpr(v))
	if err != nil {
		return nil, err
	}
	return &durationSubParser{v: v, re: re}, nil
}

func (d *durationSubParser) Extract(text string) []dateperiod.CandidateSpan {
	var out []dateperiod.CandidateSpan
	for _, m := range d.re.Matches(text) {
		out = append(out, dateperiod.CandidateSpan{
			Text:   m.Value,
			Start:  m.Index,
			Length: m.Length,
			Type:   TypeDuration,
		})
	}
	return out
}

func (d *durationSubParser) Parse(span dateperiod.CandidateSpan) (dateperiod.SubEntity, bool) {
	m, ok := d.re.Match(span.Text)
	if !ok || !m.Spans(span.Text) {
		return dateperiod.SubEntity{}, false
	}
	count, ok := d.count(m.Group("count"))
	if !ok || count <= 0 {
		return dateperiod.SubEntity{}, false
	}
	unit := key(m.Group("unit"))
	letter, ok := d.v.Units[unit]
	if !ok {
		return dateperiod.SubEntity{}, false
	}
	if letter == "MON" {
		letter = "M"
	}
	if scale, ok := d.v.UnitScale[unit]; ok {
		count *= float64(scale)
	}
	return dateperiod.SubEntity{
		Text:   span.Text,
		Start:  span.Start,
		Length: span.Length,
		Type:   TypeDuration,
		Timex:  "P" + strconv.FormatFloat(count, 'f', -1, 64) + letter,
	}, true
}

func (d *durationSubParser) count(s string) (float64, bool) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	if n, ok := d.v.Quantifiers[key(s)]; ok {
		return float64(n), true
	}
	n, ok := d.v.parseNumber(s)
	return float64(n), ok
}

// integerSubParser finds integers, numeric or written, and parses them.
type integerSubParser struct {
	v  *vocabulary
	re *matcher
}

func newIntegerSubParser(v *vocabulary) (*integerSubParser, error) {
	re, err := compile(integerExpr(v))
	if err != nil {
		return nil, err
	}
	return &integerSubParser{v: v, re: re}, nil
}

func (p *integerSubParser) Extract(text string) []dateperiod.CandidateSpan {
	var out []dateperiod.CandidateSpan
	for _, m := range p.re.Matches(text) {
		out = append(out, dateperiod.CandidateSpan{
			Text:   m.Value,
			Start:  m.Index,
			Length: m.Length,
			Type:   TypeInteger,
		})
	}
	return out
}

func (p *integerSubParser) Parse(span dateperiod.CandidateSpan) (float64, bool) {
	n, ok := p.v.parseNumber(span.Text)
	return float64(n), ok
}
