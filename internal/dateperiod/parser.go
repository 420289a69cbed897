// Package dateperiod resolves date-period expressions ("the last week of
// July", "Q2 2016", "the 1990s", "next two weeks") into date ranges and
// timex values.
//
// A Parser tries a fixed list of strategies in priority order and keeps the
// first that succeeds. Every strategy is a pure function of the text, the
// reference date and the locale Configuration, so one Parser can serve any
// number of goroutines.
package dateperiod

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
)

// Observer is notified around each strategy attempt.
type Observer interface {
	OnStrategyStart(name string)
	OnStrategyEnd(name string, ok bool, elapsed time.Duration)
}

// Options controls resolver policy.
type Options struct {
	// InclusiveEnd makes every range end on its last day instead of the day
	// after it.
	InclusiveEnd bool
	// CalendarMode labels week-of-date results with the ISO week of the
	// containing Monday.
	CalendarMode bool
	Observer     Observer
	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

type strategy struct {
	name string
	run  func(p *Parser, text string, ref calendar.Date) Resolution
}

// Order matters: duration is last because "last week" is a substring of
// "last week of July".
var strategies = []strategy{
	{"month-with-year", (*Parser).monthWithYear},
	{"simple-cases", (*Parser).simpleCases},
	{"one-word-period", (*Parser).oneWordPeriod},
	{"merge-two-time-points", (*Parser).mergeTwoTimePoints},
	{"year", (*Parser).year},
	{"week-of-month", (*Parser).weekOfMonth},
	{"week-of-year", (*Parser).weekOfYear},
	{"quarter", (*Parser).quarter},
	{"season", (*Parser).season},
	{"which-week", (*Parser).whichWeek},
	{"week-of-date", (*Parser).weekOfDate},
	{"month-of-date", (*Parser).monthOfDate},
	{"decade", (*Parser).decade},
	{"duration", (*Parser).durationPeriod},
}

// Strategies returns the strategy names in the order they are tried.
func Strategies() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.name
	}
	return names
}

// MaxTextLength is the longest candidate text, in bytes after trimming, that
// the strategies are run against. Longer text comes back unresolved.
const MaxTextLength = 256

// Parser resolves date-period candidates against one locale Configuration.
type Parser struct {
	cfg    Configuration
	opts   Options
	logger *slog.Logger
}

// New creates a Parser.
func New(cfg Configuration, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{cfg: cfg, opts: opts, logger: logger}
}

// WithLogger returns a copy of p that logs to l.
func (p *Parser) WithLogger(l *slog.Logger) *Parser {
	cp := *p
	cp.opts.Logger = l
	cp.logger = l
	if l == nil {
		cp.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &cp
}

// Options returns the policy p was built with.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse resolves a candidate against the calendar date of ref. Candidates of
// any type other than TypeDateRange come back unresolved.
func (p *Parser) Parse(c CandidateSpan, ref time.Time) ParsedPeriod {
	out := ParsedPeriod{
		Text:   c.Text,
		Start:  c.Start,
		Length: c.Length,
		Type:   c.Type,
		Data:   c.Data,
	}
	if c.Type != TypeDateRange {
		return out
	}

	text := strings.TrimSpace(c.Text)
	if len(text) > MaxTextLength {
		p.logger.Debug("candidate too long", "length", len(text))
		return out
	}

	res, name := p.resolve(text, calendar.FromTime(ref))
	if !res.Success {
		return out
	}

	v := &Value{
		Success:          true,
		FutureResolution: map[string]string{},
		PastResolution:   map[string]string{},
		Mod:              res.Mod,
		Comment:          res.Comment,
		Resolution:       res,
	}
	if res.Future != nil && res.Past != nil {
		v.FutureResolution = rangeMap(*res.Future)
		v.PastResolution = rangeMap(*res.Past)
	}

	out.Timex = res.Timex
	out.Value = v
	out.Strategy = name
	return out
}

// ParseText resolves text as a candidate spanning the whole string.
func (p *Parser) ParseText(text string, ref time.Time) ParsedPeriod {
	return p.Parse(CandidateSpan{
		Text:   text,
		Length: len(text),
		Type:   TypeDateRange,
	}, ref)
}

func (p *Parser) resolve(text string, ref calendar.Date) (Resolution, string) {
	obs := p.opts.Observer
	for _, s := range strategies {
		var start time.Time
		if obs != nil {
			obs.OnStrategyStart(s.name)
			start = time.Now()
		}

		res := s.run(p, text, ref)

		if obs != nil {
			obs.OnStrategyEnd(s.name, res.Success, time.Since(start))
		}
		if res.Success {
			p.logger.Debug("period resolved", "text", text, "strategy", s.name, "timex", res.Timex)
			return res, s.name
		}
	}
	p.logger.Debug("period unresolved", "text", text)
	return Resolution{}, ""
}

func rangeMap(r DateRange) map[string]string {
	return map[string]string{
		StartDate: r.Begin.String(),
		EndDate:   r.End.String(),
	}
}

// fullMatch tries each pattern in turn and returns the first match that
// covers all of text.
func (p *Parser) fullMatch(text string, ids ...PatternID) (Match, bool) {
	for _, id := range ids {
		m, ok := p.match(id, text)
		if ok && m.Spans(text) {
			return m, true
		}
	}
	return Match{}, false
}

func (p *Parser) match(id PatternID, text string) (Match, bool) {
	matcher := p.cfg.Pattern(id)
	if matcher == nil {
		return Match{}, false
	}
	return matcher.Match(text)
}

func (p *Parser) matches(id PatternID, text string) []Match {
	matcher := p.cfg.Pattern(id)
	if matcher == nil {
		return nil
	}
	return matcher.Matches(text)
}

// span closes a range given its exclusive end.
func (p *Parser) span(begin, exclusiveEnd calendar.Date) *DateRange {
	end := exclusiveEnd
	if p.opts.InclusiveEnd {
		end = end.AddDays(-1)
	}
	return &DateRange{Begin: begin, End: end}
}

// both returns independent future and past copies of the same range.
func (p *Parser) both(begin, exclusiveEnd calendar.Date) (future, past *DateRange) {
	future = p.span(begin, exclusiveEnd)
	cp := *future
	return future, &cp
}

// yearOrSwift reads an explicit year from m, falling back to the reference
// year shifted by the swift of order. Swifts below -1 are rejected.
func (p *Parser) yearOrSwift(m Match, order string, ref calendar.Date) (int, bool) {
	if y, ok := p.cfg.YearFromMatch(m); ok {
		return y, true
	}
	swift := p.cfg.SwiftYear(order)
	if swift < -1 {
		return 0, false
	}
	return ref.Year() + swift, true
}

func (p *Parser) inYearBounds(y int) bool {
	lo, hi := p.cfg.YearBounds()
	return y >= lo && y <= hi
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
