package commands

import (
	"fmt"

	"github.com/basecamp/dateperiod/internal/dateperiod"
	"github.com/basecamp/dateperiod/internal/tui"
)

// Period is the output record for one resolved expression.
type Period struct {
	Text      string `json:"text"`
	Resolved  bool   `json:"resolved"`
	Timex     string `json:"timex,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	PastStart string `json:"past_start,omitempty"`
	PastEnd   string `json:"past_end,omitempty"`
	Mod       string `json:"mod,omitempty"`
	Comment   string `json:"comment,omitempty"`
	Strategy  string `json:"strategy,omitempty"`
}

// NewPeriod flattens a resolver result into a Period.
func NewPeriod(pp dateperiod.ParsedPeriod) Period {
	p := Period{Text: pp.Text}
	if !pp.OK() {
		return p
	}
	p.Resolved = true
	p.Timex = pp.Timex
	p.Start = pp.Value.FutureResolution[dateperiod.StartDate]
	p.End = pp.Value.FutureResolution[dateperiod.EndDate]
	p.PastStart = pp.Value.PastResolution[dateperiod.StartDate]
	p.PastEnd = pp.Value.PastResolution[dateperiod.EndDate]
	p.Mod = string(pp.Value.Mod)
	p.Comment = string(pp.Value.Comment)
	p.Strategy = pp.Strategy
	return p
}

// Summary is the one-line human rendering of p.
func (p Period) Summary() string {
	switch {
	case !p.Resolved:
		return fmt.Sprintf("%q did not resolve", p.Text)
	case p.Start == "":
		return fmt.Sprintf("%s → %s", p.Text, p.Timex)
	default:
		return fmt.Sprintf("%s → %s .. %s", p.Text, p.Start, p.End)
	}
}

func (p Period) tryResult() tui.TryResult {
	return tui.TryResult{
		OK:        p.Resolved,
		Timex:     p.Timex,
		Start:     p.Start,
		End:       p.End,
		PastStart: p.PastStart,
		PastEnd:   p.PastEnd,
		Mod:       p.Mod,
		Comment:   p.Comment,
		Strategy:  p.Strategy,
	}
}

func periodFromTry(e tui.TryEntry) Period {
	r := e.Result
	return Period{
		Text:      e.Text,
		Resolved:  r.OK,
		Timex:     r.Timex,
		Start:     r.Start,
		End:       r.End,
		PastStart: r.PastStart,
		PastEnd:   r.PastEnd,
		Mod:       r.Mod,
		Comment:   r.Comment,
		Strategy:  r.Strategy,
	}
}
