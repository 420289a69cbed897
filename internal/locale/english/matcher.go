package english

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/basecamp/dateperiod/internal/dateperiod"
)

// matchTimeout bounds a single regex evaluation. Backtracking patterns over
// long inputs give up instead of stalling the caller.
const matchTimeout = 250 * time.Millisecond

// matcher adapts a regexp2 pattern to dateperiod.Matcher. regexp2 reports
// rune offsets; the resolver works in byte offsets.
type matcher struct {
	re    *regexp2.Regexp
	names []string
}

func compile(expr string) (*matcher, error) {
	re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout

	var names []string
	for _, n := range re.GetGroupNames() {
		if !isNumeric(n) {
			names = append(names, n)
		}
	}
	return &matcher{re: re, names: names}, nil
}

func (m *matcher) Match(text string) (dateperiod.Match, bool) {
	rm, err := m.re.FindStringMatch(text)
	if err != nil || rm == nil {
		return dateperiod.Match{}, false
	}
	return m.convert(rm, runeOffsets(text)), true
}

func (m *matcher) Matches(text string) []dateperiod.Match {
	offsets := runeOffsets(text)
	var out []dateperiod.Match
	rm, err := m.re.FindStringMatch(text)
	for err == nil && rm != nil {
		out = append(out, m.convert(rm, offsets))
		rm, err = m.re.FindNextMatch(rm)
	}
	return out
}

func (m *matcher) convert(rm *regexp2.Match, offsets []int) dateperiod.Match {
	groups := make(map[string][]string, len(m.names))
	for _, name := range m.names {
		g := rm.GroupByName(name)
		if g == nil {
			continue
		}
		for _, c := range g.Captures {
			groups[name] = append(groups[name], c.String())
		}
	}
	start := offsets[rm.Index]
	end := offsets[rm.Index+rm.Length]
	return dateperiod.NewMatch(start, end-start, rm.String(), groups)
}

// runeOffsets maps rune indexes to byte offsets. The final entry is
// len(text).
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
