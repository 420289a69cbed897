// Package dateparse finds and parses English single-date expressions.
//
// Supported formats:
//   - today, tomorrow, yesterday
//   - monday, tue, ... (future: the next one on or after the reference date,
//     past: the last one on or before it)
//   - this/next/last friday, next week friday
//   - March 3, Mar 3rd, March 3, 2016
//   - 3 March, the 3rd of March 2016
//   - the 5th, the twenty-first (day of an unspecified month)
//   - 2016-03-05, 3/5/2016
//
// Every parse takes an explicit reference date; the package never reads the
// clock.
package dateparse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/timex"
)

// Result is a parsed date with its future and past readings. The readings
// are equal unless the text leaves the year, month or week open.
type Result struct {
	Timex  string
	Future calendar.Date
	Past   calendar.Date
}

// Span is a date expression found in text. Offsets are byte offsets.
type Span struct {
	Start  int
	Length int
	Text   string
}

// ParseFrom parses a single date expression relative to ref.
func ParseFrom(input string, ref calendar.Date) (Result, bool) {
	input = strings.TrimSpace(input)
	input = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(input), "on "))
	if input == "" {
		return Result{}, false
	}

	for _, f := range forms {
		m := fullMatch(f.re, input)
		if m == nil {
			continue
		}
		if r, ok := f.resolve(m, ref); ok {
			return r, true
		}
	}
	return Result{}, false
}

// IsValid reports whether input parses as a date.
func IsValid(input string) bool {
	_, ok := ParseFrom(input, calendar.New(2000, time.January, 1))
	return ok
}

// Extract returns the non-overlapping date expressions in text, in order.
func Extract(text string) []Span {
	offsets := runeOffsets(text)
	var spans []Span
	taken := func(start, end int) bool {
		for _, s := range spans {
			if start < s.Start+s.Length && s.Start < end {
				return true
			}
		}
		return false
	}

	for _, f := range forms {
		if !f.extract {
			continue
		}
		m, _ := f.re.FindStringMatch(text)
		for m != nil {
			start := offsets[m.Index]
			length := offsets[m.Index+m.Length] - start
			if !taken(start, start+length) {
				spans = append(spans, Span{Start: start, Length: length, Text: text[start : start+length]})
			}
			m, _ = f.re.FindNextMatch(m)
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

type form struct {
	re      *regexp2.Regexp
	extract bool
	resolve func(m *regexp2.Match, ref calendar.Date) (Result, bool)
}

// Ordered longest first: Extract keeps the earliest form that claims a
// stretch of text.
var forms = []form{
	{re: compile(`(?<!\d)(?<year>\d{4})-(?<month>\d{1,2})-(?<day>\d{1,2})(?!\d)`), extract: true, resolve: numericDate},
	{re: compile(`(?<!\d)(?<month>\d{1,2})/(?<day>\d{1,2})/(?<year>\d{4})(?!\d)`), extract: true, resolve: numericDate},
	{re: compile(`\b(?<month>` + monthAlt + `)\.?\s+(?:the\s+)?(?<day>` + dayAlt + `)\b(?:,?\s+(?<year>\d{4})(?!\d))?`), extract: true, resolve: namedDate},
	{re: compile(`\b(?:the\s+)?(?<day>` + dayAlt + `)\s+(?:of\s+)?(?<month>` + monthAlt + `)\b\.?(?:,?\s+(?<year>\d{4})(?!\d))?`), extract: true, resolve: namedDate},
	{re: compile(`\bthe\s+(?<day>` + ordinalAlt + `)\b`), extract: true, resolve: dayOnly},
	{re: compile(`\b(?<rel>this|next|last)\s+week\s+(?:on\s+)?(?<weekday>` + weekdayAlt + `)\b`), resolve: weekday},
	{re: compile(`\b(?:(?<rel>this|next|last)\s+)?(?<weekday>` + weekdayAlt + `)\b`), extract: true, resolve: weekday},
	{re: compile(`\b(?<relday>today|tomorrow|yesterday)\b`), extract: true, resolve: relativeDay},
}

func compile(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
	re.MatchTimeout = 250 * time.Millisecond
	return re
}

// runeOffsets maps regexp2's rune indexes to byte offsets. The final entry
// is len(text).
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func fullMatch(re *regexp2.Regexp, input string) *regexp2.Match {
	m, err := re.FindStringMatch(input)
	if err != nil || m == nil {
		return nil
	}
	if m.Index != 0 || m.Length != len([]rune(input)) {
		return nil
	}
	return m
}

func group(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return strings.ToLower(g.String())
}

func numericDate(m *regexp2.Match, _ calendar.Date) (Result, bool) {
	y, _ := strconv.Atoi(group(m, "year"))
	mo, _ := strconv.Atoi(group(m, "month"))
	day, ok := DayOfMonth(group(m, "day"))
	if !ok || mo < 1 || mo > 12 {
		return Result{}, false
	}
	d := calendar.New(y, time.Month(mo), day)
	if d.IsMin() {
		return Result{}, false
	}
	return Result{Timex: timex.Date(d), Future: d, Past: d}, true
}

func namedDate(m *regexp2.Match, ref calendar.Date) (Result, bool) {
	month, ok := MonthOfYear(group(m, "month"))
	if !ok {
		return Result{}, false
	}
	day, ok := DayOfMonth(group(m, "day"))
	if !ok {
		return Result{}, false
	}

	if ys := group(m, "year"); ys != "" {
		y, _ := strconv.Atoi(ys)
		d := calendar.New(y, month, day)
		return Result{Timex: timex.Date(d), Future: d, Past: d}, true
	}

	d := calendar.New(ref.Year(), month, day)
	future, past := d, d
	if d.Before(ref) {
		future = calendar.New(ref.Year()+1, month, day)
	} else {
		past = calendar.New(ref.Year()-1, month, day)
	}
	return Result{Timex: timex.DateParts(-1, month, day), Future: future, Past: past}, true
}

func dayOnly(m *regexp2.Match, ref calendar.Date) (Result, bool) {
	day, ok := DayOfMonth(group(m, "day"))
	if !ok {
		return Result{}, false
	}
	first := calendar.New(ref.Year(), ref.Month(), 1)
	inMonth := func(f calendar.Date) calendar.Date {
		return calendar.New(f.Year(), f.Month(), day)
	}

	d := inMonth(first)
	future, past := d, d
	if d.Before(ref) {
		future = inMonth(first.AddMonths(1))
	} else {
		past = inMonth(first.AddMonths(-1))
	}
	return Result{Timex: fmt.Sprintf("XXXX-XX-%02d", day), Future: future, Past: past}, true
}

func weekday(m *regexp2.Match, ref calendar.Date) (Result, bool) {
	wd, ok := parseWeekday(group(m, "weekday"))
	if !ok {
		return Result{}, false
	}

	var d calendar.Date
	switch group(m, "rel") {
	case "this":
		d = ref.This(wd)
	case "next":
		d = ref.Next(wd)
	case "last":
		d = ref.Last(wd)
	default:
		future := ref.AddDays((int(wd) - int(ref.Weekday()) + 7) % 7)
		past := ref.AddDays(-((int(ref.Weekday()) - int(wd) + 7) % 7))
		return Result{Timex: fmt.Sprintf("XXXX-WXX-%d", isoWeekday(wd)), Future: future, Past: past}, true
	}
	return Result{Timex: timex.Date(d), Future: d, Past: d}, true
}

func relativeDay(m *regexp2.Match, ref calendar.Date) (Result, bool) {
	var d calendar.Date
	switch group(m, "relday") {
	case "today":
		d = ref
	case "tomorrow":
		d = ref.AddDays(1)
	case "yesterday":
		d = ref.AddDays(-1)
	default:
		return Result{}, false
	}
	return Result{Timex: timex.Date(d), Future: d, Past: d}, true
}

func isoWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
