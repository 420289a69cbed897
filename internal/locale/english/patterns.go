package english

import (
	"fmt"

	"github.com/basecamp/dateperiod/internal/dateparse"
	"github.com/basecamp/dateperiod/internal/dateperiod"
)

// fragments are the shared pieces the period patterns are assembled from.
type fragments struct {
	month, day, year, order, relmonth, monthRef, yearTail, conn string
	cardinal, season, number, weekday, writtenDecade, specialDecade       string
}

func newFragments(v *vocabulary) fragments {
	var f fragments
	orders := alternation(words(v.Swift))
	numberWord := `(?:` + alternation(words(v.Numbers, v.Scales)) + `)\b`

	f.month = `(?<month>` + dateparse.MonthAlternation() + `)\b\.?`
	f.day = `(?<day>` + dateparse.DayAlternation() + `)\b`
	f.year = `\b(?<year>\d{4})\b`
	f.order = `(?<order>` + orders + `)\b`
	f.relmonth = `(?<relmonth>(?:` + orders + `)\s+month)\b`
	f.monthRef = `(?:` + f.month + `|` + f.relmonth + `)`
	f.yearTail = `(?:,?\s*` + f.year + `)?`
	f.conn = `(?:\s*(?:-|–|~)\s*|\s+(?:to|till|til|until|thru|through)\s+)`
	f.cardinal = `(?<cardinal>` + alternation(words(v.Cardinals)) + `|` + alternation(v.LastCardinals) + `)\b`
	f.season = `(?<seas>` + alternation(words(v.Seasons)) + `)\b`
	f.number = numberWord + `(?:[\s-]+(?:and[\s-]+)?` + numberWord + `)*`
	f.weekday = `(?:` + dateparse.WeekdayAlternation() + `)\b\.?`
	f.writtenDecade = `(?:` + alternation(words(v.WrittenDecades)) + `)\b`
	f.specialDecade = `(?:` + alternation(words(v.SpecialDecades)) + `)\b`
	return f
}

// expressions returns the source of every period pattern.
func expressions(v *vocabulary) map[dateperiod.PatternID]string {
	f := newFragments(v)
	orders := alternation(words(v.Swift))
	ytd := alternation(append(append([]string(nil), v.YearToDate...), v.MonthToDate...))
	periodWord := `(?:(?:` + ytd + `|weekend|week|month|year)\b|` + f.month + `)`
	qHead := `(?:(?:the\s+)?(?<cardinal>` + alternation(words(v.Cardinals)) + `)\s+quarter|q(?<cardinal>[1-4]))\b`

	return map[dateperiod.PatternID]string{
		dateperiod.PatternMonthWithYear: `\b(?:` +
			f.month + `(?:,?\s*|\s+(?:of|in)\s+)` + f.year +
			`|` + f.order + `\s+` + f.month +
			`|` + f.month + `\s+(?:of\s+)?(?:the\s+)?` + f.order + `\s+year\b)`,

		dateperiod.PatternMonthNumWithYear: `\b(?:(?<year>\d{4})[-/](?<month>1[0-2]|0?[1-9])(?![-/]?\d)` +
			`|(?<month>1[0-2]|0?[1-9])[-/](?<year>\d{4})\b)`,

		dateperiod.PatternMonthFrontBetween: `\b(?:in\s+)?` + f.monthRef + `,?\s+between\s+(?:the\s+)?` + f.day +
			`\s+and\s+(?:the\s+)?` + f.day + f.yearTail,

		dateperiod.PatternBetween: `\bbetween\s+(?:the\s+)?` + f.day + `\s+and\s+(?:the\s+)?` + f.day +
			`\s+(?:of\s+)?` + f.monthRef + f.yearTail,

		dateperiod.PatternMonthFrontSimpleCases: `\b(?:(?:from|during|in)\s+)?` + f.monthRef + `\s+(?:from\s+)?(?:the\s+)?` +
			f.day + f.conn + `(?:the\s+)?` + f.day + f.yearTail,

		dateperiod.PatternSimpleCases: `\b(?:(?:from|during|in)\s+)?(?:the\s+)?` + f.day + f.conn + `(?:the\s+)?` + f.day +
			`\s+(?:of\s+)?` + f.monthRef + f.yearTail,

		dateperiod.PatternOneWordPeriod: `\b(?:(?:the|` + orders + `)\s+)?` + periodWord,

		dateperiod.PatternLaterEarlyPeriod: `\b(?:the\s+)?(?:(?<early>beginning\s+of|start\s+of|early)|(?<mid>middle\s+of|mid)|(?<late>end\s+of|later|late))` +
			`(?:\s+|-)(?:in\s+)?(?:the\s+)?(?<suffix>(?:(?:` + orders + `)\s+)?` + periodWord + `)`,

		dateperiod.PatternYearPeriod: `\b(?:(?:from|between|during)\s+)?(?:(?:the\s+)?year\s+)?\d{4}` +
			`(?:\s*(?:-|–|~)\s*|\s+(?:to|till|until|thru|through|and)\s+)(?:(?:the\s+)?year\s+)?\d{4}\b`,

		dateperiod.PatternYear: `\b(?:(?:in\s+)?(?:the\s+)?year\s+(?:of\s+)?)?(?<year>\d{4})\b`,

		dateperiod.PatternYearPlusNumber: `\b(?:(?:(?:in\s+)?(?:the\s+)?year\s+)?(?<year>\d{4})(?:\s+or\s+so|\s*-?ish)\b` +
			`|(?:in\s+)?(?:the\s+)?year\s+(?<yearnum>` + f.number + `))`,

		dateperiod.PatternWeekWithWeekDayRange: `\b(?<week>(?:` + orders + `)\s+week)\s+(?:(?:from|on|between)\s+)?` + f.weekday +
			`(?:\s*(?:-|–|~)\s*|\s+(?:to|till|til|until|thru|through|and)\s+)(?:on\s+)?` + f.weekday,

		dateperiod.PatternWeekOfMonth: `\b(?:the\s+)?` + f.cardinal + `\s+week\s+(?:of|in)\s+(?:the\s+)?(?:` +
			f.month + `(?:,?\s*` + f.year + `)?|` + f.relmonth + `)`,

		dateperiod.PatternWeekOfYear: `\b(?:the\s+)?` + f.cardinal + `\s+week\s+(?:of|in)\s+(?:the\s+)?(?:(?:year\s+)?` +
			f.year + `|` + f.order + `\s+year\b)`,

		dateperiod.PatternQuarter: `\b` + qHead + `(?:\s+(?:of|in)\s+|,?\s+)(?:the\s+)?(?:(?:year\s+)?` + f.year +
			`|` + f.order + `\s+year\b)`,

		dateperiod.PatternQuarterYearFront: `\b(?:(?<year>\d{4})\b|` + f.order + `\s+year'?s)` + `,?\s+(?:the\s+)?` + qHead,

		dateperiod.PatternSeason: `\b(?:(?:the\s+)?(?:(?<early>beginning\s+of(?:\s+the)?|early)|(?<mid>middle\s+of(?:\s+the)?|mid)|(?<late>end\s+of(?:\s+the)?|late))(?:\s+|-))?` +
			`(?:(?:the|` + f.order + `)\s+)?` + f.season +
			`(?:(?:\s+(?:of|in))?\s+(?:the\s+year\s+)?` + f.year + `|\s+(?:of\s+)?(?:the\s+)?` + f.order + `\s+year\b)?`,

		dateperiod.PatternWhichWeek: `\b(?:the\s+)?week\s+(?:#\s*|no\.?\s*|number\s+)?(?<number>\d{1,2})(?:\s+of\s+(?:the\s+)?year)?\b`,

		dateperiod.PatternWeekOf: `\b(?:the\s+)?week\s+of\b`,

		dateperiod.PatternMonthOf: `\b(?:the\s+)?month\s+of\b`,

		dateperiod.PatternDecadeWithCentury: `(?:\bthe\s+)?(?:` +
			`(?:(?<century>\d{2})(?<decade>\d0)|'?(?<decade>\d0))'?s\b` +
			`|(?<decade>` + f.specialDecade + `)` +
			`|(?:(?<century>` + f.number + `)\s+(?:and\s+)?)?(?<decade>` + f.writtenDecade + `))`,

		dateperiod.PatternRelativeDecade: `\b(?:the\s+)?(?:` + orders + `)\s+(?:(?<number>` + f.number + `|\d+)\s+)?decades?\b`,

		dateperiod.PatternPast: `\b(?:last|past|previous|prior|ago|earlier)\b`,

		dateperiod.PatternFuture: `\b(?:the\s+)?(?:next|following|coming|upcoming|within(?:\s+the\s+next)?|in\s+the\s+(?:next|coming|following|upcoming))\b|^in$`,

		dateperiod.PatternFutureSuffix: `\b(?:from\s+(?:now|today)|hence|in\s+the\s+future|later|ahead)\b`,

		dateperiod.PatternInConnector: `\bin\b`,

		dateperiod.PatternRestOfDate: `\b(?:the\s+)?rest\s+of\s+(?:the|this|my)\s+(?<duration>week|month|year)\b`,
	}
}

// compilePatterns compiles every period pattern. A missing or broken
// pattern is an error: the resolver expects all of them.
func compilePatterns(v *vocabulary) (map[dateperiod.PatternID]*matcher, error) {
	exprs := expressions(v)
	out := make(map[dateperiod.PatternID]*matcher, len(exprs))
	for _, id := range dateperiod.PatternIDs() {
		expr, ok := exprs[id]
		if !ok {
			return nil, fmt.Errorf("pattern %s: not defined", id)
		}
		m, err := compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", id, err)
		}
		out[id] = m
	}
	return out, nil
}

// durationExpr finds "two weeks", "3 days", "a couple of months".
func durationExpr(v *vocabulary) string {
	f := newFragments(v)
	counts := alternation(words(v.Quantifiers))
	return `\b(?<count>(?:` + counts + `)\b|` + f.number + `|\d+(?:\.\d+)?)\s+(?<unit>` + alternation(words(v.Units)) + `)\b`
}

// integerExpr finds numeric and written integers.
func integerExpr(v *vocabulary) string {
	return `\b(?:\d+|` + newFragments(v).number + `)`
}
