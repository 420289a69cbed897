package dateperiod

import (
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
)

// PatternID names one grammatical case a Configuration must be able to match.
type PatternID int

const (
	PatternMonthWithYear PatternID = iota
	PatternMonthNumWithYear
	PatternMonthFrontBetween
	PatternBetween
	PatternMonthFrontSimpleCases
	PatternSimpleCases
	PatternOneWordPeriod
	PatternLaterEarlyPeriod
	PatternYearPeriod
	PatternYear
	PatternYearPlusNumber
	PatternWeekWithWeekDayRange
	PatternWeekOfMonth
	PatternWeekOfYear
	PatternQuarter
	PatternQuarterYearFront
	PatternSeason
	PatternWhichWeek
	PatternWeekOf
	PatternMonthOf
	PatternDecadeWithCentury
	PatternRelativeDecade
	PatternPast
	PatternFuture
	PatternFutureSuffix
	PatternInConnector
	PatternRestOfDate

	numPatterns
)

var patternNames = [...]string{
	PatternMonthWithYear:         "month-with-year",
	PatternMonthNumWithYear:      "month-num-with-year",
	PatternMonthFrontBetween:     "month-front-between",
	PatternBetween:               "between",
	PatternMonthFrontSimpleCases: "month-front-simple-cases",
	PatternSimpleCases:           "simple-cases",
	PatternOneWordPeriod:         "one-word-period",
	PatternLaterEarlyPeriod:      "later-early-period",
	PatternYearPeriod:            "year-period",
	PatternYear:                  "year",
	PatternYearPlusNumber:        "year-plus-number",
	PatternWeekWithWeekDayRange:  "week-with-weekday-range",
	PatternWeekOfMonth:           "week-of-month",
	PatternWeekOfYear:            "week-of-year",
	PatternQuarter:               "quarter",
	PatternQuarterYearFront:      "quarter-year-front",
	PatternSeason:                "season",
	PatternWhichWeek:             "which-week",
	PatternWeekOf:                "week-of",
	PatternMonthOf:               "month-of",
	PatternDecadeWithCentury:     "decade-with-century",
	PatternRelativeDecade:        "relative-decade",
	PatternPast:                  "past",
	PatternFuture:                "future",
	PatternFutureSuffix:          "future-suffix",
	PatternInConnector:           "in-connector",
	PatternRestOfDate:            "rest-of-date",
}

func (id PatternID) String() string {
	if id < 0 || id >= numPatterns {
		return "unknown"
	}
	return patternNames[id]
}

// PatternIDs returns every pattern a Configuration must provide.
func PatternIDs() []PatternID {
	ids := make([]PatternID, 0, numPatterns)
	for id := PatternID(0); id < numPatterns; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Match is one pattern match. Index and Length are byte offsets into the
// searched text. Groups keep every capture, so a group that matched twice
// ("day" in "the 3rd to the 5th") yields two values.
type Match struct {
	Index  int
	Length int
	Value  string
	groups map[string][]string
}

// NewMatch builds a Match. Locales call this from their Matcher
// implementations.
func NewMatch(index, length int, value string, groups map[string][]string) Match {
	return Match{Index: index, Length: length, Value: value, groups: groups}
}

// Group returns the last capture of the named group, or "".
func (m Match) Group(name string) string {
	c := m.groups[name]
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// Captures returns every capture of the named group in order.
func (m Match) Captures(name string) []string {
	return m.groups[name]
}

// Has reports whether the named group captured anything.
func (m Match) Has(name string) bool {
	return len(m.groups[name]) > 0
}

// Spans reports whether the match covers all of text.
func (m Match) Spans(text string) bool {
	return m.Index == 0 && m.Length == len(text)
}

// Matcher is a compiled pattern.
type Matcher interface {
	// Match returns the first match in text.
	Match(text string) (Match, bool)
	// Matches returns every non-overlapping match in text.
	Matches(text string) []Match
}

// NoSwift is returned by Configuration.SwiftYear when text carries no
// this/next/last marker.
const NoSwift = -10

// DateExtractor finds single-date spans in text.
type DateExtractor interface {
	Extract(text string, ref calendar.Date) []CandidateSpan
}

// DateParser resolves a single-date span. The returned entity carries the
// future and past readings of the date.
type DateParser interface {
	Parse(span CandidateSpan, ref calendar.Date) (SubEntity, bool)
}

// DurationExtractor finds duration spans ("two weeks") in text.
type DurationExtractor interface {
	Extract(text string) []CandidateSpan
}

// DurationParser resolves a duration span into a duration timex ("P2W").
type DurationParser interface {
	Parse(span CandidateSpan) (SubEntity, bool)
}

// IntegerExtractor finds integer spans, written or numeric.
type IntegerExtractor interface {
	Extract(text string) []CandidateSpan
}

// NumberParser parses a number span.
type NumberParser interface {
	Parse(span CandidateSpan) (float64, bool)
}

// Configuration is everything a locale supplies to the resolver. Lookups take
// lower-cased keys. Implementations must be safe for concurrent use.
type Configuration interface {
	Pattern(id PatternID) Matcher

	MonthOfYear(s string) (time.Month, bool)
	DayOfMonth(s string) (int, bool)
	Cardinal(s string) (int, bool)
	// Unit maps a unit word to D, W, MON or Y.
	Unit(s string) (string, bool)
	// Season maps a season name to SP, SU, FA or WI.
	Season(s string) (string, bool)
	WrittenDecade(s string) (int, bool)
	// SpecialDecade maps an idiom ("the aughts") to the first year of its decade.
	SpecialDecade(s string) (int, bool)
	Number(s string) (int, bool)

	// SwiftDayOrMonth returns -1, 0 or +1 for last/this/next in text, 0 if none.
	SwiftDayOrMonth(text string) int
	// SwiftYear returns -1, 0 or +1 for last/this/next in text, NoSwift if none.
	SwiftYear(text string) int
	// IsFuture reports whether text names the current or a coming period.
	IsFuture(text string) bool
	IsYearToDate(text string) bool
	IsMonthToDate(text string) bool
	IsWeekOnly(text string) bool
	IsWeekend(text string) bool
	IsMonthOnly(text string) bool
	IsYearOnly(text string) bool
	IsLastCardinal(s string) bool
	// YearFromMatch reads the year named by a match's year groups.
	YearFromMatch(m Match) (int, bool)

	YearBounds() (min, max int)
	// TokenBeforeDate is prepended to text when the date extractor needs a
	// leading connector to find both points of a range ("on ").
	TokenBeforeDate() string

	DateExtractor() DateExtractor
	DateParser() DateParser
	DurationExtractor() DurationExtractor
	DurationParser() DurationParser
	IntegerExtractor() IntegerExtractor
	NumberParser() NumberParser
}
