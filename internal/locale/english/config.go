// Package english is the English locale for the date-period resolver: its
// patterns, vocabulary and the single-date and duration sub-parsers.
package english

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/basecamp/dateperiod/internal/dateparse"
	"github.com/basecamp/dateperiod/internal/dateperiod"
)

// Config implements dateperiod.Configuration for English. It is immutable
// after New and safe for concurrent use.
type Config struct {
	v        *vocabulary
	patterns map[dateperiod.PatternID]*matcher

	dates     dateSubParser
	durations *durationSubParser
	integers  *integerSubParser
}

var _ dateperiod.Configuration = (*Config)(nil)

// New loads the vocabulary and compiles the patterns.
func New() (*Config, error) {
	v, err := loadVocabulary()
	if err != nil {
		return nil, fmt.Errorf("english: %w", err)
	}
	return newConfig(v)
}

func newConfig(v *vocabulary) (*Config, error) {
	patterns, err := compilePatterns(v)
	if err != nil {
		return nil, fmt.Errorf("english: %w", err)
	}
	durations, err := newDurationSubParser(v)
	if err != nil {
		return nil, fmt.Errorf("english: duration: %w", err)
	}
	integers, err := newIntegerSubParser(v)
	if err != nil {
		return nil, fmt.Errorf("english: integer: %w", err)
	}
	return &Config{
		v:         v,
		patterns:  patterns,
		durations: durations,
		integers:  integers,
	}, nil
}

func (c *Config) Pattern(id dateperiod.PatternID) dateperiod.Matcher {
	m, ok := c.patterns[id]
	if !ok {
		return nil
	}
	return m
}

func (c *Config) MonthOfYear(s string) (time.Month, bool) { return dateparse.MonthOfYear(s) }
func (c *Config) DayOfMonth(s string) (int, bool)         { return dateparse.DayOfMonth(s) }

func (c *Config) Cardinal(s string) (int, bool) {
	n, ok := c.v.Cardinals[key(s)]
	return n, ok
}

func (c *Config) Unit(s string) (string, bool) {
	u, ok := c.v.Units[key(s)]
	return u, ok
}

func (c *Config) Season(s string) (string, bool) {
	t, ok := c.v.Seasons[key(s)]
	return t, ok
}

func (c *Config) WrittenDecade(s string) (int, bool) {
	n, ok := c.v.WrittenDecades[key(s)]
	return n, ok
}

func (c *Config) SpecialDecade(s string) (int, bool) {
	n, ok := c.v.SpecialDecades[key(s)]
	return n, ok
}

// Number looks up a single number word ("nineteen"). Compound numbers go
// through the integer extractor.
func (c *Config) Number(s string) (int, bool) {
	n, ok := c.v.Numbers[key(s)]
	return n, ok
}

// SwiftDayOrMonth returns the swift of the first relative marker in text.
func (c *Config) SwiftDayOrMonth(text string) int {
	if n, ok := c.swift(text); ok {
		return n
	}
	return 0
}

func (c *Config) SwiftYear(text string) int {
	if n, ok := c.swift(text); ok {
		return n
	}
	return dateperiod.NoSwift
}

func (c *Config) swift(text string) (int, bool) {
	for _, w := range strings.Fields(key(text)) {
		if n, ok := c.v.Swift[w]; ok {
			return n, true
		}
	}
	return 0, false
}

// IsFuture reports whether text opens with "this", "next" or a synonym.
func (c *Config) IsFuture(text string) bool {
	fields := strings.Fields(key(text))
	return len(fields) > 0 && slices.Contains(c.v.FutureMarkers, fields[0])
}

func (c *Config) IsYearToDate(text string) bool {
	return slices.Contains(c.v.YearToDate, withoutArticle(text))
}

func (c *Config) IsMonthToDate(text string) bool {
	return slices.Contains(c.v.MonthToDate, withoutArticle(text))
}

func (c *Config) IsWeekOnly(text string) bool  { return strings.HasSuffix(key(text), "week") }
func (c *Config) IsWeekend(text string) bool   { return strings.HasSuffix(key(text), "weekend") }
func (c *Config) IsMonthOnly(text string) bool { return strings.HasSuffix(key(text), "month") }
func (c *Config) IsYearOnly(text string) bool  { return strings.HasSuffix(key(text), "year") }

func (c *Config) IsLastCardinal(s string) bool {
	return slices.Contains(c.v.LastCardinals, key(s))
}

// YearFromMatch reads a numeric "year" group or a written "yearnum" group.
func (c *Config) YearFromMatch(m dateperiod.Match) (int, bool) {
	if s := m.Group("year"); s != "" {
		y, err := strconv.Atoi(s)
		return y, err == nil
	}
	if s := m.Group("yearnum"); s != "" {
		return c.v.parseWrittenYear(s)
	}
	return 0, false
}

func (c *Config) YearBounds() (int, int) {
	return c.v.YearBounds.Min, c.v.YearBounds.Max
}

func (c *Config) TokenBeforeDate() string { return c.v.TokenBeforeDate }

func (c *Config) DateExtractor() dateperiod.DateExtractor         { return c.dates }
func (c *Config) DateParser() dateperiod.DateParser               { return c.dates }
func (c *Config) DurationExtractor() dateperiod.DurationExtractor { return c.durations }
func (c *Config) DurationParser() dateperiod.DurationParser       { return c.durations }
func (c *Config) IntegerExtractor() dateperiod.IntegerExtractor   { return c.integers }
func (c *Config) NumberParser() dateperiod.NumberParser           { return c.integers }

func withoutArticle(text string) string {
	return strings.TrimPrefix(key(text), "the ")
}
