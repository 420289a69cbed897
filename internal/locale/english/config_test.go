package english

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/dateperiod/internal/dateperiod"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := New()
	require.NoError(t, err)
	return cfg
}

func TestNewCompilesEveryPattern(t *testing.T) {
	cfg := newTestConfig(t)
	for _, id := range dateperiod.PatternIDs() {
		assert.NotNil(t, cfg.Pattern(id), id.String())
	}
}

func TestParseVocabularyRejectsIncompleteTables(t *testing.T) {
	_, err := parseVocabulary([]byte("cardinals: {first: 1}\n"))
	assert.Error(t, err)

	_, err = parseVocabulary([]byte("cardinals: [oops"))
	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	cfg := newTestConfig(t)

	n, ok := cfg.Cardinal("Second")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = cfg.Cardinal("3rd")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	u, ok := cfg.Unit("weeks")
	require.True(t, ok)
	assert.Equal(t, "W", u)

	u, ok = cfg.Unit("Month")
	require.True(t, ok)
	assert.Equal(t, "MON", u)

	s, ok := cfg.Season("autumn")
	require.True(t, ok)
	assert.Equal(t, "FA", s)

	n, ok = cfg.WrittenDecade("nineties")
	require.True(t, ok)
	assert.Equal(t, 90, n)

	n, ok = cfg.SpecialDecade("Two  Thousands")
	require.True(t, ok)
	assert.Equal(t, 2000, n)

	n, ok = cfg.Number("nineteen")
	require.True(t, ok)
	assert.Equal(t, 19, n)

	_, ok = cfg.Number("two thousand")
	assert.False(t, ok, "compound numbers are not table entries")

	m, ok := cfg.MonthOfYear("Sept")
	require.True(t, ok)
	assert.Equal(t, time.September, m)

	d, ok := cfg.DayOfMonth("twenty first")
	require.True(t, ok)
	assert.Equal(t, 21, d)
}

func TestSwift(t *testing.T) {
	cfg := newTestConfig(t)

	assert.Equal(t, 1, cfg.SwiftYear("next"))
	assert.Equal(t, 0, cfg.SwiftYear("this"))
	assert.Equal(t, -1, cfg.SwiftYear("Previous"))
	assert.Equal(t, dateperiod.NoSwift, cfg.SwiftYear("march"))

	assert.Equal(t, -1, cfg.SwiftDayOrMonth("the last two decades"))
	assert.Equal(t, 1, cfg.SwiftDayOrMonth("next month"))
	assert.Equal(t, 0, cfg.SwiftDayOrMonth("week"))
}

func TestClassifiers(t *testing.T) {
	cfg := newTestConfig(t)

	assert.True(t, cfg.IsFuture("this month"))
	assert.True(t, cfg.IsFuture("next month"))
	assert.False(t, cfg.IsFuture("last month"))

	assert.True(t, cfg.IsYearToDate("year to date"))
	assert.True(t, cfg.IsYearToDate("the year to date"))
	assert.True(t, cfg.IsMonthToDate("MTD"))
	assert.False(t, cfg.IsYearToDate("this year"))

	assert.True(t, cfg.IsWeekOnly("this week"))
	assert.False(t, cfg.IsWeekOnly("the weekend"))
	assert.True(t, cfg.IsWeekend("the weekend"))
	assert.True(t, cfg.IsMonthOnly("next month"))
	assert.True(t, cfg.IsYearOnly("last year"))

	assert.True(t, cfg.IsLastCardinal("last"))
	assert.False(t, cfg.IsLastCardinal("first"))

	lo, hi := cfg.YearBounds()
	assert.Equal(t, 1500, lo)
	assert.Equal(t, 2100, hi)
	assert.Equal(t, "on ", cfg.TokenBeforeDate())
}

func TestYearFromMatch(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		text string
		want int
	}{
		{"year 2015", 2015},
		{"2015 or so", 2015},
		{"year two thousand sixteen", 2016},
		{"year nineteen ninety nine", 1999},
		{"the year twenty twenty", 2020},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, ok := cfg.Pattern(dateperiod.PatternYearPlusNumber).Match(tt.text)
			if !ok || !m.Spans(tt.text) {
				m, ok = cfg.Pattern(dateperiod.PatternYear).Match(tt.text)
			}
			require.True(t, ok)
			require.True(t, m.Spans(tt.text), "match %q", m.Value)
			y, ok := cfg.YearFromMatch(m)
			require.True(t, ok)
			assert.Equal(t, tt.want, y)
		})
	}
}

func TestParseWrittenNumbers(t *testing.T) {
	v, err := loadVocabulary()
	require.NoError(t, err)

	for in, want := range map[string]int{
		"42":                       42,
		"twenty-one":               21,
		"two thousand":             2000,
		"two thousand and sixteen": 2016,
		"nineteen hundred":         1900,
		"one hundred and five":     105,
	} {
		got, ok := v.parseNumber(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := v.parseNumber("many")
	assert.False(t, ok)
	_, ok = v.parseNumber("")
	assert.False(t, ok)

	_, ok = v.parseWrittenYear("seven")
	assert.False(t, ok)
}
