package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/dateperiod/internal/calendar"
)

func TestFormatters(t *testing.T) {
	d := calendar.New(2016, time.March, 5)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"date", Date(d), "2016-03-05"},
		{"date unknown year", DateParts(-1, time.May, 3), "XXXX-05-03"},
		{"date known year", DateParts(2016, time.May, 3), "2016-05-03"},
		{"year", Year(987), "0987"},
		{"year-month", YearMonth(2016, time.March), "2016-03"},
		{"month unknown year", YearMonth(-1, time.November), "XXXX-11"},
		{"iso week", ISOWeek(d), "2016-W09"},
		{"iso week crosses year", ISOWeek(calendar.New(2016, time.January, 1)), "2015-W53"},
		{"week", Week(2016, 3), "2016-W03"},
		{"decade start", DecadeStart(90), "XX90-01-01"},
		{"decade start wraps", DecadeStart(100), "XX00-01-01"},
		{"weekend", Weekend(calendar.New(2016, time.March, 5)), "2016-W09-WE"},
		{"week of month", WeekOfMonth(-1, time.July, 4), "XXXX-07-W04"},
		{"season with year", Season(2016, "SU"), "2016-SU"},
		{"season bare", Season(-1, "WI"), "WI"},
		{"interval", Interval("XXXX-05-03", "XXXX-05-05", Days(2)), "(XXXX-05-03,XXXX-05-05,P2D)"},
		{"date interval", DateInterval(d, d.AddMonths(3), Months(3)), "(2016-03-05,2016-06-05,P3M)"},
		{"years", Years(10), "P10Y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in         string
		begin, end string
	}{
		{"2016", "2016-01-01", "2017-01-01"},
		{"2016-02", "2016-02-01", "2016-03-01"},
		{"2016-12", "2016-12-01", "2017-01-01"},
		{"2016-W09", "2016-02-29", "2016-03-07"},
		{"2015-W53", "2015-12-28", "2016-01-04"},
		{"(2016-04-01,2016-07-01,P3M)", "2016-04-01", "2016-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, e, ok := ParseRange(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.begin, b.String())
			assert.Equal(t, tt.end, e.String())
		})
	}
}

func TestParseRangeRejectsUnknowns(t *testing.T) {
	for _, in := range []string{
		"XXXX-05",
		"(XXXX-05-03,XXXX-05-05,P2D)",
		"SU",
		"2016-W60",
		"P3D",
		"",
	} {
		_, _, ok := ParseRange(in)
		assert.False(t, ok, in)
	}
}

func TestYearMonthRoundTrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		b := calendar.New(2016, m, 1)
		gotB, gotE, ok := ParseRange(YearMonth(b.Year(), b.Month()))
		require.True(t, ok)
		assert.Equal(t, b, gotB)
		assert.Equal(t, b.AddMonths(1), gotE)
	}
}
