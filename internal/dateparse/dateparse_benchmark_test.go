package dateparse

import (
	"testing"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
)

// Reference date for benchmarks (a Wednesday)
var benchRef = calendar.New(2024, time.June, 12)

// BenchmarkParseFrom benchmarks the main parsing function
func BenchmarkParseFrom(b *testing.B) {
	cases := map[string]string{
		"today":        "today",
		"weekday":      "monday",
		"next_weekday": "next friday",
		"week_weekday": "next week friday",
		"month_day":    "March 3rd",
		"day_month":    "the 3rd of March 2016",
		"day_only":     "the 5th",
		"iso":          "2024-12-31",
		"unknown":      "some random text",
	}

	for name, input := range cases {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ParseFrom(input, benchRef)
			}
		})
	}
}

// BenchmarkExtract benchmarks span extraction over period-like text
func BenchmarkExtract(b *testing.B) {
	b.Run("two_points", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Extract("from March 3 to April 2")
		}
	})

	b.Run("week_of", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Extract("the week of the 5th of May")
		}
	})

	b.Run("none", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Extract("the last two decades")
		}
	})
}

// BenchmarkParseWeekday benchmarks weekday name parsing
func BenchmarkParseWeekday(b *testing.B) {
	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

	for _, day := range days {
		b.Run(day, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				parseWeekday(day)
			}
		})
	}

	b.Run("abbreviated", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			parseWeekday("mon")
		}
	})

	b.Run("invalid", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			parseWeekday("notaday")
		}
	})
}
