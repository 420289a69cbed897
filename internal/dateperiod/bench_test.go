package dateperiod_test

import (
	"testing"

	"github.com/basecamp/dateperiod/internal/dateperiod"
)

func BenchmarkParseText(b *testing.B) {
	p := newParser(b, dateperiod.Options{})
	ref := day(monday)
	texts := []string{"March 2016", "the last week of next month", "summer", "the next two weeks", "hello world"}

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		p.ParseText(texts[i%len(texts)], ref)
	}
}
