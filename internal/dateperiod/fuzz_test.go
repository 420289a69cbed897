package dateperiod_test

import (
	"testing"

	"github.com/basecamp/dateperiod/internal/dateperiod"
)

func FuzzParseText(f *testing.F) {
	for _, seed := range []string{
		"March 2016", "the 3rd to the 5th of May", "Q2 2016", "the 1990s", "rest of the week",
		"in two weeks", "from March 3 to April 2", "the last week of next month", "early summer 2016",
		"week 53", "the 00s", "café 2016", "between the 31st and 1st of February",
	} {
		f.Add(seed)
	}
	p := newParser(f, dateperiod.Options{})
	ref := day(monday)

	f.Fuzz(func(t *testing.T, text string) {
		got := p.ParseText(text, ref)
		if got.OK() && got.Timex == "" {
			t.Fatalf("%q resolved by %s without a timex", text, got.Strategy)
		}
		if got.Text != text {
			t.Fatalf("text not echoed: %q", got.Text)
		}
	})
}
