package dateparse

import (
	"strings"
	"testing"
	"time"

	"github.com/basecamp/dateperiod/internal/calendar"
)

// FuzzParseFrom tests ParseFrom and Extract with arbitrary input.
// Neither should panic, and extracted spans must stay inside the input.
func FuzzParseFrom(f *testing.F) {
	// Seed corpus from known test cases
	seeds := []string{
		"today", "tomorrow", "yesterday",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"mon", "tue", "wed", "thu", "fri", "sat", "sun",
		"next monday", "last friday", "this sunday", "next week monday",
		"March 3", "March 3rd, 2016", "the 3rd of May", "5 march", "the 5th",
		"the twenty-first", "2024-01-15", "3/5/2016",
		"", " ", "  ",
		"invalid", "next year", "last week",
		"from March 3 to April 2", "the week of the 5th",
		"café — March 3", "the 32nd", "2016-13-01",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	ref := calendar.New(2024, time.January, 17)

	f.Fuzz(func(t *testing.T, input string) {
		if r, ok := ParseFrom(input, ref); ok && r.Timex == "" {
			t.Errorf("ParseFrom(%q) succeeded without a timex", input)
		}

		for _, s := range Extract(input) {
			if s.Start < 0 || s.Start+s.Length > len(input) {
				t.Fatalf("Extract(%q) span out of range: %+v", input, s)
			}
			if !strings.EqualFold(input[s.Start:s.Start+s.Length], s.Text) {
				t.Errorf("Extract(%q) text mismatch: %+v", input, s)
			}
		}
	})
}
