package dateparse

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tues": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thurs": time.Thursday, "thur": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

var ordinalWords = []string{
	"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth",
	"eleventh", "twelfth", "thirteenth", "fourteenth", "fifteenth", "sixteenth", "seventeenth",
	"eighteenth", "nineteenth", "twentieth",
}

// ordinalDays maps written ordinals to days: "third" => 3, "twenty-first" => 21.
var ordinalDays = func() map[string]int {
	m := make(map[string]int, 31)
	for i, w := range ordinalWords {
		m[w] = i + 1
	}
	for i, w := range ordinalWords[:9] {
		m["twenty-"+w] = 21 + i
	}
	m["thirtieth"] = 30
	m["thirty-first"] = 31
	return m
}()

// Regex alternations built from the tables, longest first.
var (
	monthAlt   = alternation(keys(months))
	weekdayAlt = alternation(keys(weekdays))
	writtenAlt = `(?:twenty|thirty)[\s-]?(?:` + alternation(ordinalWords[:9]) + `)|` + alternation(append([]string{"thirtieth"}, ordinalWords...))
	ordinalAlt = `(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)|` + writtenAlt
	dayAlt     = `(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)?|` + writtenAlt
)

// MonthOfYear maps a month name, abbreviation or number ("march", "mar",
// "03") to its month.
func MonthOfYear(s string) (time.Month, bool) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
	if m, ok := months[s]; ok {
		return m, true
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), true
	}
	return 0, false
}

// DayOfMonth maps a day token ("3", "03", "3rd", "third", "twenty first")
// to its number.
func DayOfMonth(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	digits := strings.TrimRight(s, "stndrh")
	if n, err := strconv.Atoi(digits); err == nil {
		if n < 1 || n > 31 {
			return 0, false
		}
		return n, true
	}
	n, ok := ordinalDays[strings.Join(strings.Fields(s), "-")]
	return n, ok
}

// MonthAlternation returns a regex alternation of every month name.
func MonthAlternation() string { return monthAlt }

// DayAlternation returns a regex alternation of every day-of-month token.
func DayAlternation() string { return dayAlt }

// WeekdayAlternation returns a regex alternation of every weekday name.
func WeekdayAlternation() string { return weekdayAlt }

// Months returns every month name and abbreviation with its month.
func Months() map[string]time.Month {
	out := make(map[string]time.Month, len(months))
	for k, v := range months {
		out[k] = v
	}
	return out
}

func parseWeekday(input string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.TrimSuffix(strings.ToLower(strings.TrimSpace(input)), ".")]
	return wd, ok
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	return strings.Join(sorted, "|")
}
