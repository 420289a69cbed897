package english

import (
	"strconv"
	"strings"
)

// parseNumber reads a numeric or written integer: "42", "twenty-one",
// "two thousand and sixteen", "nineteen hundred".
func (v *vocabulary) parseNumber(s string) (int, bool) {
	s = key(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	return v.parseWords(numberFields(s))
}

func (v *vocabulary) parseWords(fields []string) (int, bool) {
	total, current := 0, 0
	seen := false
	for _, w := range fields {
		if w == "and" {
			continue
		}
		if n, ok := v.Numbers[w]; ok {
			current += n
			seen = true
			continue
		}
		scale, ok := v.Scales[w]
		if !ok {
			return 0, false
		}
		if current == 0 {
			current = 1
		}
		if scale >= 1000 {
			total += current * scale
			current = 0
		} else {
			current *= scale
		}
		seen = true
	}
	return total + current, seen
}

// parseWrittenYear reads a year said aloud: "two thousand sixteen",
// "nineteen ninety nine", "twenty twenty".
func (v *vocabulary) parseWrittenYear(s string) (int, bool) {
	fields := numberFields(key(s))
	if n, ok := v.parseWords(fields); ok && n >= 1000 {
		return n, true
	}
	for i := 1; i < len(fields); i++ {
		hi, ok1 := v.parseWords(fields[:i])
		lo, ok2 := v.parseWords(fields[i:])
		if ok1 && ok2 && hi >= 10 && hi <= 99 && lo <= 99 {
			return hi*100 + lo, true
		}
	}
	return 0, false
}

func numberFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
}
