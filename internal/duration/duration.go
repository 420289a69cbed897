// Package duration reads duration timex values (P2W, P1Y6M, PT3H) and shifts
// calendar dates by them.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/basecamp/dateperiod/internal/calendar"
)

// Unit identifies one component of a duration.
type Unit string

const (
	Year   Unit = "Y"
	Month  Unit = "M"
	Week   Unit = "W"
	Day    Unit = "D"
	Hour   Unit = "H"
	Minute Unit = "TM"
	Second Unit = "S"
)

// Component is one number-unit pair of a duration.
type Component struct {
	Value float64
	Unit  Unit
}

// ErrInvalid is returned for strings that are not duration timex values.
var ErrInvalid = errors.New("invalid duration")

// Parse splits a duration timex into its components, in order of appearance.
func Parse(timex string) ([]Component, error) {
	s := strings.ToUpper(strings.TrimSpace(timex))
	if len(s) < 3 || s[0] != 'P' {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, timex)
	}

	var (
		parts   []Component
		inTime  bool
		numFrom = -1
	)
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 'T':
			if inTime || numFrom >= 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalid, timex)
			}
			inTime = true
		case c >= '0' && c <= '9' || c == '.':
			if numFrom < 0 {
				numFrom = i
			}
		default:
			if numFrom < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalid, timex)
			}
			v, err := strconv.ParseFloat(s[numFrom:i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalid, timex)
			}
			u, ok := unitFor(c, inTime)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrInvalid, timex)
			}
			parts = append(parts, Component{Value: v, Unit: u})
			numFrom = -1
		}
	}
	if numFrom >= 0 || len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, timex)
	}
	return parts, nil
}

func unitFor(c byte, inTime bool) (Unit, bool) {
	if inTime {
		switch c {
		case 'H':
			return Hour, true
		case 'M':
			return Minute, true
		case 'S':
			return Second, true
		}
		return "", false
	}
	switch c {
	case 'Y':
		return Year, true
	case 'M':
		return Month, true
	case 'W':
		return Week, true
	case 'D':
		return Day, true
	}
	return "", false
}

// IsMultiple reports whether timex combines more than one unit ("P1Y6M").
// An unparseable value is not multiple.
func IsMultiple(timex string) bool {
	parts, err := Parse(timex)
	return err == nil && len(parts) > 1
}

// Collapse returns a single-unit duration of the last unit in timex:
// P2W becomes P1W, PT3H becomes PT1H.
func Collapse(timex string) (string, error) {
	parts, err := Parse(timex)
	if err != nil {
		return "", err
	}
	switch u := parts[len(parts)-1].Unit; u {
	case Hour, Second:
		return "PT1" + string(u), nil
	case Minute:
		return "PT1M", nil
	default:
		return "P1" + string(u), nil
	}
}

// Shift moves anchor forward or backward by timex. Month and year components
// clamp the day of month. Sub-day components accumulate and only move the
// date once they add up to whole days.
func Shift(timex string, anchor calendar.Date, forward bool) (calendar.Date, error) {
	parts, err := Parse(timex)
	if err != nil {
		return anchor, err
	}

	sign := 1.0
	if !forward {
		sign = -1
	}

	d := anchor
	var seconds float64
	for _, p := range parts {
		v := p.Value * sign
		switch p.Unit {
		case Year:
			whole := math.Trunc(v)
			d = d.AddYears(int(whole)).AddMonths(int(math.Round((v - whole) * 12)))
		case Month:
			whole := math.Trunc(v)
			d = d.AddMonths(int(whole)).AddDays(int(math.Round((v - whole) * 30)))
		case Week:
			d = d.AddDays(int(math.Round(v * 7)))
		case Day:
			d = d.AddDays(int(math.Round(v)))
		case Hour:
			seconds += v * 3600
		case Minute:
			seconds += v * 60
		case Second:
			seconds += v
		}
	}
	if days := int(seconds / 86400); days != 0 {
		d = d.AddDays(days)
	}
	return d, nil
}
