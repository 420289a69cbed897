package dateperiod

import (
	"github.com/basecamp/dateperiod/internal/calendar"
)

// TypeDateRange tags candidates this package resolves.
const TypeDateRange = "daterange"

// Keys of the FutureResolution and PastResolution maps.
const (
	StartDate = "startDate"
	EndDate   = "endDate"
)

// Modifier narrows how a range should be read.
type Modifier string

const (
	ModNone   Modifier = ""
	ModBefore Modifier = "before"
	ModAfter  Modifier = "after"
	ModEarly  Modifier = "early"
	ModMid    Modifier = "mid"
	ModLate   Modifier = "late"
)

// Comment marks a range that contains a referenced point rather than naming
// a period directly.
type Comment string

const (
	CommentNone    Comment = ""
	CommentWeekOf  Comment = "week_of"
	CommentMonthOf Comment = "month_of"
)

// DateRange is a begin/end pair. Whether End is the last day or the day after
// it depends on Options.InclusiveEnd.
type DateRange struct {
	Begin calendar.Date `json:"begin"`
	End   calendar.Date `json:"end"`
}

// Days returns the number of days from Begin to End.
func (r DateRange) Days() int {
	return r.End.Sub(r.Begin)
}

// CandidateSpan is a piece of text an extractor believes to be a date period,
// or a nested span found inside one. Offsets are byte offsets.
type CandidateSpan struct {
	Text   string
	Start  int
	Length int
	Type   string
	Data   any
}

// SubEntity is a nested parse result: one of the two points of a merged
// period, or the duration a relative period was built from.
type SubEntity struct {
	Text   string        `json:"text"`
	Start  int           `json:"start"`
	Length int           `json:"length"`
	Type   string        `json:"type"`
	Timex  string        `json:"timex"`
	Future calendar.Date `json:"-"`
	Past   calendar.Date `json:"-"`
	Mod    Modifier      `json:"mod,omitempty"`
}

// Resolution is what a strategy produces. Future and Past are nil when the
// strategy yields only an encoding (seasons).
type Resolution struct {
	Timex       string
	Future      *DateRange
	Past        *DateRange
	Mod         Modifier
	Comment     Comment
	SubEntities []SubEntity
	Success     bool
}

// Value is the payload of a successful ParsedPeriod.
type Value struct {
	Success          bool              `json:"success"`
	FutureResolution map[string]string `json:"futureResolution"`
	PastResolution   map[string]string `json:"pastResolution"`
	Mod              Modifier          `json:"mod,omitempty"`
	Comment          Comment           `json:"comment,omitempty"`
	Resolution       Resolution        `json:"-"`
}

// ParsedPeriod echoes the candidate and carries the outcome. Value is nil
// when nothing resolved.
type ParsedPeriod struct {
	Text     string `json:"text"`
	Start    int    `json:"start"`
	Length   int    `json:"length"`
	Type     string `json:"type"`
	Data     any    `json:"-"`
	Timex    string `json:"timex"`
	Value    *Value `json:"value,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// OK reports whether the candidate resolved.
func (p ParsedPeriod) OK() bool {
	return p.Value != nil && p.Value.Success
}
