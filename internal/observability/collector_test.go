package observability

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCollector_Counts(t *testing.T) {
	c := NewSessionCollector()

	c.RecordAttempt(AttemptMetrics{Strategy: "month-with-year", OK: false})
	c.RecordAttempt(AttemptMetrics{Strategy: "simple-cases", OK: true})
	c.RecordExpression(ExpressionMetrics{Text: "May 3-5", Strategy: "simple-cases", Duration: 2 * time.Millisecond})
	c.RecordExpression(ExpressionMetrics{Text: "hello", Duration: 3 * time.Millisecond})

	s := c.Summary()
	assert.Equal(t, 2, s.Expressions)
	assert.Equal(t, 1, s.Resolved)
	assert.Equal(t, 1, s.Unresolved)
	assert.Equal(t, 2, s.TotalAttempts)
	assert.Equal(t, 5*time.Millisecond, s.TotalLatency)
	assert.Equal(t, map[string]int{"simple-cases": 1}, s.Wins)
}

func TestSessionCollector_SummaryIsACopy(t *testing.T) {
	c := NewSessionCollector()
	c.RecordAttempt(AttemptMetrics{Strategy: "year", OK: true})

	s := c.Summary()
	s.Wins["year"] = 99
	assert.Equal(t, 1, c.Summary().Wins["year"])
}

func TestSessionCollector_Reset(t *testing.T) {
	c := NewSessionCollector()
	c.RecordAttempt(AttemptMetrics{Strategy: "year", OK: true})
	c.RecordExpression(ExpressionMetrics{Text: "2015", Strategy: "year"})

	c.Reset()
	s := c.Summary()
	assert.Zero(t, s.Expressions)
	assert.Zero(t, s.TotalAttempts)
	assert.Empty(t, s.Wins)
}

func TestSessionCollector_Concurrent(t *testing.T) {
	c := NewSessionCollector()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.RecordAttempt(AttemptMetrics{Strategy: "decade", OK: true})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, c.Summary().TotalAttempts)
	assert.Equal(t, 1000, c.Summary().Wins["decade"])
}

func TestSessionMetrics_MapRoundTripThroughJSON(t *testing.T) {
	start := time.Date(2016, 11, 7, 9, 0, 0, 0, time.UTC)
	m := SessionMetrics{
		StartTime:     start,
		EndTime:       start.Add(40 * time.Millisecond),
		Expressions:   3,
		Resolved:      2,
		Unresolved:    1,
		TotalAttempts: 17,
		TotalLatency:  12 * time.Millisecond,
		Wins:          map[string]int{"duration": 2},
	}

	b, err := json.Marshal(m.ToMap())
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	got := SessionMetricsFromMap(decoded)
	assert.Equal(t, 3, got.Expressions)
	assert.Equal(t, 2, got.Resolved)
	assert.Equal(t, 1, got.Unresolved)
	assert.Equal(t, 17, got.TotalAttempts)
	assert.Equal(t, 12*time.Millisecond, got.TotalLatency)
	assert.Equal(t, 40*time.Millisecond, got.EndTime.Sub(got.StartTime))
	assert.Equal(t, map[string]int{"duration": 2}, got.Wins)
}

func TestSessionMetrics_FormatParts(t *testing.T) {
	start := time.Now()
	m := SessionMetrics{
		StartTime:     start,
		EndTime:       start.Add(5 * time.Millisecond),
		Expressions:   4,
		Resolved:      3,
		TotalAttempts: 20,
		Wins:          map[string]int{"year": 2, "decade": 2, "season": 1},
	}
	assert.Equal(t, []string{"3 resolved / 4", "20 attempts", "5ms", "top: decade (2)"}, m.FormatParts())

	assert.Empty(t, SessionMetrics{}.FormatParts())
}
