// Package observability provides metrics collection and tracing for resolver
// runs.
package observability

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// AttemptMetrics holds timing and outcome for one strategy attempt.
type AttemptMetrics struct {
	Strategy string
	OK       bool
	Duration time.Duration
}

// ExpressionMetrics holds the outcome of resolving one expression.
type ExpressionMetrics struct {
	Text     string
	Strategy string // winning strategy, empty when unresolved
	Duration time.Duration
}

// SessionMetrics aggregates metrics for an entire CLI session.
type SessionMetrics struct {
	StartTime     time.Time
	EndTime       time.Time
	Expressions   int
	Resolved      int
	Unresolved    int
	TotalAttempts int
	TotalLatency  time.Duration
	Wins          map[string]int
}

// SessionCollector accumulates metrics across a CLI session.
// It is safe for concurrent use and uses counters instead of unbounded slices.
type SessionCollector struct {
	mu sync.Mutex

	startTime     time.Time
	expressions   int
	resolved      int
	unresolved    int
	totalAttempts int
	totalLatency  time.Duration
	wins          map[string]int
}

// NewSessionCollector creates a new SessionCollector.
func NewSessionCollector() *SessionCollector {
	return &SessionCollector{
		startTime: time.Now(),
		wins:      make(map[string]int),
	}
}

// RecordAttempt records one strategy attempt.
func (c *SessionCollector) RecordAttempt(m AttemptMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalAttempts++
	if m.OK {
		c.wins[m.Strategy]++
	}
}

// RecordExpression records the outcome of one expression.
func (c *SessionCollector) RecordExpression(m ExpressionMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expressions++
	c.totalLatency += m.Duration
	if m.Strategy != "" {
		c.resolved++
	} else {
		c.unresolved++
	}
}

// Summary returns aggregated metrics for the session.
func (c *SessionCollector) Summary() SessionMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return SessionMetrics{
		StartTime:     c.startTime,
		EndTime:       time.Now(),
		Expressions:   c.expressions,
		Resolved:      c.resolved,
		Unresolved:    c.unresolved,
		TotalAttempts: c.totalAttempts,
		TotalLatency:  c.totalLatency,
		Wins:          maps.Clone(c.wins),
	}
}

// Reset clears all collected metrics and resets the start time.
func (c *SessionCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startTime = time.Now()
	c.expressions = 0
	c.resolved = 0
	c.unresolved = 0
	c.totalAttempts = 0
	c.totalLatency = 0
	c.wins = make(map[string]int)
}

// ToMap converts the metrics to the shape carried in a response's meta.
func (m SessionMetrics) ToMap() map[string]any {
	wins := make(map[string]any, len(m.Wins))
	for k, v := range m.Wins {
		wins[k] = v
	}
	return map[string]any{
		"expressions": m.Expressions,
		"resolved":    m.Resolved,
		"unresolved":  m.Unresolved,
		"attempts":    m.TotalAttempts,
		"latency_ms":  m.TotalLatency.Milliseconds(),
		"elapsed_ms":  m.EndTime.Sub(m.StartTime).Milliseconds(),
		"wins":        wins,
	}
}

// SessionMetricsFromMap reverses ToMap. Numbers may arrive as int, int64 or
// float64 depending on whether the map went through JSON.
func SessionMetricsFromMap(in map[string]any) SessionMetrics {
	m := SessionMetrics{
		Expressions:   toInt(in["expressions"]),
		Resolved:      toInt(in["resolved"]),
		Unresolved:    toInt(in["unresolved"]),
		TotalAttempts: toInt(in["attempts"]),
		TotalLatency:  time.Duration(toInt(in["latency_ms"])) * time.Millisecond,
	}
	m.EndTime = m.StartTime.Add(time.Duration(toInt(in["elapsed_ms"])) * time.Millisecond)
	if wins, ok := in["wins"].(map[string]any); ok {
		m.Wins = make(map[string]int, len(wins))
		for k, v := range wins {
			m.Wins[k] = toInt(v)
		}
	}
	return m
}

// FormatParts renders the metrics as short labelled parts for a one-line
// summary. Zero-valued parts are omitted.
func (m SessionMetrics) FormatParts() []string {
	var parts []string
	if m.Expressions > 0 {
		parts = append(parts, fmt.Sprintf("%d resolved / %d", m.Resolved, m.Expressions))
	}
	if m.TotalAttempts > 0 {
		parts = append(parts, fmt.Sprintf("%d attempts", m.TotalAttempts))
	}
	if elapsed := m.EndTime.Sub(m.StartTime); elapsed > 0 {
		parts = append(parts, fmt.Sprintf("%dms", elapsed.Milliseconds()))
	}
	if top, n := m.topStrategy(); n > 0 {
		parts = append(parts, fmt.Sprintf("top: %s (%d)", top, n))
	}
	return parts
}

func (m SessionMetrics) topStrategy() (string, int) {
	var best string
	n := 0
	for _, name := range slices.Sorted(maps.Keys(m.Wins)) {
		if m.Wins[name] > n {
			best, n = name, m.Wins[name]
		}
	}
	return best, n
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
