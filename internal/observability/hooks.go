package observability

import (
	"sync"
	"time"

	"github.com/basecamp/dateperiod/internal/dateperiod"
)

// Verify CLIHooks implements dateperiod.Observer at compile time.
var _ dateperiod.Observer = (*CLIHooks)(nil)

// CLIHooks observes resolver runs for the CLI.
// It supports configurable verbosity levels:
//   - 0: Silent (collect stats only, no output)
//   - 1: Expressions only (one line per resolved expression)
//   - 2: Expressions + strategies (every strategy attempt)
type CLIHooks struct {
	mu        sync.Mutex
	level     int
	collector *SessionCollector
	writer    *TraceWriter
}

// NewCLIHooks creates a new CLIHooks with the given verbosity level.
// If collector is nil, metrics are not collected.
// If writer is nil, no trace output is produced.
func NewCLIHooks(level int, collector *SessionCollector, writer *TraceWriter) *CLIHooks {
	return &CLIHooks{
		level:     level,
		collector: collector,
		writer:    writer,
	}
}

// SetLevel changes the verbosity level at runtime.
func (h *CLIHooks) SetLevel(level int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.level = level
}

// Level returns the current verbosity level.
func (h *CLIHooks) Level() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level
}

func (h *CLIHooks) snapshot() (int, *SessionCollector, *TraceWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level, h.collector, h.writer
}

// OnExpressionStart is called before an expression enters the resolver.
func (h *CLIHooks) OnExpressionStart(text string) {
	level, _, writer := h.snapshot()
	if level >= 1 && writer != nil {
		writer.WriteExpressionStart(text)
	}
}

// OnExpressionEnd is called with the winning strategy, or "" when nothing
// resolved.
func (h *CLIHooks) OnExpressionEnd(text, strategy string, duration time.Duration) {
	level, collector, writer := h.snapshot()
	if collector != nil {
		collector.RecordExpression(ExpressionMetrics{Text: text, Strategy: strategy, Duration: duration})
	}
	if level >= 1 && writer != nil {
		writer.WriteExpressionEnd(text, strategy, duration)
	}
}

// OnStrategyStart implements dateperiod.Observer.
func (h *CLIHooks) OnStrategyStart(name string) {
	level, _, writer := h.snapshot()
	if level >= 2 && writer != nil {
		writer.WriteStrategyStart(name)
	}
}

// OnStrategyEnd implements dateperiod.Observer.
func (h *CLIHooks) OnStrategyEnd(name string, ok bool, elapsed time.Duration) {
	level, collector, writer := h.snapshot()
	if collector != nil {
		collector.RecordAttempt(AttemptMetrics{Strategy: name, OK: ok, Duration: elapsed})
	}
	if level >= 2 && writer != nil {
		writer.WriteStrategyEnd(name, ok, elapsed)
	}
}
