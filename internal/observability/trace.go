package observability

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// TraceWriter outputs human-readable trace information to stderr.
// It formats output with timestamps relative to session start.
type TraceWriter struct {
	mu        sync.Mutex
	writer    io.Writer
	startTime time.Time
}

// NewTraceWriter creates a new TraceWriter that writes to stderr.
func NewTraceWriter() *TraceWriter {
	return &TraceWriter{
		writer:    os.Stderr,
		startTime: time.Now(),
	}
}

// NewTraceWriterTo creates a new TraceWriter that writes to the given writer.
func NewTraceWriterTo(w io.Writer) *TraceWriter {
	return &TraceWriter{
		writer:    w,
		startTime: time.Now(),
	}
}

// WriteExpressionStart writes an expression start trace line.
// Format: [0.234s] Resolving "next two weeks"
func (t *TraceWriter) WriteExpressionStart(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime).Seconds()
	fmt.Fprintf(t.writer, "[%.3fs] Resolving %q\n", elapsed, text)
}

// WriteExpressionEnd writes an expression completion trace line.
// Format: [0.234s] Resolved "next two weeks" via duration (1ms)
func (t *TraceWriter) WriteExpressionEnd(text, strategy string, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime).Seconds()
	if strategy == "" {
		fmt.Fprintf(t.writer, "[%.3fs] Unresolved %q (%dms)\n", elapsed, text, duration.Milliseconds())
		return
	}
	fmt.Fprintf(t.writer, "[%.3fs] Resolved %q via %s (%dms)\n", elapsed, text, strategy, duration.Milliseconds())
}

// WriteStrategyStart writes a strategy attempt trace line.
// Format: [0.234s]   -> month-with-year
func (t *TraceWriter) WriteStrategyStart(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime).Seconds()
	fmt.Fprintf(t.writer, "[%.3fs]   -> %s\n", elapsed, name)
}

// WriteStrategyEnd writes a strategy outcome trace line.
// Format: [0.234s]   <- match (45µs) or [0.234s]   <- miss (12µs)
func (t *TraceWriter) WriteStrategyEnd(name string, ok bool, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime).Seconds()
	outcome := "miss"
	if ok {
		outcome = "match"
	}
	fmt.Fprintf(t.writer, "[%.3fs]   <- %s %s (%dµs)\n", elapsed, outcome, name, duration.Microseconds())
}

// Reset resets the start time for relative timestamps.
func (t *TraceWriter) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startTime = time.Now()
}
