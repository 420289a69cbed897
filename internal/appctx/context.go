// Package appctx provides application context helpers.
package appctx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/basecamp/dateperiod/internal/calendar"
	"github.com/basecamp/dateperiod/internal/config"
	"github.com/basecamp/dateperiod/internal/dateparse"
	"github.com/basecamp/dateperiod/internal/dateperiod"
	"github.com/basecamp/dateperiod/internal/locale"
	"github.com/basecamp/dateperiod/internal/observability"
	"github.com/basecamp/dateperiod/internal/output"
)

// contextKey is a private type for context keys.
type contextKey string

const appKey contextKey = "app"

// App holds the shared application context for all commands.
type App struct {
	Config *config.Config
	Output *output.Writer
	Logger *slog.Logger

	// Observability
	Collector *observability.SessionCollector
	Hooks     *observability.CLIHooks

	// Flags holds the global flag values
	Flags GlobalFlags

	// Stdout and Stderr default to the process streams. Set them before
	// ApplyFlags.
	Stdout io.Writer
	Stderr io.Writer

	// Now is the host clock used when --ref is not given.
	Now func() time.Time

	parserOnce sync.Once
	parser     *dateperiod.Parser
	localeTag  string
	parserErr  error
}

// GlobalFlags holds values for global CLI flags.
type GlobalFlags struct {
	// Output format flags
	JSON   bool
	Quiet  bool
	MD     bool // Literal Markdown syntax output
	Styled bool // Force ANSI styled output (even when piped)
	Count  bool
	JQ     string

	// Resolver flags
	Ref string // Reference date, YYYY-MM-DD or a relative day ("yesterday")

	// Behavior flags
	Verbose int // 0=off, 1=expressions, 2=expressions+strategies (stacks with -v -v or -vv)
	Stats   bool
	NoStats bool
}

// NewApp creates a new App with the given configuration.
func NewApp(cfg *config.Config) *App {
	// Collector always runs to gather stats; hooks control output verbosity.
	// Level 0 initially; ApplyFlags sets the actual level from -v flags.
	collector := observability.NewSessionCollector()
	hooks := observability.NewCLIHooks(0, collector, observability.NewTraceWriter())

	opts := output.DefaultOptions()
	if format, err := output.ParseFormat(cfg.Format); err == nil {
		opts.Format = format
	}

	return &App{
		Config:    cfg,
		Collector: collector,
		Hooks:     hooks,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Now:       time.Now,
		Output:    output.New(opts),
	}
}

// ApplyFlags applies global flag values to the app configuration.
func (a *App) ApplyFlags() error {
	format, err := output.ParseFormat(a.Config.Format)
	if err != nil {
		return output.ErrConfig(err)
	}

	// Order matters: specific modes first
	switch {
	case a.Flags.Count:
		format = output.FormatCount
	case a.Flags.Quiet:
		format = output.FormatQuiet
	case a.Flags.JSON:
		format = output.FormatJSON
	case a.Flags.Styled:
		// Force ANSI styled output (even when piped)
		format = output.FormatStyled
	case a.Flags.MD:
		// Literal Markdown syntax (portable, pipeable to glow/bat)
		format = output.FormatMarkdown
	}

	opts := output.Options{Format: format, Writer: a.Stdout}
	if a.Flags.JQ != "" {
		code, err := output.CompileJQ(a.Flags.JQ)
		if err != nil {
			return err
		}
		opts.JQ = code
	}
	a.Output = output.New(opts)

	// Determine verbosity level from flags and DATEPERIOD_DEBUG env var
	verboseLevel := a.Flags.Verbose
	if debugEnv := os.Getenv("DATEPERIOD_DEBUG"); debugEnv != "" {
		// DATEPERIOD_DEBUG can be "1", "2", or "true" (treated as 2 for full debug)
		if level, err := strconv.Atoi(debugEnv); err == nil {
			if level > verboseLevel {
				verboseLevel = level
			}
		} else if debugEnv == "true" {
			verboseLevel = 2
		}
	}

	a.Hooks = observability.NewCLIHooks(verboseLevel, a.Collector, observability.NewTraceWriterTo(a.Stderr))

	// Apply verbose mode - enable debug logging via slog
	if verboseLevel > 0 {
		a.Logger = slog.New(slog.NewTextHandler(a.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return nil
}

// Parser returns the resolver for the configured locale, building it on
// first use. An empty locale is detected from the environment.
func (a *App) Parser() (*dateperiod.Parser, error) {
	a.parserOnce.Do(func() {
		raw := a.Config.Locale
		if raw == "" {
			raw = locale.Detect().String()
		}
		cfg, tag, err := locale.Lookup(raw)
		if err != nil {
			a.parserErr = output.ErrLocale(raw, err)
			return
		}
		a.localeTag = tag.String()
		a.parser = dateperiod.New(cfg, dateperiod.Options{
			InclusiveEnd: a.Config.InclusiveEnd,
			CalendarMode: a.Config.CalendarMode,
			Observer:     a.Hooks,
			Logger:       a.Logger,
		})
		a.Logger.Debug("resolver ready", "locale", a.localeTag,
			"inclusive_end", a.Config.InclusiveEnd, "calendar_mode", a.Config.CalendarMode)
	})
	return a.parser, a.parserErr
}

// LocaleTag returns the tag the resolver was matched to. Empty until Parser
// succeeds.
func (a *App) LocaleTag() string {
	return a.localeTag
}

// Resolve runs text through the resolver, reporting to the hooks.
func (a *App) Resolve(text string, ref time.Time) (dateperiod.ParsedPeriod, error) {
	p, err := a.Parser()
	if err != nil {
		return dateperiod.ParsedPeriod{}, err
	}
	a.Hooks.OnExpressionStart(text)
	start := time.Now()
	pp := p.ParseText(text, ref)
	a.Hooks.OnExpressionEnd(text, pp.Strategy, time.Since(start))
	return pp, nil
}

// ReferenceTime returns the --ref date, or today on the host clock.
// --ref accepts YYYY-MM-DD or anything the single-date parser reads
// relative to today ("yesterday", "last friday").
func (a *App) ReferenceTime() (time.Time, error) {
	now := a.Now()
	ref := strings.TrimSpace(a.Flags.Ref)
	if ref == "" {
		return now, nil
	}
	if d, err := calendar.Parse(ref); err == nil {
		return d.Time(), nil
	}
	r, ok := dateparse.ParseFrom(ref, calendar.FromTime(now))
	if !ok {
		return time.Time{}, output.ErrUsageHint(
			fmt.Sprintf("Invalid --ref %q", a.Flags.Ref),
			"Use YYYY-MM-DD, e.g. --ref 2016-11-07")
	}
	return r.Past.Time(), nil
}

// OK outputs a success response, automatically including stats if --stats flag is set.
func (a *App) OK(data any, opts ...output.ResponseOption) error {
	if a.statsEnabled() {
		stats := a.Collector.Summary()
		opts = append(opts, output.WithMeta("stats", stats.ToMap()))
	}
	return a.Output.OK(data, opts...)
}

// Err outputs an error response, printing stats to stderr if --stats flag is set.
func (a *App) Err(err error) error {
	// Print the error response first
	if outputErr := a.Output.Err(err); outputErr != nil {
		return outputErr
	}

	// Print stats to stderr if enabled, but not in machine-consumable modes
	if a.statsEnabled() && !a.isMachineOutput() {
		stats := a.Collector.Summary()
		a.printStatsToStderr(&stats)
	}
	return nil
}

// statsEnabled reports whether --stats is on and not overridden by --no-stats.
func (a *App) statsEnabled() bool {
	return a.Flags.Stats && !a.Flags.NoStats && a.Collector != nil
}

// isMachineOutput returns true if the output mode is intended for programmatic consumption.
// Checks both flags and config-driven format settings.
func (a *App) isMachineOutput() bool {
	if a.Flags.Quiet || a.Flags.Count || a.Flags.JQ != "" {
		return true
	}
	// Config-driven quiet mode (format: "quiet" in config file)
	if a.Config != nil && (a.Config.Format == "quiet" || a.Config.Format == "count") {
		return true
	}
	return false
}

// printStatsToStderr outputs a compact stats line to stderr.
func (a *App) printStatsToStderr(stats *observability.SessionMetrics) {
	if stats == nil {
		return
	}
	if parts := stats.FormatParts(); len(parts) > 0 {
		fmt.Fprintf(a.Stderr, "\nStats: %s\n", strings.Join(parts, " | "))
	}
}

// IsInteractive returns true if the terminal supports interactive TUI.
func (a *App) IsInteractive() bool {
	// Not interactive if any non-interactive output mode is set
	if a.Flags.JSON || a.Flags.Quiet || a.Flags.Count || a.Flags.JQ != "" {
		return false
	}

	f, ok := a.Stdout.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(f.Fd())
}

// WithApp stores the app in the context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext retrieves the app from the context.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey).(*App)
	return app
}
