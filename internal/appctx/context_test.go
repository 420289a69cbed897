package appctx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/dateperiod/internal/config"
	"github.com/basecamp/dateperiod/internal/output"
)

// newTestApp returns an App writing to buffers with a fixed clock on
// Monday 2016-11-07.
func newTestApp(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("DATEPERIOD_DEBUG", "")
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en-US"
	}
	app := NewApp(cfg)
	var stdout, stderr bytes.Buffer
	app.Stdout = &stdout
	app.Stderr = &stderr
	app.Now = func() time.Time { return time.Date(2016, 11, 7, 15, 4, 5, 0, time.Local) }
	return app, &stdout, &stderr
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	app := NewApp(cfg)

	require.NotNil(t, app)
	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Output)
	assert.NotNil(t, app.Collector)
	assert.NotNil(t, app.Hooks)
	assert.NotNil(t, app.Logger)
}

func TestWithAppAndFromContext(t *testing.T) {
	app := NewApp(&config.Config{})
	ctx := WithApp(context.Background(), app)
	assert.Same(t, app, FromContext(ctx))
}

func TestFromContextEmpty(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}

func TestApplyFlagsFormats(t *testing.T) {
	data := []map[string]any{{"text": "this week"}, {"text": "next week"}}

	tests := []struct {
		name  string
		set   func(*GlobalFlags)
		check func(t *testing.T, out string)
	}{
		{"json", func(f *GlobalFlags) { f.JSON = true }, func(t *testing.T, out string) {
			assert.Contains(t, out, `"ok": true`)
		}},
		{"quiet", func(f *GlobalFlags) { f.Quiet = true }, func(t *testing.T, out string) {
			assert.NotContains(t, out, `"ok"`)
			assert.Contains(t, out, `"this week"`)
		}},
		{"count", func(f *GlobalFlags) { f.Count = true }, func(t *testing.T, out string) {
			assert.Equal(t, "2\n", out)
		}},
		{"md", func(f *GlobalFlags) { f.MD = true }, func(t *testing.T, out string) {
			assert.Contains(t, out, "| Text |")
		}},
		{"count beats json", func(f *GlobalFlags) { f.Count = true; f.JSON = true }, func(t *testing.T, out string) {
			assert.Equal(t, "2\n", out)
		}},
		{"jq", func(f *GlobalFlags) { f.JQ = ".data[0].text" }, func(t *testing.T, out string) {
			assert.Equal(t, "this week\n", out)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, _ := newTestApp(t, &config.Config{})
			tt.set(&app.Flags)
			require.NoError(t, app.ApplyFlags())
			require.NoError(t, app.OK(data))
			tt.check(t, stdout.String())
		})
	}
}

func TestApplyFlagsInvalidJQ(t *testing.T) {
	app, _, _ := newTestApp(t, &config.Config{})
	app.Flags.JQ = ".data["
	err := app.ApplyFlags()
	require.Error(t, err)
	assert.Equal(t, output.CodeUsage, output.AsError(err).Code)
}

func TestApplyFlagsInvalidConfigFormat(t *testing.T) {
	app, _, _ := newTestApp(t, &config.Config{Format: "yaml"})
	err := app.ApplyFlags()
	require.Error(t, err)
	assert.Equal(t, output.CodeConfig, output.AsError(err).Code)
}

func TestApplyFlagsVerbose(t *testing.T) {
	app, _, stderr := newTestApp(t, &config.Config{})
	app.Flags.Verbose = 2
	require.NoError(t, app.ApplyFlags())
	assert.Equal(t, 2, app.Hooks.Level())

	_, err := app.Resolve("next week", app.Now())
	require.NoError(t, err)
	out := stderr.String()
	assert.Contains(t, out, `Resolving "next week"`)
	assert.Contains(t, out, "-> month-with-year")
	assert.Contains(t, out, "level=DEBUG")
}

func TestApplyFlagsDebugEnv(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"1", 1},
		{"2", 2},
		{"true", 2},
		{"nonsense", 0},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			app, _, _ := newTestApp(t, &config.Config{})
			t.Setenv("DATEPERIOD_DEBUG", tt.env)
			require.NoError(t, app.ApplyFlags())
			assert.Equal(t, tt.want, app.Hooks.Level())
		})
	}
}

func TestResolve(t *testing.T) {
	app, _, _ := newTestApp(t, &config.Config{})
	require.NoError(t, app.ApplyFlags())

	pp, err := app.Resolve("next week", app.Now())
	require.NoError(t, err)
	require.True(t, pp.OK())
	assert.Equal(t, "2016-W46", pp.Timex)
	assert.Equal(t, "en", app.LocaleTag())

	stats := app.Collector.Summary()
	assert.Equal(t, 1, stats.Expressions)
	assert.Equal(t, 1, stats.Resolved)
	assert.Positive(t, stats.TotalAttempts)
}

func TestResolveAppliesConfigPolicy(t *testing.T) {
	app, _, _ := newTestApp(t, &config.Config{InclusiveEnd: true})
	require.NoError(t, app.ApplyFlags())

	pp, err := app.Resolve("next week", app.Now())
	require.NoError(t, err)
	require.True(t, pp.OK())
	assert.Equal(t, "2016-11-20", pp.Value.FutureResolution["endDate"])
}

func TestResolveUnsupportedLocale(t *testing.T) {
	app, _, _ := newTestApp(t, &config.Config{Locale: "ja_JP"})
	require.NoError(t, app.ApplyFlags())

	_, err := app.Resolve("next week", app.Now())
	require.Error(t, err)
	assert.Equal(t, output.CodeLocale, output.AsError(err).Code)
	assert.Equal(t, output.ExitLocale, output.AsError(err).ExitCode())
}

func TestReferenceTime(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"", "2016-11-07"},
		{"2016-03-01", "2016-03-01"},
		{"yesterday", "2016-11-06"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			app, _, _ := newTestApp(t, &config.Config{})
			app.Flags.Ref = tt.ref
			got, err := app.ReferenceTime()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestReferenceTimeInvalid(t *testing.T) {
	app, _, _ := newTestApp(t, &config.Config{})
	app.Flags.Ref = "not a date"
	_, err := app.ReferenceTime()
	require.Error(t, err)
	e := output.AsError(err)
	assert.Equal(t, output.CodeUsage, e.Code)
	assert.Contains(t, e.Message, "not a date")
}

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		set  func(*GlobalFlags)
	}{
		{"json", func(f *GlobalFlags) { f.JSON = true }},
		{"quiet", func(f *GlobalFlags) { f.Quiet = true }},
		{"count", func(f *GlobalFlags) { f.Count = true }},
		{"jq", func(f *GlobalFlags) { f.JQ = "." }},
		{"buffer", func(f *GlobalFlags) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t, &config.Config{})
			tt.set(&app.Flags)
			assert.False(t, app.IsInteractive())
		})
	}
}

// Test NoStats flag overrides Stats flag
func TestAppOKNoStatsOverridesStats(t *testing.T) {
	tests := []struct {
		name        string
		stats       bool
		noStats     bool
		expectStats bool
	}{
		{"Stats=true, NoStats=true -> no stats", true, true, false},
		{"Stats=true, NoStats=false -> stats included", true, false, true},
		{"Stats=false, NoStats=false -> no stats", false, false, false},
		{"Stats=false, NoStats=true -> no stats", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, _ := newTestApp(t, &config.Config{})
			require.NoError(t, app.ApplyFlags())
			app.Flags.Stats = tt.stats
			app.Flags.NoStats = tt.noStats

			require.NoError(t, app.OK(map[string]string{"test": "data"}))

			var resp map[string]any
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))

			meta, hasMeta := resp["meta"].(map[string]any)
			hasStats := hasMeta && meta["stats"] != nil
			assert.Equal(t, tt.expectStats, hasStats)
		})
	}
}

func TestAppErrPrintsStatsToStderr(t *testing.T) {
	tests := []struct {
		name        string
		set         func(*GlobalFlags)
		expectStats bool
	}{
		{"stats", func(f *GlobalFlags) { f.Stats = true }, true},
		{"no stats", func(f *GlobalFlags) {}, false},
		{"quiet suppresses stats", func(f *GlobalFlags) { f.Stats = true; f.Quiet = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, stderr := newTestApp(t, &config.Config{})
			tt.set(&app.Flags)
			require.NoError(t, app.ApplyFlags())

			_, err := app.Resolve("hello world", app.Now())
			require.NoError(t, err)
			require.NoError(t, app.Err(output.ErrNoMatch("hello world")))

			assert.Contains(t, stdout.String(), "no_match")
			if tt.expectStats {
				assert.Contains(t, stderr.String(), "Stats: 0 resolved / 1")
			} else {
				assert.NotContains(t, stderr.String(), "Stats:")
			}
		})
	}
}
