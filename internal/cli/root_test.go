package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/config"
	"github.com/basecamp/dateperiod/internal/output"
)

func TestResolvePreferences(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name        string
		cfg         *config.Config
		setFlags    map[string]string // flags to Set (marks Changed)
		flags       appctx.GlobalFlags
		wantStats   bool
		wantVerbose int
	}{
		{
			name:      "nothing configured",
			cfg:       &config.Config{},
			wantStats: false,
		},
		{
			name:      "config true enables stats",
			cfg:       &config.Config{Stats: boolPtr(true)},
			wantStats: true,
		},
		{
			name:      "explicit --stats flag overrides config false",
			cfg:       &config.Config{Stats: boolPtr(false)},
			setFlags:  map[string]string{"stats": "true"},
			flags:     appctx.GlobalFlags{Stats: true},
			wantStats: true,
		},
		{
			name:      "explicit --no-stats overrides config true",
			cfg:       &config.Config{Stats: boolPtr(true)},
			setFlags:  map[string]string{"no-stats": "true"},
			flags:     appctx.GlobalFlags{NoStats: true},
			wantStats: false,
		},
		{
			name:      "--no-stats=false does NOT suppress config fallback",
			cfg:       &config.Config{Stats: boolPtr(true)},
			setFlags:  map[string]string{"no-stats": "false"},
			flags:     appctx.GlobalFlags{NoStats: false},
			wantStats: true,
		},
		{
			name:        "config verbose overrides default",
			cfg:         &config.Config{Verbose: intPtr(2)},
			wantVerbose: 2,
		},
		{
			name:        "explicit --verbose overrides config",
			cfg:         &config.Config{Verbose: intPtr(2)},
			setFlags:    map[string]string{"verbose": "1"},
			flags:       appctx.GlobalFlags{Verbose: 1},
			wantVerbose: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			var stats, noStats bool
			var verbose int
			cmd.PersistentFlags().BoolVar(&stats, "stats", false, "")
			cmd.PersistentFlags().BoolVar(&noStats, "no-stats", false, "")
			cmd.PersistentFlags().IntVar(&verbose, "verbose", 0, "")

			for f, v := range tt.setFlags {
				_ = cmd.PersistentFlags().Set(f, v)
			}

			flags := &tt.flags
			resolvePreferences(cmd, tt.cfg, flags)

			assert.Equal(t, tt.wantStats, flags.Stats, "Stats")
			assert.Equal(t, tt.wantVerbose, flags.Verbose, "Verbose")
		})
	}
}

func TestTransformCobraError(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flag needs an argument: --ref", "--ref requires a value"},
		{"unknown flag: --bogus", "Unknown option: --bogus"},
		{"unknown shorthand flag: 'z' in -z", "Unknown option: -z"},
		{"requires at least 1 arg(s), only received 0", "Expression required"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e := output.AsError(transformCobraError(errors.New(tt.in)))
			assert.Equal(t, output.CodeUsage, e.Code)
			assert.Equal(t, tt.want, e.Message)
		})
	}

	other := errors.New("boom")
	assert.Same(t, other, transformCobraError(other))
}

// isolate points config lookups at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("DATEPERIOD_LOCALE", "")
	t.Setenv("DATEPERIOD_FORMAT", "")
	t.Setenv("DATEPERIOD_DEBUG", "")
	t.Setenv("DATEPERIOD_INCLUSIVE_END", "")
	t.Setenv("DATEPERIOD_STATS", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "en_US.UTF-8")
	t.Chdir(dir)
	return dir
}

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunResolvesBareText(t *testing.T) {
	isolate(t)

	code, out, _ := runArgs(t, "next", "week", "--ref", "2016-11-07", "--json")
	require.Equal(t, 0, code)

	var resp struct {
		OK   bool           `json:"ok"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "2016-W46", resp.Data["timex"])
	assert.Equal(t, "2016-11-14", resp.Data["start"])
	assert.Equal(t, "2016-11-21", resp.Data["end"])
}

func TestRunInclusiveEndFlag(t *testing.T) {
	isolate(t)

	code, out, _ := runArgs(t, "next week", "--ref", "2016-11-07", "--inclusive-end", "--jq", ".data.end")
	require.Equal(t, 0, code)
	assert.Equal(t, "2016-11-20\n", out)
}

func TestRunNoMatchExitCode(t *testing.T) {
	isolate(t)

	code, out, _ := runArgs(t, "hello", "world", "--json")
	assert.Equal(t, output.ExitNoMatch, code)
	assert.Contains(t, out, `"no_match"`)
}

func TestRunUnknownFlag(t *testing.T) {
	isolate(t)

	code, out, _ := runArgs(t, "next week", "--bogus", "--json")
	assert.Equal(t, output.ExitUsage, code)
	assert.Contains(t, out, "Unknown option: --bogus")
}

func TestRunBadLocale(t *testing.T) {
	isolate(t)

	code, _, _ := runArgs(t, "next week", "--locale", "ja_JP", "--json")
	assert.Equal(t, output.ExitLocale, code)
}

func TestRunBadConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.LocalFileName), []byte("{not json"), 0o600))

	code, out, _ := runArgs(t, "next week", "--json")
	assert.Equal(t, output.ExitConfig, code)
	assert.Contains(t, out, `"config"`)
}

func TestRunLocalConfigApplies(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.LocalFileName),
		[]byte(`{"inclusive_end": true, "format": "quiet"}`), 0o600))

	code, out, _ := runArgs(t, "next week", "--ref", "2016-11-07")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"end": "2016-11-20"`)
	assert.NotContains(t, out, `"ok"`)
}

func TestRunVersionFlag(t *testing.T) {
	isolate(t)

	code, out, _ := runArgs(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "dateperiod version")
}

func TestRunNoArgsShowsHelp(t *testing.T) {
	isolate(t)

	code, out, _ := runArgs(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")
}
