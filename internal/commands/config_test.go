package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/dateperiod/internal/config"
	"github.com/basecamp/dateperiod/internal/output"
)

// chdirTemp moves into a fresh directory with its own global config dir.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func readJSONFile(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestConfigSetLocal(t *testing.T) {
	dir := chdirTemp(t)
	app, buf := setupTestApp(t)

	require.NoError(t, executeCommand(NewConfigCmd(), app, "set", "inclusive_end", "yes"))
	require.NoError(t, executeCommand(NewConfigCmd(), app, "set", "workers", "8"))
	require.NoError(t, executeCommand(NewConfigCmd(), app, "set", "locale", "en_GB.UTF-8"))

	got := readJSONFile(t, filepath.Join(dir, config.LocalFileName))
	assert.Equal(t, true, got["inclusive_end"])
	assert.Equal(t, float64(8), got["workers"])
	assert.Equal(t, "en_GB.UTF-8", got["locale"])

	info, err := os.Stat(filepath.Join(dir, config.LocalFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Contains(t, buf.String(), "Set locale = en_GB.UTF-8 (local)")
}

func TestConfigSetGlobal(t *testing.T) {
	dir := chdirTemp(t)
	app, _ := setupTestApp(t)

	require.NoError(t, executeCommand(NewConfigCmd(), app, "set", "format", "md", "--global"))

	got := readJSONFile(t, filepath.Join(dir, "xdg", "dateperiod", "config.json"))
	assert.Equal(t, "md", got["format"])
	assert.NoFileExists(t, filepath.Join(dir, config.LocalFileName))
}

func TestConfigSetRoundTripsThroughLoad(t *testing.T) {
	chdirTemp(t)
	app, _ := setupTestApp(t)

	require.NoError(t, executeCommand(NewConfigCmd(), app, "set", "calendar_mode", "true"))
	require.NoError(t, executeCommand(NewConfigCmd(), app, "set", "verbose", "1"))

	cfg, err := config.Load(config.FlagOverrides{})
	require.NoError(t, err)
	assert.True(t, cfg.CalendarMode)
	assert.Equal(t, string(config.SourceLocal), cfg.Sources["calendar_mode"])
	require.NotNil(t, cfg.Verbose)
	assert.Equal(t, 1, *cfg.Verbose)
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown key", []string{"set", "colour", "red"}, output.CodeUsage},
		{"bool", []string{"set", "stats", "maybe"}, output.CodeUsage},
		{"verbose range", []string{"set", "verbose", "3"}, output.CodeUsage},
		{"workers", []string{"set", "workers", "0"}, output.CodeUsage},
		{"format", []string{"set", "format", "yaml"}, output.CodeUsage},
		{"locale", []string{"set", "locale", "ja_JP"}, output.CodeLocale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			app, _ := setupTestApp(t)

			err := executeCommand(NewConfigCmd(), app, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, output.AsError(err).Code)
			assert.NoFileExists(t, filepath.Join(dir, config.LocalFileName))
		})
	}
}

func TestConfigUnset(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, config.LocalFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "md", "workers": 2}`), 0o600))

	app, buf := setupTestApp(t)
	require.NoError(t, executeCommand(NewConfigCmd(), app, "unset", "format"))
	assert.Contains(t, buf.String(), `"unset"`)

	got := readJSONFile(t, path)
	assert.NotContains(t, got, "format")
	assert.Equal(t, float64(2), got["workers"])

	buf.Reset()
	require.NoError(t, executeCommand(NewConfigCmd(), app, "unset", "format"))
	assert.Contains(t, buf.String(), `"not_set"`)
}

func TestConfigUnsetMissingFile(t *testing.T) {
	chdirTemp(t)
	app, buf := setupTestApp(t)

	require.NoError(t, executeCommand(NewConfigCmd(), app, "unset", "format"))
	assert.Contains(t, buf.String(), `"not_found"`)
}

func TestConfigInit(t *testing.T) {
	dir := chdirTemp(t)
	app, buf := setupTestApp(t)

	require.NoError(t, executeCommand(NewConfigCmd(), app, "init"))
	assert.Empty(t, readJSONFile(t, filepath.Join(dir, config.LocalFileName)))
	assert.Contains(t, buf.String(), `"created"`)

	buf.Reset()
	require.NoError(t, executeCommand(NewConfigCmd(), app, "init"))
	assert.Contains(t, buf.String(), `"exists"`)
}

func TestConfigShow(t *testing.T) {
	chdirTemp(t)
	app, buf := setupTestApp(t)
	app.Config.Sources["locale"] = string(config.SourceFlag)
	stats := true
	app.Config.Stats = &stats

	require.NoError(t, executeCommand(NewConfigCmd(), app, "show"))

	var rows []map[string]string
	env := decodeEnvelope(t, buf, &rows)
	assert.Equal(t, "Effective configuration", env.Summary)

	byName := make(map[string]map[string]string, len(rows))
	for _, r := range rows {
		byName[r["name"]] = r
	}
	assert.Equal(t, "en-US", byName["locale"]["value"])
	assert.Equal(t, "flag", byName["locale"]["source"])
	assert.Equal(t, "2", byName["workers"]["value"])
	assert.Equal(t, "true", byName["stats"]["value"])
	assert.Equal(t, "default", byName["stats"]["source"])
	assert.NotContains(t, byName, "verbose")
	assert.Equal(t, "locale", rows[0]["name"])
}

func TestParseBoolFlag(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"true", true, true},
		{"ON", true, true},
		{" 1 ", true, true},
		{"no", false, true},
		{"0", false, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got, ok := parseBoolFlag(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}
