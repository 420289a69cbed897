package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/output"
	"github.com/basecamp/dateperiod/internal/tui"
)

// stubTry swaps the terminal check and the prompt for the test's duration.
func stubTry(t *testing.T, interactive bool, run func(tui.ResolveFunc, ...tui.TryOption) ([]tui.TryEntry, error)) {
	t.Helper()
	origRun, origInteractive := runTry, isInteractive
	t.Cleanup(func() {
		runTry, isInteractive = origRun, origInteractive
	})
	runTry = run
	isInteractive = func(*appctx.App) bool { return interactive }
}

func TestTryNeedsTerminal(t *testing.T) {
	app, _ := setupTestApp(t)
	stubTry(t, false, func(tui.ResolveFunc, ...tui.TryOption) ([]tui.TryEntry, error) {
		t.Fatal("prompt should not open")
		return nil, nil
	})

	err := executeCommand(NewTryCmd(), app)
	require.Error(t, err)
	assert.Equal(t, output.CodeUsage, output.AsError(err).Code)
}

func TestTryOutputsKeptEntries(t *testing.T) {
	app, buf := setupTestApp(t)
	stubTry(t, true, func(resolve tui.ResolveFunc, _ ...tui.TryOption) ([]tui.TryEntry, error) {
		return []tui.TryEntry{
			{Text: "next week", Result: resolve("next week")},
			{Text: "hello world", Result: resolve("hello world")},
		}, nil
	})

	require.NoError(t, executeCommand(NewTryCmd(), app))

	var periods []Period
	env := decodeEnvelope(t, buf, &periods)
	assert.Equal(t, "2 kept", env.Summary)
	require.Len(t, periods, 2)
	assert.Equal(t, "2016-W46", periods[0].Timex)
	assert.Equal(t, "one-word-period", periods[0].Strategy)
	assert.False(t, periods[1].Resolved)
}

func TestTryNothingKept(t *testing.T) {
	app, buf := setupTestApp(t)
	stubTry(t, true, func(tui.ResolveFunc, ...tui.TryOption) ([]tui.TryEntry, error) {
		return nil, nil
	})

	require.NoError(t, executeCommand(NewTryCmd(), app))
	assert.Empty(t, buf.String())
}

func TestTryBadLocaleBeforePrompt(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Config.Locale = "ja_JP"
	stubTry(t, true, func(tui.ResolveFunc, ...tui.TryOption) ([]tui.TryEntry, error) {
		t.Fatal("prompt should not open")
		return nil, nil
	})

	err := executeCommand(NewTryCmd(), app)
	require.Error(t, err)
	assert.Equal(t, output.CodeLocale, output.AsError(err).Code)
}
