package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeResolve(text string) TryResult {
	if text != "next week" {
		return TryResult{}
	}
	return TryResult{
		OK:        true,
		Timex:     "2016-W46",
		Start:     "2016-11-14",
		End:       "2016-11-21",
		PastStart: "2016-11-14",
		PastEnd:   "2016-11-21",
		Strategy:  "one-word-period",
	}
}

func newTestTryModel(opts ...TryOption) tryModel {
	opts = append([]TryOption{WithTryStyles(NewStylesWithTheme(NoColorTheme()))}, opts...)
	return newTryModel(fakeResolve, opts...)
}

func typeText(m tryModel, s string) tryModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(tryModel)
}

func press(m tryModel, k tea.KeyType) (tryModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(tryModel), cmd
}

func TestTryModelResolvesAsYouType(t *testing.T) {
	m := typeText(newTestTryModel(), "next week")

	assert.Equal(t, "next week", m.input.Value())
	require.True(t, m.current.OK)
	assert.Equal(t, "2016-W46", m.current.Timex)

	view := m.View()
	assert.Contains(t, view, "2016-W46")
	assert.Contains(t, view, "2016-11-14 → 2016-11-21")
	assert.Contains(t, view, "one-word-period")
	assert.NotContains(t, view, "past")
}

func TestTryModelShowsMiss(t *testing.T) {
	m := typeText(newTestTryModel(), "hello")
	assert.False(t, m.current.OK)
	assert.Contains(t, m.View(), "no date period")
}

func TestTryModelSubmitKeepsEntry(t *testing.T) {
	m := typeText(newTestTryModel(), "next week")
	m, _ = press(m, tea.KeyEnter)

	require.Len(t, m.history, 1)
	assert.Equal(t, "next week", m.history[0].Text)
	assert.Equal(t, "2016-W46", m.history[0].Result.Timex)
	assert.Empty(t, m.input.Value())
	assert.False(t, m.current.OK)
	assert.Contains(t, m.View(), "✓ next week")
}

func TestTryModelSubmitIgnoresBlank(t *testing.T) {
	m := typeText(newTestTryModel(), "   ")
	m, _ = press(m, tea.KeyEnter)
	assert.Empty(t, m.history)
}

func TestTryModelHistoryRecall(t *testing.T) {
	m := newTestTryModel()
	m = typeText(m, "hello")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "next week")
	m, _ = press(m, tea.KeyEnter)

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "next week", m.input.Value())
	assert.True(t, m.current.OK)

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "hello", m.input.Value())

	// Stays on the oldest entry
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "hello", m.input.Value())

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "next week", m.input.Value())

	m, _ = press(m, tea.KeyDown)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, -1, m.recall)
}

func TestTryModelClear(t *testing.T) {
	m := typeText(newTestTryModel(), "next week")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyCtrlL)
	assert.Empty(t, m.history)
}

func TestTryModelQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, cmd := press(newTestTryModel(), k)
		assert.True(t, m.quitting)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
		assert.Empty(t, m.View())
	}
}

func TestTryModelHistoryLimit(t *testing.T) {
	m := newTestTryModel(WithHistoryLimit(2))
	for _, s := range []string{"one", "two", "three"} {
		m = typeText(m, s)
		m, _ = press(m, tea.KeyEnter)
	}
	view := m.View()
	assert.NotContains(t, view, "✗ one")
	assert.Contains(t, view, "✗ two")
	assert.Contains(t, view, "✗ three")
	assert.Less(t, strings.Index(view, "three"), strings.Index(view, "two"), "newest first")
}

func TestTryModelTruncatesToWidth(t *testing.T) {
	m := newTestTryModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 12, Height: 20})
	m = typeText(next.(tryModel), "next week")

	for _, l := range strings.Split(m.View(), "\n") {
		if strings.Contains(l, "future") {
			assert.LessOrEqual(t, ansi.StringWidth(l), 12)
			assert.True(t, strings.HasSuffix(l, "…"), l)
		}
	}
}

func TestTryModelHeader(t *testing.T) {
	m := newTestTryModel(WithTryTitle("try it"), WithTrySubtitle("reference 2016-11-07 · en"))
	view := m.View()
	assert.Contains(t, view, "try it")
	assert.Contains(t, view, "reference 2016-11-07 · en")
}
