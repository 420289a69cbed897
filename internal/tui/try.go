package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// TryResult is one resolution shown by the try prompt.
type TryResult struct {
	OK        bool
	Timex     string
	Start     string
	End       string
	PastStart string
	PastEnd   string
	Mod       string
	Comment   string
	Strategy  string
}

// TryEntry is an expression the user submitted with its resolution.
type TryEntry struct {
	Text   string
	Result TryResult
}

// ResolveFunc resolves one expression for the try prompt.
type ResolveFunc func(text string) TryResult

type tryKeyMap struct {
	Submit key.Binding
	Prev   key.Binding
	Next   key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func (k tryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Prev, k.Clear, k.Quit}
}

func (k tryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Prev, k.Next}, {k.Clear, k.Quit}}
}

func defaultTryKeys() tryKeyMap {
	return tryKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep")),
		Prev:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "history")),
		Next:   key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Clear:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// tryModel is the bubbletea model for the interactive resolver prompt.
type tryModel struct {
	input    textinput.Model
	resolve  ResolveFunc
	current  TryResult
	history  []TryEntry
	recall   int // index into history while browsing, -1 otherwise
	keys     tryKeyMap
	help     help.Model
	styles   *Styles
	title    string
	subtitle string
	width    int
	limit    int
	quitting bool
}

// TryOption configures the try prompt.
type TryOption func(*tryModel)

// WithTryTitle sets the header line.
func WithTryTitle(title string) TryOption {
	return func(m *tryModel) {
		m.title = title
	}
}

// WithTrySubtitle sets the muted line under the header.
func WithTrySubtitle(subtitle string) TryOption {
	return func(m *tryModel) {
		m.subtitle = subtitle
	}
}

// WithHistoryLimit caps how many kept expressions are shown.
func WithHistoryLimit(n int) TryOption {
	return func(m *tryModel) {
		m.limit = n
	}
}

// WithTryStyles overrides the resolved theme.
func WithTryStyles(s *Styles) TryOption {
	return func(m *tryModel) {
		m.styles = s
	}
}

func newTryModel(resolve ResolveFunc, opts ...TryOption) tryModel {
	ti := textinput.New()
	ti.Placeholder = "the last week of july"
	ti.Prompt = "> "
	ti.Width = 48
	ti.Focus()

	m := tryModel{
		input:   ti,
		resolve: resolve,
		recall:  -1,
		keys:    defaultTryKeys(),
		help:    help.New(),
		title:   "dateperiod try",
		limit:   8,
		width:   80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.styles == nil {
		m.styles = NewStyles()
	}
	m.input.Cursor.Style = m.styles.Cursor
	return m
}

func (m tryModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.history = append(m.history, TryEntry{Text: text, Result: m.current})
			m.input.Reset()
			m.current = TryResult{}
			m.recall = -1
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.history) == 0 {
				return m, nil
			}
			switch {
			case m.recall == -1:
				m.recall = len(m.history) - 1
			case m.recall > 0:
				m.recall--
			}
			m.setInput(m.history[m.recall].Text)
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.recall == -1 {
				return m, nil
			}
			if m.recall < len(m.history)-1 {
				m.recall++
				m.setInput(m.history[m.recall].Text)
			} else {
				m.recall = -1
				m.setInput("")
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.history = nil
			m.recall = -1
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.recall = -1
		m.refresh()
	}
	return m, cmd
}

func (m *tryModel) setInput(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.refresh()
}

func (m *tryModel) refresh() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.resolve == nil {
		m.current = TryResult{}
		return
	}
	m.current = m.resolve(text)
}

func (m tryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title) + "\n")
	if m.subtitle != "" {
		b.WriteString(m.styles.Subtitle.Render(m.subtitle) + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n\n")

	if strings.TrimSpace(m.input.Value()) != "" {
		b.WriteString(m.renderResult(m.current) + "\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n" + m.styles.Muted.Render("Kept") + "\n")
		start := 0
		if m.limit > 0 && len(m.history) > m.limit {
			start = len(m.history) - m.limit
		}
		for i := len(m.history) - 1; i >= start; i-- {
			b.WriteString(m.line(m.renderEntry(m.history[i])) + "\n")
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m tryModel) renderResult(r TryResult) string {
	if !r.OK {
		return m.line(m.styles.RenderStatus(false, "no date period"))
	}

	rows := [][2]string{{"timex", r.Timex}}
	if r.Start != "" {
		rows = append(rows, [2]string{"future", r.Start + " → " + r.End})
		if r.PastStart != r.Start || r.PastEnd != r.End {
			rows = append(rows, [2]string{"past", r.PastStart + " → " + r.PastEnd})
		}
	}
	if r.Mod != "" {
		rows = append(rows, [2]string{"mod", r.Mod})
	}
	if r.Comment != "" {
		rows = append(rows, [2]string{"comment", r.Comment})
	}
	rows = append(rows, [2]string{"strategy", r.Strategy})

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = m.line(m.styles.RenderKeyValue(row[0], row[1]))
	}
	return strings.Join(lines, "\n")
}

func (m tryModel) renderEntry(e TryEntry) string {
	if !e.Result.OK {
		return m.styles.Error.Render("✗ ") + m.styles.Body.Render(e.Text)
	}
	return m.styles.Success.Render("✓ ") + m.styles.Body.Render(e.Text) +
		m.styles.Muted.Render("  "+e.Result.Timex)
}

// line truncates s to the terminal width.
func (m tryModel) line(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}

// RunTry runs the interactive prompt until the user quits and returns the
// expressions they kept.
func RunTry(resolve ResolveFunc, opts ...TryOption) ([]TryEntry, error) {
	program := tea.NewProgram(newTryModel(resolve, opts...))

	finalModel, err := program.Run()
	if err != nil {
		return nil, err
	}

	final := finalModel.(tryModel) //nolint:errcheck // type assertion always succeeds here
	return final.history, nil
}
