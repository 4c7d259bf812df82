// Package ui is the terminal front end of the calculator: a Bubble Tea model
// that turns key presses and mouse clicks into session input and renders the
// display, history and keypad in the active palette.
package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/SciCalc/internal/calc"
	"github.com/yildizm/SciCalc/internal/keypad"
	"github.com/yildizm/SciCalc/internal/logger"
	"github.com/yildizm/SciCalc/internal/session"
)

// Options configures the model
type Options struct {
	HistoryHeight int
	Mouse         bool
	Logger        *logger.Logger
}

// Model is the calculator TUI
type Model struct {
	session *session.Session
	rows    [][]keypad.Button
	keys    keyMap
	help    help.Model
	history viewport.Model
	log     *logger.Logger

	historyHeight int
	mouse         bool

	focusRow int
	focusCol int
	notice   string // pending error notice, dismissed by the next key

	width    int
	height   int
	quitting bool
}

// NewModel creates a model driving s
func NewModel(s *session.Session, opts Options) *Model {
	if opts.HistoryHeight < 1 {
		opts.HistoryHeight = 6
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	m := &Model{
		session:       s,
		rows:          keypad.Layout(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		history:       viewport.New(innerWidth, opts.HistoryHeight),
		log:           log.WithComponent("ui"),
		historyHeight: opts.HistoryHeight,
		mouse:         opts.Mouse,
	}
	m.refreshHistory()
	return m
}

// Session returns the session the model drives
func (m *Model) Session() *session.Session {
	return m.session
}

// Notice returns the pending error notice, if any
func (m *Model) Notice() string {
	return m.notice
}

// Focus returns the row and column of the focused keypad button
func (m *Model) Focus() (row, col int) {
	return m.focusRow, m.focusCol
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// The notice is modal: the key that dismisses it does nothing else
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Theme):
		m.session.ToggleTheme()
	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(0, 1)
	case key.Matches(msg, m.keys.Activate):
		m.press(m.rows[m.focusRow][m.focusCol].Label)
	case key.Matches(msg, m.keys.Evaluate):
		m.apply(m.session.Handle(session.Event{Kind: session.EventCommit}))
	case key.Matches(msg, m.keys.Backspace):
		m.apply(m.session.Handle(session.Event{Kind: session.EventDelete}))
	case key.Matches(msg, m.keys.ScrollUp):
		m.history.HalfViewUp()
	case key.Matches(msg, m.keys.ScrollDn):
		m.history.HalfViewDown()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == '^' {
				m.press(keypad.Power)
				continue
			}
			m.apply(m.session.Handle(session.Event{Kind: session.EventKey, Char: r}))
		}
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.history.LineUp(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.history.LineDown(1)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	x, y := m.keypadOrigin()
	b, ok := hitTest(m.rows, msg.X-x, msg.Y-y)
	if !ok {
		return m, nil
	}
	m.focusRow, m.focusCol = b.Row, b.Col
	m.press(b.Label)
	return m, nil
}

// press activates a keypad button
func (m *Model) press(label string) {
	m.apply(m.session.Handle(session.Event{Kind: session.EventButton, Label: label}))
}

// apply refreshes derived state after an input and raises the notice for a
// failed evaluation
func (m *Model) apply(err error) {
	if err != nil {
		m.notice = err.Error()
		m.log.WarnWithFields("evaluation failed", []logger.Field{logger.Err(err)})
	}
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	var lines []string
	for _, entry := range m.session.History() {
		lines = append(lines, historyLines(entry, innerWidth)...)
	}
	m.history.SetContent(strings.Join(lines, "\n"))
	m.history.GotoBottom()
}

// historyLines lays out one "expr = result" entry in width columns. An entry
// that does not fit gets the result on a line of its own, so the viewport
// never cuts it off; the expression wraps above it.
func historyLines(entry string, width int) []string {
	if lipgloss.Width(entry) <= width {
		return []string{entry}
	}

	expr, result, ok := cutLast(entry, " = ")
	if !ok {
		return strings.Split(wrap(entry, width), "\n")
	}
	lines := strings.Split(wrap(expr, width), "\n")
	return append(lines, tail("= "+result, width))
}

// cutLast splits s around the last instance of sep
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// wrap breaks s into lines of at most width cells
func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// moveFocus moves the keypad cursor, wrapping at the edges and clamping the
// column on the short last row
func (m *Model) moveFocus(dRow, dCol int) {
	rows := len(m.rows)
	m.focusRow = (m.focusRow + dRow + rows) % rows
	cols := len(m.rows[m.focusRow])
	if dCol != 0 {
		m.focusCol = (m.focusCol + dCol + cols) % cols
	}
	if m.focusCol >= cols {
		m.focusCol = cols - 1
	}
}

// keypadOrigin returns the screen position of the keypad's top-left cell.
// It mirrors the section heights rendered by View: title, bordered history,
// bordered display, status line and a blank separator.
func (m *Model) keypadOrigin() (x, y int) {
	return 0, 1 + (m.historyHeight + 2) + 3 + 1 + 1
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	styles := NewStyles(m.session.Theme().Palette())
	if m.notice != "" {
		return m.renderNotice(styles)
	}

	sections := []string{
		m.renderTitle(styles),
		styles.History.Height(m.historyHeight).Render(m.history.View()),
		m.renderDisplay(styles),
		m.renderStatus(styles),
		"",
		renderKeypad(styles, m.rows, m.focusRow, m.focusCol),
		"",
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle(s *Styles) string {
	title := s.Title.Render("SciCalc")
	name := s.Muted.Render(m.session.Theme().Name())
	pad := keypadWidth - lipgloss.Width(title) - lipgloss.Width(name)
	if pad < 1 {
		pad = 1
	}
	return title + strings.Repeat(" ", pad) + name
}

func (m *Model) renderDisplay(s *Styles) string {
	text := tail(m.session.Buffer(), innerWidth)
	if m.session.ShowingError() {
		return s.Error.Render(text)
	}
	return s.Display.Render(text)
}

func (m *Model) renderStatus(s *Styles) string {
	status := fmt.Sprintf("%d in history", m.session.HistoryLen())
	if mem := m.session.Memory(); mem != 0 {
		status = "M = " + calc.Format(mem) + "   " + status
	}
	return s.Status.Render(status)
}

func (m *Model) renderNotice(s *Styles) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Error"),
		"",
		m.notice,
		"",
		s.Muted.Render("Press any key to continue"),
	)
	box := s.Notice.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// tail keeps the last width runes of s, marking the cut with an ellipsis
func tail(s string, width int) string {
	if width < 2 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return "…" + string(runes[len(runes)-width+1:])
}
