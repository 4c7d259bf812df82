package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yildizm/SciCalc/internal/keypad"
	"github.com/yildizm/SciCalc/internal/session"
)

func newTestModel() *Model {
	return NewModel(session.New(), Options{HistoryHeight: 4, Mouse: true})
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func sendKey(m *Model, t tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: t})
	return cmd
}

func click(m *Model, row, col int) {
	ox, oy := m.keypadOrigin()
	x, y := cellOrigin(row, col)
	m.Update(tea.MouseMsg{
		X:      ox + x + cellWidth/2,
		Y:      oy + y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
}

func findButton(t *testing.T, label string) keypad.Button {
	t.Helper()
	for _, row := range keypad.Layout() {
		for _, b := range row {
			if b.Label == label {
				return b
			}
		}
	}
	t.Fatalf("No button %q", label)
	return keypad.Button{}
}

// plainColors renders without escape sequences for the duration of a test
func plainColors(t *testing.T) {
	profile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })
}

func TestTypingAndEvaluating(t *testing.T) {
	m := newTestModel()
	typeString(m, "2+3*4")
	if m.Session().Buffer() != "2+3*4" {
		t.Fatalf("Expected buffer 2+3*4, got %q", m.Session().Buffer())
	}

	sendKey(m, tea.KeyEnter)
	if m.Session().Buffer() != "14" {
		t.Errorf("Expected 14, got %q", m.Session().Buffer())
	}
	if !strings.Contains(m.history.View(), "2+3*4 = 14") {
		t.Errorf("Expected history viewport to show the entry, got %q", m.history.View())
	}
}

func TestCaretTypesPower(t *testing.T) {
	m := newTestModel()
	typeString(m, "2^10")
	sendKey(m, tea.KeyEnter)
	if m.Session().Buffer() != "1024" {
		t.Errorf("Expected 1024, got %q", m.Session().Buffer())
	}
}

func TestUnknownKeysAreIgnored(t *testing.T) {
	m := newTestModel()
	typeString(m, "1abc=")
	if m.Session().Buffer() != "1" {
		t.Errorf("Expected buffer 1, got %q", m.Session().Buffer())
	}
}

func TestBackspaceAndClear(t *testing.T) {
	m := newTestModel()
	typeString(m, "123")
	sendKey(m, tea.KeyBackspace)
	if m.Session().Buffer() != "12" {
		t.Errorf("Expected 12, got %q", m.Session().Buffer())
	}
	sendKey(m, tea.KeyCtrlL)
	if m.Session().Buffer() != "" {
		t.Errorf("Expected empty buffer, got %q", m.Session().Buffer())
	}
}

func TestErrorNoticeIsModal(t *testing.T) {
	m := newTestModel()
	typeString(m, "1/0")
	sendKey(m, tea.KeyEnter)

	if m.Notice() == "" {
		t.Fatal("Expected an error notice")
	}
	if m.Session().Buffer() != session.ErrorSentinel {
		t.Errorf("Expected error sentinel, got %q", m.Session().Buffer())
	}
	if !strings.Contains(m.View(), "division by zero") {
		t.Errorf("Expected notice in view, got %q", m.View())
	}

	// The dismissing key is swallowed
	typeString(m, "5")
	if m.Notice() != "" {
		t.Error("Expected notice to be dismissed")
	}
	if m.Session().Buffer() != session.ErrorSentinel {
		t.Errorf("Dismissing key should not reach the session, got %q", m.Session().Buffer())
	}

	typeString(m, "5")
	if m.Session().Buffer() != "5" {
		t.Errorf("Expected sentinel to be replaced, got %q", m.Session().Buffer())
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel()
	if !m.Session().Theme().Dark() {
		t.Fatal("Expected dark theme at start")
	}
	sendKey(m, tea.KeyCtrlT)
	if m.Session().Theme().Dark() {
		t.Error("Expected light theme after ctrl+t")
	}
	if !strings.Contains(m.View(), "light") {
		t.Error("Expected the title to name the light theme")
	}
	sendKey(m, tea.KeyCtrlT)
	if !m.Session().Theme().Dark() {
		t.Error("Expected dark theme after two toggles")
	}
}

func TestFocusNavigationAndActivation(t *testing.T) {
	m := newTestModel()

	sendKey(m, tea.KeyRight)
	sendKey(m, tea.KeySpace)
	if m.Session().Buffer() != "8" {
		t.Errorf("Expected 8, got %q", m.Session().Buffer())
	}

	// Wrap upwards to the short last row: column clamps to its end
	sendKey(m, tea.KeyRight)
	sendKey(m, tea.KeyRight)
	sendKey(m, tea.KeyRight)
	sendKey(m, tea.KeyUp)
	row, col := m.Focus()
	if row != 6 || col != 2 {
		t.Errorf("Expected focus (6,2), got (%d,%d)", row, col)
	}

	sendKey(m, tea.KeyLeft)
	sendKey(m, tea.KeySpace)
	sendKey(m, tea.KeySpace)
	if m.Session().Memory() != 16 {
		t.Errorf("Expected M+ twice to store 16, got %v", m.Session().Memory())
	}
}

func TestFocusWrapsLeft(t *testing.T) {
	m := newTestModel()
	sendKey(m, tea.KeyLeft)
	row, col := m.Focus()
	if row != 0 || col != keypad.Columns-1 {
		t.Errorf("Expected focus (0,%d), got (%d,%d)", keypad.Columns-1, row, col)
	}
}

func TestMouseClicksPressButtons(t *testing.T) {
	m := newTestModel()

	for _, label := range []string{"sqrt", "1", "6", ")", "="} {
		b := findButton(t, label)
		click(m, b.Row, b.Col)
	}
	if m.Session().Buffer() != "4" {
		t.Errorf("Expected 4, got %q", m.Session().Buffer())
	}
	row, col := m.Focus()
	if b := findButton(t, "="); row != b.Row || col != b.Col {
		t.Errorf("Expected focus to follow the click, got (%d,%d)", row, col)
	}
}

func TestMouseDisabled(t *testing.T) {
	m := NewModel(session.New(), Options{HistoryHeight: 4, Mouse: false})
	click(m, 0, 0)
	if m.Session().Buffer() != "" {
		t.Errorf("Expected clicks to be ignored, got %q", m.Session().Buffer())
	}
}

func TestMouseClickOutsideKeypad(t *testing.T) {
	m := newTestModel()
	m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Session().Buffer() != "" {
		t.Errorf("Expected no input, got %q", m.Session().Buffer())
	}
}

func TestQuit(t *testing.T) {
	for _, kt := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel()
		cmd := sendKey(m, kt)
		if cmd == nil {
			t.Fatalf("Expected quit command for %v", kt)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected tea.QuitMsg for %v", kt)
		}
		if m.View() != "" {
			t.Error("Expected empty view after quitting")
		}
	}
}

func TestViewShowsMemoryAndBuffer(t *testing.T) {
	m := newTestModel()
	typeString(m, "42")
	m.Session().MemoryStore()

	view := m.View()
	if !strings.Contains(view, "42") {
		t.Error("Expected buffer in view")
	}
	if !strings.Contains(view, "M = 42") {
		t.Errorf("Expected memory indicator in view")
	}
	if !strings.Contains(view, "Theme") || !strings.Contains(view, "sqrt") {
		t.Error("Expected keypad labels in view")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel()
	typeString(m, "?")
	if !m.help.ShowAll {
		t.Error("Expected full help after ?")
	}
	if m.Session().Buffer() != "" {
		t.Errorf("Help key should not reach the session, got %q", m.Session().Buffer())
	}
}

func TestTail(t *testing.T) {
	if got := tail("12345", 10); got != "12345" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := tail("1234567890", 5); got != "…7890" {
		t.Errorf("Expected …7890, got %q", got)
	}
}

func TestLongHistoryEntryKeepsResult(t *testing.T) {
	plainColors(t)
	m := newTestModel()

	pi := findButton(t, keypad.Pi)
	click(m, pi.Row, pi.Col)
	typeString(m, "*2")
	sendKey(m, tea.KeyEnter)

	entry := "3.141592653589793*2 = 6.283185307179586"
	if len(entry) <= innerWidth {
		t.Fatalf("Expected entry wider than the history box, got %d columns", len(entry))
	}
	view := m.View()
	if !strings.Contains(view, "= 6.283185307179586") {
		t.Errorf("Expected the result in the history box, got\n%s", view)
	}
	if !strings.Contains(view, "3.141592653589793*2") {
		t.Errorf("Expected the expression in the history box, got\n%s", view)
	}
}

func TestHistoryLines(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		width int
		want  []string
	}{
		{"fits", "1+2 = 3", 10, []string{"1+2 = 3"}},
		{"result moves down", "123456789 = 42", 10, []string{"123456789", "= 42"}},
		{"result is tailed", "1/3 = 0.3333333333", 8, []string{"1/3", "…3333333"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := historyLines(tt.entry, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
			for i := range got {
				if strings.TrimRight(got[i], " ") != tt.want[i] {
					t.Errorf("Line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestKeypadOriginMatchesView(t *testing.T) {
	plainColors(t)
	m := newTestModel()

	_, oy := m.keypadOrigin()
	if oy != 12 {
		t.Errorf("Expected keypad at row 12 with a 4 line history, got %d", oy)
	}

	lines := strings.Split(m.View(), "\n")
	for r, row := range keypad.Layout()[:2] {
		y := oy + r*(1+rowGap)
		if y >= len(lines) {
			t.Fatalf("View has only %d lines", len(lines))
		}
		var want []string
		for _, b := range row {
			want = append(want, b.Label)
		}
		got := strings.Fields(lines[y])
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("Row %d: expected %v at line %d, got %q", r, want, y, lines[y])
		}
	}
}
