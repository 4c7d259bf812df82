package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yildizm/SciCalc/internal/keypad"
	"github.com/yildizm/SciCalc/internal/theme"
)

// Keypad geometry in terminal cells
const (
	cellWidth   = 7
	cellGap     = 1
	rowGap      = 1
	keypadWidth = keypad.Columns*cellWidth + (keypad.Columns-1)*cellGap
	innerWidth  = keypadWidth - 2 // inside a rounded border
)

// Styles contains the styled components for one palette
type Styles struct {
	Palette theme.Palette

	Title   lipgloss.Style
	Muted   lipgloss.Style
	History lipgloss.Style
	Display lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
	Notice  lipgloss.Style
}

// NewStyles builds the styles for a palette
func NewStyles(p theme.Palette) *Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Width(innerWidth)

	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		History: box.
			Background(p.History).
			Foreground(p.HistoryFg),

		Display: box.
			Background(p.Display).
			Foreground(p.DisplayFg).
			Bold(true).
			Align(lipgloss.Right),

		Error: box.
			Background(p.Display).
			Foreground(p.Error).
			Bold(true).
			Align(lipgloss.Right),

		Status: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(keypadWidth),

		Notice: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Error).
			Foreground(p.Foreground).
			Padding(1, 3).
			Width(keypadWidth - 2),
	}
}

// Button renders one keypad cell
func (s *Styles) Button(b keypad.Button, focused bool) string {
	style := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Background(s.Palette.ButtonColor(b.Kind)).
		Foreground(s.Palette.ButtonFg)
	if focused {
		style = style.
			Background(s.Palette.Focus).
			Foreground(s.Palette.Background).
			Bold(true).
			Underline(true)
	}
	return style.Render(b.Label)
}

// applyColorMode maps the configured color mode onto the lipgloss renderer
func applyColorMode(mode string) {
	switch {
	case mode == "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case theme.IsColorDisabled():
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
