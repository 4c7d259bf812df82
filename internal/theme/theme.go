// Package theme holds the calculator's two color palettes and the flag that
// selects between them.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/SciCalc/internal/keypad"
)

// Palette is the set of colors the presentation layer applies
type Palette struct {
	Name string

	// Surfaces
	Background lipgloss.Color
	Foreground lipgloss.Color
	Display    lipgloss.Color
	DisplayFg  lipgloss.Color
	History    lipgloss.Color
	HistoryFg  lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Focus      lipgloss.Color

	// Button classes
	Digit    lipgloss.Color
	Operator lipgloss.Color
	Paren    lipgloss.Color
	Function lipgloss.Color
	Constant lipgloss.Color
	Clear    lipgloss.Color
	Equals   lipgloss.Color
	Memory   lipgloss.Color
	Toggle   lipgloss.Color
	ButtonFg lipgloss.Color
}

// buildPalette creates a palette; button colors are shared by both themes.
func buildPalette(name string, background, foreground, display, displayFg, border, muted, focus string) Palette {
	return Palette{
		Name:       name,
		Background: lipgloss.Color(background),
		Foreground: lipgloss.Color(foreground),
		Display:    lipgloss.Color(display),
		DisplayFg:  lipgloss.Color(displayFg),
		History:    lipgloss.Color(display),
		HistoryFg:  lipgloss.Color(displayFg),
		Border:     lipgloss.Color(border),
		Muted:      lipgloss.Color(muted),
		Error:      lipgloss.Color("#F44336"),
		Focus:      lipgloss.Color(focus),

		Digit:    lipgloss.Color("#4CAF50"),
		Operator: lipgloss.Color("#FF9800"),
		Paren:    lipgloss.Color("#9C27B0"),
		Function: lipgloss.Color("#00BCD4"),
		Constant: lipgloss.Color("#9C27B0"),
		Clear:    lipgloss.Color("#F44336"),
		Equals:   lipgloss.Color("#2196F3"),
		Memory:   lipgloss.Color("#FFC107"),
		Toggle:   lipgloss.Color("#607D8B"),
		ButtonFg: lipgloss.Color("#FFFFFF"),
	}
}

// Available palettes
var (
	Dark  = buildPalette("dark", "#2E2E2E", "#FFFFFF", "#1E1E1E", "#FFFFFF", "#4B5563", "#9CA3AF", "#FFEB3B")
	Light = buildPalette("light", "#FFFFFF", "#000000", "#FFFFFF", "#000000", "#D1D5DB", "#6B7280", "#1E40AF")
)

// Controller owns the dark/light flag. The zero value is the light theme;
// use New to pick the starting theme.
type Controller struct {
	dark bool
}

// New creates a controller starting in dark mode when dark is true
func New(dark bool) *Controller {
	return &Controller{dark: dark}
}

// Toggle flips between the dark and light palettes
func (c *Controller) Toggle() {
	c.dark = !c.dark
}

// Dark reports whether the dark palette is active
func (c *Controller) Dark() bool {
	return c.dark
}

// Name returns the active palette name
func (c *Controller) Name() string {
	return c.Palette().Name
}

// Palette returns the active palette
func (c *Controller) Palette() Palette {
	if c.dark {
		return Dark
	}
	return Light
}

// ButtonColor returns the background color for a button of the given kind
func (p *Palette) ButtonColor(kind keypad.Kind) lipgloss.Color {
	switch kind {
	case keypad.KindDigit:
		return p.Digit
	case keypad.KindOperator:
		return p.Operator
	case keypad.KindParen:
		return p.Paren
	case keypad.KindFunction:
		return p.Function
	case keypad.KindConstant:
		return p.Constant
	case keypad.KindClear:
		return p.Clear
	case keypad.KindEquals:
		return p.Equals
	case keypad.KindMemory:
		return p.Memory
	case keypad.KindTheme:
		return p.Toggle
	default:
		return p.Muted
	}
}

// ParseName maps "dark"/"light" to the dark flag
func ParseName(name string) (dark bool, ok bool) {
	switch name {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// Names returns the available palette names
func Names() []string {
	return []string{"dark", "light"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}
