package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/SciCalc/internal/session"
)

// RunOptions configures a TUI run
type RunOptions struct {
	Options
	ColorMode string // auto|always|never
}

// Run starts the calculator TUI on the alternate screen and blocks until the
// user quits.
func Run(s *session.Session, opts RunOptions) error {
	applyColorMode(opts.ColorMode)

	model := NewModel(s, opts.Options)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, programOpts...)
	_, err := p.Run()
	return err
}
