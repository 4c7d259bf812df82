package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/SciCalc/internal/config"
	"github.com/yildizm/SciCalc/internal/logger"
	"github.com/yildizm/SciCalc/internal/session"
	"github.com/yildizm/SciCalc/internal/ui"
)

var (
	tuiTheme string
	tuiMouse bool
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive calculator",
		Long: `Open the interactive calculator in the terminal.

Type expressions directly or move over the keypad with the arrow keys and
press space. Enter evaluates, ctrl+t switches theme, ctrl+l clears and esc
quits. Mouse clicks on the keypad work when mouse support is enabled.

Examples:
  scicalc
  scicalc tui --theme light
  scicalc tui --mouse=false`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiTheme, "theme", "", "starting theme (dark, light)")
	cmd.Flags().BoolVar(&tuiMouse, "mouse", true, "enable mouse clicks on the keypad")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		cfg.UI.Theme = tuiTheme
	}
	if f := cmd.Flags().Lookup("mouse"); f != nil && f.Changed {
		cfg.UI.Mouse = tuiMouse
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	log, closeLog, err := newTUILogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s := newSession(cfg, log)
	log.Info("starting calculator (theme=%s, precision=%d)", cfg.UI.Theme, cfg.Display.Precision)

	return ui.Run(s, ui.RunOptions{
		Options: ui.Options{
			HistoryHeight: cfg.UI.HistoryHeight,
			Mouse:         cfg.UI.Mouse,
			Logger:        log,
		},
		ColorMode: cfg.UI.ColorMode,
	})
}

// newSession creates a session configured from cfg
func newSession(cfg *config.Config, log *logger.Logger) *session.Session {
	return session.New(
		session.WithPrecision(cfg.Display.Precision),
		session.WithDarkTheme(cfg.DarkTheme()),
		session.WithLogger(log),
	)
}

// newLogger creates a logger writing to stderr, gated by the verbose setting
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// newTUILogger returns a logger that never writes to the terminal the TUI
// owns: lines go to logging.file when set and are dropped otherwise.
func newTUILogger(cfg *config.Config) (*logger.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return logger.Discard(), func() {}, nil
	}

	path := filepath.Clean(cfg.Logging.File)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	// #nosec G304 - log path comes from the user's own configuration
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := newLogger("tui")
	log.SetOutput(file)
	closeFn := func() {
		log.SetOutput(io.Discard)
		_ = file.Close()
	}
	return log, closeFn, nil
}
