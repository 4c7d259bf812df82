package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yildizm/SciCalc/internal/formatter"
	"github.com/yildizm/SciCalc/internal/theme"
)

// Precision bounds for display.precision; -1 selects the shortest form
const (
	MinPrecision = -1
	MaxPrecision = 17
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Display DisplayConfig `yaml:"display" json:"display"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DisplayConfig configures how results are written back to the buffer
type DisplayConfig struct {
	Precision int `yaml:"precision" json:"precision"` // significant digits, -1 = shortest
}

// UIConfig configures the terminal calculator
type UIConfig struct {
	Theme         string `yaml:"theme" json:"theme"`                   // dark|light
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	HistoryHeight int    `yaml:"history_height" json:"history_height"` // visible history lines
	Mouse         bool   `yaml:"mouse" json:"mouse"`                   // keypad clicks
	Emoji         bool   `yaml:"emoji" json:"emoji"`                   // emoji in CLI output
}

// OutputConfig configures CLI transcript output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
}

// LoggingConfig configures diagnostic logging
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	File    string `yaml:"file" json:"file"` // log destination while the TUI owns the terminal
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Display: DisplayConfig{
			Precision: -1,
		},
		UI: UIConfig{
			Theme:         "dark",
			ColorMode:     "auto",
			HistoryHeight: 6,
			Mouse:         true,
			Emoji:         true,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
		Logging: LoggingConfig{
			Verbose: false,
			File:    "",
		},
	}
}

// DarkTheme reports whether the configured starting theme is dark
func (c *Config) DarkTheme() bool {
	dark, ok := theme.ParseName(c.UI.Theme)
	return !ok || dark
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateDisplayConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDisplayConfig() error {
	if c.Display.Precision < MinPrecision || c.Display.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between %d and %d, got %d", MinPrecision, MaxPrecision, c.Display.Precision)
	}
	if c.Display.Precision == 0 {
		return fmt.Errorf("precision 0 is not allowed (use -1 for the shortest form or 1-%d significant digits)", MaxPrecision)
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		if _, ok := theme.ParseName(c.UI.Theme); !ok {
			return fmt.Errorf("invalid theme: %s (must be one of: %s)", c.UI.Theme, strings.Join(theme.Names(), ", "))
		}
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	if c.UI.HistoryHeight < 1 {
		return fmt.Errorf("history_height must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" && !slices.Contains(formatter.Formats, c.Output.DefaultFormat) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.DefaultFormat, strings.Join(formatter.Formats, ", "))
	}
	return nil
}
