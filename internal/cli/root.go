package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/SciCalc/internal/config"
	"github.com/yildizm/SciCalc/internal/emoji"
	"github.com/yildizm/SciCalc/internal/formatter"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scicalc",
		Short: "Scientific calculator for the terminal",
		Long: `SciCalc is a scientific calculator with a keypad, memory register,
expression history and a dark/light theme.

Run without arguments to open the interactive calculator, or use the eval
and watch commands to evaluate expressions from scripts and files.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadGlobalConfig,
		RunE:              runTUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format ("+strings.Join(formatter.Formats, ", ")+")")

	// Add subcommands
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newEvalCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadGlobalConfig loads the configuration once per invocation and lets
// explicitly set flags override it
func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Logging.Verbose = verbose
	}
	if noColor {
		cfg.UI.ColorMode = "never"
	}
	if flags.Changed("no-emoji") {
		cfg.UI.Emoji = !noEmoji
	} else if runtime.GOOS == "windows" {
		// Auto-disable emojis on Windows if not explicitly set
		cfg.UI.Emoji = false
	}
	if flags.Changed("output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	globalConfig = cfg
	emoji.SetEmojiDisabled(!cfg.UI.Emoji)
	return nil
}

// GetGlobalConfig returns the configuration loaded for this invocation, or
// the defaults when none has been loaded
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SciCalc %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return GetGlobalConfig().Logging.Verbose
}

func useColor() bool {
	return GetGlobalConfig().UI.ColorMode != "never"
}

// newFormatter returns the transcript formatter selected by config and flags
func newFormatter() (formatter.Formatter, error) {
	cfg := GetGlobalConfig()
	return formatter.New(cfg.Output.DefaultFormat, formatter.Options{
		Color: useColor(),
		Emoji: !emoji.IsEmojiDisabled(),
	})
}
