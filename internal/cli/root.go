package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/yildizm/pitchdeck/internal/config"
	"github.com/yildizm/pitchdeck/internal/emoji"
	"github.com/yildizm/pitchdeck/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	themeName string

	appConfig = config.DefaultConfig()
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pitchdeck",
		Short: "Terminal pitch deck presenter",
		Long: `pitchdeck presents a slide deck full screen in the terminal.

Navigate with the arrow keys, space, page up/down, or by clicking the
footer controls. Chat slides replay their scripted conversation each time
they are shown.

Run without a command to present the built-in deck.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runPresent,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme (brand, high-contrast, minimal)")

	addPresentFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newPresentCommand())
	rootCmd.AddCommand(newSlidesCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setup loads configuration and applies flag overrides before any command runs
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().
		WithWarnFunc(newLogger("config").Warn).
		LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	appConfig = cfg

	applyEmojiSetting(cmd)
	applyColorProfile(cfg.Output.ColorMode)
	return nil
}

// applyFlagOverrides lets explicitly set flags win over config values
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if verbose {
		cfg.Output.Verbose = true
	}
	if noEmoji {
		cfg.Output.NoEmoji = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	if flags.Changed("theme") {
		cfg.Presentation.Theme = themeName
	}
	applyPresentFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// applyEmojiSetting sets emoji state for all components. Emoji are off by
// default on Windows unless asked for explicitly.
func applyEmojiSetting(cmd *cobra.Command) {
	disabled := appConfig.Output.NoEmoji
	if runtime.GOOS == "windows" && !cmd.Flags().Changed("no-emoji") {
		disabled = true
	}
	emoji.SetEmojiDisabled(disabled)
}

// applyColorProfile forces lipgloss output on or off; auto leaves detection
// to lipgloss
func applyColorProfile(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
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
			fmt.Fprintf(out, "pitchdeck %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return verbose || appConfig.Output.Verbose
}

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// colorEnabled reports whether formatted output should carry ANSI colour
func colorEnabled() bool {
	switch appConfig.Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTerminal()
	}
}
