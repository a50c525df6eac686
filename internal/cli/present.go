package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/pitchdeck/internal/config"
	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/formatter"
	"github.com/yildizm/pitchdeck/internal/monitor"
	"github.com/yildizm/pitchdeck/internal/ui"
)

var (
	presentDeck       string
	presentStart      int
	presentWatch      bool
	presentTransition time.Duration
	presentNoMouse    bool
	presentReport     string
	presentReportFile string
)

// Swapped out in tests
var (
	runUI       = ui.Run
	interactive = isInteractive
)

// A session can be handed to the presenter directly
var _ ui.Recorder = (*monitor.Session)(nil)

func newPresentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "present",
		Short: "Present the deck full screen",
		Long: `Present the deck full screen in the terminal.

When stdout is not a terminal the deck outline is printed instead.`,
		Example: `  # Present the built-in deck
  pitchdeck present

  # Present a deck file, starting on slide 6, reloading on save
  pitchdeck present --deck pitch.yaml --start 6 --watch

  # Print a rehearsal report when the talk ends
  pitchdeck present --report markdown --report-file rehearsal.md`,
		Args: cobra.NoArgs,
		RunE: runPresent,
	}
	addPresentFlags(cmd)
	return cmd
}

func addPresentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&presentDeck, "deck", "d", "", "deck file (default: built-in deck)")
	cmd.Flags().IntVarP(&presentStart, "start", "s", 1, "slide to start on (1-based)")
	cmd.Flags().BoolVarP(&presentWatch, "watch", "w", false, "reload the deck file when it changes")
	cmd.Flags().DurationVar(&presentTransition, "transition", 500*time.Millisecond, "slide transition length (0 disables)")
	cmd.Flags().BoolVar(&presentNoMouse, "no-mouse", false, "disable clickable footer controls")
	cmd.Flags().StringVar(&presentReport, "report", "", "print a session report on exit (text, json, markdown, csv)")
	cmd.Flags().StringVar(&presentReportFile, "report-file", "", "write the session report to a file instead of stdout")
}

// applyPresentFlags copies explicitly set presenter flags into cfg
func applyPresentFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("report") == nil {
		return
	}

	if flags.Changed("deck") {
		cfg.Presentation.Deck = presentDeck
	}
	if flags.Changed("start") {
		cfg.Presentation.StartSlide = presentStart
	}
	if flags.Changed("watch") {
		cfg.Presentation.Watch = presentWatch
	}
	if flags.Changed("transition") {
		cfg.Presentation.Transition = presentTransition
	}
	if presentNoMouse {
		cfg.Presentation.Mouse = false
	}
}

func runPresent(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	log := newLogger("present")

	if err := validateReportFormat(presentReport); err != nil {
		return err
	}

	d, err := loadDeck(cfg.Presentation.Deck)
	if err != nil {
		return err
	}

	if !interactive() {
		log.Debug("stdout is not a terminal, printing the outline")
		return printOutline(cmd.OutOrStdout(), d, cfg.Output.DefaultFormat, "")
	}

	// The presenter owns the terminal, so log lines go to a file or nowhere
	if cfg.Logging.File != "" {
		closer, err := log.OpenFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
	} else {
		log.SetOutput(io.Discard)
	}

	opts := ui.Options{
		Deck:          d,
		DeckPath:      cfg.Presentation.Deck,
		Start:         cfg.Presentation.StartSlide - 1,
		Transition:    cfg.Presentation.Transition,
		Mouse:         cfg.Presentation.Mouse,
		Theme:         cfg.Presentation.Theme,
		MarkdownStyle: cfg.Output.MarkdownStyle,
		Logger:        log.WithComponent("ui"),
	}

	if cfg.Presentation.Watch && cfg.Presentation.Deck != "" {
		w, err := deck.NewWatcher(cfg.Presentation.Deck, deck.WithOnError(func(err error) {
			log.Warn("deck watcher: %v", err)
		}))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch deck: %w", err)
		}
		defer w.Stop()
		opts.Watcher = w
		log.Info("Watching %s", w.Path())
	}

	var session *monitor.Session
	if presentReport != "" {
		session = monitor.NewSession(d.Title, d.Len(), time.Now())
		opts.Recorder = session
	}

	if err := runUI(opts); err != nil {
		return fmt.Errorf("presenter failed: %w", err)
	}

	if session == nil {
		return nil
	}
	report := session.Finish(time.Now())
	out, err := report.Format(monitor.ReportFormat(presentReport))
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), out, presentReportFile)
}

func validateReportFormat(format string) error {
	switch monitor.ReportFormat(format) {
	case "", monitor.ReportFormatText, monitor.ReportFormatJSON, monitor.ReportFormatMarkdown, monitor.ReportFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid report format: %s (must be one of: text, json, markdown, csv)", format)
	}
}

// printOutline writes the deck outline in the given format
func printOutline(w io.Writer, d *deck.Deck, format, filePath string) error {
	f, err := formatter.New(format, colorEnabled() && filePath == "")
	if err != nil {
		return err
	}
	out, err := f.Format(d)
	if err != nil {
		return fmt.Errorf("failed to format deck: %w", err)
	}
	return writeOutput(w, out, filePath)
}
