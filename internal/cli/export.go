package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/pitchdeck/internal/emoji"
	"github.com/yildizm/pitchdeck/internal/export"
)

var (
	exportDir         string
	exportDeck        string
	exportWidth       int
	exportHeight      int
	exportConcurrency int
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one SVG handout per slide",
		Long: `Write one SVG handout per slide into a directory.

Chat slides show their whole script with reveal times. Files are named
after the slide number and id, e.g. 06-hichat.svg.`,
		Example: `  # Export the built-in deck
  pitchdeck export --out handouts

  # Export a deck file at a custom size
  pitchdeck export --deck pitch.yaml --width 1920 --height 1080`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportDir, "out", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&exportDeck, "deck", "d", "", "deck file (default: built-in deck)")
	cmd.Flags().IntVar(&exportWidth, "width", 0, "handout width in pixels (default from config)")
	cmd.Flags().IntVar(&exportHeight, "height", 0, "handout height in pixels (default from config)")
	cmd.Flags().IntVar(&exportConcurrency, "concurrency", 0, "slides rendered at once (default from config)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	opts := export.Options{
		Dir:         cfg.Export.Dir,
		Width:       cfg.Export.Width,
		Height:      cfg.Export.Height,
		Concurrency: cfg.Export.Concurrency,
		Logger:      newLogger("export"),
	}
	if exportDir != "" {
		opts.Dir = exportDir
	}
	if exportWidth > 0 {
		opts.Width = exportWidth
	}
	if exportHeight > 0 {
		opts.Height = exportHeight
	}
	if exportConcurrency > 0 {
		opts.Concurrency = exportConcurrency
	}

	path := cfg.Presentation.Deck
	if cmd.Flags().Changed("deck") {
		path = exportDeck
	}
	d, err := loadDeck(path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := export.Handouts(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s %s\n", emoji.GetEmoji("document"), r.Path)
	}
	fmt.Fprintf(out, "%s Exported %d slides to %s\n", emoji.GetEmoji("success"), len(results), opts.Dir)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
