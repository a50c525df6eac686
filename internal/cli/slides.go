package cli

import (
	"github.com/spf13/cobra"
)

var (
	slidesOutput     string
	slidesDeck       string
	slidesOutputFile string
)

func newSlidesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slides",
		Short: "Print the deck outline",
		Long: `Print every slide's title, talking points, speaker notes and chat script.

Formats:
  text      tree view for the terminal
  json      machine readable outline
  markdown  speaker notes
  csv       one row per slide, for rehearsal sheets`,
		Example: `  # Outline of the built-in deck
  pitchdeck slides

  # Speaker notes for a deck file
  pitchdeck slides --deck pitch.yaml --output markdown --output-file notes.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appConfig.Presentation.Deck
			if cmd.Flags().Changed("deck") {
				path = slidesDeck
			}
			format := appConfig.Output.DefaultFormat
			if cmd.Flags().Changed("output") {
				format = slidesOutput
			}

			d, err := loadDeck(path)
			if err != nil {
				return err
			}
			return printOutline(cmd.OutOrStdout(), d, format, slidesOutputFile)
		},
	}

	cmd.Flags().StringVarP(&slidesOutput, "output", "o", "text", "output format (text, json, markdown, csv)")
	cmd.Flags().StringVarP(&slidesDeck, "deck", "d", "", "deck file (default: built-in deck)")
	cmd.Flags().StringVar(&slidesOutputFile, "output-file", "", "write to a file instead of stdout")

	return cmd
}
