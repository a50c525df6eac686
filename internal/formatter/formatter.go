package formatter

import (
	"fmt"

	"github.com/yildizm/pitchdeck/internal/deck"
)

// Formatter defines the interface for deck outline output
type Formatter interface {
	Format(d *deck.Deck) ([]byte, error)
}

// New returns the formatter for a configured output format
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "text", "terminal", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
