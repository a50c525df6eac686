package formatter

import (
	"github.com/goccy/go-json"
	"github.com/yildizm/pitchdeck/internal/deck"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(d *deck.Deck) ([]byte, error) {
	return json.MarshalIndent(BuildOutline(d), "", "  ")
}
