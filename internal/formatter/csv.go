package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/pitchdeck/internal/deck"
)

// csvFormatter writes one row per slide, for rehearsal sheets
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(d *deck.Deck) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"Number", "ID", "Kind", "Title", "Points", "Chat Messages", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range BuildOutline(d).Slides {
		record := []string{
			strconv.Itoa(s.Number),
			s.ID,
			s.Kind,
			flatten(s.Title),
			strconv.Itoa(len(s.Points)),
			strconv.Itoa(len(s.Chat)),
			flatten(s.Notes),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// flatten keeps a cell on one line
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
