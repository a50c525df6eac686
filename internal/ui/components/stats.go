package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StatTile is a headline number with a small caption, e.g. "LTV 12.5M"
type StatTile struct {
	Label string
	Value string
	Unit  string
	Width int

	Accent lipgloss.TerminalColor
	Muted  lipgloss.TerminalColor
}

// NewStatTile creates a new stat tile
func NewStatTile(label, value, unit string) *StatTile {
	return &StatTile{
		Label:  label,
		Value:  value,
		Unit:   unit,
		Width:  16,
		Accent: lipgloss.Color("#A6192E"),
		Muted:  lipgloss.Color("#78716C"),
	}
}

// SetColors sets the value and caption colours
func (s *StatTile) SetColors(accent, muted lipgloss.TerminalColor) *StatTile {
	s.Accent = accent
	s.Muted = muted
	return s
}

// SetWidth sets the tile width in cells
func (s *StatTile) SetWidth(width int) *StatTile {
	s.Width = width
	return s
}

// Render renders the tile as two lines: caption, then value and unit
func (s *StatTile) Render() string {
	width := max(s.Width, 4)
	captionStyle := lipgloss.NewStyle().Foreground(s.Muted)
	valueStyle := lipgloss.NewStyle().Foreground(s.Accent).Bold(true)

	caption := runewidth.Truncate(strings.ToUpper(s.Label), width, "…")
	value := s.Value
	if s.Unit != "" {
		value += " " + s.Unit
	}
	value = runewidth.Truncate(value, width, "…")

	return lipgloss.NewStyle().Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			captionStyle.Render(caption),
			valueStyle.Render(value),
		),
	)
}

// StatRow lays tiles out side by side in equal columns across width. Tiles
// that do not fit at a minimum of minWidth cells wrap onto the next row.
func StatRow(tiles []*StatTile, width, gap int) string {
	if len(tiles) == 0 {
		return ""
	}
	const minWidth = 10

	perRow := len(tiles)
	for perRow > 1 && (width-gap*(perRow-1))/perRow < minWidth {
		perRow--
	}
	tileW := max((width-gap*(perRow-1))/perRow, 1)
	spacer := strings.Repeat(" ", gap)

	var rows []string
	for start := 0; start < len(tiles); start += perRow {
		end := min(start+perRow, len(tiles))
		cells := make([]string, 0, 2*(end-start))
		for i, t := range tiles[start:end] {
			if i > 0 {
				cells = append(cells, spacer)
			}
			cells = append(cells, t.SetWidth(tileW).Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}
