package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/pitchdeck/internal/deck"
)

// markdownFormatter formats the outline as Markdown speaker notes
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(d *deck.Deck) ([]byte, error) {
	var b strings.Builder
	o := BuildOutline(d)

	fmt.Fprintf(&b, "# %s\n\n", valueOr(o.Title, "Untitled deck"))
	f.writeSummaryTable(&b, o)
	f.writeTableOfContents(&b, o)
	for _, s := range o.Slides {
		f.writeSlide(&b, s)
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*%d slides*\n", len(o.Slides))

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, o *Outline) {
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Client | %s |\n", escapeCell(valueOr(o.Client, "N/A")))
	fmt.Fprintf(b, "| Presenter | %s |\n", escapeCell(valueOr(o.Brand, "N/A")))
	fmt.Fprintf(b, "| Slides | %d |\n\n", len(o.Slides))
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, o *Outline) {
	b.WriteString("## Slides\n")
	for _, s := range o.Slides {
		fmt.Fprintf(b, "%d. [%s](#%s)\n", s.Number, s.Title, anchor(s))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSlide(b *strings.Builder, s SlideOutline) {
	fmt.Fprintf(b, "## %02d %s\n\n", s.Number, s.Title)
	fmt.Fprintf(b, "*Kind: %s*\n\n", s.Kind)
	if s.Subtitle != "" {
		b.WriteString(s.Subtitle + "\n\n")
	}

	if len(s.Points) > 0 {
		for _, p := range s.Points {
			b.WriteString("- " + p + "\n")
		}
		b.WriteString("\n")
	}

	if len(s.Chat) > 0 {
		b.WriteString("| At | Actor | Message |\n")
		b.WriteString("|----|-------|---------|\n")
		for _, l := range s.Chat {
			fmt.Fprintf(b, "| %s | %s | %s |\n", l.At, l.Actor, escapeCell(l.Text))
		}
		b.WriteString("\n")
	}

	if s.Notes != "" {
		b.WriteString("> " + strings.ReplaceAll(s.Notes, "\n", "\n> ") + "\n\n")
	}
}

// anchor approximates the heading slug GitHub generates for "## 01 Title"
func anchor(s SlideOutline) string {
	heading := fmt.Sprintf("%02d %s", s.Number, s.Title)
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
