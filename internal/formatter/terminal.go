package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/pitchdeck/internal/deck"
)

// terminalFormatter formats the outline as plain text using go-termfmt trees
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(d *deck.Deck) ([]byte, error) {
	var b strings.Builder
	o := BuildOutline(d)

	f.writeHeader(&b, o.Title)
	f.writeSummary(&b, d, o)
	for _, s := range o.Slides {
		f.writeSlide(&b, s)
	}

	return []byte(b.String()), nil
}

// writeHeader draws a double-line box around the deck title
func (f *terminalFormatter) writeHeader(b *strings.Builder, title string) {
	if title == "" {
		title = "Untitled deck"
	}
	width := runewidth.StringWidth(title)

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + title + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, d *deck.Deck, o *Outline) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Overview\n")

	chats, longest := 0, ""
	for _, s := range d.Slides {
		if s.HasChat() {
			chats++
			longest = formatOffset(s.Chat.Script.Duration())
		}
	}

	items := []termfmt.TreeItem{
		{Label: "Client", Value: valueOr(o.Client, "N/A")},
		{Label: "Presenter", Value: valueOr(o.Brand, "N/A")},
		{Label: "Slides", Value: formatNumber(len(o.Slides))},
	}
	if chats > 0 {
		items = append(items, termfmt.TreeItem{
			Label: "Live chats",
			Value: fmt.Sprintf("%d (last reveal %s)", chats, longest),
			Last:  true,
		})
	} else {
		items = append(items, termfmt.TreeItem{Label: "Live chats", Value: "none", Last: true})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeSlide(b *strings.Builder, s SlideOutline) {
	fmt.Fprintf(b, "%02d %s [%s]\n", s.Number, s.Title, s.Kind)

	items := make([]termfmt.TreeItem, 0, len(s.Points)+2)
	if s.Subtitle != "" {
		items = append(items, termfmt.TreeItem{Label: s.Subtitle})
	}
	for _, p := range s.Points {
		items = append(items, termfmt.TreeItem{Label: p})
	}
	if len(s.Chat) > 0 {
		items = append(items, termfmt.TreeItem{
			Label:    termfmt.GetEmoji("chat", f.opts) + " Live chat",
			Value:    fmt.Sprintf("%d messages", len(s.Chat)),
			Children: f.chatItems(s.Chat),
		})
	}
	if s.Notes != "" {
		items = append(items, termfmt.TreeItem{Label: "Notes", Value: s.Notes})
	}

	if len(items) == 0 {
		b.WriteString("\n")
		return
	}
	items[len(items)-1].Last = true
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// chatItems lists chat lines in reveal order
func (f *terminalFormatter) chatItems(lines []ChatLine) []termfmt.TreeItem {
	items := make([]termfmt.TreeItem, 0, len(lines))
	for i, l := range lines {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s %s", l.At, actorLabel(l.Actor), l.Text),
			Last:  i == len(lines)-1,
		})
	}
	return items
}

func actorLabel(actor string) string {
	if actor == "user" {
		return "USER:"
	}
	return "BOT: "
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}
