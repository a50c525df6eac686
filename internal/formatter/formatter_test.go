package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/yildizm/pitchdeck/internal/deck"
)

func defaultDeck(t *testing.T) *deck.Deck {
	t.Helper()
	d, err := deck.Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	return d
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"", false},
		{"json", false},
		{"markdown", false},
		{"csv", false},
		{"xml", true},
	}

	for _, tt := range tests {
		f, err := New(tt.format, false)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q): expected error", tt.format)
			}
			continue
		}
		if err != nil || f == nil {
			t.Errorf("New(%q) failed: %v", tt.format, err)
		}
	}
}

func TestBuildOutline(t *testing.T) {
	d := defaultDeck(t)
	o := BuildOutline(d)

	if len(o.Slides) != d.Len() {
		t.Fatalf("Expected %d slides, got %d", d.Len(), len(o.Slides))
	}
	for i, s := range o.Slides {
		if s.Number != i+1 {
			t.Errorf("slide %d: expected number %d, got %d", i, i+1, s.Number)
		}
		if s.ID != d.Slides[i].ID {
			t.Errorf("slide %d: expected id %s, got %s", i, d.Slides[i].ID, s.ID)
		}
	}

	chat := o.Slides[d.IndexOf("hichat")]
	if len(chat.Chat) != 4 {
		t.Fatalf("Expected 4 chat lines, got %d", len(chat.Chat))
	}
	wantAt := []string{"+1.0s", "+3.0s", "+5.0s", "+7.5s"}
	for i, want := range wantAt {
		if chat.Chat[i].At != want {
			t.Errorf("chat line %d: expected offset %s, got %s", i, want, chat.Chat[i].At)
		}
	}
	if chat.Chat[0].Actor != "user" || chat.Chat[1].Actor != "bot" {
		t.Errorf("Unexpected actor order: %s, %s", chat.Chat[0].Actor, chat.Chat[1].Actor)
	}
}

func TestSlidePointsCoverKinds(t *testing.T) {
	d := defaultDeck(t)
	o := BuildOutline(d)

	for _, s := range o.Slides {
		if s.Kind == string(deck.KindCover) {
			continue
		}
		if len(s.Points) == 0 {
			t.Errorf("slide %s (%s) has no talking points", s.ID, s.Kind)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty(": ", "a", "", "b"); got != "a: b" {
		t.Errorf("Expected %q, got %q", "a: b", got)
	}
	if got := joinNonEmpty(": ", "", ""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	d := defaultDeck(t)
	out, err := NewJSON().Format(d)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var o Outline
	if err := json.Unmarshal(out, &o); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if o.Title != d.Title {
		t.Errorf("Expected title %q, got %q", d.Title, o.Title)
	}
	if len(o.Slides) != d.Len() {
		t.Errorf("Expected %d slides, got %d", d.Len(), len(o.Slides))
	}
}

func TestCSVFormatter(t *testing.T) {
	d := defaultDeck(t)
	d.Slides[0].Notes = "open with the\nclient story"

	out, err := NewCSV().Format(d)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != d.Len()+1 {
		t.Fatalf("Expected %d rows, got %d", d.Len()+1, len(records))
	}
	if records[0][0] != "Number" || records[0][2] != "Kind" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][1] != "cover" {
		t.Errorf("Expected first slide id cover, got %s", records[1][1])
	}
	if records[1][6] != "open with the client story" {
		t.Errorf("Expected notes on one line, got %q", records[1][6])
	}

	chatRow := records[d.IndexOf("hichat")+1]
	if chatRow[5] != "4" {
		t.Errorf("Expected 4 chat messages, got %s", chatRow[5])
	}
}

func TestMarkdownFormatter(t *testing.T) {
	d := defaultDeck(t)
	out, err := NewMarkdown().Format(d)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	md := string(out)

	if !strings.HasPrefix(md, "# "+d.Title) {
		t.Errorf("Expected title heading, got %q", firstLine(md))
	}
	for i, s := range d.Slides {
		if !strings.Contains(md, "## "+twoDigit(i+1)+" "+s.Title) {
			t.Errorf("Missing heading for slide %s", s.ID)
		}
	}
	if !strings.Contains(md, "| +7.5s | bot |") {
		t.Error("Expected chat table row for the last reveal")
	}
	if !strings.HasSuffix(md, "*11 slides*\n") {
		t.Error("Expected slide count footer")
	}
}

func TestAnchor(t *testing.T) {
	s := SlideOutline{Number: 2, Title: "Data Flow: CDP"}
	if got := anchor(s); got != "02-data-flow-cdp" {
		t.Errorf("Expected 02-data-flow-cdp, got %s", got)
	}
}

func TestEscapeCell(t *testing.T) {
	if got := escapeCell("a|b\nc"); got != `a\|b c` {
		t.Errorf("Unexpected escape: %q", got)
	}
}

func TestTerminalFormatter(t *testing.T) {
	d := defaultDeck(t)
	out, err := NewTerminal(false).Format(d)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	if !strings.HasPrefix(text, "╔") {
		t.Errorf("Expected header box, got %q", firstLine(text))
	}
	if !strings.Contains(text, "║ "+d.Title+" ║") {
		t.Error("Expected deck title inside the header box")
	}
	for i, s := range d.Slides {
		if !strings.Contains(text, twoDigit(i+1)+" "+s.Title+" ["+string(s.Kind)+"]") {
			t.Errorf("Missing line for slide %s", s.ID)
		}
	}
}

func TestWriteHeaderWideRunes(t *testing.T) {
	f := &terminalFormatter{}
	var b strings.Builder
	f.writeHeader(&b, "Giải pháp")

	lines := strings.Split(b.String(), "\n")
	top := []rune(lines[0])
	// "Giải pháp" is 9 cells wide, plus one space either side
	if len(top) != 13 {
		t.Errorf("Expected 13-rune border, got %d", len(top))
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567"}
	for n, want := range tests {
		if got := formatNumber(n); got != want {
			t.Errorf("formatNumber(%d) = %s, want %s", n, got, want)
		}
	}
}

func twoDigit(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
