package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/pitchdeck/internal/deck"
)

// Outline is the text-only view of a deck shared by every formatter
type Outline struct {
	Title  string         `json:"title"`
	Client string         `json:"client,omitempty"`
	Brand  string         `json:"brand,omitempty"`
	Label  string         `json:"label,omitempty"`
	Slides []SlideOutline `json:"slides"`
}

// SlideOutline is one slide reduced to its headline and talking points
type SlideOutline struct {
	Number   int        `json:"number"`
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Points   []string   `json:"points,omitempty"`
	Chat     []ChatLine `json:"chat,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// ChatLine is one scripted chat message with its reveal offset
type ChatLine struct {
	At    string `json:"at"`
	Actor string `json:"actor"`
	Text  string `json:"text"`
}

// BuildOutline reduces a deck to its outline
func BuildOutline(d *deck.Deck) *Outline {
	o := &Outline{
		Title:  d.Title,
		Client: d.Client,
		Brand:  d.Brand.Name,
		Label:  d.Label,
		Slides: make([]SlideOutline, 0, len(d.Slides)),
	}
	for i, s := range d.Slides {
		o.Slides = append(o.Slides, buildSlide(i+1, s))
	}
	return o
}

func buildSlide(number int, s deck.Slide) SlideOutline {
	so := SlideOutline{
		Number:   number,
		ID:       s.ID,
		Kind:     string(s.Kind),
		Title:    s.Title,
		Subtitle: s.Subtitle,
		Points:   slidePoints(s),
		Notes:    s.Notes,
	}
	if s.HasChat() {
		for _, e := range s.Chat.Script.Sorted() {
			so.Chat = append(so.Chat, ChatLine{
				At:    formatOffset(e.Offset),
				Actor: string(e.Actor),
				Text:  e.Text,
			})
		}
	}
	return so
}

// slidePoints lists the talking points of a slide's kind-specific content
func slidePoints(s deck.Slide) []string {
	var points []string
	points = append(points, s.Bullets...)

	for _, c := range s.Cards {
		points = append(points, joinNonEmpty(": ", c.Title, c.Subtitle))
	}
	if f := s.Flow; f != nil {
		points = append(points,
			joinNonEmpty(": ", f.SourcesTitle, cardTitles(f.Sources)),
			joinNonEmpty(": ", f.PlatformTitle, strings.Join(f.Platform, ", ")),
			joinNonEmpty(": ", f.ResultsTitle, strings.Join(f.Results, ", ")),
		)
	}
	if t := s.Table; t != nil {
		for _, row := range t.Rows {
			points = append(points, strings.Join(row, " | "))
		}
	}
	if p := s.Profile; p != nil {
		points = append(points, joinNonEmpty(" ", p.Name, bracket(p.Badge)))
	}
	if tr := s.Transcript; tr != nil {
		for _, line := range tr.Lines {
			points = append(points, line.Role+": "+line.Text)
		}
	}
	for _, wf := range s.Workflows {
		points = append(points, fmt.Sprintf("%s (%s): %s", wf.Title, wf.Trigger, strings.Join(wf.Steps, " → ")))
	}
	for i, st := range s.Steps {
		points = append(points, fmt.Sprintf("%d. %s", i+1, st.Title))
	}
	if s.Callout != nil {
		points = append(points, s.Callout.Title)
	}
	for _, a := range s.Agents {
		points = append(points, fmt.Sprintf("%s (%s)", a.Name, a.Role))
	}
	if len(s.Pipeline) > 0 {
		points = append(points, strings.Join(s.Pipeline, " → "))
	}
	if c := s.Contact; c != nil {
		for _, e := range c.Entries {
			points = append(points, e.Label+": "+strings.Join(e.Lines, ", "))
		}
	}
	return points
}

func cardTitles(cards []deck.Card) string {
	titles := make([]string, len(cards))
	for i, c := range cards {
		titles[i] = c.Title
	}
	return strings.Join(titles, ", ")
}

func bracket(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// formatOffset renders a reveal offset as seconds, e.g. "+7.5s"
func formatOffset(d time.Duration) string {
	return fmt.Sprintf("+%.1fs", d.Seconds())
}
