package monitor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/yildizm/go-termfmt"
)

// ReportFormat represents the output format for reports
type ReportFormat string

const (
	ReportFormatJSON     ReportFormat = "json"
	ReportFormatText     ReportFormat = "text"
	ReportFormatMarkdown ReportFormat = "markdown"
	ReportFormatCSV      ReportFormat = "csv"
)

// Report summarises one presentation session
type Report struct {
	Deck            string           `json:"deck"`
	StartedAt       time.Time        `json:"started_at"`
	EndedAt         time.Time        `json:"ended_at"`
	Duration        time.Duration    `json:"duration"`
	TotalSlides     int              `json:"total_slides"`
	SlidesPresented int              `json:"slides_presented"`
	Coverage        float64          `json:"coverage"`
	Slides          []SlideReport    `json:"slides"`
	Navigation      NavigationReport `json:"navigation"`
	Reveals         RevealReport     `json:"reveals"`
	Timeline        []TimelineEvent  `json:"timeline,omitempty"`
	DroppedEvents   int              `json:"dropped_events,omitempty"`
}

// SlideReport is the time spent on one slide
type SlideReport struct {
	Number int           `json:"number"`
	ID     string        `json:"id"`
	Visits int64         `json:"visits"`
	Dwell  time.Duration `json:"dwell"`
	Avg    time.Duration `json:"avg_dwell"`
	Max    time.Duration `json:"max_dwell"`
	Share  float64       `json:"share"`
}

// NavigationReport counts navigation commands by input
type NavigationReport struct {
	Keyboard int64 `json:"keyboard"`
	Pointer  int64 `json:"pointer"`
	Blocked  int64 `json:"blocked"`
}

// RevealReport counts chat activity
type RevealReport struct {
	Messages      int64 `json:"messages"`
	CompletedRuns int64 `json:"completed_runs"`
}

// Notes lists observations worth acting on before the next rehearsal
func (r *Report) Notes() []string {
	var notes []string

	if r.SlidesPresented < r.TotalSlides {
		notes = append(notes, fmt.Sprintf("%d of %d slides were never shown", r.TotalSlides-r.SlidesPresented, r.TotalSlides))
	}
	if r.Navigation.Blocked > 0 {
		notes = append(notes, fmt.Sprintf("%d navigation commands hit the first or last slide", r.Navigation.Blocked))
	}
	if r.Reveals.Messages > 0 && r.Reveals.CompletedRuns == 0 {
		notes = append(notes, "The live chat was left before it finished")
	}
	for _, s := range r.Slides {
		if s.Share > 0.4 && len(r.Slides) > 2 {
			notes = append(notes, fmt.Sprintf("Slide %02d (%s) took %.0f%% of the talk", s.Number, s.ID, s.Share*100))
		}
	}
	return notes
}

// Format renders the report
func (r *Report) Format(format ReportFormat) ([]byte, error) {
	switch format {
	case ReportFormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case ReportFormatText, "":
		return []byte(r.formatText()), nil
	case ReportFormatMarkdown:
		return []byte(r.formatMarkdown()), nil
	case ReportFormatCSV:
		return r.formatCSV()
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (r *Report) formatText() string {
	var sb strings.Builder
	opts := termfmt.DefaultOptions()
	opts.Color = false

	sb.WriteString("Presentation Report\n")
	sb.WriteString("===================\n\n")
	fmt.Fprintf(&sb, "Deck: %s\n", r.Deck)
	fmt.Fprintf(&sb, "Duration: %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(&sb, "Slides shown: %d/%d (%.0f%%)\n\n", r.SlidesPresented, r.TotalSlides, r.Coverage*100)

	sb.WriteString("Time per slide:\n")
	for _, s := range r.Slides {
		fmt.Fprintf(&sb, "  %02d %-14s %s %8s  x%d\n",
			s.Number, s.ID, termfmt.CreateConfidenceBar(s.Share, opts), s.Dwell.Round(time.Second), s.Visits)
	}
	sb.WriteString("\n")

	sb.WriteString("Navigation:\n")
	fmt.Fprintf(&sb, "  Keyboard: %d\n", r.Navigation.Keyboard)
	fmt.Fprintf(&sb, "  Pointer: %d\n", r.Navigation.Pointer)
	fmt.Fprintf(&sb, "  Blocked: %d\n\n", r.Navigation.Blocked)

	sb.WriteString("Live chat:\n")
	fmt.Fprintf(&sb, "  Messages revealed: %d\n", r.Reveals.Messages)
	fmt.Fprintf(&sb, "  Completed runs: %d\n", r.Reveals.CompletedRuns)

	if notes := r.Notes(); len(notes) > 0 {
		sb.WriteString("\nNotes:\n")
		for _, n := range notes {
			fmt.Fprintf(&sb, "  - %s\n", n)
		}
	}
	return sb.String()
}

func (r *Report) formatMarkdown() string {
	var sb strings.Builder

	sb.WriteString("# Presentation Report\n\n")
	fmt.Fprintf(&sb, "**Deck:** %s  \n", r.Deck)
	fmt.Fprintf(&sb, "**Started:** %s  \n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Duration:** %s\n\n", r.Duration.Round(time.Second))

	sb.WriteString("## Slides\n\n")
	sb.WriteString("| # | Slide | Visits | Time | Share |\n")
	sb.WriteString("|---|-------|--------|------|-------|\n")
	for _, s := range r.Slides {
		fmt.Fprintf(&sb, "| %02d | %s | %d | %s | %.0f%% |\n", s.Number, s.ID, s.Visits, s.Dwell.Round(time.Second), s.Share*100)
	}
	sb.WriteString("\n")

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Slides shown | %d/%d |\n", r.SlidesPresented, r.TotalSlides)
	fmt.Fprintf(&sb, "| Keyboard navigations | %d |\n", r.Navigation.Keyboard)
	fmt.Fprintf(&sb, "| Pointer navigations | %d |\n", r.Navigation.Pointer)
	fmt.Fprintf(&sb, "| Blocked | %d |\n", r.Navigation.Blocked)
	fmt.Fprintf(&sb, "| Chat messages revealed | %d |\n", r.Reveals.Messages)
	fmt.Fprintf(&sb, "| Chat runs completed | %d |\n\n", r.Reveals.CompletedRuns)

	if notes := r.Notes(); len(notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&sb, "- %s\n", n)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *Report) formatCSV() ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"number", "id", "visits", "dwell_ms", "share"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, s := range r.Slides {
		record := []string{
			strconv.Itoa(s.Number),
			s.ID,
			strconv.FormatInt(s.Visits, 10),
			strconv.FormatInt(s.Dwell.Milliseconds(), 10),
			strconv.FormatFloat(s.Share, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	return b.Bytes(), w.Error()
}
