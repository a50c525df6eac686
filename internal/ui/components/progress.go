package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar is a thin deck progress bar: (current / total) of its width
// is filled
type ProgressBar struct {
	Width   int
	Current int
	Total   int
	Fill    lipgloss.TerminalColor
	Track   lipgloss.TerminalColor
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{
		Width: width,
		Fill:  lipgloss.Color("#A6192E"),
		Track: lipgloss.Color("#E5E7EB"),
	}
}

// SetProgress updates the progress
func (p *ProgressBar) SetProgress(current, total int) {
	p.Current = current
	p.Total = total
}

// Fraction returns the filled share in [0, 1]
func (p *ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// FilledWidth returns the number of filled cells
func (p *ProgressBar) FilledWidth() int {
	if p.Width <= 0 {
		return 0
	}
	return int(float64(p.Width)*p.Fraction() + 0.5)
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	if p.Width <= 0 {
		return ""
	}
	filled := p.FilledWidth()

	fillStyle := lipgloss.NewStyle().Foreground(p.Fill)
	trackStyle := lipgloss.NewStyle().Foreground(p.Track)

	return fillStyle.Render(strings.Repeat("━", filled)) +
		trackStyle.Render(strings.Repeat("━", p.Width-filled))
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
	Color lipgloss.TerminalColor
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{Color: lipgloss.Color("#A6192E")}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := lipgloss.NewStyle().Foreground(s.Color).Bold(true).Render(spinnerFrames[s.Frame])

	if s.Label != "" {
		return spinner + " " + s.Label
	}

	return spinner
}
