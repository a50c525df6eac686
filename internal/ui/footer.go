package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/yildizm/pitchdeck/internal/ui/components"
)

const (
	prevLabel    = "‹ PREV"
	nextLabel    = "NEXT ›"
	footerGap    = 3
	footerMargin = 2
)

// zone is a half-open column range [start, end) on the footer row
type zone struct {
	start, end int
}

func (z zone) contains(x int) bool {
	return x >= z.start && x < z.end
}

// footerLayout places the footer controls for a terminal width. It depends
// on nothing else, so hit testing and rendering always agree.
type footerLayout struct {
	width int
	left  int // cells available for the slide counter and label
	prev  zone
	next  zone
}

func layoutFooter(width int) footerLayout {
	prevW := lipgloss.Width(prevLabel)
	nextW := lipgloss.Width(nextLabel)
	right := prevW + footerGap + nextW + footerMargin

	start := max(width-right, 0)
	l := footerLayout{width: width, left: start}
	l.prev = zone{start, start + prevW}
	next := l.prev.end + footerGap
	l.next = zone{next, next + nextW}
	return l
}

// footerState is everything the footer shows
type footerState struct {
	ordinal      int
	total        int
	label        string
	prevDisabled bool
	nextDisabled bool
}

func renderFooter(l footerLayout, st footerState, styles *Styles) string {
	counter := fmt.Sprintf("%02d / %02d", st.ordinal, st.total)
	left := strings.Repeat(" ", footerMargin) + counter
	if st.label != "" {
		left += "   " + strings.ToUpper(st.label)
	}
	left = runewidth.Truncate(left, l.left, "…")
	left = runewidth.FillRight(left, l.left)

	var b strings.Builder
	b.WriteString(styles.Muted.Render(left))
	b.WriteString(buttonStyle(styles, st.prevDisabled).Render(prevLabel))
	b.WriteString(strings.Repeat(" ", footerGap))
	b.WriteString(buttonStyle(styles, st.nextDisabled).Render(nextLabel))
	b.WriteString(strings.Repeat(" ", footerMargin))
	return b.String()
}

// renderProgressLine is the full-width progress rule drawn above the footer
func renderProgressLine(width int, st footerState, styles *Styles) string {
	bar := components.NewProgressBar(width)
	bar.Fill = styles.Theme.Progress
	bar.Track = styles.Theme.Track
	bar.SetProgress(st.ordinal, st.total)
	return bar.Render()
}

func buttonStyle(styles *Styles, disabled bool) lipgloss.Style {
	if disabled {
		return styles.ButtonDisabled
	}
	return styles.Button
}
