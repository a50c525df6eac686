package ui

import (
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
)

// transition animates the change from slide `from` to the current slide.
// The outgoing slide slides left during the first half, then the incoming
// slide enters from the right.
type transition struct {
	seq     uint64
	from    int
	started time.Time
	length  time.Duration
}

func (t *transition) progress(now time.Time) float64 {
	if t.length <= 0 {
		return 1
	}
	p := float64(now.Sub(t.started)) / float64(t.length)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (t *transition) done(now time.Time) bool {
	return t.progress(now) >= 1
}

// easeInOut is the quadratic ease-in-out curve on [0, 1]
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// transitionView renders one frame. Only one of the two slides is ever
// visible in a frame.
func transitionView(outgoing, incoming string, width int, p float64) string {
	if width <= 0 {
		return incoming
	}
	if p < 0.5 {
		off := int(easeInOut(p*2) * float64(width))
		return shiftLeft(outgoing, off, width)
	}
	off := int((1 - easeInOut((p-0.5)*2)) * float64(width))
	return shiftRight(incoming, off, width)
}

func shiftLeft(block string, off, width int) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = xansi.Cut(line, off, width)
	}
	return strings.Join(lines, "\n")
}

func shiftRight(block string, off, width int) string {
	if off <= 0 {
		return block
	}
	pad := strings.Repeat(" ", off)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + xansi.Cut(line, 0, width-off)
	}
	return strings.Join(lines, "\n")
}
