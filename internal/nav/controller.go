package nav

import "errors"

// ErrEmptyDeck is returned when a controller is built for zero slides.
var ErrEmptyDeck = errors.New("deck has no slides")

// Command is a logical navigation request, independent of the input that produced it
type Command int

const (
	// Advance moves one slide forward
	Advance Command = iota + 1
	// Retreat moves one slide back
	Retreat
)

// String returns the command name
func (c Command) String() string {
	switch c {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// Source identifies the input modality a command came from
type Source int

const (
	SourceKeyboard Source = iota
	SourcePointer
)

// String returns the source name
func (s Source) String() string {
	if s == SourcePointer {
		return "pointer"
	}
	return "keyboard"
}

// Controller owns the current slide index of a deck with a fixed slide count.
// The index only changes through Next, Previous and Apply.
type Controller struct {
	total int
	index int
}

// New creates a controller positioned on the first slide
func New(total int) (*Controller, error) {
	return NewAt(total, 0)
}

// NewAt creates a controller positioned on start, clamped into range
func NewAt(total, start int) (*Controller, error) {
	if total < 1 {
		return nil, ErrEmptyDeck
	}
	return &Controller{
		total: total,
		index: Clamp(start, 0, total-1),
	}, nil
}

// Next moves forward one slide. It reports whether the index changed.
func (c *Controller) Next() bool {
	next := min(c.index+1, c.total-1)
	moved := next != c.index
	c.index = next
	return moved
}

// Previous moves back one slide. It reports whether the index changed.
func (c *Controller) Previous() bool {
	prev := max(c.index-1, 0)
	moved := prev != c.index
	c.index = prev
	return moved
}

// Apply routes a command to Next or Previous. Unknown commands are ignored.
func (c *Controller) Apply(cmd Command) bool {
	switch cmd {
	case Advance:
		return c.Next()
	case Retreat:
		return c.Previous()
	default:
		return false
	}
}

// Index returns the zero-based current slide
func (c *Controller) Index() int {
	return c.index
}

// Total returns the slide count
func (c *Controller) Total() int {
	return c.total
}

// Ordinal returns the one-based label of the current slide
func (c *Controller) Ordinal() int {
	return c.index + 1
}

// Progress returns the filled fraction of the deck, in [1/N, 1]
func (c *Controller) Progress() float64 {
	return Progress(c.index, c.total)
}

// PrevDisabled reports whether Previous would be a no-op
func (c *Controller) PrevDisabled() bool {
	return c.index == 0
}

// NextDisabled reports whether Next would be a no-op
func (c *Controller) NextDisabled() bool {
	return c.index == c.total-1
}
