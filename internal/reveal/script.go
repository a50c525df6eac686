package reveal

import (
	"sort"
	"time"
)

// Actor is the speaker of a chat line
type Actor string

const (
	ActorUser Actor = "user"
	ActorBot  Actor = "bot"
)

// Valid reports whether a is a known actor
func (a Actor) Valid() bool {
	return a == ActorUser || a == ActorBot
}

// Entry is one scripted line. Offset is measured from the start of the run,
// not from the previous entry.
type Entry struct {
	Actor  Actor         `yaml:"actor" json:"actor"`
	Text   string        `yaml:"text" json:"text"`
	Offset time.Duration `yaml:"offset" json:"offset"`
}

// Message is a revealed line
type Message struct {
	Actor Actor  `json:"actor"`
	Text  string `json:"text"`
}

// Script is an ordered conversation
type Script []Entry

// Sorted returns a copy ordered by ascending offset. Entries with the same
// offset keep their script order.
func (s Script) Sorted() Script {
	out := make(Script, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

// Duration returns the largest offset in the script
func (s Script) Duration() time.Duration {
	var d time.Duration
	for _, e := range s {
		if e.Offset > d {
			d = e.Offset
		}
	}
	return d
}
