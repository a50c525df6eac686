package monitor

import (
	"sort"
	"sync"
	"time"
)

// EventKind classifies a timeline entry
type EventKind string

const (
	EventEnter    EventKind = "enter"
	EventNavigate EventKind = "navigate"
	EventBlocked  EventKind = "blocked"
	EventReveal   EventKind = "reveal"
	EventComplete EventKind = "complete"
)

// TimelineEvent is one thing that happened during a session
type TimelineEvent struct {
	At     time.Time `json:"at"`
	Kind   EventKind `json:"kind"`
	Slide  int       `json:"slide"` // 1-based, 0 when not tied to a slide
	Detail string    `json:"detail,omitempty"`
}

// Timeline is a bounded, time-ordered event log. When full, the oldest
// entries are dropped.
type Timeline struct {
	events    []TimelineEvent
	maxEvents int
	dropped   int
	mutex     sync.RWMutex
}

// DefaultMaxEvents bounds a session timeline
const DefaultMaxEvents = 1000

// NewTimeline creates a timeline holding at most maxEvents entries
func NewTimeline(maxEvents int) *Timeline {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	return &Timeline{maxEvents: maxEvents}
}

// Add appends an event, keeping the log sorted by time
func (tl *Timeline) Add(ev TimelineEvent) {
	tl.mutex.Lock()
	defer tl.mutex.Unlock()

	tl.events = append(tl.events, ev)
	if n := len(tl.events); n > 1 && ev.At.Before(tl.events[n-2].At) {
		sort.SliceStable(tl.events, func(i, j int) bool {
			return tl.events[i].At.Before(tl.events[j].At)
		})
	}

	if over := len(tl.events) - tl.maxEvents; over > 0 {
		tl.events = append(tl.events[:0:0], tl.events[over:]...)
		tl.dropped += over
	}
}

// Events returns a copy of the log
func (tl *Timeline) Events() []TimelineEvent {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()

	out := make([]TimelineEvent, len(tl.events))
	copy(out, tl.events)
	return out
}

// GetRange returns events within [start, end]
func (tl *Timeline) GetRange(start, end time.Time) []TimelineEvent {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()

	var result []TimelineEvent
	for _, ev := range tl.events {
		if !ev.At.Before(start) && !ev.At.After(end) {
			result = append(result, ev)
		}
	}
	return result
}

// Len returns the number of retained events
func (tl *Timeline) Len() int {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()
	return len(tl.events)
}

// Dropped returns how many events were evicted
func (tl *Timeline) Dropped() int {
	tl.mutex.RLock()
	defer tl.mutex.RUnlock()
	return tl.dropped
}
