package reveal

import (
	"sync"
	"time"
)

const defaultEventBuffer = 64

// Event is emitted each time a message is appended to the log
type Event struct {
	Generation uint64
	Message    Message
	Count      int
	Complete   bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock overrides the system clock
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithEventBuffer sets the capacity of the Events channel
func WithEventBuffer(n int) Option {
	return func(s *Scheduler) {
		if n >= 0 {
			s.bufSize = n
		}
	}
}

// Scheduler replays a Script against a clock, appending each entry to a
// visible log once its offset has elapsed. A single timer is armed at a time.
type Scheduler struct {
	mu         sync.Mutex
	clock      Clock
	bufSize    int
	events     chan Event
	script     Script
	log        []Message
	next       int
	started    time.Time
	timer      Timer
	running    bool
	generation uint64
}

// New creates a scheduler for script. The script is copied and ordered by
// offset.
func New(script Script, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:   SystemClock(),
		bufSize: defaultEventBuffer,
		script:  script.Sorted(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make(chan Event, s.bufSize)
	return s
}

// Events delivers reveal notifications. Sends never block; a full buffer
// drops the notification but never the log entry.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Start cancels any run in progress, clears the log and arms the schedule
func (s *Scheduler) Start() uint64 {
	s.mu.Lock()
	s.stopLocked()
	s.log = s.log[:0]
	s.next = 0
	s.started = s.clock.Now()
	s.running = true
	gen := s.generation

	// Zero offsets and an empty script resolve immediately.
	s.emitLocked(s.revealDueLocked(gen, 0))
	s.armLocked(gen)
	s.mu.Unlock()

	return gen
}

// Cancel stops pending reveals. The log keeps whatever was already shown and
// no further appends happen until the next Start.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Log returns a copy of the revealed messages
func (s *Scheduler) Log() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.log))
	copy(out, s.log)
	return out
}

// Len returns the number of revealed messages
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

// Total returns the number of scripted entries
func (s *Scheduler) Total() int {
	return len(s.script)
}

// Complete reports whether every scripted entry has been revealed
func (s *Scheduler) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log) == len(s.script)
}

// Running reports whether reveals are still pending
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Generation identifies the current run. It changes on every Start and
// Cancel so events from an older run can be told apart.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.running = false
	s.generation++
}

func (s *Scheduler) armLocked(gen uint64) {
	if s.next >= len(s.script) {
		s.running = false
		s.timer = nil
		return
	}
	wait := s.script[s.next].Offset - s.clock.Now().Sub(s.started)
	if wait < 0 {
		wait = 0
	}
	s.timer = s.clock.AfterFunc(wait, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.running {
		s.mu.Unlock()
		return
	}
	elapsed := s.clock.Now().Sub(s.started)
	s.emitLocked(s.revealDueLocked(gen, elapsed))
	s.armLocked(gen)
	s.mu.Unlock()
}

func (s *Scheduler) revealDueLocked(gen uint64, elapsed time.Duration) []Event {
	var out []Event
	for s.next < len(s.script) && s.script[s.next].Offset <= elapsed {
		e := s.script[s.next]
		s.log = append(s.log, Message{Actor: e.Actor, Text: e.Text})
		s.next++
		out = append(out, Event{
			Generation: gen,
			Message:    s.log[len(s.log)-1],
			Count:      len(s.log),
			Complete:   len(s.log) == len(s.script),
		})
	}
	if len(s.script) == 0 {
		out = append(out, Event{Generation: gen, Complete: true})
	}
	return out
}

// emitLocked runs under the lock so events arrive in log order
func (s *Scheduler) emitLocked(events []Event) {
	for _, ev := range events {
		select {
		case s.events <- ev:
		default:
		}
	}
}
