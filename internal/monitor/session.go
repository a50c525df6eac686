// Package monitor records what happens during a live presentation and
// summarises it once the presenter quits.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/yildizm/pitchdeck/internal/nav"
	"github.com/yildizm/pitchdeck/internal/reveal"
)

// slideStats accumulates visits to one slide position
type slideStats struct {
	id    string
	dwell *Timer
}

// Session observes a presentation. Its method set matches the presenter's
// recorder hooks, so a *Session can be passed straight to the UI.
type Session struct {
	title     string
	total     int
	startedAt time.Time
	endedAt   time.Time

	slides    map[int]*slideStats
	current   int
	enteredAt time.Time

	navigations map[nav.Source]*Counter
	blocked     *Counter
	messages    *Counter
	chatRuns    *Counter
	timeline    *Timeline

	finished bool
	mutex    sync.Mutex
}

// NewSession starts recording a presentation of total slides
func NewSession(title string, total int, startedAt time.Time) *Session {
	return &Session{
		title:     title,
		total:     total,
		startedAt: startedAt,
		slides:    make(map[int]*slideStats),
		current:   -1,
		navigations: map[nav.Source]*Counter{
			nav.SourceKeyboard: NewCounter("keyboard"),
			nav.SourcePointer:  NewCounter("pointer"),
		},
		blocked:  NewCounter("blocked"),
		messages: NewCounter("messages"),
		chatRuns: NewCounter("chat_runs"),
		timeline: NewTimeline(DefaultMaxEvents),
	}
}

// SlideEntered closes the dwell of the previous slide and opens one for index
func (s *Session) SlideEntered(index int, id string, at time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.finished {
		return
	}

	s.closeDwell(at)

	st, ok := s.slides[index]
	if !ok {
		st = &slideStats{dwell: NewTimer(id)}
		s.slides[index] = st
	}
	st.id = id
	s.current = index
	s.enteredAt = at
	if index >= s.total {
		s.total = index + 1
	}

	s.timeline.Add(TimelineEvent{At: at, Kind: EventEnter, Slide: index + 1, Detail: id})
}

// Navigated counts a command. Commands that hit a bound count as blocked.
func (s *Session) Navigated(cmd nav.Command, src nav.Source, moved bool, at time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.finished {
		return
	}

	if c, ok := s.navigations[src]; ok {
		c.Inc()
	}
	kind := EventNavigate
	if !moved {
		s.blocked.Inc()
		kind = EventBlocked
	}
	s.timeline.Add(TimelineEvent{
		At:     at,
		Kind:   kind,
		Slide:  s.current + 1,
		Detail: fmt.Sprintf("%s via %s", cmd, src),
	})
}

// Revealed counts chat messages and completed runs
func (s *Session) Revealed(ev reveal.Event, at time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.finished {
		return
	}

	if ev.Message.Text != "" {
		s.messages.Inc()
		s.timeline.Add(TimelineEvent{At: at, Kind: EventReveal, Slide: s.current + 1, Detail: string(ev.Message.Actor)})
	}
	if ev.Complete {
		s.chatRuns.Inc()
		s.timeline.Add(TimelineEvent{At: at, Kind: EventComplete, Slide: s.current + 1})
	}
}

// Finish stops recording and builds the report. Later calls return the same
// figures without recording more dwell time.
func (s *Session) Finish(at time.Time) *Report {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.finished {
		s.closeDwell(at)
		s.endedAt = at
		s.finished = true
	}
	return s.buildReport()
}

// closeDwell records time spent on the current slide. Callers hold the mutex.
func (s *Session) closeDwell(at time.Time) {
	if s.current < 0 {
		return
	}
	if st, ok := s.slides[s.current]; ok {
		st.dwell.Record(at.Sub(s.enteredAt))
	}
}

func (s *Session) buildReport() *Report {
	r := &Report{
		Deck:      s.title,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		Duration:  s.endedAt.Sub(s.startedAt),
		Navigation: NavigationReport{
			Keyboard: s.navigations[nav.SourceKeyboard].Get(),
			Pointer:  s.navigations[nav.SourcePointer].Get(),
			Blocked:  s.blocked.Get(),
		},
		Reveals: RevealReport{
			Messages:      s.messages.Get(),
			CompletedRuns: s.chatRuns.Get(),
		},
		Timeline:        s.timeline.Events(),
		DroppedEvents:   s.timeline.Dropped(),
		TotalSlides:     s.total,
		SlidesPresented: len(s.slides),
	}

	var dwellTotal time.Duration
	for i := 0; i < s.total; i++ {
		st, ok := s.slides[i]
		if !ok {
			continue
		}
		dwellTotal += st.dwell.TotalTime()
		r.Slides = append(r.Slides, SlideReport{
			Number: i + 1,
			ID:     st.id,
			Visits: st.dwell.Count(),
			Dwell:  st.dwell.TotalTime(),
			Avg:    st.dwell.AvgTime(),
			Max:    st.dwell.MaxTime(),
		})
	}
	if dwellTotal > 0 {
		for i := range r.Slides {
			r.Slides[i].Share = float64(r.Slides[i].Dwell) / float64(dwellTotal)
		}
	}
	if s.total > 0 {
		r.Coverage = float64(len(s.slides)) / float64(s.total)
	}
	return r
}
