package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/yildizm/pitchdeck/internal/nav"
	"github.com/yildizm/pitchdeck/internal/reveal"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return epoch.Add(d)
}

func TestCounter(t *testing.T) {
	counter := NewCounter("test_counter")

	if counter.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", counter.Get())
	}

	counter.Inc()
	counter.Add(5)
	if counter.Get() != 6 {
		t.Errorf("Expected value 6, got %d", counter.Get())
	}

	if counter.Name() != "test_counter" {
		t.Errorf("Expected name 'test_counter', got %s", counter.Name())
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("dwell")

	if timer.MinTime() != 0 || timer.AvgTime() != 0 {
		t.Error("Expected zero min and avg before any record")
	}

	timer.Record(2 * time.Second)
	timer.Record(4 * time.Second)
	timer.Record(-time.Second)

	if timer.Count() != 3 {
		t.Errorf("Expected 3 records, got %d", timer.Count())
	}
	if timer.TotalTime() != 6*time.Second {
		t.Errorf("Expected total 6s, got %v", timer.TotalTime())
	}
	if timer.MinTime() != 0 {
		t.Errorf("Expected negative durations to clamp to 0, got %v", timer.MinTime())
	}
	if timer.MaxTime() != 4*time.Second {
		t.Errorf("Expected max 4s, got %v", timer.MaxTime())
	}
	if timer.AvgTime() != 2*time.Second {
		t.Errorf("Expected avg 2s, got %v", timer.AvgTime())
	}
}

func TestTimelineOrderAndBound(t *testing.T) {
	tl := NewTimeline(3)

	tl.Add(TimelineEvent{At: at(2 * time.Second), Kind: EventEnter, Slide: 2})
	tl.Add(TimelineEvent{At: at(1 * time.Second), Kind: EventEnter, Slide: 1})
	tl.Add(TimelineEvent{At: at(3 * time.Second), Kind: EventEnter, Slide: 3})

	events := tl.Events()
	for i, want := range []int{1, 2, 3} {
		if events[i].Slide != want {
			t.Errorf("event %d: expected slide %d, got %d", i, want, events[i].Slide)
		}
	}

	tl.Add(TimelineEvent{At: at(4 * time.Second), Kind: EventEnter, Slide: 4})
	if tl.Len() != 3 {
		t.Errorf("Expected 3 retained events, got %d", tl.Len())
	}
	if tl.Dropped() != 1 {
		t.Errorf("Expected 1 dropped event, got %d", tl.Dropped())
	}
	if first := tl.Events()[0]; first.Slide != 2 {
		t.Errorf("Expected oldest event evicted, first is slide %d", first.Slide)
	}

	got := tl.GetRange(at(2*time.Second), at(3*time.Second))
	if len(got) != 2 {
		t.Errorf("Expected 2 events in range, got %d", len(got))
	}
}

// rehearse plays a short session over an 11 slide deck
func rehearse() *Session {
	s := NewSession("AI Solutions Proposal", 11, epoch)

	s.SlideEntered(0, "cover", at(0))
	s.Navigated(nav.Retreat, nav.SourceKeyboard, false, at(5*time.Second))
	s.Navigated(nav.Advance, nav.SourceKeyboard, true, at(10*time.Second))
	s.SlideEntered(1, "ecosystem", at(10*time.Second))
	s.Navigated(nav.Advance, nav.SourcePointer, true, at(40*time.Second))
	s.SlideEntered(2, "overview", at(40*time.Second))
	s.Navigated(nav.Retreat, nav.SourcePointer, true, at(50*time.Second))
	s.SlideEntered(1, "ecosystem", at(50*time.Second))
	return s
}

func TestSessionDwell(t *testing.T) {
	s := rehearse()
	r := s.Finish(at(60 * time.Second))

	if r.Duration != time.Minute {
		t.Errorf("Expected 1m session, got %v", r.Duration)
	}
	if len(r.Slides) != 3 {
		t.Fatalf("Expected 3 slides presented, got %d", len(r.Slides))
	}

	eco := r.Slides[1]
	if eco.ID != "ecosystem" || eco.Visits != 2 {
		t.Errorf("Expected ecosystem visited twice, got %+v", eco)
	}
	if eco.Dwell != 40*time.Second {
		t.Errorf("Expected 40s on ecosystem, got %v", eco.Dwell)
	}
	if eco.Max != 30*time.Second {
		t.Errorf("Expected longest ecosystem visit 30s, got %v", eco.Max)
	}

	var share float64
	for _, sl := range r.Slides {
		share += sl.Share
	}
	if share < 0.999 || share > 1.001 {
		t.Errorf("Expected shares to sum to 1, got %f", share)
	}

	if r.SlidesPresented != 3 || r.TotalSlides != 11 {
		t.Errorf("Expected 3/11 slides, got %d/%d", r.SlidesPresented, r.TotalSlides)
	}
}

func TestSessionNavigationCounts(t *testing.T) {
	r := rehearse().Finish(at(60 * time.Second))

	if r.Navigation.Keyboard != 2 {
		t.Errorf("Expected 2 keyboard commands, got %d", r.Navigation.Keyboard)
	}
	if r.Navigation.Pointer != 2 {
		t.Errorf("Expected 2 pointer commands, got %d", r.Navigation.Pointer)
	}
	if r.Navigation.Blocked != 1 {
		t.Errorf("Expected 1 blocked command, got %d", r.Navigation.Blocked)
	}
}

func TestSessionReveals(t *testing.T) {
	s := NewSession("deck", 2, epoch)
	s.SlideEntered(0, "hichat", at(0))

	msgs := []reveal.Event{
		{Generation: 1, Message: reveal.Message{Actor: reveal.ActorUser, Text: "hi"}, Count: 1},
		{Generation: 1, Message: reveal.Message{Actor: reveal.ActorBot, Text: "hello"}, Count: 2, Complete: true},
	}
	for i, ev := range msgs {
		s.Revealed(ev, at(time.Duration(i+1)*time.Second))
	}
	// an empty script completes without a message
	s.Revealed(reveal.Event{Generation: 2, Complete: true}, at(3*time.Second))

	r := s.Finish(at(4 * time.Second))
	if r.Reveals.Messages != 2 {
		t.Errorf("Expected 2 messages, got %d", r.Reveals.Messages)
	}
	if r.Reveals.CompletedRuns != 2 {
		t.Errorf("Expected 2 completed runs, got %d", r.Reveals.CompletedRuns)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	s := rehearse()
	first := s.Finish(at(60 * time.Second))
	second := s.Finish(at(120 * time.Second))

	if first.Duration != second.Duration {
		t.Errorf("Expected stable duration, got %v then %v", first.Duration, second.Duration)
	}
	if first.Slides[1].Dwell != second.Slides[1].Dwell {
		t.Error("Expected no dwell recorded after Finish")
	}

	s.SlideEntered(3, "data-flow", at(130*time.Second))
	if third := s.Finish(at(140 * time.Second)); len(third.Slides) != 3 {
		t.Errorf("Expected events after Finish to be ignored, got %d slides", len(third.Slides))
	}
}

func TestReportNotes(t *testing.T) {
	r := rehearse().Finish(at(60 * time.Second))
	notes := strings.Join(r.Notes(), "\n")

	if !strings.Contains(notes, "8 of 11 slides were never shown") {
		t.Errorf("Expected coverage note, got %q", notes)
	}
	if !strings.Contains(notes, "1 navigation commands") {
		t.Errorf("Expected blocked note, got %q", notes)
	}
	if !strings.Contains(notes, "ecosystem") {
		t.Errorf("Expected dwell share note for ecosystem, got %q", notes)
	}
}

func TestReportFormats(t *testing.T) {
	r := rehearse().Finish(at(60 * time.Second))

	out, err := r.Format(ReportFormatJSON)
	if err != nil {
		t.Fatalf("JSON format failed: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded.Navigation.Pointer != 2 || len(decoded.Slides) != 3 {
		t.Errorf("JSON round trip lost data: %+v", decoded.Navigation)
	}

	out, err = r.Format(ReportFormatText)
	if err != nil {
		t.Fatalf("Text format failed: %v", err)
	}
	if !strings.Contains(string(out), "Slides shown: 3/11") {
		t.Errorf("Unexpected text report:\n%s", out)
	}

	out, err = r.Format(ReportFormatMarkdown)
	if err != nil {
		t.Fatalf("Markdown format failed: %v", err)
	}
	if !strings.Contains(string(out), "| 02 | ecosystem | 2 | 40s |") {
		t.Errorf("Unexpected markdown report:\n%s", out)
	}

	out, err = r.Format(ReportFormatCSV)
	if err != nil {
		t.Fatalf("CSV format failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 || lines[2] != "2,ecosystem,2,40000,0.6667" {
		t.Errorf("Unexpected CSV report:\n%s", out)
	}

	if _, err := r.Format("xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
