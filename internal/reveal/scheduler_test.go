package reveal

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func orderScript() Script {
	return Script{
		{Actor: ActorUser, Text: "Cho em 2 ly G7 nóng giao đến 123 Lê Lợi", Offset: 1000 * time.Millisecond},
		{Actor: ActorBot, Text: "Dạ em xác nhận: 2 ly G7 nóng", Offset: 3000 * time.Millisecond},
		{Actor: ActorUser, Text: "0901234567", Offset: 5000 * time.Millisecond},
		{Actor: ActorBot, Text: "Anh Minh phải không ạ?", Offset: 7500 * time.Millisecond},
	}
}

func newTestScheduler(script Script) (*Scheduler, *ManualClock) {
	clock := NewManualClock(epoch)
	return New(script, WithClock(clock)), clock
}

func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestRevealTimeline(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	s.Start()

	steps := []struct {
		at   time.Duration
		want int
	}{
		{999 * time.Millisecond, 0},
		{1000 * time.Millisecond, 1},
		{2999 * time.Millisecond, 1},
		{3000 * time.Millisecond, 2},
		{5000 * time.Millisecond, 3},
		{7499 * time.Millisecond, 3},
		{7500 * time.Millisecond, 4},
	}

	var elapsed time.Duration
	for _, step := range steps {
		clock.Advance(step.at - elapsed)
		elapsed = step.at
		if got := s.Len(); got != step.want {
			t.Errorf("at %v: expected %d messages, got %d", step.at, step.want, got)
		}
	}

	if !s.Complete() {
		t.Error("Expected run to be complete")
	}
	if s.Running() {
		t.Error("Expected scheduler to stop after last entry")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no armed timers, got %d", clock.Pending())
	}
}

func TestRevealOrderMatchesScript(t *testing.T) {
	script := orderScript()
	s, clock := newTestScheduler(script)
	s.Start()
	clock.Advance(10 * time.Second)

	log := s.Log()
	if len(log) != len(script) {
		t.Fatalf("Expected %d messages, got %d", len(script), len(log))
	}
	for i, m := range log {
		if m.Actor != script[i].Actor || m.Text != script[i].Text {
			t.Errorf("message %d: expected %s %q, got %s %q", i, script[i].Actor, script[i].Text, m.Actor, m.Text)
		}
	}
}

func TestLargeAdvanceRevealsEverythingDue(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	s.Start()

	clock.Advance(5500 * time.Millisecond)
	if s.Len() != 3 {
		t.Errorf("Expected 3 messages after 5.5s, got %d", s.Len())
	}
}

func TestCancelFreezesLog(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	s.Start()

	clock.Advance(3500 * time.Millisecond)
	s.Cancel()
	frozen := s.Log()

	clock.Advance(time.Minute)
	if s.Len() != len(frozen) {
		t.Errorf("Expected log frozen at %d, got %d", len(frozen), s.Len())
	}
	if s.Running() {
		t.Error("Expected scheduler stopped after cancel")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected cancel to disarm timers, got %d pending", clock.Pending())
	}
}

func TestCancelBeforeFirstReveal(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	s.Start()
	clock.Advance(500 * time.Millisecond)
	s.Cancel()
	clock.Advance(time.Minute)

	if s.Len() != 0 {
		t.Errorf("Expected empty log, got %d", s.Len())
	}
}

func TestRestartClearsLog(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	s.Start()
	clock.Advance(8 * time.Second)
	if !s.Complete() {
		t.Fatal("Expected first run complete")
	}

	s.Start()
	if s.Len() != 0 {
		t.Errorf("Expected restart to clear the log, got %d", s.Len())
	}
	clock.Advance(1 * time.Second)
	if s.Len() != 1 {
		t.Errorf("Expected offsets measured from restart, got %d messages", s.Len())
	}
}

func TestRestartMidRun(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	s.Start()
	clock.Advance(3 * time.Second)

	s.Start()
	clock.Advance(2 * time.Second)
	if s.Len() != 1 {
		t.Errorf("Expected only the first entry of the new run, got %d", s.Len())
	}
	if clock.Pending() != 1 {
		t.Errorf("Expected a single armed timer, got %d", clock.Pending())
	}
}

func TestEqualOffsetsKeepScriptOrder(t *testing.T) {
	script := Script{
		{Actor: ActorUser, Text: "a", Offset: time.Second},
		{Actor: ActorBot, Text: "b", Offset: time.Second},
		{Actor: ActorUser, Text: "c", Offset: time.Second},
	}
	s, clock := newTestScheduler(script)
	s.Start()
	clock.Advance(time.Second)

	log := s.Log()
	if len(log) != 3 {
		t.Fatalf("Expected all three revealed together, got %d", len(log))
	}
	for i, want := range []string{"a", "b", "c"} {
		if log[i].Text != want {
			t.Errorf("position %d: expected %q, got %q", i, want, log[i].Text)
		}
	}
}

func TestUnsortedScriptIsRevealedByOffset(t *testing.T) {
	script := Script{
		{Actor: ActorBot, Text: "late", Offset: 2 * time.Second},
		{Actor: ActorUser, Text: "early", Offset: time.Second},
	}
	s, clock := newTestScheduler(script)
	s.Start()
	clock.Advance(time.Second)

	log := s.Log()
	if len(log) != 1 || log[0].Text != "early" {
		t.Errorf("Expected only the early entry, got %+v", log)
	}
}

func TestZeroOffsetRevealsOnStart(t *testing.T) {
	script := Script{{Actor: ActorBot, Text: "hello", Offset: 0}}
	s, _ := newTestScheduler(script)
	s.Start()

	if s.Len() != 1 || !s.Complete() {
		t.Errorf("Expected immediate reveal, got len=%d complete=%v", s.Len(), s.Complete())
	}
}

func TestEmptyScript(t *testing.T) {
	s, clock := newTestScheduler(nil)
	s.Start()

	if !s.Complete() {
		t.Error("Empty script should be complete immediately")
	}
	if s.Running() {
		t.Error("Empty script should not leave the scheduler running")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no timers for empty script, got %d", clock.Pending())
	}

	events := drain(s.Events())
	if len(events) != 1 || !events[0].Complete {
		t.Errorf("Expected a single completion event, got %+v", events)
	}
}

func TestEventsCarryGeneration(t *testing.T) {
	s, clock := newTestScheduler(orderScript())
	gen := s.Start()
	clock.Advance(8 * time.Second)

	events := drain(s.Events())
	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Generation != gen {
			t.Errorf("event %d: expected generation %d, got %d", i, gen, ev.Generation)
		}
		if ev.Count != i+1 {
			t.Errorf("event %d: expected count %d, got %d", i, i+1, ev.Count)
		}
	}
	if !events[3].Complete {
		t.Error("Expected last event to mark completion")
	}
	if events[2].Complete {
		t.Error("Only the last event should mark completion")
	}
}

func TestCancelAdvancesGeneration(t *testing.T) {
	s, _ := newTestScheduler(orderScript())
	gen := s.Start()
	s.Cancel()

	if s.Generation() == gen {
		t.Error("Expected cancel to retire the current generation")
	}
}

func TestFullEventBufferDoesNotDropMessages(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(orderScript(), WithClock(clock), WithEventBuffer(1))
	s.Start()
	clock.Advance(8 * time.Second)

	if s.Len() != 4 {
		t.Errorf("Expected all messages logged, got %d", s.Len())
	}
	if got := len(drain(s.Events())); got != 1 {
		t.Errorf("Expected buffer to hold one event, got %d", got)
	}
}

func TestScriptDuration(t *testing.T) {
	if d := orderScript().Duration(); d != 7500*time.Millisecond {
		t.Errorf("Expected 7.5s, got %v", d)
	}
	if d := Script(nil).Duration(); d != 0 {
		t.Errorf("Expected 0 for empty script, got %v", d)
	}
}

func TestActorValid(t *testing.T) {
	if !ActorUser.Valid() || !ActorBot.Valid() {
		t.Error("Expected built-in actors to be valid")
	}
	if Actor("narrator").Valid() {
		t.Error("Expected unknown actor to be invalid")
	}
}

func TestLogIsPrefixOfScript(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "entries")
		script := make(Script, n)
		for i := range script {
			script[i] = Entry{
				Actor:  rapid.SampledFrom([]Actor{ActorUser, ActorBot}).Draw(t, "actor"),
				Text:   rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "text"),
				Offset: time.Duration(rapid.IntRange(0, 5000).Draw(t, "offset")) * time.Millisecond,
			}
		}
		sorted := script.Sorted()

		clock := NewManualClock(epoch)
		s := New(script, WithClock(clock))
		s.Start()

		steps := rapid.SliceOf(rapid.IntRange(0, 2000)).Draw(t, "steps")
		var elapsed time.Duration
		for _, ms := range steps {
			d := time.Duration(ms) * time.Millisecond
			clock.Advance(d)
			elapsed += d

			log := s.Log()
			due := 0
			for _, e := range sorted {
				if e.Offset <= elapsed {
					due++
				}
			}
			if len(log) != due {
				t.Fatalf("after %v: expected %d revealed, got %d", elapsed, due, len(log))
			}
			for i, m := range log {
				if m.Text != sorted[i].Text || m.Actor != sorted[i].Actor {
					t.Fatalf("log diverged from script at %d", i)
				}
			}
		}
	})
}

func TestManualClockStop(t *testing.T) {
	clock := NewManualClock(epoch)
	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected first Stop to report true")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to report false")
	}
	clock.Advance(2 * time.Second)
	if fired {
		t.Error("Stopped timer fired")
	}
	if !clock.Now().Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("Expected clock at +2s, got %v", clock.Now().Sub(epoch))
	}
}
