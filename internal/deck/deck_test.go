package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/pitchdeck/internal/reveal"
)

func TestDefaultDeck(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	if d.Len() != 11 {
		t.Errorf("Expected 11 slides, got %d", d.Len())
	}
	if d.Client != "Trung Nguyen Legend" {
		t.Errorf("Expected client badge, got %q", d.Client)
	}
	if d.Brand.Accent != "#A6192E" {
		t.Errorf("Expected brand accent #A6192E, got %s", d.Brand.Accent)
	}
	if d.Label != DefaultLabel {
		t.Errorf("Expected label %q, got %q", DefaultLabel, d.Label)
	}

	wantKinds := []Kind{
		KindCover, KindPillars, KindCards, KindFlow, KindProfile, KindChat,
		KindTranscript, KindWorkflows, KindSteps, KindAgents, KindContact,
	}
	for i, want := range wantKinds {
		if d.Slides[i].Kind != want {
			t.Errorf("slide %d: expected kind %s, got %s", i+1, want, d.Slides[i].Kind)
		}
	}
}

func TestDefaultChatScript(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	idx := d.IndexOf("hichat")
	if idx != 5 {
		t.Fatalf("Expected chat slide at index 5, got %d", idx)
	}
	slide := d.Slides[idx]
	if !slide.HasChat() {
		t.Fatal("Expected chat slide to carry a script")
	}

	script := slide.Chat.Script
	wantOffsets := []time.Duration{1000, 3000, 5000, 7500}
	wantActors := []reveal.Actor{reveal.ActorUser, reveal.ActorBot, reveal.ActorUser, reveal.ActorBot}
	if len(script) != len(wantOffsets) {
		t.Fatalf("Expected %d entries, got %d", len(wantOffsets), len(script))
	}
	for i, e := range script {
		if e.Offset != wantOffsets[i]*time.Millisecond {
			t.Errorf("entry %d: expected offset %v, got %v", i, wantOffsets[i]*time.Millisecond, e.Offset)
		}
		if e.Actor != wantActors[i] {
			t.Errorf("entry %d: expected actor %s, got %s", i, wantActors[i], e.Actor)
		}
	}
	if script[2].Text != "0901234567" {
		t.Errorf("Expected phone number entry, got %q", script[2].Text)
	}
	if slide.Chat.Completion != "Order #DH1928 Created Successfully" {
		t.Errorf("unexpected completion text %q", slide.Chat.Completion)
	}
}

func TestDefaultSourceIsCopy(t *testing.T) {
	src := DefaultSource()
	src[0] = '#'
	if _, err := Default(); err != nil {
		t.Errorf("mutating the returned source must not affect the embedded deck: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "no slides",
			yaml: "title: empty\nslides: []\n",
			want: ErrNoSlides,
		},
		{
			name: "unknown kind",
			yaml: "slides:\n  - {id: a, kind: hologram, title: x}\n",
			want: ErrUnknownKind,
		},
		{
			name: "duplicate id",
			yaml: "slides:\n  - {id: a, kind: cover, title: x}\n  - {id: a, kind: cover, title: y}\n",
			want: ErrDuplicateID,
		},
		{
			name: "missing id",
			yaml: "slides:\n  - {kind: cover, title: x}\n",
			want: ErrMissingContent,
		},
		{
			name: "chat without script section",
			yaml: "slides:\n  - {id: a, kind: chat, title: x}\n",
			want: ErrMissingContent,
		},
		{
			name: "bad actor",
			yaml: "slides:\n  - id: a\n    kind: chat\n    title: x\n    chat:\n      script:\n        - {actor: narrator, text: hi, offset: 1s}\n",
			want: ErrInvalidEntry,
		},
		{
			name: "negative offset",
			yaml: "slides:\n  - id: a\n    kind: chat\n    title: x\n    chat:\n      script:\n        - {actor: bot, text: hi, offset: -1s}\n",
			want: ErrInvalidEntry,
		},
		{
			name: "empty text",
			yaml: "slides:\n  - id: a\n    kind: chat\n    title: x\n    chat:\n      script:\n        - {actor: bot, text: \"  \", offset: 1s}\n",
			want: ErrInvalidEntry,
		},
		{
			name: "ragged table",
			yaml: "slides:\n  - id: a\n    kind: profile\n    title: x\n    table:\n      headers: [a, b]\n      rows: [[1]]\n",
			want: ErrMissingContent,
		},
		{
			name: "bad accent",
			yaml: "brand: {accent: red}\nslides:\n  - {id: a, kind: cover, title: x}\n",
			want: ErrInvalidAccent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("slides:\n  - {id: a, kind: cover, title: x, colour: red}\n"))
	if err == nil {
		t.Fatal("Expected unknown field to be rejected")
	}
	if !strings.Contains(err.Error(), "failed to parse deck") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	d, err := Parse([]byte("brand: {name: Acme}\nslides:\n  - {id: a, kind: cover, title: x}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if d.Label != DefaultLabel {
		t.Errorf("Expected default label, got %q", d.Label)
	}
	if d.Brand.Accent != DefaultAccent {
		t.Errorf("Expected default accent, got %q", d.Brand.Accent)
	}
	if d.Brand.Mark != "A" {
		t.Errorf("Expected mark derived from name, got %q", d.Brand.Mark)
	}
}

func TestEmptyChatScriptIsValid(t *testing.T) {
	d, err := Parse([]byte("slides:\n  - id: a\n    kind: chat\n    title: x\n    chat: {title: t, script: []}\n"))
	if err != nil {
		t.Fatalf("Expected empty script to be accepted: %v", err)
	}
	if !d.Slides[0].HasChat() {
		t.Error("Expected chat slide")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, DefaultSource(), 0600); err != nil {
		t.Fatalf("Failed to write deck: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Len() != 11 {
		t.Errorf("Expected 11 slides, got %d", d.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(dir); err == nil {
		t.Error("Expected error for directory")
	}
	if _, err := Load(""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestLoadOrDefault(t *testing.T) {
	d, err := LoadOrDefault("  ")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if d.IndexOf("cover") != 0 {
		t.Errorf("Expected embedded deck, got first slide %q", d.Slides[0].ID)
	}
}

func TestKindKnown(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Known() {
			t.Errorf("Expected %s to be known", k)
		}
	}
	if Kind("poster").Known() {
		t.Error("Expected poster to be unknown")
	}
}
