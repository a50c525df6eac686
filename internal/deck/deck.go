package deck

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDeck []byte

// Validation errors
var (
	ErrNoSlides       = errors.New("deck has no slides")
	ErrUnknownKind    = errors.New("unknown slide kind")
	ErrDuplicateID    = errors.New("duplicate slide id")
	ErrMissingContent = errors.New("slide is missing required content")
	ErrInvalidEntry   = errors.New("invalid chat script entry")
	ErrInvalidAccent  = errors.New("invalid brand accent color")
)

const (
	DefaultLabel  = "Commercial Proposal"
	DefaultAccent = "#A6192E"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Default returns the deck compiled into the binary
func Default() (*Deck, error) {
	d, err := Parse(defaultDeck)
	if err != nil {
		return nil, fmt.Errorf("embedded deck: %w", err)
	}
	return d, nil
}

// DefaultSource returns the raw YAML of the embedded deck
func DefaultSource() []byte {
	out := make([]byte, len(defaultDeck))
	copy(out, defaultDeck)
	return out
}

// Load reads and validates a deck file
func Load(path string) (*Deck, error) {
	if err := validateDeckPath(path); err != nil {
		return nil, fmt.Errorf("invalid deck path: %w", err)
	}

	// #nosec G304 - path is validated above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck %s: %w", path, err)
	}
	return d, nil
}

// LoadOrDefault loads path, or the embedded deck when path is empty
func LoadOrDefault(path string) (*Deck, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes YAML into a deck, fills defaults and validates it
func Parse(data []byte) (*Deck, error) {
	var d Deck
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}

	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Deck) applyDefaults() {
	if d.Label == "" {
		d.Label = DefaultLabel
	}
	if d.Brand.Accent == "" {
		d.Brand.Accent = DefaultAccent
	}
	if d.Brand.Mark == "" && d.Brand.Name != "" {
		d.Brand.Mark = string([]rune(d.Brand.Name)[:1])
	}
}

// Validate checks the deck's structure
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return ErrNoSlides
	}
	if d.Brand.Accent != "" && !hexColor.MatchString(d.Brand.Accent) {
		return fmt.Errorf("%w: %q", ErrInvalidAccent, d.Brand.Accent)
	}

	seen := make(map[string]int, len(d.Slides))
	for i, s := range d.Slides {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: slide %d has no id", ErrMissingContent, i+1)
		}
		if prev, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: %q at slides %d and %d", ErrDuplicateID, s.ID, prev+1, i+1)
		}
		seen[s.ID] = i

		if err := s.validate(); err != nil {
			return fmt.Errorf("slide %q: %w", s.ID, err)
		}
	}
	return nil
}

func (s Slide) validate() error {
	if !s.Kind.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}

	switch s.Kind {
	case KindPillars, KindCards:
		if len(s.Cards) == 0 {
			return fmt.Errorf("%w: cards", ErrMissingContent)
		}
	case KindFlow:
		if s.Flow == nil {
			return fmt.Errorf("%w: flow", ErrMissingContent)
		}
	case KindProfile:
		if s.Table == nil && s.Profile == nil {
			return fmt.Errorf("%w: table or profile", ErrMissingContent)
		}
		if s.Table != nil {
			if err := s.Table.validate(); err != nil {
				return err
			}
		}
	case KindChat:
		if s.Chat == nil {
			return fmt.Errorf("%w: chat", ErrMissingContent)
		}
		return s.Chat.validate()
	case KindTranscript:
		if s.Transcript == nil {
			return fmt.Errorf("%w: transcript", ErrMissingContent)
		}
	case KindWorkflows:
		if len(s.Workflows) == 0 {
			return fmt.Errorf("%w: workflows", ErrMissingContent)
		}
	case KindSteps:
		if len(s.Steps) == 0 {
			return fmt.Errorf("%w: steps", ErrMissingContent)
		}
	case KindAgents:
		if len(s.Agents) == 0 {
			return fmt.Errorf("%w: agents", ErrMissingContent)
		}
	case KindContact:
		if s.Contact == nil {
			return fmt.Errorf("%w: contact", ErrMissingContent)
		}
	}
	return nil
}

func (t *Table) validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("%w: table headers", ErrMissingContent)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("%w: table row %d has %d cells, want %d",
				ErrMissingContent, i+1, len(row), len(t.Headers))
		}
	}
	return nil
}

func (c *Chat) validate() error {
	for i, e := range c.Script {
		if !e.Actor.Valid() {
			return fmt.Errorf("%w: entry %d has actor %q", ErrInvalidEntry, i+1, e.Actor)
		}
		if e.Offset < 0 {
			return fmt.Errorf("%w: entry %d has negative offset %v", ErrInvalidEntry, i+1, e.Offset)
		}
		if strings.TrimSpace(e.Text) == "" {
			return fmt.Errorf("%w: entry %d has no text", ErrInvalidEntry, i+1)
		}
	}
	return nil
}

// validateDeckPath validates that a deck path is safe to read
func validateDeckPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, must be a file")
	}
	return nil
}
