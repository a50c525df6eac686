package deck

import "github.com/yildizm/pitchdeck/internal/reveal"

// Kind selects how a slide's content is laid out
type Kind string

const (
	KindCover      Kind = "cover"
	KindPillars    Kind = "pillars"
	KindCards      Kind = "cards"
	KindFlow       Kind = "flow"
	KindProfile    Kind = "profile"
	KindChat       Kind = "chat"
	KindTranscript Kind = "transcript"
	KindWorkflows  Kind = "workflows"
	KindSteps      Kind = "steps"
	KindAgents     Kind = "agents"
	KindContact    Kind = "contact"
)

// Kinds lists every known slide kind
func Kinds() []Kind {
	return []Kind{
		KindCover, KindPillars, KindCards, KindFlow, KindProfile, KindChat,
		KindTranscript, KindWorkflows, KindSteps, KindAgents, KindContact,
	}
}

// Known reports whether k is a recognised kind
func (k Kind) Known() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Deck is an ordered, fixed sequence of slides
type Deck struct {
	Title  string  `yaml:"title"`
	Client string  `yaml:"client"`
	Label  string  `yaml:"label"`
	Brand  Brand   `yaml:"brand"`
	Slides []Slide `yaml:"slides"`
}

// Brand holds the presenter's identity shown in the header
type Brand struct {
	Name      string `yaml:"name"`
	Mark      string `yaml:"mark"`
	Accent    string `yaml:"accent"`
	Presenter string `yaml:"presenter"`
}

// Slide is one static screen. Only the sections relevant to Kind are set.
type Slide struct {
	ID       string   `yaml:"id"`
	Kind     Kind     `yaml:"kind"`
	Number   string   `yaml:"number,omitempty"`
	Eyebrow  string   `yaml:"eyebrow,omitempty"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle,omitempty"`
	Body     string   `yaml:"body,omitempty"`
	Bullets  []string `yaml:"bullets,omitempty"`
	Notes    string   `yaml:"notes,omitempty"`

	Cards      []Card      `yaml:"cards,omitempty"`
	Table      *Table      `yaml:"table,omitempty"`
	Profile    *Profile    `yaml:"profile,omitempty"`
	Flow       *Flow       `yaml:"flow,omitempty"`
	Chat       *Chat       `yaml:"chat,omitempty"`
	Transcript *Transcript `yaml:"transcript,omitempty"`
	Workflows  []Workflow  `yaml:"workflows,omitempty"`
	Steps      []Step      `yaml:"steps,omitempty"`
	Callout    *Card       `yaml:"callout,omitempty"`
	Agents     []Agent     `yaml:"agents,omitempty"`
	Pipeline   []string    `yaml:"pipeline,omitempty"`
	Contact    *Contact    `yaml:"contact,omitempty"`
	Map        *Map        `yaml:"map,omitempty"`
}

// Card is a titled block of text with an optional icon key
type Card struct {
	Icon     string `yaml:"icon,omitempty"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Text     string `yaml:"text,omitempty"`
}

// Table is a header row plus data rows. Accent marks the column drawn in
// the brand colour.
type Table struct {
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
	Accent  int        `yaml:"accent,omitempty"`
}

// Profile is the customer card shown next to the CDP table
type Profile struct {
	Name    string `yaml:"name"`
	Badge   string `yaml:"badge,omitempty"`
	Summary string `yaml:"summary,omitempty"`
	Stats   []Stat `yaml:"stats,omitempty"`
	Facts   []Fact `yaml:"facts,omitempty"`
	Tip     *Fact  `yaml:"tip,omitempty"`
}

// Stat is a headline number
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Unit  string `yaml:"unit,omitempty"`
}

// Fact is a labelled value
type Fact struct {
	Icon  string `yaml:"icon,omitempty"`
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Flow is the three-column data flow diagram
type Flow struct {
	SourcesTitle  string   `yaml:"sources_title"`
	Sources       []Card   `yaml:"sources"`
	PlatformTitle string   `yaml:"platform_title"`
	Platform      []string `yaml:"platform"`
	Highlight     int      `yaml:"highlight"`
	ResultsTitle  string   `yaml:"results_title"`
	Results       []string `yaml:"results"`
}

// Chat is the scripted conversation replayed by the reveal scheduler
type Chat struct {
	Title      string        `yaml:"title"`
	Status     string        `yaml:"status,omitempty"`
	Completion string        `yaml:"completion,omitempty"`
	Script     reveal.Script `yaml:"script"`
}

// Transcript is a static query/answer exchange
type Transcript struct {
	Session   string           `yaml:"session,omitempty"`
	Indicator string           `yaml:"indicator,omitempty"`
	Lines     []TranscriptLine `yaml:"lines"`
}

// TranscriptLine is one turn of a transcript
type TranscriptLine struct {
	Role   string `yaml:"role"`
	Text   string `yaml:"text"`
	Source string `yaml:"source,omitempty"`
}

// Workflow is a triggered sequence of marketing steps
type Workflow struct {
	Title   string   `yaml:"title"`
	Trigger string   `yaml:"trigger"`
	Steps   []string `yaml:"steps"`
}

// Step is a numbered scenario step
type Step struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Agent is a named AI marketer
type Agent struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Contact holds the closing slide's details
type Contact struct {
	Heading string         `yaml:"heading"`
	Entries []ContactEntry `yaml:"entries"`
}

// ContactEntry is one labelled group of contact lines
type ContactEntry struct {
	Icon  string   `yaml:"icon,omitempty"`
	Label string   `yaml:"label"`
	Lines []string `yaml:"lines"`
}

// Map is a stylised map with labelled markers on a 400x800 canvas
type Map struct {
	Outline string   `yaml:"outline,omitempty"`
	Markers []Marker `yaml:"markers"`
}

// Marker is a point of interest on the map
type Marker struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Cluster bool    `yaml:"cluster,omitempty"`
}

// Len returns the number of slides
func (d *Deck) Len() int {
	return len(d.Slides)
}

// IndexOf returns the position of the slide with the given ID, or -1
func (d *Deck) IndexOf(id string) int {
	for i, s := range d.Slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// HasChat reports whether the slide runs a timed reveal
func (s Slide) HasChat() bool {
	return s.Kind == KindChat && s.Chat != nil
}
