package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/emoji"
	"github.com/yildizm/pitchdeck/internal/logger"
	"github.com/yildizm/pitchdeck/internal/nav"
	"github.com/yildizm/pitchdeck/internal/reveal"
	"github.com/yildizm/pitchdeck/internal/ui/components"
)

// DefaultTransition is the total length of a slide transition
const DefaultTransition = 500 * time.Millisecond

// Recorder observes presentation activity
type Recorder interface {
	SlideEntered(index int, id string, at time.Time)
	Navigated(cmd nav.Command, src nav.Source, moved bool, at time.Time)
	Revealed(ev reveal.Event, at time.Time)
}

type nopRecorder struct{}

func (nopRecorder) SlideEntered(int, string, time.Time)                {}
func (nopRecorder) Navigated(nav.Command, nav.Source, bool, time.Time) {}
func (nopRecorder) Revealed(reveal.Event, time.Time)                   {}

// Options configures the presenter
type Options struct {
	Deck     *deck.Deck
	DeckPath string // reloaded when Watcher reports a change

	Start         int // zero-based, clamped into the deck
	Transition    time.Duration
	Mouse         bool
	Theme         string
	MarkdownStyle string

	Clock    reveal.Clock
	Watcher  *deck.Watcher
	Recorder Recorder
	Logger   *logger.Logger
}

// Model is the root presenter model. It owns the navigation controller and
// one reveal scheduler per chat slide; only the mounted slide's scheduler
// ever runs.
type Model struct {
	deck     *deck.Deck
	deckPath string
	nav      *nav.Controller
	reveals  map[int]*reveal.Scheduler

	// Mounted chat slide
	active   *reveal.Scheduler
	mountSeq uint64
	waitCtx  context.Context
	stopWait context.CancelFunc

	themeName string
	keys      KeyMap
	help      help.Model
	showHelp  bool
	styles    *Styles
	md        *markdownRenderer
	spinner   *components.Spinner

	clock         reveal.Clock
	transitionLen time.Duration
	transition    *transition
	transitionSeq uint64

	mouse     bool
	watcher   *deck.Watcher
	watchCtx  context.Context
	stopWatch context.CancelFunc
	recorder  Recorder
	log       *logger.Logger

	width    int
	height   int
	ready    bool
	quitting bool
	closed   bool
}

// NewModel creates the presenter model
func NewModel(opts Options) (*Model, error) {
	d := opts.Deck
	if d == nil {
		var err error
		if d, err = deck.Default(); err != nil {
			return nil, err
		}
	}

	m := &Model{
		deckPath:      opts.DeckPath,
		themeName:     opts.Theme,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		md:            newMarkdownRenderer(opts.MarkdownStyle),
		spinner:       components.NewSpinner(),
		clock:         opts.Clock,
		transitionLen: opts.Transition,
		mouse:         opts.Mouse,
		watcher:       opts.Watcher,
		recorder:      opts.Recorder,
		log:           opts.Logger,
	}
	if m.clock == nil {
		m.clock = reveal.SystemClock()
	}
	if m.recorder == nil {
		m.recorder = nopRecorder{}
	}
	if m.log == nil {
		m.log = logger.NewWithWriter("ui", nil, nil)
	}
	if m.transitionLen < 0 {
		m.transitionLen = 0
	}

	if err := m.setDeck(d, opts.Start); err != nil {
		return nil, err
	}
	if m.watcher != nil {
		m.watchCtx, m.stopWatch = context.WithCancel(context.Background())
	}
	return m, nil
}

// setDeck installs a deck, keeping the slide position where possible
func (m *Model) setDeck(d *deck.Deck, start int) error {
	theme, ok := ThemeByName(m.themeName, d.Brand.Accent)
	if !ok {
		return fmt.Errorf("unknown theme: %s (must be one of: %s)", m.themeName, strings.Join(GetAvailableThemes(), ", "))
	}
	ctrl, err := nav.NewAt(d.Len(), start)
	if err != nil {
		return fmt.Errorf("failed to create navigation: %w", err)
	}

	reveals := make(map[int]*reveal.Scheduler)
	for i, s := range d.Slides {
		if s.HasChat() {
			reveals[i] = reveal.New(s.Chat.Script, reveal.WithClock(m.clock))
		}
	}

	m.deck = d
	m.nav = ctrl
	m.reveals = reveals
	m.styles = NewStyles(theme)
	m.spinner.Color = theme.Accent
	return nil
}

// Init mounts the starting slide
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.mountSlide(m.nav.Index()), tick()}
	if m.watcher != nil {
		cmds = append(cmds, watchDeck(m.watchCtx, m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tickMsg:
		return m.handleTick()
	case revealMsg:
		return m.handleReveal(msg)
	case transitionFrameMsg:
		return m.handleTransitionFrame(msg)
	case deckChangedMsg:
		return m.handleDeckChanged()
	case deckLoadedMsg:
		return m.handleDeckLoaded(msg)
	}

	return m, nil
}

// Index returns the current slide index
func (m *Model) Index() int {
	return m.nav.Index()
}

// Deck returns the deck being presented
func (m *Model) Deck() *deck.Deck {
	return m.deck
}

// dispatch is the single entry point for navigation, whatever the input
// modality
func (m *Model) dispatch(cmd nav.Command, src nav.Source) (tea.Model, tea.Cmd) {
	from := m.nav.Index()
	moved := m.nav.Apply(cmd)
	m.recorder.Navigated(cmd, src, moved, m.clock.Now())
	if !moved {
		return m, nil
	}

	m.log.DebugWithFields("navigate", []logger.Field{
		logger.F("command", cmd),
		logger.F("source", src),
		logger.F("from", from),
		logger.F("to", m.nav.Index()),
	})

	m.unmountSlide()
	return m, tea.Batch(m.mountSlide(m.nav.Index()), m.startTransition(from))
}

// mountSlide runs when slide i becomes current. A chat slide starts its
// scheduler and a waiter for its events.
func (m *Model) mountSlide(i int) tea.Cmd {
	s := m.deck.Slides[i]
	m.recorder.SlideEntered(i, s.ID, m.clock.Now())

	sched, ok := m.reveals[i]
	if !ok {
		return nil
	}

	m.mountSeq++
	m.waitCtx, m.stopWait = context.WithCancel(context.Background())
	m.active = sched
	gen := sched.Start()
	m.log.Debug("chat started on slide %s (generation %d)", s.ID, gen)
	return m.waitForReveal()
}

// unmountSlide cancels the mounted slide's scheduler, if any. No reveal of
// the cancelled run reaches the view afterwards.
func (m *Model) unmountSlide() {
	if m.active == nil {
		return
	}
	m.active.Cancel()
	m.stopWait()
	m.active = nil
	m.stopWait = nil
}

func (m *Model) waitForReveal() tea.Cmd {
	return waitForReveal(m.waitCtx, m.mountSeq, m.active.Events())
}

func (m *Model) startTransition(from int) tea.Cmd {
	if m.transitionLen <= 0 {
		m.transition = nil
		return nil
	}
	m.transitionSeq++
	m.transition = &transition{
		seq:     m.transitionSeq,
		from:    from,
		started: m.clock.Now(),
		length:  m.transitionLen,
	}
	return transitionFrame(m.transitionSeq)
}

// Close tears the presenter down: the mounted scheduler is cancelled and
// the deck watcher stopped. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.unmountSlide()
	if m.stopWatch != nil {
		m.stopWatch()
	}
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// Handler functions for Update method

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.ready = true
	return m, nil
}

// handleKeyPress handles keyboard input. Unbound keys are ignored.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(nav.Advance, nav.SourceKeyboard)
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(nav.Retreat, nav.SourceKeyboard)
	}
	return m, nil
}

// handleMouse maps left clicks on the footer controls to navigation
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || !m.ready {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y != m.footerRow() {
		return m, nil
	}

	l := layoutFooter(m.width)
	switch {
	case l.prev.contains(msg.X):
		return m.dispatch(nav.Retreat, nav.SourcePointer)
	case l.next.contains(msg.X):
		return m.dispatch(nav.Advance, nav.SourcePointer)
	}
	return m, nil
}

// handleQuit handles quit commands
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// handleTick handles timer ticks
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.spinner.Tick()
	return m, tick()
}

// handleReveal applies a scheduler event. Events from an earlier mount are
// dropped; events from an earlier run of this mount's scheduler are skipped.
func (m *Model) handleReveal(msg revealMsg) (tea.Model, tea.Cmd) {
	if m.active == nil || msg.mount != m.mountSeq {
		return m, nil
	}
	if msg.event.Generation != m.active.Generation() {
		return m, m.waitForReveal()
	}

	m.recorder.Revealed(msg.event, m.clock.Now())
	if msg.event.Complete {
		m.log.Debug("chat complete with %d messages", msg.event.Count)
		return m, nil
	}
	return m, m.waitForReveal()
}

// handleTransitionFrame advances the running transition. Frames from a
// superseded transition are dropped.
func (m *Model) handleTransitionFrame(msg transitionFrameMsg) (tea.Model, tea.Cmd) {
	if m.transition == nil || msg.seq != m.transition.seq {
		return m, nil
	}
	if m.transition.done(m.clock.Now()) {
		m.transition = nil
		return m, nil
	}
	return m, transitionFrame(msg.seq)
}

// handleDeckChanged reloads the deck and keeps watching
func (m *Model) handleDeckChanged() (tea.Model, tea.Cmd) {
	if m.watcher == nil || m.closed {
		return m, nil
	}
	m.log.Info("deck changed on disk, reloading %s", m.deckPath)
	return m, tea.Batch(reloadDeck(m.deckPath), watchDeck(m.watchCtx, m.watcher))
}

// handleDeckLoaded swaps in a reloaded deck. An invalid deck keeps the
// current one on screen.
func (m *Model) handleDeckLoaded(msg deckLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("deck reload failed, keeping current deck: %v", msg.err)
		return m, nil
	}

	idx := m.nav.Index()
	m.unmountSlide()
	if err := m.setDeck(msg.deck, idx); err != nil {
		m.log.Warn("deck reload rejected: %v", err)
		return m, m.mountSlide(m.nav.Index())
	}
	m.transition = nil
	m.log.Info("deck reloaded with %d slides", msg.deck.Len())
	return m, m.mountSlide(m.nav.Index())
}

// footerRow is the screen row of the footer controls
func (m *Model) footerRow() int {
	return m.height - 1
}

func (m *Model) bodyHeight() int {
	// header, spacer, progress rule and footer
	return max(m.height-4, 1)
}

func (m *Model) footerState() footerState {
	return footerState{
		ordinal:      m.nav.Ordinal(),
		total:        m.nav.Total(),
		label:        m.deck.Label,
		prevDisabled: m.nav.PrevDisabled(),
		nextDisabled: m.nav.NextDisabled(),
	}
}

func (m *Model) chatStateFor(i int) chatState {
	sched, ok := m.reveals[i]
	if !ok {
		return chatState{}
	}
	return chatState{
		log:      sched.Log(),
		complete: sched.Complete(),
		running:  sched.Running(),
		typing:   m.spinner.Render(),
	}
}

// View renders the presenter
func (m *Model) View() string {
	if !m.ready {
		return m.renderLoadingScreen()
	}

	if m.quitting {
		return m.renderGoodbyeScreen()
	}

	body := m.renderBody(m.nav.Index())
	if m.transition != nil {
		outgoing := m.renderBody(m.transition.from)
		body = transitionView(outgoing, body, m.width, m.transition.progress(m.clock.Now()))
	}

	st := m.footerState()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		renderProgressLine(m.width, st, m.styles),
		renderFooter(layoutFooter(m.width), st, m.styles),
	)
}

func (m *Model) renderLoadingScreen() string {
	loading := m.styles.Accent.Render("Loading " + m.deck.Title + "...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, loading)
}

func (m *Model) renderGoodbyeScreen() string {
	goodbye := m.styles.Accent.Render(m.deck.Brand.Name + " " + emoji.GetEmoji("success"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, goodbye)
}

// renderHeader draws the brand mark on the left and the client badge on
// the right
func (m *Model) renderHeader() string {
	b := m.deck.Brand
	left := "  " + m.styles.Mark.Render(b.Mark) + " " + m.styles.Title.Render(b.Name)
	right := ""
	if m.deck.Client != "" {
		right = m.styles.Eyebrow.Render(strings.ToUpper("Client: "+m.deck.Client)) + "  "
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderBody renders slide i centred in the body area
func (m *Model) renderBody(i int) string {
	r := slideRenderer{
		styles:  m.styles,
		md:      m.md,
		width:   min(max(m.width-4, 20), maxContentWidth),
		spinner: m.spinner.Render(),
	}
	content := r.render(m.deck.Slides[i], m.chatStateFor(i))
	if m.showHelp && i == m.nav.Index() {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.View(m.keys))
	}

	h := m.bodyHeight()
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, clipLines(content, h))
}

// clipLines keeps at most n lines of s
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// Run runs the presenter until the user quits
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer model.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, programOpts...)
	_, err = p.Run()
	return err
}
