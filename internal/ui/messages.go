package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/reveal"
)

// Message types shared by the presenter model
type tickMsg time.Time

type revealMsg struct {
	mount uint64
	event reveal.Event
}

type deckChangedMsg struct{}

type deckLoadedMsg struct {
	deck *deck.Deck
	err  error
}

type transitionFrameMsg struct {
	seq uint64
}

const (
	tickInterval  = 100 * time.Millisecond
	frameInterval = time.Second / 60
)

// Animation command
func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForReveal blocks until the scheduler emits an event or ctx ends.
// A nil message is dropped by the program.
func waitForReveal(ctx context.Context, mount uint64, events <-chan reveal.Event) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-events:
			return revealMsg{mount: mount, event: ev}
		case <-ctx.Done():
			return nil
		}
	}
}

// watchDeck blocks until the deck file changes on disk
func watchDeck(ctx context.Context, w *deck.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Changed():
			return deckChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// reloadDeck reads and validates the deck file
func reloadDeck(path string) tea.Cmd {
	return func() tea.Msg {
		d, err := deck.Load(path)
		return deckLoadedMsg{deck: d, err: err}
	}
}

func transitionFrame(seq uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return transitionFrameMsg{seq: seq}
	})
}
