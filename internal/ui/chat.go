package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/emoji"
	"github.com/yildizm/pitchdeck/internal/reveal"
)

// chatState is what the chat window needs from the scheduler
type chatState struct {
	log      []reveal.Message
	complete bool
	running  bool
	typing   string // spinner frame shown while a reply is pending
}

// renderChat draws the phone-style chat window. User messages are right
// aligned, bot messages left aligned, and the completion banner appears only
// once the whole script has been revealed.
func renderChat(c *deck.Chat, st chatState, width int, styles *Styles) string {
	inner := max(width-4, 16)
	bubbleW := max(inner*3/4, 12)

	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.Accent.Render(emoji.GetEmoji("chat")+" "+c.Title),
		styles.Success.Render("● "+c.Status),
	)

	rows := make([]string, 0, len(st.log)+2)
	for _, msg := range st.log {
		text := wordwrap.String(msg.Text, bubbleW-2)
		if msg.Actor == reveal.ActorUser {
			bubble := styles.UserBubble.Render(text)
			rows = append(rows, lipgloss.PlaceHorizontal(inner, lipgloss.Right, bubble))
		} else {
			rows = append(rows, styles.BotBubble.Render(text))
		}
		rows = append(rows, "")
	}

	if st.running && !st.complete && st.typing != "" {
		rows = append(rows, styles.Muted.Render(st.typing+" ..."))
	}
	if st.complete && c.Completion != "" {
		banner := styles.Success.Render(emoji.GetEmoji("success") + " " + c.Completion)
		rows = append(rows, lipgloss.PlaceHorizontal(inner, lipgloss.Center, banner))
	}

	body := strings.Join(rows, "\n")
	return styles.Card.
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}
