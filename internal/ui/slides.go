package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/emoji"
	"github.com/yildizm/pitchdeck/internal/ui/components"
)

const (
	maxContentWidth = 110
	columnGap       = 2
)

// slideRenderer lays out one slide within width cells. Every slide kind is
// a pure function of its static content; only the chat slide also reads
// the scheduler state.
type slideRenderer struct {
	styles  *Styles
	md      *markdownRenderer
	width   int
	spinner string
}

func (r slideRenderer) render(s deck.Slide, chat chatState) string {
	switch s.Kind {
	case deck.KindCover:
		return r.cover(s)
	case deck.KindPillars:
		return r.pillars(s)
	case deck.KindCards:
		return r.cards(s)
	case deck.KindFlow:
		return r.flow(s)
	case deck.KindProfile:
		return r.profile(s)
	case deck.KindChat:
		return r.chat(s, chat)
	case deck.KindTranscript:
		return r.transcript(s)
	case deck.KindWorkflows:
		return r.workflows(s)
	case deck.KindSteps:
		return r.steps(s)
	case deck.KindAgents:
		return r.agents(s)
	case deck.KindContact:
		return r.contact(s)
	default:
		return r.heading(s)
	}
}

// heading renders the eyebrow, the numbered title and the subtitle
func (r slideRenderer) heading(s deck.Slide) string {
	lines := make([]string, 0, 3)
	if s.Eyebrow != "" {
		lines = append(lines, r.styles.Eyebrow.Render(strings.ToUpper(s.Eyebrow)))
	}
	title := r.styles.Title.Render(wordwrap.String(s.Title, r.width))
	if s.Number != "" {
		title = r.styles.Accent.Render(s.Number) + "  " + title
	}
	lines = append(lines, title)
	if s.Subtitle != "" {
		lines = append(lines, r.styles.Subtitle.Render(s.Subtitle))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r slideRenderer) body(s deck.Slide) string {
	return r.md.Render(s.Body, r.width)
}

func (r slideRenderer) cover(s deck.Slide) string {
	rule := r.styles.Accent.Render(strings.Repeat("━", 12))
	lines := []string{}
	if s.Eyebrow != "" {
		lines = append(lines, r.styles.Muted.Render(strings.ToUpper(s.Eyebrow)), "")
	}
	lines = append(lines,
		r.styles.Title.Render(s.Title),
		r.styles.Accent.Render(s.Subtitle),
		"",
		rule,
	)
	if s.Body != "" {
		lines = append(lines, "", r.styles.Badge.Render(s.Body))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (r slideRenderer) pillars(s deck.Slide) string {
	n := max(len(s.Cards), 1)
	cardW := max((r.width-columnGap*(n-1))/n, 12)

	boxes := make([]string, 0, len(s.Cards))
	for _, c := range s.Cards {
		content := lipgloss.JoinVertical(lipgloss.Center,
			emoji.Icon(c.Icon),
			r.styles.Title.Render(c.Title),
		)
		boxes = append(boxes, r.styles.Card.Width(cardW-2).Align(lipgloss.Center).Render(content))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.heading(s),
		"",
		r.body(s),
		"",
		r.row(boxes),
	)
}

func (r slideRenderer) cards(s deck.Slide) string {
	cols := 2
	if r.width < 70 {
		cols = 1
	}
	cardW := (r.width - columnGap*(cols-1)) / cols

	boxes := make([]string, 0, len(s.Cards))
	for _, c := range s.Cards {
		boxes = append(boxes, r.card(c, cardW, false))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.heading(s),
		"",
		r.grid(boxes, cols),
	)
}

// card renders an icon, title, subtitle and wrapped text in a box of
// width cells
func (r slideRenderer) card(c deck.Card, width int, highlight bool) string {
	inner := max(width-4, 8)
	title := c.Title
	if icon := emoji.Icon(c.Icon); icon != "" {
		title = icon + " " + title
	}

	lines := []string{r.styles.Accent.Render(title)}
	if c.Subtitle != "" {
		lines = append(lines, r.styles.Subtitle.Render(wordwrap.String(c.Subtitle, inner)))
	}
	if c.Text != "" {
		lines = append(lines, "", r.styles.Body.Render(wordwrap.String(c.Text, inner)))
	}

	style := r.styles.Card
	if highlight {
		style = r.styles.HighlightCard
	}
	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r slideRenderer) flow(s deck.Slide) string {
	f := s.Flow
	stacked := r.width < 72
	colW := (r.width - 2*5) / 3
	if stacked {
		colW = r.width
	}

	sources := []string{r.styles.Eyebrow.Render(strings.ToUpper(f.SourcesTitle))}
	for _, c := range f.Sources {
		sources = append(sources, r.styles.Panel.Width(colW-2).Render(emoji.Icon(c.Icon)+" "+c.Title))
	}

	platform := []string{r.styles.Accent.Render(f.PlatformTitle), ""}
	for i, item := range f.Platform {
		if i == f.Highlight {
			platform = append(platform, r.styles.Accent.Render("▸ "+item))
			continue
		}
		platform = append(platform, r.styles.Body.Render("  "+item))
	}
	platformBox := r.styles.HighlightCard.Width(colW - 2).Render(lipgloss.JoinVertical(lipgloss.Left, platform...))

	results := []string{r.styles.Eyebrow.Render(strings.ToUpper(f.ResultsTitle))}
	for _, item := range f.Results {
		results = append(results, r.styles.Success.Render(emoji.GetEmoji("check"))+" "+item)
	}

	left := lipgloss.JoinVertical(lipgloss.Left, sources...)
	right := lipgloss.JoinVertical(lipgloss.Left, results...)

	var diagram string
	if stacked {
		down := r.styles.Muted.Render("↓")
		diagram = lipgloss.JoinVertical(lipgloss.Left, left, down, platformBox, down, right)
	} else {
		arrow := r.styles.Muted.Render("  →  ")
		diagram = lipgloss.JoinHorizontal(lipgloss.Center, left, arrow, platformBox, arrow, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left, r.heading(s), "", diagram)
}

func (r slideRenderer) profile(s deck.Slide) string {
	cardW := 40
	sideBySide := r.width >= 100
	tableW := r.width
	if sideBySide {
		tableW = r.width - cardW - columnGap
	}

	parts := []string{}
	if s.Table != nil {
		parts = append(parts, r.table(s.Table, tableW))
	}
	if s.Profile != nil {
		parts = append(parts, r.profileCard(s.Profile, min(cardW, r.width)))
	}

	var content string
	if sideBySide && len(parts) == 2 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, parts[0], strings.Repeat(" ", columnGap), parts[1])
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.heading(s), "", content)
}

// table lays out cells by display width so that Vietnamese text and emoji
// stay aligned
func (r slideRenderer) table(t *deck.Table, width int) string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}
	sep := " │ "
	sepW := runewidth.StringWidth(sep)
	budget := max((width-sepW*(cols-1))/cols, 6)

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = min(max(widths[i], runewidth.StringWidth(row[i])), budget)
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	cell := func(text string, w int) string {
		return runewidth.FillRight(runewidth.Truncate(text, w, "…"), w)
	}

	renderRow := func(row []string, header bool) string {
		cells := make([]string, cols)
		for i := 0; i < cols; i++ {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			c := cell(text, widths[i])
			switch {
			case header:
				c = r.styles.Eyebrow.Render(c)
			case i == t.Accent:
				c = r.styles.Accent.Render(c)
			default:
				c = r.styles.Body.Render(c)
			}
			cells[i] = c
		}
		return strings.Join(cells, r.styles.Muted.Render(sep))
	}

	total := sepW * (cols - 1)
	for _, w := range widths {
		total += w
	}

	lines := []string{renderRow(t.Headers, true), r.styles.Muted.Render(strings.Repeat("─", total))}
	for _, row := range t.Rows {
		lines = append(lines, renderRow(row, false))
	}
	return strings.Join(lines, "\n")
}

func (r slideRenderer) profileCard(p *deck.Profile, width int) string {
	inner := max(width-4, 10)

	name := r.styles.Title.Render(emoji.GetEmoji("user") + " " + p.Name)
	if p.Badge != "" {
		name += "  " + r.styles.Accent.Render("["+p.Badge+"]")
	}
	lines := []string{name}
	if p.Summary != "" {
		lines = append(lines, r.styles.Muted.Render(p.Summary))
	}

	if len(p.Stats) > 0 {
		tiles := make([]*components.StatTile, 0, len(p.Stats))
		for _, st := range p.Stats {
			tiles = append(tiles, components.NewStatTile(st.Label, st.Value, st.Unit).
				SetColors(r.styles.Theme.Accent, r.styles.Theme.Muted))
		}
		lines = append(lines, "", components.StatRow(tiles, inner, columnGap))
	}

	if len(p.Facts) > 0 {
		lines = append(lines, "")
		for _, f := range p.Facts {
			label := strings.TrimSpace(emoji.Icon(f.Icon) + " " + f.Label)
			lines = append(lines,
				r.styles.Muted.Render(label),
				r.styles.Body.Render(wordwrap.String(f.Value, inner)),
			)
		}
	}

	if p.Tip != nil {
		tip := emoji.GetEmoji("bulb") + " " + p.Tip.Label + " " + p.Tip.Value
		lines = append(lines, "", r.styles.Warning.Render(wordwrap.String(tip, inner)))
	}

	return r.styles.HighlightCard.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r slideRenderer) chat(s deck.Slide, st chatState) string {
	sideBySide := r.width >= 80
	chatW := r.width
	featuresW := r.width
	if sideBySide {
		featuresW = r.width * 45 / 100
		chatW = r.width - featuresW - columnGap
	}

	features := make([]string, 0, len(s.Cards))
	for _, c := range s.Cards {
		features = append(features, r.card(c, featuresW, false))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, features...)

	var window string
	if s.Chat != nil {
		window = renderChat(s.Chat, st, chatW, r.styles)
	}

	var content string
	if sideBySide {
		content = lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", columnGap), window)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, left, "", window)
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.heading(s), "", content)
}

func (r slideRenderer) transcript(s deck.Slide) string {
	textW := r.width
	sideBySide := r.width >= 90
	if sideBySide {
		textW = r.width / 2
	}

	info := []string{r.heading(s)}
	if s.Body != "" {
		info = append(info, "", r.md.Render(s.Body, textW))
	}
	if len(s.Bullets) > 0 {
		info = append(info, "")
		for _, b := range s.Bullets {
			info = append(info, r.styles.Accent.Render(emoji.GetEmoji("check"))+" "+wordwrap.String(b, textW-3))
		}
	}
	left := lipgloss.JoinVertical(lipgloss.Left, info...)

	if s.Transcript == nil {
		return left
	}

	panelW := r.width
	if sideBySide {
		panelW = r.width - textW - columnGap
	}
	inner := max(panelW-4, 10)

	tr := s.Transcript
	lines := []string{}
	if tr.Session != "" {
		lines = append(lines, r.styles.Muted.Render(emoji.GetEmoji("lock")+" "+tr.Session), "")
	}
	for _, line := range tr.Lines {
		lines = append(lines,
			r.styles.Accent.Render(strings.ToUpper(line.Role)),
			r.styles.Body.Render(wordwrap.String(line.Text, inner)),
		)
		if line.Source != "" {
			lines = append(lines, r.styles.Muted.Render(wordwrap.String(line.Source, inner)))
		}
		lines = append(lines, "")
	}
	if tr.Indicator != "" {
		lines = append(lines, r.styles.Warning.Render(strings.TrimSpace(r.spinner+" "+tr.Indicator)))
	}
	panel := r.styles.Panel.Width(panelW - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", columnGap), panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, "", panel)
}

func (r slideRenderer) workflows(s deck.Slide) string {
	cols := 2
	if r.width < 70 {
		cols = 1
	}
	boxW := (r.width - columnGap*(cols-1)) / cols
	inner := max(boxW-4, 10)

	boxes := make([]string, 0, len(s.Workflows))
	for _, wf := range s.Workflows {
		lines := []string{
			r.styles.Accent.Render(wf.Title),
			r.styles.Muted.Render(emoji.GetEmoji("zap") + " Trigger: " + wf.Trigger),
			"",
		}
		for i, step := range wf.Steps {
			lines = append(lines, r.styles.Body.Render(wordwrap.String(fmt.Sprintf("%d. %s", i+1, step), inner)))
		}
		boxes = append(boxes, r.styles.Card.Width(boxW-2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, r.heading(s), "", r.grid(boxes, cols))
}

func (r slideRenderer) steps(s deck.Slide) string {
	lines := []string{r.heading(s), ""}
	for i, step := range s.Steps {
		num := r.styles.Accent.Render(fmt.Sprintf("%d", i+1))
		lines = append(lines,
			num+"  "+r.styles.Title.Render(step.Title),
			"   "+r.styles.Body.Render(wordwrap.String(step.Text, r.width-3)),
			"",
		)
	}
	if s.Callout != nil {
		lines = append(lines, r.card(*s.Callout, r.width, true))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r slideRenderer) agents(s deck.Slide) string {
	cols := 4
	if r.width < 80 {
		cols = 2
	}
	boxW := (r.width - columnGap*(cols-1)) / cols

	boxes := make([]string, 0, len(s.Agents))
	for _, a := range s.Agents {
		content := lipgloss.JoinVertical(lipgloss.Left,
			r.styles.Title.Render(emoji.GetEmoji("robot")+" "+a.Name),
			r.styles.Muted.Render(a.Role),
		)
		boxes = append(boxes, r.styles.Card.Width(boxW-2).Render(content))
	}

	parts := []string{r.heading(s)}
	if s.Body != "" {
		parts = append(parts, "", r.body(s))
	}
	parts = append(parts, "", r.grid(boxes, cols))
	if len(s.Pipeline) > 0 {
		arrow := r.styles.Muted.Render(" " + emoji.GetEmoji("arrow") + " ")
		steps := make([]string, len(s.Pipeline))
		for i, p := range s.Pipeline {
			steps[i] = r.styles.Accent.Render(p)
		}
		parts = append(parts, "", r.styles.Panel.Render(strings.Join(steps, arrow)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r slideRenderer) contact(s deck.Slide) string {
	c := s.Contact
	heading := s.Title
	if c != nil && c.Heading != "" {
		heading = c.Heading
	}

	lines := []string{r.styles.Title.Render(heading), r.styles.Accent.Render(strings.Repeat("━", 8)), ""}
	if c != nil {
		for _, e := range c.Entries {
			label := strings.TrimSpace(emoji.Icon(e.Icon) + " " + e.Label)
			lines = append(lines, r.styles.Accent.Render(label))
			for _, l := range e.Lines {
				lines = append(lines, "   "+r.styles.Body.Render(l))
			}
			lines = append(lines, "")
		}
	}
	details := lipgloss.JoinVertical(lipgloss.Left, lines...)

	if s.Map == nil || len(s.Map.Markers) == 0 || r.width < 70 {
		return details
	}
	mapW := min(36, r.width/2)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		details,
		strings.Repeat(" ", columnGap*2),
		r.styles.Panel.Render(renderMap(s.Map, mapW-4, 12, r.styles)),
	)
}

// renderMap plots the markers on a character canvas scaled to their
// bounding box
func renderMap(m *deck.Map, cols, rows int, styles *Styles) string {
	if cols < 4 || rows < 2 {
		return ""
	}
	minX, maxX := m.Markers[0].X, m.Markers[0].X
	minY, maxY := m.Markers[0].Y, m.Markers[0].Y
	for _, mk := range m.Markers[1:] {
		minX, maxX = min(minX, mk.X), max(maxX, mk.X)
		minY, maxY = min(minY, mk.Y), max(maxY, mk.Y)
	}
	scale := func(v, lo, hi float64, n int) int {
		if hi == lo {
			return n / 2
		}
		return int((v - lo) / (hi - lo) * float64(n-1))
	}

	// Leave room on the right for labels
	plotCols := max(cols/2, 2)
	canvas := make([][]string, rows)
	for y := range canvas {
		canvas[y] = make([]string, cols)
		for x := range canvas[y] {
			canvas[y][x] = " "
		}
	}

	for _, mk := range m.Markers {
		x := scale(mk.X, minX, maxX, plotCols)
		y := scale(mk.Y, minY, maxY, rows)
		glyph := styles.Accent.Render("●")
		if mk.Cluster {
			glyph = styles.Muted.Render("◆")
		}
		canvas[y][x] = glyph

		col := x + 2
		for _, r := range mk.Name {
			if col >= cols {
				break
			}
			w := runewidth.RuneWidth(r)
			if w != 1 {
				continue
			}
			canvas[y][col] = styles.Body.Render(string(r))
			col++
		}
	}

	lines := make([]string, rows)
	for y, row := range canvas {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// row joins blocks horizontally with the column gap
func (r slideRenderer) row(blocks []string) string {
	if len(blocks) == 0 {
		return ""
	}
	gap := strings.Repeat(" ", columnGap)
	parts := make([]string, 0, len(blocks)*2-1)
	for i, b := range blocks {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// grid lays blocks out cols per row
func (r slideRenderer) grid(blocks []string, cols int) string {
	rows := make([]string, 0, (len(blocks)+cols-1)/cols)
	for i := 0; i < len(blocks); i += cols {
		rows = append(rows, r.row(blocks[i:min(i+cols, len(blocks))]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
