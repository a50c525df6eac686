package export

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yildizm/pitchdeck/internal/deck"
	"github.com/yildizm/pitchdeck/internal/formatter"
	"github.com/yildizm/pitchdeck/internal/nav"
)

// Handout palette, matching the brand theme on a light page
const (
	colorPage   = "#FAFAF9"
	colorInk    = "#1C1917"
	colorSubtle = "#57534E"
	colorRule   = "#E7E5E4"
	colorBubble = "#F5F5F4"
)

const (
	margin     = 48
	headerH    = 64
	footerH    = 56
	titleSize  = 30
	bodySize   = 16
	lineHeight = 26
	mapCanvasW = 400.0
	mapCanvasH = 800.0
)

// page carries the geometry and colours shared by one handout
type page struct {
	canvas *svg.SVG
	width  int
	height int
	accent string
}

// RenderSlide draws slide index of d as a standalone SVG document
func RenderSlide(w io.Writer, d *deck.Deck, index, width, height int) error {
	if index < 0 || index >= d.Len() {
		return fmt.Errorf("slide index %d out of range [0, %d)", index, d.Len())
	}
	outline := formatter.BuildOutline(d).Slides[index]
	slide := d.Slides[index]

	p := &page{canvas: svg.New(w), width: width, height: height, accent: accentOf(d)}
	p.canvas.Start(width, height)
	p.canvas.Title(fmt.Sprintf("%02d %s", outline.Number, outline.Title))
	p.canvas.Rect(0, 0, width, height, "fill:"+colorPage)

	p.drawHeader(d)
	y := p.drawHeading(slide)

	contentW := width - 2*margin
	if slide.Map != nil {
		contentW = width*3/5 - margin
		p.drawMap(slide.Map, width*3/5, headerH+margin, width*2/5-margin, height-headerH-footerH-2*margin)
	}
	y = p.drawPoints(outline.Points, margin, y, contentW)
	if len(outline.Chat) > 0 {
		p.drawChat(outline.Chat, y+lineHeight/2, contentW)
	}

	p.drawFooter(d, index)
	p.canvas.End()
	return nil
}

func accentOf(d *deck.Deck) string {
	if d.Brand.Accent != "" {
		return d.Brand.Accent
	}
	return deck.DefaultAccent
}

func (p *page) drawHeader(d *deck.Deck) {
	c := p.canvas
	c.Line(0, headerH, p.width, headerH, "stroke:"+colorRule+";stroke-width:1")

	mark := d.Brand.Mark
	if mark == "" {
		mark = "•"
	}
	c.Roundrect(margin, 16, 32, 32, 6, 6, "fill:"+p.accent)
	c.Text(margin+16, 38, mark, "fill:#FFFFFF;font-size:18px;font-family:sans-serif;font-weight:bold;text-anchor:middle")
	c.Text(margin+44, 38, d.Brand.Name, "fill:"+colorInk+";font-size:16px;font-family:sans-serif;font-weight:bold;letter-spacing:2px")

	if d.Client != "" {
		c.Text(p.width-margin, 38, "CLIENT: "+strings.ToUpper(d.Client),
			"fill:"+colorSubtle+";font-size:12px;font-family:monospace;text-anchor:end")
	}
}

// drawHeading writes eyebrow, title and subtitle and returns the next free y
func (p *page) drawHeading(s deck.Slide) int {
	c := p.canvas
	y := headerH + margin

	eyebrow := s.Eyebrow
	if s.Number != "" {
		eyebrow = strings.TrimSpace(s.Number + " " + eyebrow)
	}
	if eyebrow != "" {
		c.Text(margin, y, strings.ToUpper(eyebrow), "fill:"+p.accent+";font-size:13px;font-family:monospace;letter-spacing:2px")
		y += lineHeight
	}

	for _, line := range wrap(s.Title, p.width-2*margin, titleSize) {
		y += titleSize
		c.Text(margin, y, line, fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif;font-weight:bold", colorInk, titleSize))
	}
	y += lineHeight / 2

	if s.Subtitle != "" {
		y += lineHeight
		c.Text(margin, y, s.Subtitle, fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif", colorSubtle, bodySize+2))
	}
	return y + lineHeight
}

// drawPoints lists talking points, stopping before the footer
func (p *page) drawPoints(points []string, x, y, width int) int {
	c := p.canvas
	limit := p.height - footerH - margin
	style := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif", colorInk, bodySize)

	for _, point := range points {
		lines := wrap(point, width-24, bodySize)
		if y+len(lines)*lineHeight > limit {
			break
		}
		c.Circle(x+5, y+lineHeight-6, 3, "fill:"+p.accent)
		for _, line := range lines {
			y += lineHeight
			c.Text(x+20, y, line, style)
		}
	}
	return y
}

// drawChat draws the full script as bubbles: user right, bot left
func (p *page) drawChat(lines []formatter.ChatLine, y, width int) {
	c := p.canvas
	limit := p.height - footerH - margin
	bubbleW := width * 3 / 4

	for _, l := range lines {
		text := wrap(l.Text, bubbleW-24, bodySize-2)
		h := len(text)*(lineHeight-4) + 28
		if y+h > limit {
			return
		}

		x, fill, ink := margin, colorBubble, colorInk
		if l.Actor == "user" {
			x, fill, ink = margin+width-bubbleW, p.accent, "#FFFFFF"
		}
		c.Roundrect(x, y, bubbleW, h, 12, 12, "fill:"+fill)
		c.Text(x+12, y+18, l.At, "fill:"+ink+";font-size:10px;font-family:monospace;opacity:0.7")

		ty := y + 18
		for _, line := range text {
			ty += lineHeight - 4
			c.Text(x+12, ty, line, fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif", ink, bodySize-2))
		}
		y += h + 10
	}
}

// drawMap scales the 400x800 map canvas into the given box
func (p *page) drawMap(m *deck.Map, x, y, w, h int) {
	c := p.canvas
	scale := min(float64(w)/mapCanvasW, float64(h)/mapCanvasH)
	c.Roundrect(x, y, w, h, 12, 12, "fill:"+colorBubble)

	c.Gtransform(fmt.Sprintf("translate(%d,%d) scale(%.4f)", x, y, scale))
	if m.Outline != "" {
		c.Path(strings.Join(strings.Fields(m.Outline), " "), "fill:"+colorRule+";stroke:"+colorSubtle+";stroke-width:2")
	}
	for _, mk := range m.Markers {
		mx, my := int(mk.X), int(mk.Y)
		if mk.Cluster {
			c.Circle(mx, my, 6, "fill:"+colorSubtle)
		} else {
			c.Circle(mx, my, 8, "fill:"+p.accent)
		}
		c.Text(mx+14, my+5, mk.Name, "fill:"+colorInk+";font-size:16px;font-family:sans-serif")
	}
	c.Gend()
}

func (p *page) drawFooter(d *deck.Deck, index int) {
	c := p.canvas
	top := p.height - footerH

	fill := int(float64(p.width) * nav.Progress(index, d.Len()))
	c.Rect(0, top, p.width, 3, "fill:"+colorRule)
	c.Rect(0, top, fill, 3, "fill:"+p.accent)

	label := fmt.Sprintf("%02d / %02d   %s", index+1, d.Len(), strings.ToUpper(d.Label))
	c.Text(margin, top+34, label, "fill:"+colorSubtle+";font-size:12px;font-family:monospace;letter-spacing:1px")
}

// wrap splits text into lines that fit width pixels at the given font size,
// assuming an average glyph is 0.55em wide
func wrap(text string, width, fontSize int) []string {
	cols := max(int(float64(width)/(float64(fontSize)*0.55)), 8)
	return strings.Split(wordwrap.String(text, cols), "\n")
}
