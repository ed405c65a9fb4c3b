// Package svg renders a computed tree layout as a standalone SVG document.
package svg

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

const (
	background = "#d9f5d9"
	cardFill   = "#ffffff"
	cardStroke = "#dddddd"
	lineStroke = "#111111"
	markColor  = "#7a2cff"
)

// Renderer draws tree layouts. Now is used for age captions and defaults to
// time.Now when zero.
type Renderer struct {
	Metrics entities.Metrics
	Now     time.Time
}

// NewRenderer creates a renderer for the given metrics.
func NewRenderer(m entities.Metrics) *Renderer {
	return &Renderer{Metrics: m}
}

// Render produces the SVG document for a layout.
func (r *Renderer) Render(t *entities.TreeLayout) []byte {
	now := r.Now
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		t.Width, t.Height, t.Width, t.Height)
	fmt.Fprintf(&b, `<rect width="%.0f" height="%.0f" fill="%s"/>`+"\n", t.Width, t.Height, background)

	for _, ln := range t.Lines {
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			ln.X1, ln.Y1, ln.X2, ln.Y2, lineStroke)
	}

	for _, box := range t.Boxes {
		r.renderBox(&b, box, now)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func (r *Renderer) renderBox(b *strings.Builder, box entities.NodeBox, now time.Time) {
	m := r.Metrics

	r.renderCard(b, box.A, box.X, box.Y, now)
	if box.Kind != entities.UnitCouple {
		return
	}

	markX := box.X + m.CardW + m.CoupleGap + m.MarkW/2
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-weight="bold" fill="%s">&#8644;</text>`+"\n",
		markX, box.Y+m.CardH/2, markColor)

	if box.B != nil {
		r.renderCard(b, *box.B, box.X+m.CardW+2*m.CoupleGap+m.MarkW, box.Y, now)
	}
}

func (r *Renderer) renderCard(b *strings.Builder, p entities.Person, x, y float64, now time.Time) {
	m := r.Metrics

	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="14" fill="%s" stroke="%s"/>`+"\n",
		x, y, m.CardW, m.CardH, cardFill, cardStroke)

	name := p.Name
	if age := p.Age(now); age >= 0 {
		name = fmt.Sprintf("%s (%d)", name, age)
	}
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="15" font-weight="bold">%s</text>`+"\n",
		x+10, y+24, escape(name))

	caption := fmt.Sprintf("%s / %s", p.Gender, bloodLabel(p.BloodType))
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="12" fill="#666">%s</text>`+"\n",
		x+10, y+44, escape(caption))

	if p.Note != "" {
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="12" fill="#444">%s</text>`+"\n",
			x+10, y+66, escape(truncate(p.Note, 24)))
	}
}

func bloodLabel(bt entities.BloodType) string {
	if bt == entities.BloodUnknown {
		return "?"
	}
	return string(bt)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
