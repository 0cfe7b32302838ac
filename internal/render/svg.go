package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/radar"
)

// RadarSVG draws the result's radar points on l as a standalone SVG document.
// l must be the layout the points were projected with.
func RadarSVG(r *assessment.Result, l radar.Layout) string {
	n := len(r.ModuleScores)
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(l.Size), num(l.Size), num(l.Size), num(l.Size))
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="#f8fafc" rx="12"/>`+"\n")

	for _, rr := range l.Rings() {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s" fill="none" stroke="#e2e8f0" stroke-width="1"/>`+"\n",
			num(l.Center), num(l.Center), num(rr))
	}
	for _, p := range l.Axes(n) {
		fmt.Fprintf(&b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e2e8f0" stroke-width="1"/>`+"\n",
			num(l.Center), num(l.Center), num(p.X), num(p.Y))
	}

	if path := radar.Path(r.RadarPoints); path != "" {
		fmt.Fprintf(&b, `  <path d="%s" fill="rgba(59, 130, 246, 0.3)" stroke="#3b82f6" stroke-width="2"/>`+"\n", path)
	}
	for _, p := range r.RadarPoints {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="4" fill="#3b82f6"/>`+"\n", num(p.X), num(p.Y))
	}

	for i, p := range l.Labels(n, radar.DefaultLabelOffset) {
		fmt.Fprintf(&b, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-size="12" fill="#374151">%s</text>`+"\n",
			num(p.X), num(p.Y), html.EscapeString(shortName(r.ModuleScores[i].ModuleName)))
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// shortName is the first word of a module name.
func shortName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

func num(v float64) string { return radar.FormatCoord(v) }
