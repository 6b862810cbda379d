// Package render produces visual artifacts from partition results: SVG
// drawings of the polygon and its rectangles, and Graphviz views of the
// chord crossing graph for debugging the selection stage.
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/partition"
)

// svgScale converts lattice units to SVG user units so strokes stay
// readable on small polygons.
const svgScale = 40

// rectPalette cycles over the rectangle fills.
var rectPalette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	chords *partition.Analysis
}

// WithChords overlays the candidate chords from an analysis; selected
// chords render solid, rejected ones dashed.
func WithChords(a *partition.Analysis) SVGOption {
	return func(r *svgRenderer) { r.chords = a }
}

// RenderSVG draws the polygon outline and its partition rectangles.
//
// The drawing is flipped so that y grows upward, matching the lattice
// coordinates, and padded by one lattice unit on every side.
func RenderSVG(p geom.Polygon, rects []geom.Rect, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	minX, minY, maxX, maxY = minX-1, minY-1, maxX+1, maxY+1

	// Flip y: SVG y grows downward.
	tx := func(x int) int { return (x - minX) * svgScale }
	ty := func(y int) int { return (maxY - y) * svgScale }

	var buf bytes.Buffer
	w, h := (maxX-minX)*svgScale, (maxY-minY)*svgScale
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)

	for i, rc := range rects {
		fill := rectPalette[i%len(rectPalette)]
		fmt.Fprintf(&buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#555" stroke-width="1"/>`+"\n",
			tx(rc.Min.X), ty(rc.Max.Y),
			(rc.Max.X-rc.Min.X)*svgScale, (rc.Max.Y-rc.Min.Y)*svgScale, fill)
	}

	buf.WriteString(`  <polygon points="`)
	for i, pt := range p.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%d,%d", tx(pt.X), ty(pt.Y))
	}
	buf.WriteString(`" fill="none" stroke="#111" stroke-width="3"/>` + "\n")

	if r.chords != nil {
		renderChordOverlay(&buf, r.chords, tx, ty)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderChordOverlay(buf *bytes.Buffer, a *partition.Analysis, tx, ty func(int) int) {
	selected := make(map[int]bool, len(a.Selected))
	for _, label := range a.Selected {
		selected[label] = true
	}

	draw := func(c partition.Chord, picked bool) {
		dash := ` stroke-dasharray="6,4"`
		if picked {
			dash = ""
		}
		fmt.Fprintf(buf, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#c0392b" stroke-width="2"%s/>`+"\n",
			tx(c.From.X), ty(c.From.Y), tx(c.To.X), ty(c.To.Y), dash)
	}

	for i, c := range a.Horizontal {
		draw(c, selected[i])
	}
	for j, c := range a.Vertical {
		draw(c, selected[len(a.Horizontal)+j])
	}
}
