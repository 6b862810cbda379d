package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/partition"
)

func lShape() geom.Polygon {
	return geom.Polygon{Points: []geom.Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}}
}

func TestRenderSVG(t *testing.T) {
	p := lShape()
	rects, err := partition.Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}

	svg := string(RenderSVG(p, rects))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an SVG document:\n%s", svg)
	}
	if got := strings.Count(svg, "<rect"); got != len(rects) {
		t.Errorf("found %d <rect> elements, want %d", got, len(rects))
	}
	if !strings.Contains(svg, "<polygon") {
		t.Error("outline <polygon> missing")
	}
}

func TestRenderSVGWithChords(t *testing.T) {
	// T-shape has one selected chord: the overlay adds a solid line.
	p := geom.Polygon{Points: []geom.Point{
		{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 2, Y: 1},
		{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}}
	rects, err := partition.Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	a, err := partition.Analyze(p)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	svg := string(RenderSVG(p, rects, WithChords(a)))
	if !strings.Contains(svg, "<line") {
		t.Error("chord overlay missing")
	}
	if strings.Contains(svg, "stroke-dasharray") {
		t.Error("the single chord is selected and should render solid")
	}
}

func TestCrossingDOT(t *testing.T) {
	p := geom.Polygon{Points: []geom.Point{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1},
		{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 3}, {X: 1, Y: 3},
		{X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}}
	a, err := partition.Analyze(p)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	dot := CrossingDOT(a)
	if !strings.HasPrefix(dot, "graph crossings {") {
		t.Fatalf("unexpected DOT header:\n%s", dot)
	}
	for _, node := range []string{"h0", "h1", "v0", "v1"} {
		if !strings.Contains(dot, node+" [label=") {
			t.Errorf("node %s missing from DOT", node)
		}
	}
	if got := strings.Count(dot, " -- "); got != 4 {
		t.Errorf("found %d crossing edges, want 4", got)
	}
	if got := strings.Count(dot, "fillcolor=lightgreen"); got != 2 {
		t.Errorf("found %d selected nodes, want 2", got)
	}
}
