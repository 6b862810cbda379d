package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rectcut/pkg/partition"
)

// CrossingDOT converts a chord analysis to Graphviz DOT format. Horizontal
// chords form one rank, vertical chords the other, and edges mark crossing
// pairs; selected chords are filled. The resulting DOT string can be
// rendered with [RenderDOTSVG].
func CrossingDOT(a *partition.Analysis) string {
	selected := make(map[int]bool, len(a.Selected))
	for _, label := range a.Selected {
		selected[label] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph crossings {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for i, c := range a.Horizontal {
		fmt.Fprintf(&buf, "  h%d [label=\"H y=%d x=%d..%d\"%s];\n",
			i, c.From.Y, min(c.From.X, c.To.X), max(c.From.X, c.To.X), fillAttr(selected[i]))
	}
	for j, c := range a.Vertical {
		fmt.Fprintf(&buf, "  v%d [label=\"V x=%d y=%d..%d\"%s];\n",
			j, c.From.X, min(c.From.Y, c.To.Y), max(c.From.Y, c.To.Y), fillAttr(selected[len(a.Horizontal)+j]))
	}

	buf.WriteString("\n")
	for _, cr := range a.Crossings {
		fmt.Fprintf(&buf, "  h%d -- v%d;\n", cr[0], cr[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fillAttr(picked bool) string {
	if picked {
		return ", fillcolor=lightgreen"
	}
	return ""
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
