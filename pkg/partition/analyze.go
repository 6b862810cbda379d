package partition

import (
	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/matching"
)

// Chord is a candidate chord between two concave corners, reported in input
// coordinates.
type Chord struct {
	From, To geom.Point
}

// Analysis describes the chord-selection subproblem of a partition run: the
// candidate chords, which pairs cross, and which chords the independent-set
// step picked. It exists for inspection and debug rendering; Partition does
// not use it.
type Analysis struct {
	Horizontal []Chord
	Vertical   []Chord

	// Crossings lists crossing pairs as (horizontal index, vertical index).
	Crossings [][2]int

	// Selected holds the chosen chords as labels: values below
	// len(Horizontal) index Horizontal, the rest index Vertical offset by
	// len(Horizontal).
	Selected []int
}

// Analyze runs the partitioner's enumeration and selection stages and
// reports the chord structure without mutating beyond them.
func Analyze(p geom.Polygon) (*Analysis, error) {
	r, err := newRing(p.EnsureWinding().Points)
	if err != nil {
		return nil, err
	}

	hEdges, vEdges := collectEdges(r)
	h, v := enumerateChords(r, indexSegments(hEdges), indexSegments(vEdges))

	a := &Analysis{Crossings: crossings(h, v)}
	for _, s := range h {
		a.Horizontal = append(a.Horizontal, Chord{From: r.point(s.from), To: r.point(s.to)})
	}
	for _, s := range v {
		a.Vertical = append(a.Vertical, Chord{From: r.point(s.from), To: r.point(s.to)})
	}

	g := matching.NewGraph(len(h) + len(v))
	for _, c := range a.Crossings {
		g.AddEdge(c[0], len(h)+c[1])
	}
	pairs := matching.HopcroftKarp(g, len(h))
	selected, err := independentSet(g, len(h), len(v), pairs)
	if err != nil {
		return nil, err
	}
	a.Selected = selected
	return a, nil
}
