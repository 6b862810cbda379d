package partition

import (
	"sort"

	"github.com/matzehuels/rectcut/pkg/interval"
)

// enumerateChords finds the candidate chords between concave vertices: pairs
// aligned on one axis whose connecting segment runs through the interior
// without touching any boundary edge in between.
//
// Horizontal chords connect concave vertices sharing a y coordinate and are
// screened against the vertical edge tree; vertical chords the reverse. Only
// pairs adjacent in the sorted order are candidates: a third concave vertex
// with the same aligned coordinate between two others would itself interrupt
// the segment.
func enumerateChords(r *ring, hTree, vTree *interval.Tree) (horizontal, vertical []*segment) {
	var concave []handle
	for i := range r.verts {
		if r.verts[i].concave {
			concave = append(concave, handle(i))
		}
	}

	// Vertical chords: group by x, screen against horizontal edges.
	byX := make([]handle, len(concave))
	copy(byX, concave)
	sort.Slice(byX, func(i, j int) bool {
		a, b := r.point(byX[i]), r.point(byX[j])
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	for i := 0; i+1 < len(byX); i++ {
		u, w := byX[i], byX[i+1]
		if r.point(u).X != r.point(w).X || polygonAdjacent(r, u, w) {
			continue
		}
		if isChord(r, u, w, hTree, false) {
			vertical = append(vertical, newChord(r, u, w, false))
		}
	}

	// Horizontal chords: group by y, screen against vertical edges.
	byY := concave
	sort.Slice(byY, func(i, j int) bool {
		a, b := r.point(byY[i]), r.point(byY[j])
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	for i := 0; i+1 < len(byY); i++ {
		u, w := byY[i], byY[i+1]
		if r.point(u).Y != r.point(w).Y || polygonAdjacent(r, u, w) {
			continue
		}
		if isChord(r, u, w, vTree, true) {
			horizontal = append(horizontal, newChord(r, u, w, true))
		}
	}

	return horizontal, vertical
}

// polygonAdjacent reports whether u and w were neighbors on the input ring.
// Original indices are stable for the whole run, so the test stays valid
// even while the live cycle is being resliced.
func polygonAdjacent(r *ring, u, w handle) bool {
	diff := r.at(u).index - r.at(w).index
	if diff < 0 {
		diff = -diff
	}
	return diff == 1 || diff == r.orig-1
}

// isChord reports whether the open segment between the aligned vertices u
// and w stays clear of the boundary. tree indexes the edges perpendicular to
// the candidate chord; any such edge whose fixed coordinate falls strictly
// between the chord endpoints would cut the segment.
func isChord(r *ring, u, w handle, tree *interval.Tree, horizontal bool) bool {
	pu, pw := r.point(u), r.point(w)
	var shared, a, b int
	if horizontal {
		shared = pu.Y
		a, b = minmax(pu.X, pw.X)
	} else {
		shared = pu.X
		a, b = minmax(pu.Y, pw.Y)
	}

	blocked := false
	tree.Visit(shared, func(it interval.Interval) bool {
		start := it.(*segment).at
		if a < start && start < b {
			blocked = true
			return false
		}
		return true
	})
	return !blocked
}

// newChord builds the chord segment between two aligned concave vertices.
func newChord(r *ring, u, w handle, horizontal bool) *segment {
	s := &segment{from: u, to: w, horizontal: horizontal}
	pu, pw := r.point(u), r.point(w)
	if horizontal {
		s.at = pu.Y
		s.lo, s.hi = minmax(pu.X, pw.X)
	} else {
		s.at = pu.X
		s.lo, s.hi = minmax(pu.Y, pw.Y)
	}
	return s
}
