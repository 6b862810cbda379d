package partition

import (
	"github.com/matzehuels/rectcut/pkg/interval"
)

// segment is an axis-aligned edge or chord between two ring vertices. It is
// keyed in interval trees by the closed span it covers on its varying axis;
// at is the fixed coordinate on the other axis.
type segment struct {
	from, to   handle
	horizontal bool
	at         int // fixed coordinate: y for horizontal segments, x for vertical
	lo, hi     int // closed span on the varying axis
}

// Span implements [interval.Interval].
func (s *segment) Span() (int, int) { return s.lo, s.hi }

// newSegment builds the segment between two linked vertices, deriving
// orientation and span from the endpoints.
func newSegment(r *ring, from, to handle) *segment {
	a, b := r.point(from), r.point(to)
	s := &segment{from: from, to: to, horizontal: a.Y == b.Y}
	if s.horizontal {
		s.at = a.Y
		s.lo, s.hi = minmax(a.X, b.X)
	} else {
		s.at = a.X
		s.lo, s.hi = minmax(a.Y, b.Y)
	}
	return s
}

// verticalSegment builds the segment between two vertices known to lie on
// the same vertical line, keeping the orientation even when the span is
// zero-length.
func verticalSegment(r *ring, from, to handle) *segment {
	a, b := r.point(from), r.point(to)
	lo, hi := minmax(a.Y, b.Y)
	return &segment{from: from, to: to, at: a.X, lo: lo, hi: hi}
}

func minmax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// collectEdges walks the whole arena once and gathers the boundary edges
// (v, v.next) into horizontal and vertical sets.
func collectEdges(r *ring) (horizontal, vertical []*segment) {
	for i := range r.verts {
		v := handle(i)
		s := newSegment(r, v, r.verts[i].next)
		if s.horizontal {
			horizontal = append(horizontal, s)
		} else {
			vertical = append(vertical, s)
		}
	}
	return horizontal, vertical
}

// indexSegments builds an interval tree over the segments, keyed by their
// spans on the varying axis.
func indexSegments(segs []*segment) *interval.Tree {
	items := make([]interval.Interval, len(segs))
	for i, s := range segs {
		items[i] = s
	}
	return interval.New(items)
}
