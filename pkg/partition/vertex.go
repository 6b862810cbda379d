package partition

import (
	"github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/geom"
)

// handle indexes a vertex in the ring's arena. Handles stay valid across
// appends; pointers into the arena do not, so all access goes through
// ring.at.
type handle int

// none is the null handle.
const none handle = -1

// vertex is a corner of the evolving polygon boundary. Boundary cycles are
// doubly linked through next/prev handles; splices during chord splitting
// and concave resolution relink them in place.
type vertex struct {
	point   geom.Point
	index   int  // original ring position, fixed for the lifetime of the run
	concave bool // reflex flag, cleared as cuts resolve the corner
	visited bool // face-walk scratch

	next, prev handle

	// backupNext and backupPrev hold the link values that were replaced by
	// the most recent relink of next and prev. Face extraction uses them to
	// recover the extents of zero-area slivers produced by splicing.
	backupNext, backupPrev handle
}

// ring owns every vertex of a partition run in a single arena. Vertices
// added while resolving concave corners are appended; nothing is ever
// removed, cycles are only relinked.
type ring struct {
	verts []vertex
	orig  int // input vertex count, for the polygon-adjacency test on chords
}

func (r *ring) at(h handle) *vertex { return &r.verts[h] }

func (r *ring) point(h handle) geom.Point { return r.verts[h].point }

// add appends a vertex and returns its handle. The vertex starts unlinked.
func (r *ring) add(p geom.Point, index int, concave bool) handle {
	r.verts = append(r.verts, vertex{
		point:      p,
		index:      index,
		concave:    concave,
		next:       none,
		prev:       none,
		backupNext: none,
		backupPrev: none,
	})
	return handle(len(r.verts) - 1)
}

// setNext relinks v's successor. The displaced value is captured into
// backupNext, but only when the link actually changes; repeated assignments
// of the same value keep the older backup. setNext and setPrev are the only
// mutation paths for the cycle links.
func (r *ring) setNext(v, to handle) {
	if r.verts[v].next != to {
		r.verts[v].backupNext = r.verts[v].next
		r.verts[v].next = to
	}
}

// setPrev relinks v's predecessor, capturing the displaced value into
// backupPrev on change. See setNext.
func (r *ring) setPrev(v, to handle) {
	if r.verts[v].prev != to {
		r.verts[v].backupPrev = r.verts[v].prev
		r.verts[v].prev = to
	}
}

// newRing classifies every corner of the polygon and links the vertices into
// one cyclic boundary.
//
// The concavity test works on the corner triple (prev, curr, next). Exactly
// one of the two incident edges is vertical on a well-formed rectilinear
// ring; two successive edges sharing an axis mean a collinear or duplicated
// point slipped through normalization, reported as MALFORMED_POLYGON.
//
// The winding convention is clockwise in a y-up coordinate system (negative
// signed area); callers normalize via [geom.Polygon.EnsureWinding].
func newRing(points []geom.Point) (*ring, error) {
	n := len(points)
	if n < 4 {
		return nil, errors.New(errors.ErrCodeMalformedPolygon, "polygon needs at least 4 vertices, got %d", n)
	}

	r := &ring{verts: make([]vertex, 0, n), orig: n}

	for i := 0; i < n; i++ {
		prev := points[(i-1+n)%n]
		curr := points[i]
		next := points[(i+1)%n]

		var concave bool
		switch {
		case prev.X == curr.X && prev.Y != curr.Y:
			// Incoming edge vertical; outgoing must be horizontal.
			if curr.X == next.X {
				return nil, errors.New(errors.ErrCodeMalformedPolygon,
					"consecutive vertical edges at (%d,%d)", curr.X, curr.Y)
			}
			concave = (prev.Y < curr.Y) == (curr.X > next.X)
		case prev.Y == curr.Y && prev.X != curr.X:
			// Incoming edge horizontal; outgoing must be vertical.
			if curr.Y == next.Y {
				return nil, errors.New(errors.ErrCodeMalformedPolygon,
					"consecutive horizontal edges at (%d,%d)", curr.X, curr.Y)
			}
			concave = (prev.X < curr.X) != (curr.Y > next.Y)
		default:
			return nil, errors.New(errors.ErrCodeMalformedPolygon,
				"edge (%d,%d)-(%d,%d) is not a proper axis-aligned step", prev.X, prev.Y, curr.X, curr.Y)
		}

		r.add(curr, i, concave)
	}

	for i := 0; i < n; i++ {
		r.setNext(handle(i), handle((i+1)%n))
		r.setPrev(handle(i), handle((i-1+n)%n))
	}

	return r, nil
}

// concaveCount returns the number of vertices still flagged concave.
func (r *ring) concaveCount() int {
	count := 0
	for i := range r.verts {
		if r.verts[i].concave {
			count++
		}
	}
	return count
}
