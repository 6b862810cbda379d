package partition

import (
	"github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/interval"
)

// resolveConcave eliminates every concave vertex left after chord splitting
// by shooting a horizontal cut from the corner to the nearest vertical edge
// on its interior side and splicing the cut into the boundary.
//
// Vertical edges are indexed by facing: with clockwise winding, an upward
// edge keeps the interior to its right, so a corner shooting rightward can
// only land on a downward (right-facing) edge and vice versa. The trees are
// updated live because each splice replaces the hit edge with two halves
// that later cuts may land on.
func resolveConcave(r *ring) error {
	var leftFacing, rightFacing []*segment
	for i := range r.verts {
		v := handle(i)
		n := r.verts[i].next
		if r.point(v).X != r.point(n).X {
			continue
		}
		s := newSegment(r, v, n)
		if r.point(n).Y > r.point(v).Y {
			leftFacing = append(leftFacing, s)
		} else {
			rightFacing = append(rightFacing, s)
		}
	}
	lTree := indexSegments(leftFacing)
	rTree := indexSegments(rightFacing)

	// New vertices are appended while iterating, but they are created
	// non-concave, so walking the original arena length covers every corner
	// that needs resolving.
	for i, total := 0, len(r.verts); i < total; i++ {
		if !r.verts[i].concave {
			continue
		}
		if err := resolveVertex(r, handle(i), lTree, rTree); err != nil {
			return err
		}
	}
	return nil
}

func resolveVertex(r *ring, v handle, lTree, rTree *interval.Tree) error {
	p := r.point(v)
	pv, nv := r.at(v).prev, r.at(v).next
	incomingVertical := r.point(pv).X == p.X

	// Shoot toward the interior side of the corner.
	dir := -1
	if incomingVertical {
		if r.point(pv).Y < p.Y {
			dir = 1
		}
	} else {
		if r.point(nv).Y > p.Y {
			dir = 1
		}
	}

	var tree *interval.Tree
	var hit *segment
	if dir > 0 {
		tree = rTree
		tree.Visit(p.Y, func(it interval.Interval) bool {
			s := it.(*segment)
			if s.at > p.X && (hit == nil || s.at < hit.at) {
				hit = s
			}
			return true
		})
	} else {
		tree = lTree
		tree.Visit(p.Y, func(it interval.Interval) bool {
			s := it.(*segment)
			if s.at < p.X && (hit == nil || s.at > hit.at) {
				hit = s
			}
			return true
		})
	}
	if hit == nil {
		return errors.New(errors.ErrCodeMalformedPolygon,
			"no vertical edge beside concave vertex (%d,%d)", p.X, p.Y)
	}

	// Split the hit edge at the cut height: A continues the part attached
	// to hit.from, B the part attached to hit.to (in link order
	// from -> A ... B -> to).
	cut := geom.Point{X: hit.at, Y: p.Y}
	a := r.add(cut, -1, false)
	b := r.add(cut, -1, false)

	r.setPrev(a, hit.from)
	r.setNext(hit.from, a)
	r.setNext(b, hit.to)
	r.setPrev(hit.to, b)

	// The halves inherit the hit edge's orientation explicitly: a cut
	// landing exactly on an edge endpoint makes one half zero-length, and
	// inferring orientation from equal endpoints would misfile it.
	tree.Delete(hit)
	tree.Insert(verticalSegment(r, hit.from, a))
	tree.Insert(verticalSegment(r, b, hit.to))

	r.at(v).concave = false

	if incomingVertical {
		r.setNext(a, nv)
		r.setPrev(b, v)
	} else {
		r.setNext(a, v)
		r.setPrev(b, pv)
	}
	r.setPrev(r.at(a).next, a)
	r.setNext(r.at(b).prev, b)

	return nil
}
