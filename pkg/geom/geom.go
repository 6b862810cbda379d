// Package geom provides the integer-lattice geometry value types used by the
// partitioner: points, axis-aligned rectangles, and rectilinear polygons.
//
// All coordinates are integers. Polygons are stored as open rings (the last
// point connects implicitly back to the first) and must be rectilinear: every
// edge is parallel to one of the coordinate axes.
package geom

import (
	"fmt"

	"github.com/matzehuels/rectcut/pkg/errors"
)

// Point is an ordered pair of integer coordinates.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle described by its minimum and maximum
// corners. A valid rectangle has Min.X < Max.X and Min.Y < Max.Y.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Canon returns the rectangle with its corners reordered so that Min is the
// component-wise minimum. Rectangles produced by the partitioner are already
// canonical; Canon is useful for rectangles assembled by hand.
func (r Rect) Canon() Rect {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Area returns the area of the rectangle. Degenerate rectangles have area 0.
func (r Rect) Area() int {
	w := r.Max.X - r.Min.X
	h := r.Max.Y - r.Min.Y
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Contains reports whether p lies inside the closed rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether the open interiors of r and s share a point.
// Rectangles that merely touch along an edge or corner do not intersect.
func (r Rect) Intersects(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// String formats the rectangle as "(x0,y0)-(x1,y1)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Polygon is a simple rectilinear polygon stored as an open ring of corner
// points. The ring closes implicitly from the last point back to the first.
//
// The zero value is an empty polygon and fails Validate.
type Polygon struct {
	Points []Point
}

// SignedArea2 returns twice the signed area of the polygon via the shoelace
// formula. The sign encodes the winding: positive for counterclockwise rings
// (y growing upward), negative for clockwise rings.
func (p Polygon) SignedArea2() int {
	sum := 0
	n := len(p.Points)
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// Area returns the absolute area enclosed by the polygon.
func (p Polygon) Area() int {
	a := p.SignedArea2()
	if a < 0 {
		a = -a
	}
	return a / 2
}

// Reverse returns the polygon with its ring traversed in the opposite
// direction. The point set is unchanged.
func (p Polygon) Reverse() Polygon {
	out := Polygon{Points: make([]Point, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[len(p.Points)-1-i] = pt
	}
	return out
}

// EnsureWinding returns the polygon oriented the way the partitioner expects:
// clockwise in a y-up coordinate system (negative signed area). Polygons
// already wound clockwise are returned unchanged.
func (p Polygon) EnsureWinding() Polygon {
	if p.SignedArea2() > 0 {
		return p.Reverse()
	}
	return p
}

// RemoveCollinear returns the polygon with collinear interior points dropped.
// A point is collinear when its incoming and outgoing edges run along the
// same axis; such points carry no corner information and violate the
// partitioner's input contract.
func (p Polygon) RemoveCollinear() Polygon {
	n := len(p.Points)
	if n < 3 {
		return p
	}
	out := Polygon{Points: make([]Point, 0, n)}
	for i, curr := range p.Points {
		prev := p.Points[(i-1+n)%n]
		next := p.Points[(i+1)%n]
		if (prev.X == curr.X && curr.X == next.X) || (prev.Y == curr.Y && curr.Y == next.Y) {
			continue
		}
		out.Points = append(out.Points, curr)
	}
	return out
}

// Validate checks the polygon against the partitioner's input contract:
// at least four vertices, axis-parallel edges that alternate direction,
// no zero-length edges, and no repeated points. It returns an error with
// code [errors.ErrCodeInvalidPolygon] describing the first violation.
func (p Polygon) Validate() error {
	n := len(p.Points)
	if n < 4 {
		return errors.New(errors.ErrCodeInvalidPolygon, "polygon needs at least 4 vertices, got %d", n)
	}
	seen := make(map[Point]int, n)
	for i, curr := range p.Points {
		if j, dup := seen[curr]; dup {
			return errors.New(errors.ErrCodeInvalidPolygon, "repeated point (%d,%d) at indices %d and %d", curr.X, curr.Y, j, i)
		}
		seen[curr] = i

		next := p.Points[(i+1)%n]
		if curr == next {
			return errors.New(errors.ErrCodeInvalidPolygon, "zero-length edge at index %d", i)
		}
		if curr.X != next.X && curr.Y != next.Y {
			return errors.New(errors.ErrCodeInvalidPolygon, "edge %d is not axis-aligned: (%d,%d)-(%d,%d)", i, curr.X, curr.Y, next.X, next.Y)
		}
		prev := p.Points[(i-1+n)%n]
		if (prev.X == curr.X) == (curr.X == next.X) {
			return errors.New(errors.ErrCodeInvalidPolygon, "consecutive edges at index %d share an axis", i)
		}
	}
	return nil
}
