package partition

import (
	"github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/geom"
)

// extractFaces walks every boundary cycle and emits its bounding rectangle.
// After splitting and resolution each cycle bounds an axis-aligned
// rectangle, so the bounding box is the face itself.
//
// Splice patterns can leave a cycle whose surviving vertices are collinear:
// the cut vertices that carried the face's other extent were relinked into
// the neighboring cycle. Those zero-area slivers are repaired from the
// backup links, which still point at the pre-splice topology.
func extractFaces(r *ring) ([]geom.Rect, error) {
	for i := range r.verts {
		r.verts[i].visited = false
	}

	var rects []geom.Rect
	for i := range r.verts {
		if r.verts[i].visited {
			continue
		}

		var path []handle
		minX, minY := r.verts[i].point.X, r.verts[i].point.Y
		maxX, maxY := minX, minY
		for h := handle(i); !r.verts[h].visited; h = r.verts[h].next {
			r.verts[h].visited = true
			path = append(path, h)
			p := r.verts[h].point
			minX, maxX = extend(minX, maxX, p.X)
			minY, maxY = extend(minY, maxY, p.Y)
		}

		if minX == maxX || minY == maxY {
			var err error
			minX, minY, maxX, maxY, err = repairFace(r, path, minX, minY, maxX, maxY)
			if err != nil {
				return nil, err
			}
		}

		rects = append(rects, geom.Rect{
			Min: geom.Point{X: minX, Y: minY},
			Max: geom.Point{X: maxX, Y: maxY},
		})
	}
	return rects, nil
}

func extend(lo, hi, v int) (int, int) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// repairFace recovers the extents of a zero-area cycle. The two path members
// at the extremes of the surviving axis were splice participants; their
// backup links still reach the vertices that held the collapsed extent
// before surgery.
func repairFace(r *ring, path []handle, minX, minY, maxX, maxY int) (int, int, int, int, error) {
	v1, v2 := path[0], path[0]
	if minX == maxX {
		for _, h := range path[1:] {
			if r.point(h).Y < r.point(v1).Y {
				v1 = h
			}
			if r.point(h).Y > r.point(v2).Y {
				v2 = h
			}
		}
	} else {
		for _, h := range path[1:] {
			if r.point(h).X < r.point(v1).X {
				v1 = h
			}
			if r.point(h).X > r.point(v2).X {
				v2 = h
			}
		}
	}

	for _, b := range []handle{
		r.at(v1).backupPrev, r.at(v1).backupNext,
		r.at(v2).backupPrev, r.at(v2).backupNext,
	} {
		if b == none {
			continue
		}
		p := r.point(b)
		minX, maxX = extend(minX, maxX, p.X)
		minY, maxY = extend(minY, maxY, p.Y)
	}

	if minX == maxX || minY == maxY {
		return 0, 0, 0, 0, errors.New(errors.ErrCodeDegenerateFace,
			"face collapsed to zero area near (%d,%d)", minX, minY)
	}
	return minX, minY, maxX, maxY, nil
}
