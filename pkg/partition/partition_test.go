package partition

import (
	"sort"
	"testing"

	"github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/geom"
)

func poly(pts ...[2]int) geom.Polygon {
	p := geom.Polygon{Points: make([]geom.Point, len(pts))}
	for i, pt := range pts {
		p.Points[i] = geom.Point{X: pt[0], Y: pt[1]}
	}
	return p
}

func rect(x0, y0, x1, y1 int) geom.Rect {
	return geom.Rect{Min: geom.Point{X: x0, Y: y0}, Max: geom.Point{X: x1, Y: y1}}
}

// sortRects orders rectangles for set comparison; output order is
// unspecified.
func sortRects(rs []geom.Rect) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.Min.X != b.Min.X {
			return a.Min.X < b.Min.X
		}
		if a.Min.Y != b.Min.Y {
			return a.Min.Y < b.Min.Y
		}
		if a.Max.X != b.Max.X {
			return a.Max.X < b.Max.X
		}
		return a.Max.Y < b.Max.Y
	})
}

func assertRectSet(t *testing.T, got, want []geom.Rect) {
	t.Helper()
	sortRects(got)
	sortRects(want)
	if len(got) != len(want) {
		t.Fatalf("got %d rectangles %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("rectangle set mismatch:\ngot  %v\nwant %v", got, want)
		}
	}
}

// containsCell reports whether the unit cell with min corner (cx, cy) lies
// inside the polygon, by even-odd ray casting from the cell center.
func containsCell(p geom.Polygon, cx, cy int) bool {
	// Double all coordinates so the center is the lattice point
	// (2cx+1, 2cy+1) and no edge passes through it.
	px, py := 2*cx+1, 2*cy+1
	crossings := 0
	n := len(p.Points)
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		if a.X != b.X {
			continue // horizontal edges never cross a horizontal ray properly
		}
		x, y0, y1 := 2*a.X, 2*a.Y, 2*b.Y
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		if x > px && y0 < py && py < y1 {
			crossings++
		}
	}
	return crossings%2 == 1
}

// assertExactCover checks output invariants 1 and 2: the rectangles tile
// exactly the polygon interior with no overlaps.
func assertExactCover(t *testing.T, p geom.Polygon, rects []geom.Rect) {
	t.Helper()

	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points {
		minX, maxX = extend(minX, maxX, pt.X)
		minY, maxY = extend(minY, maxY, pt.Y)
	}

	covered := map[geom.Point]int{}
	for _, r := range rects {
		for x := r.Min.X; x < r.Max.X; x++ {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				covered[geom.Point{X: x, Y: y}]++
			}
		}
	}

	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			inside := containsCell(p, x, y)
			switch covered[geom.Point{X: x, Y: y}] {
			case 0:
				if inside {
					t.Fatalf("interior cell (%d,%d) not covered by %v", x, y, rects)
				}
			case 1:
				if !inside {
					t.Fatalf("exterior cell (%d,%d) covered by %v", x, y, rects)
				}
			default:
				t.Fatalf("cell (%d,%d) covered more than once by %v", x, y, rects)
			}
		}
	}
}

func TestUnitSquare(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{0, 1})
	rects, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	assertRectSet(t, rects, []geom.Rect{rect(0, 0, 1, 1)})
}

func TestRectanglePassesThrough(t *testing.T) {
	p := poly([2]int{2, -1}, [2]int{7, -1}, [2]int{7, 4}, [2]int{2, 4})
	rects, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	assertRectSet(t, rects, []geom.Rect{rect(2, -1, 7, 4)})
}

func TestLShape(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{0, 2})
	rects, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	assertRectSet(t, rects, []geom.Rect{rect(0, 0, 2, 1), rect(0, 1, 1, 2)})
	assertExactCover(t, p, rects)
}

func TestTShape(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 1}, [2]int{2, 1},
		[2]int{2, 2}, [2]int{1, 2}, [2]int{1, 1}, [2]int{0, 1})
	rects, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	assertRectSet(t, rects, []geom.Rect{rect(0, 0, 3, 1), rect(1, 1, 2, 2)})
	assertExactCover(t, p, rects)
}

func TestPlusSign(t *testing.T) {
	p := poly([2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{3, 1},
		[2]int{3, 2}, [2]int{2, 2}, [2]int{2, 3}, [2]int{1, 3},
		[2]int{1, 2}, [2]int{0, 2}, [2]int{0, 1}, [2]int{1, 1})
	rects, stats, err := PartitionWithStats(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(rects) != 3 {
		t.Fatalf("plus sign should yield 3 rectangles, got %v", rects)
	}
	if stats.Concave != 4 {
		t.Errorf("Concave = %d, want 4", stats.Concave)
	}
	assertExactCover(t, p, rects)
}

func TestStaircase(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 1}, [2]int{2, 1},
		[2]int{2, 2}, [2]int{1, 2}, [2]int{1, 3}, [2]int{0, 3})
	rects, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(rects) != 3 {
		t.Fatalf("staircase should yield 3 rectangles, got %v", rects)
	}
	assertExactCover(t, p, rects)
}

func TestUShape(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 3}, [2]int{2, 3},
		[2]int{2, 1}, [2]int{1, 1}, [2]int{1, 3}, [2]int{0, 3})
	rects, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(rects) != 3 {
		t.Fatalf("U-shape should yield 3 rectangles, got %v", rects)
	}
	assertExactCover(t, p, rects)
}

func TestSingleConcaveVertexYieldsTwo(t *testing.T) {
	// Any L yields exactly two rectangles: one concave corner, no chords.
	p := poly([2]int{0, 0}, [2]int{4, 0}, [2]int{4, 5}, [2]int{3, 5}, [2]int{3, 2}, [2]int{0, 2})
	rects, stats, err := PartitionWithStats(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if stats.Concave != 1 || len(rects) != 2 {
		t.Fatalf("concave=%d rects=%v, want 1 concave and 2 rectangles", stats.Concave, rects)
	}
	assertExactCover(t, p, rects)
}

func TestChordMergesTwoConcaveVertices(t *testing.T) {
	// T-shape: the two reflex corners share y=1 and a single chord resolves
	// both, so the output stays at two rectangles.
	p := poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 1}, [2]int{2, 1},
		[2]int{2, 2}, [2]int{1, 2}, [2]int{1, 1}, [2]int{0, 1})
	_, stats, err := PartitionWithStats(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if stats.Chords != 1 || stats.Rects != 2 {
		t.Errorf("stats = %+v, want one chord and two rectangles", stats)
	}
}

func TestComb(t *testing.T) {
	// Three teeth pointing up; the bottoms of the slots are concave. The
	// middle tooth's base is the only viable chord.
	p := poly([2]int{0, 0}, [2]int{5, 0}, [2]int{5, 3}, [2]int{4, 3},
		[2]int{4, 1}, [2]int{3, 1}, [2]int{3, 3}, [2]int{2, 3},
		[2]int{2, 1}, [2]int{1, 1}, [2]int{1, 3}, [2]int{0, 3})
	rects, stats, err := PartitionWithStats(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if stats.Concave != 4 || stats.Chords != 1 {
		t.Errorf("stats = %+v, want 4 concave corners and 1 chord", stats)
	}
	if len(rects) != 4 {
		t.Fatalf("comb should yield 4 rectangles, got %v", rects)
	}
	assertExactCover(t, p, rects)
}

func TestCountFormula(t *testing.T) {
	// |rects| == 1 + concave - chords for every valid input.
	shapes := []geom.Polygon{
		poly([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{0, 1}),
		poly([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{0, 2}),
		poly([2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{3, 1},
			[2]int{3, 2}, [2]int{2, 2}, [2]int{2, 3}, [2]int{1, 3},
			[2]int{1, 2}, [2]int{0, 2}, [2]int{0, 1}, [2]int{1, 1}),
		poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 3}, [2]int{2, 3},
			[2]int{2, 1}, [2]int{1, 1}, [2]int{1, 3}, [2]int{0, 3}),
	}
	for i, p := range shapes {
		_, stats, err := PartitionWithStats(p)
		if err != nil {
			t.Fatalf("shape %d: %v", i, err)
		}
		if stats.Rects != 1+stats.Concave-stats.Chords {
			t.Errorf("shape %d: rects=%d concave=%d chords=%d violates count formula",
				i, stats.Rects, stats.Concave, stats.Chords)
		}
	}
}

func rotate90(p geom.Polygon) geom.Polygon {
	out := geom.Polygon{Points: make([]geom.Point, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[i] = geom.Point{X: -pt.Y, Y: pt.X}
	}
	return out
}

func reflectX(p geom.Polygon) geom.Polygon {
	out := geom.Polygon{Points: make([]geom.Point, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[i] = geom.Point{X: -pt.X, Y: pt.Y}
	}
	return out
}

func TestRotationInvariance(t *testing.T) {
	// Concave corners and chord alignments map onto each other under
	// rotation, so the optimal count is preserved. The concrete cuts may
	// differ (remaining corners always resolve with horizontal cuts), so
	// only the structure is compared, plus exact coverage of the rotated
	// polygon.
	shapes := []geom.Polygon{
		poly([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{0, 2}),
		poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 3}, [2]int{2, 3},
			[2]int{2, 1}, [2]int{1, 1}, [2]int{1, 3}, [2]int{0, 3}),
		poly([2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{3, 1},
			[2]int{3, 2}, [2]int{2, 2}, [2]int{2, 3}, [2]int{1, 3},
			[2]int{1, 2}, [2]int{0, 2}, [2]int{0, 1}, [2]int{1, 1}),
	}
	for i, p := range shapes {
		base, baseStats, err := PartitionWithStats(p)
		if err != nil {
			t.Fatalf("shape %d: %v", i, err)
		}
		q := rotate90(p)
		rotated, rotStats, err := PartitionWithStats(q)
		if err != nil {
			t.Fatalf("shape %d rotated: %v", i, err)
		}
		if len(rotated) != len(base) || rotStats.Concave != baseStats.Concave {
			t.Errorf("shape %d: base %+v vs rotated %+v", i, baseStats, rotStats)
		}
		assertExactCover(t, q, rotated)
	}
}

func TestReflectionEquivariance(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{0, 2})

	base, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	reflected, err := Partition(reflectX(p))
	if err != nil {
		t.Fatalf("Partition(reflected): %v", err)
	}

	var want []geom.Rect
	for _, r := range base {
		want = append(want, geom.Rect{
			Min: geom.Point{X: -r.Max.X, Y: r.Min.Y},
			Max: geom.Point{X: -r.Min.X, Y: r.Max.Y},
		})
	}
	assertRectSet(t, reflected, want)
}

func TestWindingIndependence(t *testing.T) {
	p := poly([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 1}, [2]int{2, 1},
		[2]int{2, 2}, [2]int{1, 2}, [2]int{1, 1}, [2]int{0, 1})

	forward, err := Partition(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	backward, err := Partition(p.Reverse())
	if err != nil {
		t.Fatalf("Partition(reversed): %v", err)
	}
	assertRectSet(t, backward, forward)
}

func TestMalformedPolygons(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Polygon
	}{
		{"too few vertices", poly([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1})},
		{"collinear triple", poly([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{0, 1})},
		{"diagonal edge", poly([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 2}, [2]int{1, 1})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Partition(tc.p); !errors.Is(err, errors.ErrCodeMalformedPolygon) {
				t.Errorf("want MALFORMED_POLYGON, got %v", err)
			}
		})
	}
}

func TestLargerPolygonExactCover(t *testing.T) {
	// Spiral-ish shape exercising chords, crossings, and repeated concave
	// resolution along shared edges.
	p := poly([2]int{0, 0}, [2]int{6, 0}, [2]int{6, 6}, [2]int{1, 6},
		[2]int{1, 5}, [2]int{5, 5}, [2]int{5, 1}, [2]int{2, 1},
		[2]int{2, 3}, [2]int{3, 3}, [2]int{3, 2}, [2]int{4, 2},
		[2]int{4, 4}, [2]int{1, 4}, [2]int{1, 3}, [2]int{0, 3})
	rects, stats, err := PartitionWithStats(p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	assertExactCover(t, p, rects)
	if stats.Rects != 1+stats.Concave-stats.Chords {
		t.Errorf("count formula violated: %+v", stats)
	}
}
