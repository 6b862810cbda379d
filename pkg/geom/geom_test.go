package geom

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/rectcut/pkg/errors"
)

func pts(pairs ...[2]int) []Point {
	out := make([]Point, len(pairs))
	for i, p := range pairs {
		out[i] = Point{X: p[0], Y: p[1]}
	}
	return out
}

func TestRectCanonAndArea(t *testing.T) {
	r := Rect{Min: Point{X: 3, Y: 4}, Max: Point{X: 1, Y: 2}}.Canon()
	if r.Min != (Point{X: 1, Y: 2}) || r.Max != (Point{X: 3, Y: 4}) {
		t.Errorf("Canon = %v", r)
	}
	if r.Area() != 4 {
		t.Errorf("Area = %d, want 4", r.Area())
	}
	if (Rect{Min: Point{X: 1, Y: 1}, Max: Point{X: 1, Y: 5}}).Area() != 0 {
		t.Error("degenerate rectangle should have area 0")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 2, Y: 2}}
	b := Rect{Min: Point{X: 1, Y: 1}, Max: Point{X: 3, Y: 3}}
	c := Rect{Min: Point{X: 2, Y: 0}, Max: Point{X: 4, Y: 2}}

	if !a.Intersects(b) {
		t.Error("overlapping rectangles should intersect")
	}
	if a.Intersects(c) {
		t.Error("edge-touching rectangles should not intersect")
	}
}

func TestSignedAreaAndWinding(t *testing.T) {
	ccw := Polygon{Points: pts([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 2}, [2]int{0, 2})}
	if ccw.SignedArea2() != 8 {
		t.Errorf("SignedArea2 = %d, want 8", ccw.SignedArea2())
	}
	if ccw.Area() != 4 {
		t.Errorf("Area = %d, want 4", ccw.Area())
	}

	cw := ccw.EnsureWinding()
	if cw.SignedArea2() != -8 {
		t.Errorf("EnsureWinding should flip to clockwise, SignedArea2 = %d", cw.SignedArea2())
	}
	// Already clockwise input is untouched.
	again := cw.EnsureWinding()
	for i := range cw.Points {
		if again.Points[i] != cw.Points[i] {
			t.Fatal("EnsureWinding must not modify clockwise input")
		}
	}
}

func TestRemoveCollinear(t *testing.T) {
	p := Polygon{Points: pts(
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, // collinear run along y=0
		[2]int{2, 2}, [2]int{0, 2},
	)}
	out := p.RemoveCollinear()
	want := pts([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 2}, [2]int{0, 2})
	if len(out.Points) != len(want) {
		t.Fatalf("RemoveCollinear = %v, want %v", out.Points, want)
	}
	for i := range want {
		if out.Points[i] != want[i] {
			t.Fatalf("RemoveCollinear = %v, want %v", out.Points, want)
		}
	}
	if err := out.Validate(); err != nil {
		t.Errorf("cleaned polygon should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		ok     bool
	}{
		{"square", pts([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{0, 1}), true},
		{"l-shape", pts([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{0, 2}), true},
		{"too few", pts([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}), false},
		{"diagonal edge", pts([2]int{0, 0}, [2]int{2, 0}, [2]int{2, 2}, [2]int{1, 1}), false},
		{"collinear triple", pts([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{0, 1}), false},
		{"repeated point", pts([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 0}, [2]int{1, 2}, [2]int{0, 2}), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Polygon{Points: tc.points}.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("Validate should fail")
				}
				if !errors.Is(err, errors.ErrCodeInvalidPolygon) {
					t.Errorf("want INVALID_POLYGON, got %v", err)
				}
			}
		})
	}
}

func TestPolygonJSON(t *testing.T) {
	p := Polygon{Points: pts([2]int{0, 0}, [2]int{3, 0}, [2]int{3, 2}, [2]int{0, 2})}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"points":[[0,0],[3,0],[3,2],[0,2]]}` {
		t.Errorf("Marshal = %s", data)
	}

	var back Polygon
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(back.Points) != 4 || back.Points[2] != (Point{X: 3, Y: 2}) {
		t.Errorf("round trip = %v", back.Points)
	}

	if err := json.Unmarshal([]byte(`{"points":[[1,2,3]]}`), &back); err == nil {
		t.Error("three-element point should fail to decode")
	}
}
