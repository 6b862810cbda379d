package partition

import (
	"testing"

	"github.com/matzehuels/rectcut/pkg/geom"
)

// cwL is the clockwise L-shape used by the ring tests: reflex corner at
// (1,1).
func cwL() []geom.Point {
	return []geom.Point{
		{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}, {X: 0, Y: 0},
	}
}

func TestNewRingClassification(t *testing.T) {
	r, err := newRing(cwL())
	if err != nil {
		t.Fatalf("newRing: %v", err)
	}

	if got := r.concaveCount(); got != 1 {
		t.Fatalf("concaveCount = %d, want 1", got)
	}
	for i := range r.verts {
		want := r.verts[i].point == (geom.Point{X: 1, Y: 1})
		if r.verts[i].concave != want {
			t.Errorf("vertex %v concave = %v, want %v", r.verts[i].point, r.verts[i].concave, want)
		}
	}
}

func TestNewRingLinks(t *testing.T) {
	r, err := newRing(cwL())
	if err != nil {
		t.Fatalf("newRing: %v", err)
	}

	// One cycle covering every vertex, with consistent back links.
	seen := 0
	for h := handle(0); ; {
		next := r.at(h).next
		if r.at(next).prev != h {
			t.Fatalf("back link broken at %v", r.point(h))
		}
		seen++
		h = next
		if h == 0 {
			break
		}
	}
	if seen != len(r.verts) {
		t.Errorf("cycle covers %d of %d vertices", seen, len(r.verts))
	}
}

func TestSetterBackupDiscipline(t *testing.T) {
	r, err := newRing(cwL())
	if err != nil {
		t.Fatalf("newRing: %v", err)
	}

	// Initial linking never displaced a real link.
	if r.at(0).backupNext != none || r.at(0).backupPrev != none {
		t.Fatalf("fresh ring should have empty backups")
	}

	old := r.at(0).next
	r.setNext(0, 3)
	if r.at(0).backupNext != old {
		t.Errorf("backupNext = %v, want displaced %v", r.at(0).backupNext, old)
	}

	// Assigning the same value again must not clobber the backup.
	r.setNext(0, 3)
	if r.at(0).backupNext != old {
		t.Error("no-op assignment clobbered the backup")
	}

	// A further change displaces the current value, not the original.
	r.setNext(0, 4)
	if r.at(0).backupNext != 3 {
		t.Errorf("backupNext = %v, want 3", r.at(0).backupNext)
	}
}

func TestNewRingRejectsMalformed(t *testing.T) {
	collinear := []geom.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1},
	}
	if _, err := newRing(collinear); err == nil {
		t.Error("collinear run should be rejected")
	}

	diagonal := []geom.Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 1},
	}
	if _, err := newRing(diagonal); err == nil {
		t.Error("diagonal edge should be rejected")
	}

	if _, err := newRing(cwL()[:3]); err == nil {
		t.Error("short ring should be rejected")
	}
}
