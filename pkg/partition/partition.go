// Package partition decomposes simple rectilinear polygons into the minimum
// number of axis-aligned rectangles with pairwise disjoint interiors.
//
// The pipeline runs seven stages over a doubly linked boundary:
//
//  1. Classify each corner as convex or concave and link the cycle.
//  2. Index the boundary edges in interval trees by axis.
//  3. Enumerate candidate chords between aligned concave corners.
//  4. Select a maximum non-crossing chord subset via König's theorem on the
//     bipartite chord-crossing graph (Hopcroft–Karp matching).
//  5. Splice the boundary along every selected chord.
//  6. Resolve remaining concave corners with horizontal cuts.
//  7. Walk the resulting cycles and emit one rectangle per face.
//
// Chord selection is what makes the result minimal rather than merely
// valid: every chord cut merges two corner resolutions into one, and a
// maximum independent set in the crossing graph maximizes the number of
// simultaneous cuts. For a simple polygon with c concave corners and k
// selected chords the result has exactly 1 + c - k rectangles.
//
// A run is single-threaded and holds no package state; independent polygons
// may be partitioned concurrently.
package partition

import (
	"time"

	"github.com/matzehuels/rectcut/pkg/geom"
	"github.com/matzehuels/rectcut/pkg/observability"
)

// Stats summarizes a partition run.
type Stats struct {
	Vertices int // corner count after normalization
	Concave  int // reflex corner count
	Chords   int // selected non-crossing chords
	Rects    int // emitted rectangles, always 1 + Concave - Chords
}

// Partition decomposes the polygon into the minimum number of axis-aligned
// rectangles whose union is the polygon and whose interiors are disjoint.
//
// The input must be a simple rectilinear polygon with at least four
// vertices, alternating edge axes, and no collinear triples; winding is
// normalized internally. Violations are reported with code
// MALFORMED_POLYGON. Rectangle order is unspecified.
func Partition(p geom.Polygon) ([]geom.Rect, error) {
	rects, _, err := PartitionWithStats(p)
	return rects, err
}

// PartitionWithStats is [Partition] with run statistics for callers that
// report or cache them.
func PartitionWithStats(p geom.Polygon) ([]geom.Rect, Stats, error) {
	start := time.Now()
	hooks := observability.Partition()

	rects, stats, err := run(p, hooks)
	hooks.OnPartitionComplete(stats.Vertices, stats.Concave, stats.Rects, time.Since(start), err)
	if err != nil {
		return nil, Stats{}, err
	}
	return rects, stats, nil
}

func run(p geom.Polygon, hooks observability.PartitionHooks) ([]geom.Rect, Stats, error) {
	var stats Stats

	st := startStage(hooks, "classify")
	r, err := newRing(p.EnsureWinding().Points)
	st.done()
	if err != nil {
		return nil, stats, err
	}
	stats.Vertices = len(r.verts)
	stats.Concave = r.concaveCount()

	st = startStage(hooks, "index")
	hEdges, vEdges := collectEdges(r)
	hTree, vTree := indexSegments(hEdges), indexSegments(vEdges)
	st.done()

	st = startStage(hooks, "chords")
	hChords, vChords := enumerateChords(r, hTree, vTree)
	st.done()

	st = startStage(hooks, "select")
	selected, err := selectChords(hChords, vChords)
	st.done()
	if err != nil {
		return nil, stats, err
	}
	stats.Chords = len(selected)

	st = startStage(hooks, "split")
	for _, s := range selected {
		splitChord(r, s)
	}
	st.done()

	st = startStage(hooks, "resolve")
	err = resolveConcave(r)
	st.done()
	if err != nil {
		return nil, stats, err
	}

	st = startStage(hooks, "extract")
	rects, err := extractFaces(r)
	st.done()
	if err != nil {
		return nil, stats, err
	}
	stats.Rects = len(rects)
	return rects, stats, nil
}

// stageTimer reports stage begin/end events with elapsed time.
type stageTimer struct {
	hooks observability.PartitionHooks
	name  string
	start time.Time
}

func startStage(hooks observability.PartitionHooks, name string) stageTimer {
	hooks.OnStageStart(name)
	return stageTimer{hooks: hooks, name: name, start: time.Now()}
}

func (s stageTimer) done() {
	s.hooks.OnStageComplete(s.name, time.Since(s.start))
}
