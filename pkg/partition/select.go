package partition

import (
	"github.com/matzehuels/rectcut/pkg/errors"
	"github.com/matzehuels/rectcut/pkg/matching"
)

// selectChords picks a maximum subset of pairwise non-crossing chords.
//
// Crossing chords cannot both be cut, and a horizontal chord never crosses
// another horizontal one, so the crossing relation forms a bipartite graph
// with horizontal chords on the left and vertical chords on the right. A
// maximum independent set in that graph is exactly a maximum non-crossing
// subset, and by König's theorem its complement is a minimum vertex cover
// with |cover| = |maximum matching|.
//
// Labels concatenate the partitions: horizontal chords take 0..|H|-1,
// vertical chords |H|..|H|+|V|-1.
func selectChords(h, v []*segment) ([]*segment, error) {
	g := matching.NewGraph(len(h) + len(v))
	for _, c := range crossings(h, v) {
		g.AddEdge(c[0], len(h)+c[1])
	}

	pairs := matching.HopcroftKarp(g, len(h))

	keep, err := independentSet(g, len(h), len(v), pairs)
	if err != nil {
		return nil, err
	}

	var selected []*segment
	for _, label := range keep {
		if label < len(h) {
			selected = append(selected, h[label])
		} else {
			selected = append(selected, v[label-len(h)])
		}
	}
	return selected, nil
}

// crossings reports every crossing pair as (horizontal index, vertical
// index). The horizontal chords are indexed by their x spans and probed at
// each vertical chord's x coordinate.
func crossings(h, v []*segment) [][2]int {
	hTree := indexSegments(h)
	hLabel := make(map[*segment]int, len(h))
	for i, s := range h {
		hLabel[s] = i
	}

	var out [][2]int
	for j, vc := range v {
		for _, it := range hTree.Query(vc.at) {
			hc := it.(*segment)
			// Inclusive on both axes: chords sharing an endpoint or merely
			// touching still conflict, matching interior intersection on
			// the closed segments.
			if vc.lo <= hc.at && hc.at <= vc.hi {
				out = append(out, [2]int{hLabel[hc], j})
			}
		}
	}
	return out
}

// independentSet derives the maximum independent set from a maximum
// matching via König's construction.
//
// The alternating search is seeded from every unmatched vertex of the right
// partition and follows non-matching edges right-to-left and matching edges
// left-to-right. König's rule, read off the seeded partition, gives the
// minimum cover as (unvisited right) ∪ (visited left); the independent set
// is its complement: (visited right) ∪ (unvisited left).
//
// The search uses an explicit work-list rather than recursion; chord counts
// are usually tiny but crossing-heavy inputs could otherwise stack-overflow.
func independentSet(g *matching.Graph, left, right int, pairs [][2]int) ([]int, error) {
	matchL := make([]int, left)
	matchR := make([]int, right)
	for i := range matchL {
		matchL[i] = -1
	}
	for i := range matchR {
		matchR[i] = -1
	}
	for _, p := range pairs {
		matchL[p[0]] = p[1]
		matchR[p[1]-left] = p[0]
	}

	visitL := make([]bool, left)
	visitR := make([]bool, right)

	var work []int // right labels still to expand
	for i := 0; i < right; i++ {
		if matchR[i] == -1 {
			work = append(work, left+i)
		}
	}
	for len(work) > 0 {
		u := work[len(work)-1]
		work = work[:len(work)-1]
		if visitR[u-left] {
			continue
		}
		visitR[u-left] = true
		for _, nb := range g.Neighbors(u) {
			if visitL[nb] {
				continue
			}
			visitL[nb] = true
			partner := matchL[nb]
			if partner == -1 {
				// An alternating path from an unmatched right vertex to an
				// unmatched left one would have augmented the matching.
				return nil, errors.New(errors.ErrCodeUnreachableMatching,
					"left chord %d reachable by alternating path has no partner", nb)
			}
			work = append(work, partner)
		}
	}

	var keep []int
	for i := 0; i < left; i++ {
		if !visitL[i] {
			keep = append(keep, i)
		}
	}
	for i := 0; i < right; i++ {
		if visitR[i] {
			keep = append(keep, left+i)
		}
	}
	return keep, nil
}
