// Package interval provides an interval tree over closed integer intervals.
//
// The tree stores arbitrary items that expose a [low, high] span and answers
// stabbing queries: all items whose span contains a given point. It is the
// index behind the partitioner's segment lookups, where edges are keyed by
// the interval they cover on one axis and probed at single coordinates on
// the other.
//
// New builds a balanced tree from an initial item set; Insert and Delete
// support the incremental edge updates performed while resolving concave
// vertices. The tree is not safe for concurrent use.
package interval

import (
	"sort"
)

// Interval is the item contract: a closed integer span [low, high] with
// low <= high. Items are compared by identity for Delete, so pointer types
// should be used when the same span can occur more than once.
type Interval interface {
	Span() (low, high int)
}

// node is a BST node keyed by the item's low endpoint, augmented with the
// maximum high endpoint in its subtree for stabbing-query pruning.
type node struct {
	item        Interval
	low, high   int // cached span; items must not mutate their span while stored
	max         int // max high across this subtree
	left, right *node
}

// Tree is an interval tree. The zero value is an empty tree ready for use.
type Tree struct {
	root *node
	size int
}

// New builds a tree containing items. The initial structure is balanced;
// subsequent Insert and Delete calls do not rebalance.
func New(items []Interval) *Tree {
	sorted := make([]Interval, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, _ := sorted[i].Span()
		lj, _ := sorted[j].Span()
		return li < lj
	})
	t := &Tree{size: len(sorted)}
	t.root = build(sorted)
	return t
}

func build(items []Interval) *node {
	if len(items) == 0 {
		return nil
	}
	mid := len(items) / 2
	lo, hi := items[mid].Span()
	n := &node{item: items[mid], low: lo, high: hi, max: hi}
	n.left = build(items[:mid])
	n.right = build(items[mid+1:])
	n.fixMax()
	return n
}

// Len returns the number of items in the tree.
func (t *Tree) Len() int { return t.size }

// Insert adds item to the tree.
func (t *Tree) Insert(item Interval) {
	lo, hi := item.Span()
	t.root = insert(t.root, &node{item: item, low: lo, high: hi, max: hi})
	t.size++
}

func insert(n, fresh *node) *node {
	if n == nil {
		return fresh
	}
	if fresh.low < n.low {
		n.left = insert(n.left, fresh)
	} else {
		n.right = insert(n.right, fresh)
	}
	if fresh.max > n.max {
		n.max = fresh.max
	}
	return n
}

// Delete removes item from the tree, located by span and matched by
// identity. It reports whether the item was found.
func (t *Tree) Delete(item Interval) bool {
	lo, _ := item.Span()
	var removed bool
	t.root, removed = remove(t.root, lo, item)
	if removed {
		t.size--
	}
	return removed
}

func remove(n *node, low int, item Interval) (*node, bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch {
	case low < n.low:
		n.left, removed = remove(n.left, low, item)
	case n.item == item:
		switch {
		case n.left == nil:
			return n.right, true
		case n.right == nil:
			return n.left, true
		default:
			// Two children: adopt the in-order successor's payload, then
			// remove the successor from the right subtree.
			succ := n.right
			for succ.left != nil {
				succ = succ.left
			}
			n.item, n.low, n.high = succ.item, succ.low, succ.high
			n.right, _ = remove(n.right, succ.low, succ.item)
			removed = true
		}
	default:
		// Equal lows may straddle both subtrees depending on insertion
		// order, so check the left side before descending right.
		if low == n.low {
			if n.left, removed = remove(n.left, low, item); removed {
				break
			}
		}
		n.right, removed = remove(n.right, low, item)
	}
	n.fixMax()
	return n, removed
}

func (n *node) fixMax() {
	n.max = n.high
	if n.left != nil && n.left.max > n.max {
		n.max = n.left.max
	}
	if n.right != nil && n.right.max > n.max {
		n.max = n.right.max
	}
}

// Query returns all items whose closed span contains q. Order is
// unspecified.
func (t *Tree) Query(q int) []Interval {
	var out []Interval
	query(t.root, q, &out)
	return out
}

// Visit calls fn for every item whose closed span contains q, avoiding the
// slice allocation of Query. Returning false stops the traversal.
func (t *Tree) Visit(q int, fn func(Interval) bool) {
	visit(t.root, q, fn)
}

func query(n *node, q int, out *[]Interval) {
	if n == nil || n.max < q {
		return
	}
	query(n.left, q, out)
	if n.low <= q {
		if q <= n.high {
			*out = append(*out, n.item)
		}
		query(n.right, q, out)
	}
}

func visit(n *node, q int, fn func(Interval) bool) bool {
	if n == nil || n.max < q {
		return true
	}
	if !visit(n.left, q, fn) {
		return false
	}
	if n.low <= q {
		if q <= n.high {
			if !fn(n.item) {
				return false
			}
		}
		return visit(n.right, q, fn)
	}
	return true
}
