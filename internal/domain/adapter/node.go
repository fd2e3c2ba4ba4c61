package adapter

import (
	"github.com/zjrosen/lattice/internal/domain/ifspec"
)

// node is one level of the lookup trie. Edges are keyed by spec identity
// (including ifspec.Null); buckets hold the leaf payload keyed by provided
// spec. P is map[string]any for adapters and []any for subscriptions.
type node[P any] struct {
	edges   map[ifspec.Spec]*node[P]
	buckets map[ifspec.Spec]P
}

func newNode[P any]() *node[P] {
	return &node[P]{}
}

// child returns the edge for s, or nil.
func (n *node[P]) child(s ifspec.Spec) *node[P] {
	if n.edges == nil {
		return nil
	}
	return n.edges[s]
}

// ensure returns the edge for s, creating it if absent.
func (n *node[P]) ensure(s ifspec.Spec) *node[P] {
	if n.edges == nil {
		n.edges = make(map[ifspec.Spec]*node[P])
	}
	c := n.edges[s]
	if c == nil {
		c = newNode[P]()
		n.edges[s] = c
	}
	return c
}

// empty reports whether the node carries no edges and no buckets. Empty
// interior nodes are pruned after deletion; the tries never retain them.
func (n *node[P]) empty() bool {
	return len(n.edges) == 0 && len(n.buckets) == 0
}

// trie indexes required-spec sequences of variable length. Each arity has
// its own root; a sequence of length n ends at a leaf of depth n.
type trie[P any] struct {
	roots map[int]*node[P]
}

func newTrie[P any]() *trie[P] {
	return &trie[P]{roots: make(map[int]*node[P])}
}

// leaf walks the exact path for required, without creating nodes. Returns
// nil when any edge is missing.
func (t *trie[P]) leaf(required []ifspec.Spec) *node[P] {
	n := t.roots[len(required)]
	for _, s := range required {
		if n == nil {
			return nil
		}
		n = n.child(s)
	}
	return n
}

// ensureLeaf walks the exact path for required, creating nodes as needed.
func (t *trie[P]) ensureLeaf(required []ifspec.Spec) *node[P] {
	n := t.roots[len(required)]
	if n == nil {
		n = newNode[P]()
		t.roots[len(required)] = n
	}
	for _, s := range required {
		n = n.ensure(s)
	}
	return n
}

// prune removes empty nodes along the exact path for required, bottom-up,
// including the arity root when it empties out.
func (t *trie[P]) prune(required []ifspec.Spec) {
	root := t.roots[len(required)]
	if root == nil {
		return
	}

	path := make([]*node[P], 0, len(required)+1)
	n := root
	path = append(path, n)
	for _, s := range required {
		n = n.child(s)
		if n == nil {
			return
		}
		path = append(path, n)
	}

	for i := len(required); i > 0; i-- {
		if !path[i].empty() {
			return
		}
		delete(path[i-1].edges, required[i-1])
	}
	if root.empty() {
		delete(t.roots, len(required))
	}
}

// size returns the total node count across all arities, roots included.
// Used by tests to verify pruning restores an empty structure.
func (t *trie[P]) size() int {
	total := 0
	var count func(n *node[P])
	count = func(n *node[P]) {
		total++
		for _, c := range n.edges {
			count(c)
		}
	}
	for _, root := range t.roots {
		count(root)
	}
	return total
}
