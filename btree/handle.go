package btree

import (
	"slices"
	"strings"
)

// Node is a read-only view of one node, as returned by Tree.Search. It stays
// valid until the tree is modified.
type Node[K any] struct {
	tree *Tree[K]
	id   nodeID
}

func (n Node[K]) get() *node[K] {
	return n.tree.nodes.get(n.id)
}

// ID is the node's stable index in the tree's arena.
func (n Node[K]) ID() int {
	return int(n.id)
}

// Keys returns a copy of the node's keys.
func (n Node[K]) Keys() []K {
	return slices.Clone(n.get().keys)
}

func (n Node[K]) IsLeaf() bool {
	return n.get().isLeaf()
}

func (n Node[K]) IsFull() bool {
	return n.tree.isFull(n.get())
}

// MinKeys is the occupancy floor of the tree's variant: t-1 for B and B+
// trees, ceil(2t/3) for B* trees.
func (n Node[K]) MinKeys() int {
	return n.tree.policy.minKeys()
}

func (n Node[K]) NumChildren() int {
	return len(n.get().children)
}

func (n Node[K]) Child(i int) Node[K] {
	return Node[K]{tree: n.tree, id: n.get().children[i]}
}

func (n Node[K]) Parent() (Node[K], bool) {
	p := n.get().parent
	if p == nilID {
		return Node[K]{}, false
	}
	return Node[K]{tree: n.tree, id: p}, true
}

// Next returns the following leaf of a B+ or B* tree.
func (n Node[K]) Next() (Node[K], bool) {
	next := n.get().next
	if next == nilID {
		return Node[K]{}, false
	}
	return Node[K]{tree: n.tree, id: next}, true
}

func (n Node[K]) Contains(key K) bool {
	_, found := n.tree.find(n.get().keys, key)
	return found
}

// String renders the subtree rooted at n.
func (n Node[K]) String() string {
	var sb strings.Builder
	n.tree.render(&sb, n.id, plainStyle)
	return sb.String()
}
