package btree

import (
	"slices"
	"sort"
)

// nodeID addresses a node inside the tree's arena.
type nodeID int32

const nilID nodeID = -1

type node[K any] struct {
	keys     []K
	children []nodeID // empty for leaves
	parent   nodeID   // nilID at the root
	next     nodeID   // next leaf in key order, B+ and B* only
}

func (n *node[K]) isLeaf() bool {
	return len(n.children) == 0
}

// arena owns every node of a tree. IDs are stable for the lifetime of the
// tree; nodes are never released because delete does not merge.
type arena[K any] struct {
	nodes []*node[K]
}

func (a *arena[K]) alloc(parent nodeID) (nodeID, *node[K]) {
	n := &node[K]{parent: parent, next: nilID}
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1), n
}

func (a *arena[K]) get(id nodeID) *node[K] {
	return a.nodes[id]
}

func (a *arena[K]) size() int {
	return len(a.nodes)
}

/*
If key is found in keys, return its index i.
Else, return the index j where the key would have resided if it was present.
Basically, lower bound of the key -- this coincides with the position of the child
pointer, so the traversal can continue down the tree if the returned boolean is false.
*/
func (t *Tree[K]) find(keys []K, key K) (int, bool) {
	i := t.lowerBound(keys, key)
	return i, i < len(keys) && t.cmp(keys[i], key) == 0
}

// lowerBound returns the first index whose key is >= key.
func (t *Tree[K]) lowerBound(keys []K, key K) int {
	return sort.Search(len(keys), func(i int) bool {
		return t.cmp(keys[i], key) >= 0
	})
}

// upperBound returns the first index whose key is > key. Inserting there
// keeps equal keys in arrival order.
func (t *Tree[K]) upperBound(keys []K, key K) int {
	return sort.Search(len(keys), func(i int) bool {
		return t.cmp(keys[i], key) > 0
	})
}

// adopt points the parent reference of every id in children at parent.
func (t *Tree[K]) adopt(parent nodeID, children []nodeID) {
	for _, c := range children {
		t.nodes.get(c).parent = parent
	}
}

// childIndex locates child among the children of parent. The separators are
// binary searched with the child's first key to find where to start looking;
// duplicates can spread a key over several slots, so the final match is by ID.
func (t *Tree[K]) childIndex(parent, child nodeID) int {
	p, c := t.nodes.get(parent), t.nodes.get(child)
	start := 0
	if len(c.keys) > 0 {
		start = t.lowerBound(p.keys, c.keys[0])
	}
	if i := slices.Index(p.children[start:], child); i >= 0 {
		return start + i
	}
	i := slices.Index(p.children[:start], child)
	assertf(i >= 0, "node %d is not a child of %d", child, parent)
	return i
}

// truncateKeys drops keys[n:] and clears the tail so moved keys are not
// retained by the old backing array.
func truncateKeys[K any](keys []K, n int) []K {
	clear(keys[n:])
	return keys[:n]
}

// insertIntoParent links the freshly split siblings to the right of left and
// places seps in front of them in the parent. seps[i] separates siblings[i]
// from its left neighbour. If left was the root, a new root is synthesized.
// It returns the parent, which may now be overflowing.
func (t *Tree[K]) insertIntoParent(left nodeID, seps []K, siblings []nodeID) nodeID {
	assertf(len(seps) == len(siblings), "%d separators for %d siblings", len(seps), len(siblings))
	l := t.nodes.get(left)
	if l.parent == nilID {
		rootID, root := t.nodes.alloc(nilID)
		root.keys = append(root.keys, seps...)
		root.children = append(root.children, left)
		root.children = append(root.children, siblings...)
		t.adopt(rootID, root.children)
		t.root = rootID
		t.log.WithFields(t.fields(rootID)).Debug("tree grew a new root")
		return rootID
	}

	parentID := l.parent
	p := t.nodes.get(parentID)
	i := t.childIndex(parentID, left)
	p.keys = slices.Insert(p.keys, i, seps...)
	p.children = slices.Insert(p.children, i+1, siblings...)
	t.adopt(parentID, siblings)
	return parentID
}

// splitInternal moves the upper half of an internal node into a new sibling
// and returns the median, which belongs to neither half.
func (t *Tree[K]) splitInternal(id nodeID) (K, nodeID) {
	n := t.nodes.get(id)
	mid := len(n.keys) / 2
	median := n.keys[mid]

	rightID, right := t.nodes.alloc(n.parent)
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.children = append(right.children, n.children[mid+1:]...)
	t.adopt(rightID, right.children)

	n.keys = truncateKeys(n.keys, mid)
	n.children = n.children[:mid+1]

	assertf(len(n.children) == len(n.keys)+1 && len(right.children) == len(right.keys)+1,
		"internal split of %d left %d/%d and %d/%d keys/children",
		id, len(n.keys), len(n.children), len(right.keys), len(right.children))
	return median, rightID
}
