package btree

import (
	"slices"
)

// classic is the textbook B-tree: every full node met on the way down is
// split before the descent continues, so an insert never has to walk back up.
type classic[K any] struct {
	t *Tree[K]
}

func (c classic[K]) minKeys() int {
	return c.t.degree - 1
}

func (c classic[K]) insert(key K) {
	t := c.t

	// The tree root is full, so the old root becomes the only child of a new
	// root and is split right away.
	if t.isFull(t.nodes.get(t.root)) {
		oldRoot := t.root
		newRoot, n := t.nodes.alloc(nilID)
		n.children = append(n.children, oldRoot)
		t.nodes.get(oldRoot).parent = newRoot
		t.root = newRoot
		c.splitChild(newRoot, 0)
		t.log.WithFields(t.fields(newRoot)).Debug("split full root")
	}

	c.insertNonFull(t.root, key)
}

/*
insertNonFull places key in the subtree rooted at id, which is known to have room.
Leaves take the key at its sorted position. Internal nodes pick the child whose
range holds the key and split it first if it is full, so the recursive call always
lands in a node with room.
*/
func (c classic[K]) insertNonFull(id nodeID, key K) {
	t := c.t
	n := t.nodes.get(id)

	i := len(n.keys) - 1
	for i >= 0 && t.cmp(n.keys[i], key) > 0 {
		i--
	}

	if n.isLeaf() {
		n.keys = slices.Insert(n.keys, i+1, key)
		return
	}

	i++
	if t.isFull(t.nodes.get(n.children[i])) {
		c.splitChild(id, i)
		// The promoted median now sits at keys[i]; keys greater than it
		// belong to the new right sibling.
		if t.cmp(n.keys[i], key) < 0 {
			i++
		}
	}
	c.insertNonFull(n.children[i], key)
}

/*
splitChild splits the full child at index i of parent. The child keeps the
lower t-1 keys, a new sibling takes the upper t-1 keys (and the upper t children
of an internal node), and the median moves up into parent at index i. The new
sibling is placed at index i+1.
*/
func (c classic[K]) splitChild(parent nodeID, i int) {
	t := c.t
	deg := t.degree
	p := t.nodes.get(parent)
	childID := p.children[i]
	child := t.nodes.get(childID)
	assertf(len(child.keys) == 2*deg-1, "split of node %d with %d keys", childID, len(child.keys))

	siblingID, sibling := t.nodes.alloc(parent)
	sibling.keys = append(sibling.keys, child.keys[deg:]...)
	if !child.isLeaf() {
		sibling.children = append(sibling.children, child.children[deg:]...)
		t.adopt(siblingID, sibling.children)
		child.children = child.children[:deg]
	}

	median := child.keys[deg-1]
	child.keys = truncateKeys(child.keys, deg-1)

	p.keys = slices.Insert(p.keys, i, median)
	p.children = slices.Insert(p.children, i+1, siblingID)

	assertf(len(child.keys) == deg-1 && len(sibling.keys) == deg-1,
		"split of node %d left %d and %d keys", childID, len(child.keys), len(sibling.keys))
}

// search walks from the root and stops at the first node holding key.
func (c classic[K]) search(key K) nodeID {
	t := c.t
	for id := t.root; id != nilID; {
		n := t.nodes.get(id)
		i, found := t.find(n.keys, key)
		if found {
			return id
		}
		if n.isLeaf() {
			return nilID
		}
		id = n.children[i]
	}
	return nilID
}
