package btree

import (
	"slices"
)

// bplus keeps every key at the leaf level. Internal nodes only hold copies of
// leaf keys used as separators, and the leaves form a chain in key order.
type bplus[K any] struct {
	t *Tree[K]
}

func (b bplus[K]) minKeys() int {
	return b.t.degree - 1
}

func (b bplus[K]) insert(key K) {
	t := b.t
	leafID := b.findLeafNode(key)
	leaf := t.nodes.get(leafID)
	leaf.keys = slices.Insert(leaf.keys, t.upperBound(leaf.keys, key), key)

	if t.isFull(leaf) {
		b.handleNodeOverflow(leafID)
	}
}

// findLeafNode descends to the leaf whose range holds key. A key equal to a
// separator goes left, so the same rule is used to insert and to look up.
func (b bplus[K]) findLeafNode(key K) nodeID {
	t := b.t
	id := t.root
	for {
		n := t.nodes.get(id)
		if n.isLeaf() {
			return id
		}
		i := 0
		for i < len(n.keys) && t.cmp(key, n.keys[i]) > 0 {
			i++
		}
		// If the key is greater than all keys of the node, go to the last child.
		if i >= len(n.children) {
			i = len(n.children) - 1
		}
		id = n.children[i]
	}
}

func (b bplus[K]) search(key K) nodeID {
	return b.t.scanLeaves(b.findLeafNode(key), key)
}

// scanLeaves looks for key starting at leaf and following the chain for as
// long as the leaves may still hold it. Equal keys may straddle a split
// boundary, or the first candidate leaf may have lost its copy to a delete.
func (t *Tree[K]) scanLeaves(leaf nodeID, key K) nodeID {
	for id := leaf; id != nilID; {
		n := t.nodes.get(id)
		if _, found := t.find(n.keys, key); found {
			return id
		}
		if len(n.keys) > 0 && t.cmp(n.keys[len(n.keys)-1], key) > 0 {
			return nilID
		}
		id = n.next
	}
	return nilID
}

/*
handleNodeOverflow splits a full leaf at its midpoint. The new right leaf takes
over the old leaf's place in the chain, and a copy of its first key is inserted
into the parent as separator. A full parent is split in turn.
*/
func (b bplus[K]) handleNodeOverflow(leafID nodeID) {
	t := b.t
	leaf := t.nodes.get(leafID)
	mid := len(leaf.keys) / 2

	rightID, right := t.nodes.alloc(leaf.parent)
	right.keys = append(right.keys, leaf.keys[mid:]...)
	leaf.keys = truncateKeys(leaf.keys, mid)

	// keep the leaf chain intact
	right.next = leaf.next
	leaf.next = rightID

	t.log.WithFields(t.fields(leafID)).Debug("split leaf")
	parent := t.insertIntoParent(leafID, []K{right.keys[0]}, []nodeID{rightID})
	b.handleInternalNodeOverflow(parent)
}

/*
handleInternalNodeOverflow splits full internal nodes from id upwards. Unlike a
leaf split, the median is moved, not copied: it leaves both halves and is
inserted once into the parent.
*/
func (b bplus[K]) handleInternalNodeOverflow(id nodeID) {
	t := b.t
	for steps := 0; id != nilID && t.isFull(t.nodes.get(id)); steps++ {
		assertf(steps <= t.nodes.size(), "overflow propagation did not reach the root")
		median, rightID := t.splitInternal(id)
		t.log.WithFields(t.fields(id)).Debug("split internal node")
		id = t.insertIntoParent(id, []K{median}, []nodeID{rightID})
	}
}
