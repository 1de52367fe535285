package btree

import (
	"slices"
)

// bstar uses the B+ node shape but resolves an overflow by handing keys to a
// sibling first. Only when neither neighbour has room does it split, and then
// one node becomes three.
type bstar[K any] struct {
	bplus[K]
}

// minKeys is ceil(2t/3).
func (s bstar[K]) minKeys() int {
	return (2*s.t.degree + 2) / 3
}

// maxHold is the most keys a node may keep once its overflow is resolved.
func (s bstar[K]) maxHold() int {
	return s.t.maxKeys() - 1
}

func (s bstar[K]) insert(key K) {
	t := s.t
	leafID := s.findLeafNode(key)
	leaf := t.nodes.get(leafID)
	leaf.keys = slices.Insert(leaf.keys, t.upperBound(leaf.keys, key), key)

	if t.isFull(leaf) {
		s.handleNodeOverflow(leafID)
	}
}

// findLeafNode binary searches every level. Landing past the last key means
// the key is larger than every separator, which is the last child.
func (s bstar[K]) findLeafNode(key K) nodeID {
	t := s.t
	id := t.root
	for {
		n := t.nodes.get(id)
		if n.isLeaf() {
			return id
		}
		i := t.lowerBound(n.keys, key)
		if i >= len(n.children) {
			i = len(n.children) - 1
		}
		id = n.children[i]
	}
}

func (s bstar[K]) search(key K) nodeID {
	return s.t.scanLeaves(s.findLeafNode(key), key)
}

// handleNodeOverflow resolves overflows from id upwards: the root is split
// three ways, any other node first tries its left and then its right sibling,
// and splits three ways into its parent when neither can take keys.
func (s bstar[K]) handleNodeOverflow(id nodeID) {
	t := s.t
	for steps := 0; id != nilID && t.isFull(t.nodes.get(id)); steps++ {
		assertf(steps <= t.nodes.size(), "overflow propagation did not reach the root")
		if t.nodes.get(id).parent != nilID && s.redistribute(id) {
			return
		}
		id = s.performThreeWaySplit(id)
	}
}

// redistribute tries the left sibling, then the right one.
func (s bstar[K]) redistribute(id nodeID) bool {
	t := s.t
	parent := t.nodes.get(id).parent
	p := t.nodes.get(parent)
	i := t.childIndex(parent, id)

	if i > 0 && s.redistributeKeys(parent, i, i-1) {
		return true
	}
	return i+1 < len(p.children) && s.redistributeKeys(parent, i, i+1)
}

/*
redistributeKeys moves keys from the overflowing child at index from to its
adjacent sibling at index to. It moves min(surplus, room, balance) keys:

  - surplus: keys from holds above its minimum occupancy
  - room:    keys the sibling can take without becoming full itself
  - balance: half the difference, so the pair ends up level

Nothing moves unless that count is enough to end the overflow.
*/
func (s bstar[K]) redistributeKeys(parent nodeID, from, to int) bool {
	t := s.t
	p := t.nodes.get(parent)
	srcID, dstID := p.children[from], p.children[to]
	src, dst := t.nodes.get(srcID), t.nodes.get(dstID)

	need := len(src.keys) - s.maxHold()
	m := min(len(src.keys)-s.minKeys(), s.maxHold()-len(dst.keys), (len(src.keys)-len(dst.keys))/2)
	if m <= 0 || m < need {
		return false
	}

	switch {
	case src.isLeaf() && to < from:
		s.shiftLeafKeysLeft(p, to, src, dst, m)
	case src.isLeaf():
		s.shiftLeafKeysRight(p, from, src, dst, m)
	case to < from:
		for j := 0; j < m; j++ {
			s.rotateLeft(p, to, src, dstID, dst)
		}
	default:
		for j := 0; j < m; j++ {
			s.rotateRight(p, from, src, dstID, dst)
		}
	}

	t.log.WithFields(t.fields(srcID)).WithField("to", dstID).WithField("moved", m).Debug("redistributed keys")
	return true
}

// shiftLeafKeysLeft moves the first m keys of src to the end of its left
// neighbour dst and re-copies the separator from src's new first key.
// Both leaves keep their place in the chain.
func (s bstar[K]) shiftLeafKeysLeft(p *node[K], sep int, src, dst *node[K], m int) {
	dst.keys = append(dst.keys, src.keys[:m]...)
	n := copy(src.keys, src.keys[m:])
	src.keys = truncateKeys(src.keys, n)
	p.keys[sep] = src.keys[0]
}

// shiftLeafKeysRight moves the last m keys of src to the front of its right
// neighbour dst; the separator becomes dst's new first key.
func (s bstar[K]) shiftLeafKeysRight(p *node[K], sep int, src, dst *node[K], m int) {
	cut := len(src.keys) - m
	dst.keys = slices.Insert(dst.keys, 0, src.keys[cut:]...)
	src.keys = truncateKeys(src.keys, cut)
	p.keys[sep] = dst.keys[0]
}

// rotateLeft moves one key of an internal node through the parent separator
// into its left neighbour, together with its first child.
func (s bstar[K]) rotateLeft(p *node[K], sep int, src *node[K], dstID nodeID, dst *node[K]) {
	t := s.t
	child := src.children[0]
	dst.keys = append(dst.keys, p.keys[sep])
	dst.children = append(dst.children, child)
	t.nodes.get(child).parent = dstID

	p.keys[sep] = src.keys[0]
	src.keys = slices.Delete(src.keys, 0, 1)
	src.children = slices.Delete(src.children, 0, 1)
}

// rotateRight moves one key of an internal node through the parent separator
// into its right neighbour, together with its last child.
func (s bstar[K]) rotateRight(p *node[K], sep int, src *node[K], dstID nodeID, dst *node[K]) {
	t := s.t
	last := len(src.keys) - 1
	child := src.children[last+1]
	dst.keys = slices.Insert(dst.keys, 0, p.keys[sep])
	dst.children = slices.Insert(dst.children, 0, child)
	t.nodes.get(child).parent = dstID

	p.keys[sep] = src.keys[last]
	src.keys = truncateKeys(src.keys, last)
	src.children = src.children[:last+1]
}

/*
performThreeWaySplit turns the overflowing node into three siblings and
inserts two separators into the parent, synthesizing a new root if needed.
It returns the parent so the caller can continue upwards.

A leaf with n keys keeps (n - n/3)/2 keys, the middle leaf takes n/3 keys
(the single middle key for the smallest overflow) and the right leaf the rest;
the separators are copies of the middle and right first keys.

An internal node promotes two true medians and needs at least five keys for
that. With fewer (degree 2) it is split in two around a single median.
*/
func (s bstar[K]) performThreeWaySplit(id nodeID) nodeID {
	t := s.t
	n := t.nodes.get(id)

	if n.isLeaf() {
		total := len(n.keys)
		midLen := total / 3
		leftLen := (total - midLen) / 2
		assertf(leftLen > 0 && midLen > 0, "three-way split of leaf %d with %d keys", id, total)

		midID, mid := t.nodes.alloc(n.parent)
		rightID, right := t.nodes.alloc(n.parent)
		mid.keys = append(mid.keys, n.keys[leftLen:leftLen+midLen]...)
		right.keys = append(right.keys, n.keys[leftLen+midLen:]...)
		n.keys = truncateKeys(n.keys, leftLen)

		right.next = n.next
		mid.next = rightID
		n.next = midID

		t.log.WithFields(t.fields(id)).Debug("three-way split of leaf")
		return t.insertIntoParent(id, []K{mid.keys[0], right.keys[0]}, []nodeID{midID, rightID})
	}

	if len(n.keys) < 5 {
		median, rightID := t.splitInternal(id)
		t.log.WithFields(t.fields(id)).Debug("two-way split of internal node")
		return t.insertIntoParent(id, []K{median}, []nodeID{rightID})
	}

	// a keys | median | b keys | median | c keys
	rest := len(n.keys) - 2
	b := rest / 3
	a := (rest - b) / 2

	first, second := n.keys[a], n.keys[a+1+b]

	midID, mid := t.nodes.alloc(n.parent)
	mid.keys = append(mid.keys, n.keys[a+1:a+1+b]...)
	mid.children = append(mid.children, n.children[a+1:a+b+2]...)
	t.adopt(midID, mid.children)

	rightID, right := t.nodes.alloc(n.parent)
	right.keys = append(right.keys, n.keys[a+b+2:]...)
	right.children = append(right.children, n.children[a+b+2:]...)
	t.adopt(rightID, right.children)

	n.keys = truncateKeys(n.keys, a)
	n.children = n.children[:a+1]

	assertf(len(n.children) == a+1 && len(mid.children) == b+1 && len(right.children) == len(right.keys)+1,
		"three-way split of node %d produced %d/%d/%d children", id, len(n.children), len(mid.children), len(right.children))

	t.log.WithFields(t.fields(id)).Debug("three-way split of internal node")
	return t.insertIntoParent(id, []K{first, second}, []nodeID{midID, rightID})
}
