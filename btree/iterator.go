package btree

// Ascend calls fn for every live key in non-decreasing order until fn
// returns false. B+ and B* trees walk the leaf chain; the classic tree is
// walked in order.
func (t *Tree[K]) Ascend(fn func(key K) bool) {
	if t.root == nilID {
		return
	}
	if t.variant == Classic {
		t.ascendInOrder(t.root, fn)
		return
	}
	for id := t.firstLeaf(); id != nilID; {
		n := t.nodes.get(id)
		for _, k := range n.keys {
			if !fn(k) {
				return
			}
		}
		id = n.next
	}
}

// Keys returns all live keys in non-decreasing order.
func (t *Tree[K]) Keys() []K {
	keys := make([]K, 0, t.count)
	t.Ascend(func(key K) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (t *Tree[K]) ascendInOrder(id nodeID, fn func(key K) bool) bool {
	n := t.nodes.get(id)
	for i, k := range n.keys {
		if !n.isLeaf() && !t.ascendInOrder(n.children[i], fn) {
			return false
		}
		if !fn(k) {
			return false
		}
	}
	if !n.isLeaf() {
		return t.ascendInOrder(n.children[len(n.keys)], fn)
	}
	return true
}

// firstLeaf is the head of the leaf chain.
func (t *Tree[K]) firstLeaf() nodeID {
	id := t.root
	for {
		n := t.nodes.get(id)
		if n.isLeaf() {
			return id
		}
		id = n.children[0]
	}
}
