package btree

import (
	"github.com/pkg/errors"
)

// Verify checks the structural invariants of the tree: sorted keys, key
// ceilings, child counts, parent references, uniform leaf depth, separator
// ranges, the leaf chain of B+ and B* trees and the live key count.
// It is meant for tests and debugging.
func (t *Tree[K]) Verify() error {
	if t.root == nilID {
		if t.count != 0 {
			return errors.Errorf("empty tree reports %d keys", t.count)
		}
		return nil
	}
	if p := t.nodes.get(t.root).parent; p != nilID {
		return errors.Errorf("root %d has parent %d", t.root, p)
	}

	v := verifier[K]{t: t, leafDepth: -1}
	if err := v.walk(t.root, nilID, 0, nil, nil); err != nil {
		return err
	}
	if v.keys != t.count {
		return errors.Errorf("tree holds %d keys but reports %d", v.keys, t.count)
	}
	if t.variant != Classic {
		return v.checkChain()
	}
	return nil
}

// VerifyOccupancy checks that every non-root node of a classic or B+ tree
// holds at least t-1 keys. This holds after any sequence of inserts; the
// simplified delete can break it. B* trees treat ceil(2t/3) as a
// redistribution target rather than a guarantee, so they are not checked.
func (t *Tree[K]) VerifyOccupancy() error {
	if t.root == nilID || t.variant == BStar {
		return nil
	}
	floor := t.policy.minKeys()
	for i, n := range t.nodes.nodes {
		if nodeID(i) != t.root && len(n.keys) < floor {
			return errors.Errorf("node %d holds %d keys, below %d", i, len(n.keys), floor)
		}
	}
	return nil
}

type verifier[K any] struct {
	t         *Tree[K]
	leafDepth int
	leaves    []nodeID
	keys      int
}

// walk checks the subtree at id. Every key must lie within [lo, hi], the
// separators around it in the parent; nil means unbounded.
func (v *verifier[K]) walk(id, parent nodeID, depth int, lo, hi *K) error {
	t := v.t
	n := t.nodes.get(id)

	if n.parent != parent {
		return errors.Errorf("node %d points to parent %d instead of %d", id, n.parent, parent)
	}
	if len(n.keys) > t.maxKeys() {
		return errors.Errorf("node %d holds %d keys, above %d", id, len(n.keys), t.maxKeys())
	}
	for i, k := range n.keys {
		if i > 0 && t.cmp(n.keys[i-1], k) > 0 {
			return errors.Errorf("node %d keys are not sorted at %d", id, i)
		}
		if (lo != nil && t.cmp(k, *lo) < 0) || (hi != nil && t.cmp(k, *hi) > 0) {
			return errors.Errorf("node %d key at %d is outside its separator range", id, i)
		}
	}

	if n.isLeaf() {
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return errors.Errorf("leaf %d at depth %d, expected %d", id, depth, v.leafDepth)
		}
		v.leaves = append(v.leaves, id)
		v.keys += len(n.keys)
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return errors.Errorf("node %d has %d keys and %d children", id, len(n.keys), len(n.children))
	}
	if n.next != nilID {
		return errors.Errorf("internal node %d is chained to %d", id, n.next)
	}
	if t.variant == Classic {
		v.keys += len(n.keys)
	}
	for i, c := range n.children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			chi = &n.keys[i]
		}
		if err := v.walk(c, id, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}

// checkChain makes sure the next references visit the leaves in the same
// order as a depth-first walk and end at the last leaf.
func (v *verifier[K]) checkChain() error {
	nodes := &v.t.nodes
	for i, id := range v.leaves {
		want := nilID
		if i+1 < len(v.leaves) {
			want = v.leaves[i+1]
		}
		if got := nodes.get(id).next; got != want {
			return errors.Errorf("leaf %d is chained to %d instead of %d", id, got, want)
		}
	}
	return nil
}
