package btree

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// policy is the part of the tree that differs between variants.
type policy[K any] interface {
	insert(key K)
	// search returns the node holding key or nilID.
	search(key K) nodeID
	minKeys() int
}

/*
Tree only keeps the ID of its root node; the arena owns the nodes.
A tree is made up of nodes. Each node contains ordered keys.
*/
type Tree[K any] struct {
	variant Variant
	degree  int
	cmp     func(a, b K) int
	nodes   arena[K]
	root    nodeID
	count   int
	policy  policy[K]
	log     logrus.FieldLogger
}

// New creates an empty tree of the given variant over a naturally ordered key type.
func New[K cmp.Ordered](variant Variant, degree int, opts ...Option) (*Tree[K], error) {
	return NewWithCompare[K](variant, degree, cmp.Compare[K], opts...)
}

// NewWithCompare creates an empty tree ordered by compare, which must return
// a negative number, zero or a positive number like cmp.Compare.
func NewWithCompare[K any](variant Variant, degree int, compare func(a, b K) int, opts ...Option) (*Tree[K], error) {
	if degree < minDegree {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "degree %d is below %d", degree, minDegree)
	}
	if !variant.valid() {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown variant %d", int(variant))
	}
	if compare == nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, "nil compare function")
	}

	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tree[K]{
		variant: variant,
		degree:  degree,
		cmp:     compare,
		root:    nilID,
		log:     o.log.WithField("variant", variant.String()),
	}
	switch variant {
	case Classic:
		t.policy = classic[K]{t}
	case BPlus:
		t.policy = bplus[K]{t}
	case BStar:
		t.policy = bstar[K]{bplus[K]{t}}
	}
	return t, nil
}

func NewBTree[K cmp.Ordered](degree int, opts ...Option) (*Tree[K], error) {
	return New[K](Classic, degree, opts...)
}

func NewBPlusTree[K cmp.Ordered](degree int, opts ...Option) (*Tree[K], error) {
	return New[K](BPlus, degree, opts...)
}

func NewBStarTree[K cmp.Ordered](degree int, opts ...Option) (*Tree[K], error) {
	return New[K](BStar, degree, opts...)
}

func (t *Tree[K]) Variant() Variant {
	return t.variant
}

func (t *Tree[K]) Degree() int {
	return t.degree
}

// Len returns the number of live keys. Separator copies are not counted.
func (t *Tree[K]) Len() int {
	return t.count
}

// Height returns the number of levels, 0 for an empty tree.
func (t *Tree[K]) Height() int {
	h := 0
	for id := t.root; id != nilID; h++ {
		n := t.nodes.get(id)
		if n.isLeaf() {
			id = nilID
		} else {
			id = n.children[0]
		}
	}
	return h
}

// Root returns a handle to the root node, false for an empty tree.
func (t *Tree[K]) Root() (Node[K], bool) {
	if t.root == nilID {
		return Node[K]{}, false
	}
	return Node[K]{tree: t, id: t.root}, true
}

// Insert adds key to the tree. Duplicates are kept.
func (t *Tree[K]) Insert(key K) {
	if t.root == nilID {
		t.root, _ = t.newLeaf(key)
	} else {
		t.policy.insert(key)
	}
	t.count++
}

// Search returns the first node found to hold key. The classic tree stops at
// the first match on the way down; B+ and B* trees always answer with a leaf.
func (t *Tree[K]) Search(key K) (Node[K], bool) {
	if t.root == nilID {
		return Node[K]{}, false
	}
	id := t.policy.search(key)
	if id == nilID {
		return Node[K]{}, false
	}
	return Node[K]{tree: t, id: id}, true
}

// Delete removes one occurrence of key if the node Search finds is a leaf.
// Keys matched in an internal node are left alone and no rebalancing happens,
// so a delete can leave nodes under-full. It reports whether a key was removed.
func (t *Tree[K]) Delete(key K) bool {
	if t.root == nilID {
		return false
	}
	id := t.policy.search(key)
	if id == nilID {
		return false
	}
	n := t.nodes.get(id)
	if !n.isLeaf() {
		t.log.WithFields(t.fields(id)).Debug("key found in an internal node, not deleted")
		return false
	}
	i, found := t.find(n.keys, key)
	if !found {
		return false
	}
	n.keys = slices.Delete(n.keys, i, i+1)
	t.count--
	return true
}

func (t *Tree[K]) newLeaf(key K) (nodeID, *node[K]) {
	id, n := t.nodes.alloc(nilID)
	n.keys = append(n.keys, key)
	return id, n
}

// maxKeys is the largest key count a node may have once an operation returns.
func (t *Tree[K]) maxKeys() int {
	return 2*t.degree - 1
}

// isFull reports whether a node has reached 2t-1 keys. The classic tree
// splits such nodes before descending into them; B+ and B* trees resolve the
// overflow right after the insert that caused it.
func (t *Tree[K]) isFull(n *node[K]) bool {
	return len(n.keys) >= t.maxKeys()
}

func (t *Tree[K]) fields(id nodeID) logrus.Fields {
	n := t.nodes.get(id)
	return logrus.Fields{
		"node":     id,
		"keys":     len(n.keys),
		"children": len(n.children),
	}
}
