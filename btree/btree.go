/*
Package btree implements an in-memory multi-way search tree over ordered keys
with three node organization policies: a classic B-tree, a B+-tree and a
B*-tree.

All variants share one node representation stored in an arena and addressed
by index. What differs between them is the overflow policy: the classic tree
splits full children on the way down, the B+-tree splits leaves on the way up
and copies the separator into the parent, and the B*-tree tries to hand keys
to a sibling before it splits one node into three.

A Tree is not safe for concurrent use.
*/
package btree

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	minDegree = 2 // smallest degree that still yields a balanced tree
)

// ErrInvalidConfiguration is returned when a tree cannot be constructed from the given parameters.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Variant selects the node organization policy of a tree.
type Variant int

const (
	Classic Variant = iota // B-tree, pre-emptive split on the way down
	BPlus                  // B+-tree, keys at the leaves, chained leaves
	BStar                  // B*-tree, redistribution before splitting
)

func (v Variant) String() string {
	switch v {
	case Classic:
		return "BTree"
	case BPlus:
		return "BPlusTree"
	case BStar:
		return "BStarTree"
	default:
		return "Unknown"
	}
}

func (v Variant) valid() bool {
	return v >= Classic && v <= BStar
}

// ParseVariant accepts the variant names printed by Variant.String, a few
// short aliases and the menu numbers 1..3.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "b", "btree", "b-tree", "classic":
		return Classic, nil
	case "2", "b+", "bplus", "bplustree", "b+tree", "b+-tree":
		return BPlus, nil
	case "3", "b*", "bstar", "bstartree", "b*tree", "b*-tree":
		return BStar, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown variant %q", s)
}

// Option configures optional tree dependencies.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger routes the structural trace (splits, redistributions, root
// growth) to l. Everything is logged at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

// assertf guards index arithmetic inside the split routines. A failure is a
// programming defect, never a caller error.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf("btree: "+format, args...))
	}
}
