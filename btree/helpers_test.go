package btree_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Pavelavl/btrees/btree"
)

var variants = []Variant{Classic, BPlus, BStar}

func createTree(t *testing.T, variant Variant, degree int) *Tree[int] {
	t.Helper()
	tree, err := New[int](variant, degree)
	require.NoError(t, err)
	return tree
}

func assertTreeCanInsertAndFind(t *testing.T, tree *Tree[int], key int) {
	t.Helper()
	tree.Insert(key)
	node, found := tree.Search(key)
	require.True(t, found, "key %d not found right after insert", key)
	assert.True(t, node.Contains(key))
	require.NoError(t, tree.Verify())
}

func rootOf(t *testing.T, tree *Tree[int]) Node[int] {
	t.Helper()
	root, ok := tree.Root()
	require.True(t, ok, "tree has no root")
	return root
}

// leafChainKeys walks the next references from the leftmost leaf.
func leafChainKeys(t *testing.T, tree *Tree[int]) []int {
	t.Helper()
	n := rootOf(t, tree)
	for !n.IsLeaf() {
		n = n.Child(0)
	}
	var keys []int
	for ok := true; ok; n, ok = n.Next() {
		keys = append(keys, n.Keys()...)
	}
	return keys
}

func randomKeys(seed int64, n, limit int) []int {
	r := rand.New(rand.NewSource(seed))
	keys := make([]int, n)
	for i := range keys {
		keys[i] = r.Intn(limit)
	}
	return keys
}

func sorted(keys []int) []int {
	s := slices.Clone(keys)
	slices.Sort(s)
	return s
}
