package btree_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Pavelavl/btrees/btree"
)

func TestBPlusTree_InsertEmptyTree(t *testing.T) {
	tree := createTree(t, BPlus, 2)
	tree.Insert(10)
	assert.Equal(t, "[10]\n", tree.String())
}

func TestBPlusTree_InsertMultipleKeys(t *testing.T) {
	tree := createTree(t, BPlus, 3)
	for _, k := range []int{10, 20, 5} {
		tree.Insert(k)
	}
	assert.Equal(t, "[5, 10, 20]\n", tree.String())
}

func TestBPlusTree_SplitCopiesSeparatorUp(t *testing.T) {
	tree := createTree(t, BPlus, 2)
	for _, k := range []int{10, 20, 30, 40} {
		assertTreeCanInsertAndFind(t, tree, k)
	}

	root := rootOf(t, tree)
	assert.Equal(t, []int{20, 30}, root.Keys())
	assert.Equal(t, 3, root.NumChildren())
	assert.Equal(t, "[20, 30]\n├─ [10]\n├─ [20]\n└─ [30, 40]\n", tree.String())
	assert.Equal(t, 4, tree.Len())
	require.NoError(t, tree.VerifyOccupancy())
}

func TestBPlusTree_SearchAlwaysAnswersWithLeaf(t *testing.T) {
	tree := createTree(t, BPlus, 2)
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k)
	}

	for _, k := range []int{10, 20, 30, 40} {
		node, found := tree.Search(k)
		require.True(t, found, "key %d", k)
		assert.True(t, node.IsLeaf(), "key %d", k)
		assert.True(t, node.Contains(k))
	}

	_, found := tree.Search(25)
	assert.False(t, found)
}

func TestBPlusTree_LeafChainIsOrdered(t *testing.T) {
	tree := createTree(t, BPlus, 2)
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k)
	}

	first := rootOf(t, tree).Child(0)
	assert.Equal(t, []int{10}, first.Keys())
	second, ok := first.Next()
	require.True(t, ok)
	assert.Equal(t, []int{20}, second.Keys())
	third, ok := second.Next()
	require.True(t, ok)
	assert.Equal(t, []int{30, 40}, third.Keys())
	_, ok = third.Next()
	assert.False(t, ok)

	parent, ok := third.Parent()
	require.True(t, ok)
	assert.Equal(t, rootOf(t, tree).ID(), parent.ID())
}

func TestBPlusTree_InsertDuplicate(t *testing.T) {
	tree := createTree(t, BPlus, 3)
	tree.Insert(10)
	tree.Insert(10)

	assert.Equal(t, []int{10, 10}, rootOf(t, tree).Keys())
	assert.Equal(t, 2, tree.Len())
}

func TestBPlusTree_DuplicatesAcrossLeaves(t *testing.T) {
	tree := createTree(t, BPlus, 2)
	for i := 0; i < 20; i++ {
		assertTreeCanInsertAndFind(t, tree, 7)
	}
	assert.Equal(t, 20, tree.Len())

	for i := 0; i < 20; i++ {
		require.True(t, tree.Delete(7), "delete #%d", i)
		require.NoError(t, tree.Verify())
	}
	assert.False(t, tree.Delete(7))
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Keys())
}

func TestBPlusTree_DeleteKeepsSeparatorCopy(t *testing.T) {
	tree := createTree(t, BPlus, 2)
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k)
	}

	assert.True(t, tree.Delete(20))
	assert.Equal(t, "[20, 30]\n├─ [10]\n├─ []\n└─ [30, 40]\n", tree.String())
	require.NoError(t, tree.Verify())

	// only the separator copy is left
	_, found := tree.Search(20)
	assert.False(t, found)
	assert.False(t, tree.Delete(20))
	assert.Equal(t, []int{10, 30, 40}, tree.Keys())

	assertTreeCanInsertAndFind(t, tree, 20)
	assert.Equal(t, []int{10, 20, 30, 40}, tree.Keys())
}

func TestBPlusTree_RandomInsertsKeepInvariants(t *testing.T) {
	for degree := 2; degree <= 6; degree++ {
		t.Run(fmt.Sprintf("t=%d", degree), func(t *testing.T) {
			tree := createTree(t, BPlus, degree)
			keys := randomKeys(int64(100+degree), 500, 200)
			for _, k := range keys {
				assertTreeCanInsertAndFind(t, tree, k)
				require.NoError(t, tree.VerifyOccupancy())
			}
			assert.Equal(t, sorted(keys), leafChainKeys(t, tree))
			assert.Equal(t, len(keys), tree.Len())
		})
	}
}
