package btree_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Pavelavl/btrees/btree"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestVisualizer_Visualize(t *testing.T) {
	withoutColor(t)
	tree := createTree(t, BPlus, 2)
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k)
	}

	v := &Visualizer[int]{Tree: tree}
	assert.Equal(t, "BPlusTree (t=2, height=2, keys=4)\n"+tree.String(), v.Visualize())
}

func TestVisualizer_VisualizeEmptyTree(t *testing.T) {
	withoutColor(t)
	tree := createTree(t, BStar, 3)

	v := &Visualizer[int]{Tree: tree}
	assert.Equal(t, "BStarTree (t=3, height=0, keys=0)\nEmpty Tree\n", v.Visualize())
}

func TestVisualizer_ColorsNodes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	tree := createTree(t, Classic, 2)
	tree.Insert(1)

	out := (&Visualizer[int]{Tree: tree}).Visualize()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "[1]")
}

func TestFormatNode(t *testing.T) {
	withoutColor(t)
	tree := createTree(t, Classic, 2)
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k)
	}

	root, found := tree.Search(20)
	require.True(t, found)
	assert.Equal(t, "[20] (node 1, 2 children)", FormatNode(root))

	leaf, found := tree.Search(40)
	require.True(t, found)
	assert.Equal(t, "[30, 40] (node 2, 0 children)", FormatNode(leaf))
	assert.Equal(t, "[30, 40]\n", leaf.String())
}
