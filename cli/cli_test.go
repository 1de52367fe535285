package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pavelavl/btrees/btree"
	"github.com/Pavelavl/btrees/generator"
)

func runSession(t *testing.T, variant btree.Variant, input string) (*Cli, string) {
	t.Helper()
	color.NoColor = true

	tree, err := btree.New[int](variant, 2)
	require.NoError(t, err)
	gen, err := generator.New(0, 1000)
	require.NoError(t, err)
	log, _ := test.NewNullLogger()

	var out bytes.Buffer
	c := NewCli(bufio.NewScanner(strings.NewReader(input)), &out, tree, gen, log)
	c.Start()
	return c, out.String()
}

func TestCli_InsertAndShow(t *testing.T) {
	c, out := runSession(t, btree.BPlus, "INSERT 10 20 30 40\nSHOW\nEXIT\n")

	assert.Contains(t, out, "[20, 30]\n├─ [10]\n├─ [20]\n└─ [30, 40]\n")
	assert.Contains(t, out, "BPlusTree (t=2, height=2, keys=4)")
	assert.Equal(t, 4, c.Tree().Len())
}

func TestCli_Get(t *testing.T) {
	_, out := runSession(t, btree.Classic, "ins 5 10\nget 10\nget 7\n")

	assert.Contains(t, out, "Element found: [5, 10] (node 0, 0 children)")
	assert.Contains(t, out, "Key not found.")
}

func TestCli_Delete(t *testing.T) {
	c, out := runSession(t, btree.Classic, "insert 10 20 5\ndel 10\ndel 99\n")

	assert.Contains(t, out, "[5, 20]\n")
	assert.Contains(t, out, "Key not found.")
	assert.Equal(t, []int{5, 20}, c.Tree().Keys())
}

func TestCli_Keys(t *testing.T) {
	_, out := runSession(t, btree.BStar, "insert 3 1 2\nkeys\n")
	assert.Contains(t, out, "3 keys: 1 2 3\n")
}

func TestCli_Use(t *testing.T) {
	c, out := runSession(t, btree.Classic, "insert 1\nuse bstar 3\nuse avl\nuse bplus x\n")

	assert.Contains(t, out, "Selected structure: BStarTree (t=3)")
	assert.Contains(t, out, `unknown variant "avl"`)
	assert.Contains(t, out, `Invalid degree "x"`)
	assert.Equal(t, btree.BStar, c.Tree().Variant())
	assert.Equal(t, 3, c.Tree().Degree())
	assert.Equal(t, 0, c.Tree().Len())
}

func TestCli_Gen(t *testing.T) {
	c, out := runSession(t, btree.BStar, "gen 50\ncheck\ngen -1\n")

	assert.Contains(t, out, "Tree was generated with 50 elements.")
	assert.Contains(t, out, "OK\n")
	assert.Contains(t, out, `Invalid number of elements "-1"`)
	assert.Equal(t, 50, c.Tree().Len())
	assert.NoError(t, c.Tree().Verify())
}

func TestCli_InvalidInput(t *testing.T) {
	c, out := runSession(t, btree.Classic, "\nfoo\ninsert 1 x\ninsert\nget\nEXIT\ninsert 2\n")

	assert.Contains(t, out, `Unknown command "foo"`)
	assert.Contains(t, out, `Invalid key "x"`)
	assert.Contains(t, out, "Usage: INSERT <key>...")
	assert.Contains(t, out, "Usage: GET <key>")
	// nothing after EXIT runs and a bad key aborts the whole command
	assert.Equal(t, 0, c.Tree().Len())
}

func TestCli_Help(t *testing.T) {
	_, out := runSession(t, btree.Classic, "help\n")
	assert.Equal(t, 2, strings.Count(out, "Available Commands:"))
}
