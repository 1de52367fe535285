package btree

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor   = color.New(color.Bold)
	branchColor   = color.New(color.Faint)
	internalColor = color.New(color.FgCyan, color.Bold)
	leafColor     = color.New(color.FgGreen)
)

// Visualizer draws a tree for a terminal: the same layout as Tree.String,
// with internal nodes and leaves in different colors and a summary header.
// Colors are dropped automatically when stdout is not a terminal.
type Visualizer[K any] struct {
	Tree *Tree[K]
}

func (v *Visualizer[K]) Visualize() string {
	t := v.Tree
	var sb strings.Builder
	sb.WriteString(headerColor.Sprintf("%s (t=%d, height=%d, keys=%d)", t.variant, t.degree, t.Height(), t.count))
	sb.WriteByte('\n')

	if t.root == nilID {
		sb.WriteString(emptyTree)
		sb.WriteByte('\n')
		return sb.String()
	}

	t.render(&sb, t.root, style{
		branch:   colorize(branchColor),
		internal: colorize(internalColor),
		leaf:     colorize(leafColor),
	})
	return sb.String()
}

func colorize(c *color.Color) func(string) string {
	return func(s string) string {
		if s == "" {
			return s
		}
		return c.Sprint(s)
	}
}

// FormatNode prints a single node the way the tree renders it, for showing
// search results.
func FormatNode[K any](n Node[K]) string {
	c := leafColor
	if !n.IsLeaf() {
		c = internalColor
	}
	return fmt.Sprintf("%s (node %d, %d children)", c.Sprint(formatKeys(n.get().keys)), n.id, n.NumChildren())
}
