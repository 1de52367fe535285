package btree

import (
	"fmt"
	"strings"
)

const emptyTree = "Empty Tree"

// style decorates the pieces of a rendered tree. The plain style leaves them
// untouched; the Visualizer colors them.
type style struct {
	branch   func(string) string
	internal func(string) string
	leaf     func(string) string
}

func identity(s string) string { return s }

var plainStyle = style{branch: identity, internal: identity, leaf: identity}

// String renders the tree depth first, one node per line:
//
//	[20]
//	├─ [10]
//	└─ [20, 30]
//
// An empty tree renders as "Empty Tree".
func (t *Tree[K]) String() string {
	if t.root == nilID {
		return emptyTree
	}
	var sb strings.Builder
	t.render(&sb, t.root, plainStyle)
	return sb.String()
}

func (t *Tree[K]) render(sb *strings.Builder, id nodeID, st style) {
	t.renderNode(sb, id, "", "", st)
}

func (t *Tree[K]) renderNode(sb *strings.Builder, id nodeID, prefix, childrenPrefix string, st style) {
	n := t.nodes.get(id)
	keys := st.leaf
	if !n.isLeaf() {
		keys = st.internal
	}

	sb.WriteString(st.branch(prefix))
	sb.WriteString(keys(formatKeys(n.keys)))
	sb.WriteByte('\n')

	for i, c := range n.children {
		if i == len(n.children)-1 {
			t.renderNode(sb, c, childrenPrefix+"└─ ", childrenPrefix+"   ", st)
		} else {
			t.renderNode(sb, c, childrenPrefix+"├─ ", childrenPrefix+"│  ", st)
		}
	}
}

func formatKeys[K any](keys []K) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, k)
	}
	sb.WriteByte(']')
	return sb.String()
}
