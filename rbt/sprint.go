package rbt

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Sprint renders t's shape — keys, values and colors — as an indented
// tree, for debugging a failed rebalance or an invariant test failure.
func (t Tree[K, V]) Sprint() string {
	root := treeprint.New()
	sprintNode(root, t.root)
	return root.String()
}

func sprintNode[K, V any](branch treeprint.Tree, n *node[K, V]) {
	if isDBLeaf(n) {
		branch.AddNode("··") // DoubleBlackLeaf
		return
	}
	if isLeaf(n) {
		branch.AddNode("·")
		return
	}
	label := fmt.Sprintf("%v=%v [%s]", n.key, n.val, n.color)
	next := branch.AddBranch(label)
	sprintNode(next, n.left)
	sprintNode(next, n.right)
}
