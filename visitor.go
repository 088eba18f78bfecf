// visitor.go — generic traversal over the registry rows.
//
// Traversal never switches on node kinds: it walks the descriptor row of
// each node in declared order, which IS the semantic child order (see
// property.go). Two directions are offered:
//
//   - Accept: top-down with subtree pruning. Enter runs before children and
//     its return value decides whether children are visited; Leave always
//     runs afterwards, pruned or not.
//   - TraverseBottomUp: children first, node last, no pruning.
//
// Both directions visit only owned children. Non-owning references (a move
// target's payload) are never traversed, which keeps the walk linear even in
// trees wired up with relocation placeholders.
package pdt

// Visitor receives nodes during a top-down walk. Enter returning false
// prunes the node's children; Leave fires regardless.
type Visitor interface {
	Enter(n *Node) bool
	Leave(n *Node)
}

// Accept walks the subtree rooted at n top-down with v.
func Accept(n *Node, v Visitor) {
	if n == nil {
		return
	}
	if v.Enter(n) {
		eachChild(n, func(c *Node) { Accept(c, v) })
	}
	v.Leave(n)
}

// TraverseBottomUp walks the subtree children-first, calling f on every
// node after all of its children. There is no pruning in this direction.
func TraverseBottomUp(n *Node, f func(*Node)) {
	if n == nil {
		return
	}
	eachChild(n, func(c *Node) { TraverseBottomUp(c, f) })
	f(n)
}

// Inspect adapts a single function into a pruning top-down walk, in the
// manner of go/ast.Inspect: f's return value decides descent, and no leave
// hook is needed.
func Inspect(n *Node, f func(*Node) bool) {
	Accept(n, inspector(f))
}

type inspector func(*Node) bool

func (f inspector) Enter(n *Node) bool { return f(n) }
func (f inspector) Leave(n *Node)      {}

// eachChild applies f to every owned child of n in declared order.
func eachChild(n *Node, f func(*Node)) {
	row := PropertiesFor(n.kind, n.tree.version)
	for i, d := range row {
		switch d.Kind {
		case OptionalChild, MandatoryChild:
			if c := n.slots[i].child; c != nil {
				f(c)
			}
		case ChildList:
			// Snapshot: the callback may mutate the list.
			kids := make([]*Node, len(n.slots[i].list))
			copy(kids, n.slots[i].list)
			for _, c := range kids {
				f(c)
			}
		}
	}
}
