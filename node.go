// node.go — the typed AST: tree contexts, nodes, and structural slots.
//
// WHAT THIS MODULE DOES
// =====================
// A Tree is the context within which node identities and ownership are
// mutually consistent: every node is created by exactly one Tree, carries a
// stable NodeID issued by it, and can only ever be attached to nodes of the
// same Tree. Nodes own their structural children exclusively through slots
// laid out by the registry (property.go); the parent back-reference is
// non-owning and exists for context queries (location in parent, ancestry).
//
// INVARIANTS (enforced on every mutation)
// =======================================
//  1. A node has at most one parent, and is reachable from it through
//     exactly one structural slot.
//  2. No node is its own descendant; cycle-risk properties and all list
//     insertions are checked eagerly on assignment.
//  3. A mandatory child slot never accepts nil.
//  4. All nodes reachable from a root belong to the same Tree.
//  5. Child spans nest within parent spans when both came from a parser;
//     placeholder nodes (Tree.NewNode, move targets) carry the invalid
//     span [-1,-1) and are exempt.
//
// Placeholder nodes exist solely as construction intermediates and rewrite
// targets: NewNode gives a minimally initialized node whose mandatory slots
// are still empty. Constructors in factory.go produce fully valid nodes.
//
// CONCURRENCY
// ===========
// A tree may be read by any number of goroutines as long as none mutates
// it. Mutation requires external serialization at the session level; the
// core takes no locks.
package pdt

/* ---------- tree context ---------- */

// NodeID is the stable, per-tree identity of a node. It survives structural
// edits and is the key the rewrite store uses, independent of pointer
// identity.
type NodeID uint32

// Tree is one tree context: an identity arena plus the trivia that the
// parser produced alongside the structural tree.
type Tree struct {
	version  PHPVersion
	nextID   NodeID
	root     *Node
	comments []*Node
}

// NewTree creates an empty tree context for the given language version.
func NewTree(version PHPVersion) *Tree {
	return &Tree{version: version, nextID: 1}
}

func (t *Tree) Version() PHPVersion { return t.version }

// Root returns the program root, or nil if none has been set.
func (t *Tree) Root() *Node { return t.root }

// SetRoot installs the root node. The node must belong to this tree and
// must not be owned by another node.
func (t *Tree) SetRoot(n *Node) error {
	if n != nil {
		if n.tree != t {
			return &InvalidStructureError{Msg: "root belongs to a different tree context"}
		}
		if n.parent != nil {
			return &InvalidStructureError{Msg: "root already has a parent"}
		}
	}
	t.root = n
	return nil
}

// Comments is the flat trivia list: comment nodes that are not part of the
// structural tree but are exposed for separate emission.
func (t *Tree) Comments() []*Node { return t.comments }

// AddComment appends a comment node to the trivia list.
func (t *Tree) AddComment(c *Node) error {
	if c.tree != t {
		return &InvalidStructureError{Msg: "comment belongs to a different tree context"}
	}
	if c.kind != KindComment {
		return &InvalidStructureError{Msg: "trivia list accepts only Comment nodes"}
	}
	t.comments = append(t.comments, c)
	return nil
}

// NewNode allocates a minimally initialized placeholder node of the given
// kind: no span, no parent, all slots empty. Mandatory children are NOT yet
// populated — the node violates invariant 3 until its producer fills them.
// Panics if the kind does not exist at the tree's version.
func (t *Tree) NewNode(kind NodeKind) *Node {
	row := PropertiesFor(kind, t.version)
	n := &Node{
		kind:  kind,
		id:    t.nextID,
		start: -1,
		end:   -1,
		tree:  t,
		slots: make([]slot, len(row)),
	}
	t.nextID++
	return n
}

/* ---------- nodes ---------- */

// Node is one AST node: a kind tag, a half-open byte span over the original
// source, a non-owning parent back-reference, and the structural slots laid
// out by the registry row for its kind.
type Node struct {
	kind       NodeKind
	id         NodeID
	start, end int
	tree       *Tree
	parent     *Node
	parentProp Property
	slots      []slot
}

// slot stores one structural property. Exactly one field is meaningful,
// selected by the descriptor's PropertyKind.
type slot struct {
	value any
	child *Node
	list  []*Node
}

func (n *Node) Kind() NodeKind { return n.kind }
func (n *Node) ID() NodeID     { return n.id }
func (n *Node) Tree() *Tree    { return n.tree }

// Start and End delimit the node's span [Start, End) in bytes over the
// original source. Placeholders carry -1 for both.
func (n *Node) Start() int { return n.start }
func (n *Node) End() int   { return n.end }

// SetSourceRange assigns the node's span.
func (n *Node) SetSourceRange(start, end int) {
	n.start, n.end = start, end
}

// Parent returns the owning node, or nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// LocationInParent reports which structural property of the parent owns
// this node. ok is false for roots and detached nodes. For list-valued
// ownership the property of the list is reported.
func (n *Node) LocationInParent() (Property, bool) {
	if n.parent == nil {
		return PropInvalid, false
	}
	return n.parentProp, true
}

// Properties returns the ordered descriptor row for this node's kind at
// its tree's version.
func (n *Node) Properties() []PropertyDescriptor {
	return PropertiesFor(n.kind, n.tree.version)
}

/* ---------- generic accessors ---------- */

// Value returns the plain value stored in a ValueProp slot. An unset slot
// yields the zero value for its type. Calling Value on a child-valued
// property is a programmer error and panics with a *CardinalityError.
func (n *Node) Value(p Property) any {
	d, i := descriptorOf(n.kind, n.tree.version, p)
	if d.Kind != ValueProp {
		panic(&CardinalityError{Kind: n.kind, Prop: p, Msg: "not a value property"})
	}
	v := n.slots[i].value
	if v != nil {
		return v
	}
	switch d.ValueType {
	case ValString:
		return ""
	case ValInt:
		return 0
	case ValBool:
		return false
	default:
		return nil
	}
}

// StringValue, IntValue and BoolValue are typed conveniences over Value.
func (n *Node) StringValue(p Property) string { return n.Value(p).(string) }
func (n *Node) IntValue(p Property) int       { return n.Value(p).(int) }
func (n *Node) BoolValue(p Property) bool     { return n.Value(p).(bool) }

// NodeValue reads a ValNode slot: a non-owning node reference.
func (n *Node) NodeValue(p Property) *Node {
	v := n.Value(p)
	if v == nil {
		return nil
	}
	return v.(*Node)
}

// Child returns the current occupant of an optional or mandatory child
// slot (nil when an optional slot is empty, or on an unfinished
// placeholder). Panics with a *CardinalityError on a non-child property.
func (n *Node) Child(p Property) *Node {
	d, i := descriptorOf(n.kind, n.tree.version, p)
	if d.Kind != OptionalChild && d.Kind != MandatoryChild {
		panic(&CardinalityError{Kind: n.kind, Prop: p, Msg: "not a child property"})
	}
	return n.slots[i].child
}

// List returns a live, mutable view over a ChildList slot. Mutations
// through the view are validated against the ownership invariants.
func (n *Node) List(p Property) *NodeList {
	d, i := descriptorOf(n.kind, n.tree.version, p)
	if d.Kind != ChildList {
		panic(&CardinalityError{Kind: n.kind, Prop: p, Msg: "not a child-list property"})
	}
	return &NodeList{owner: n, desc: d, idx: i}
}

// SetValue writes a plain value. The value must match the descriptor's
// ValueType; ValNode slots accept *Node references without taking
// ownership.
func (n *Node) SetValue(p Property, v any) error {
	d, i := descriptorOf(n.kind, n.tree.version, p)
	if d.Kind != ValueProp {
		return &CardinalityError{Kind: n.kind, Prop: p, Msg: "not a value property"}
	}
	switch d.ValueType {
	case ValString:
		if _, ok := v.(string); !ok {
			return &CardinalityError{Kind: n.kind, Prop: p, Msg: "value must be a string"}
		}
	case ValInt:
		if _, ok := v.(int); !ok {
			return &CardinalityError{Kind: n.kind, Prop: p, Msg: "value must be an int"}
		}
	case ValBool:
		if _, ok := v.(bool); !ok {
			return &CardinalityError{Kind: n.kind, Prop: p, Msg: "value must be a bool"}
		}
	case ValNode:
		if _, ok := v.(*Node); v != nil && !ok {
			return &CardinalityError{Kind: n.kind, Prop: p, Msg: "value must be a node reference"}
		}
	}
	n.slots[i].value = v
	return nil
}

// SetChild installs a child in an optional or mandatory slot, transferring
// ownership. The previous occupant, if any, is detached. The new child is
// rejected when it is nil in a mandatory slot, already owned, from a
// different tree, or an ancestor of this node (for cycle-risk slots).
func (n *Node) SetChild(p Property, c *Node) error {
	d, i := descriptorOf(n.kind, n.tree.version, p)
	switch d.Kind {
	case OptionalChild, MandatoryChild:
	default:
		return &CardinalityError{Kind: n.kind, Prop: p, Msg: "not a child property"}
	}
	if c == nil {
		if d.Kind == MandatoryChild {
			return &CardinalityError{Kind: n.kind, Prop: p, Msg: "mandatory child cannot be nil"}
		}
		if old := n.slots[i].child; old != nil {
			old.detach()
		}
		n.slots[i].child = nil
		return nil
	}
	if err := n.validateAttach(d, c); err != nil {
		return err
	}
	if old := n.slots[i].child; old != nil {
		old.detach()
	}
	n.slots[i].child = c
	c.parent = n
	c.parentProp = p
	return nil
}

/* ---------- child lists ---------- */

// NodeList is a live view over one ChildList slot. It reads through to the
// owner, so edits made elsewhere are visible, and its own mutations are
// validated like any other ownership transfer.
type NodeList struct {
	owner *Node
	desc  PropertyDescriptor
	idx   int
}

func (l *NodeList) Len() int { return len(l.owner.slots[l.idx].list) }

// At returns the i-th element; panics on out-of-range i like a slice.
func (l *NodeList) At(i int) *Node { return l.owner.slots[l.idx].list[i] }

// Nodes returns a copy of the current elements.
func (l *NodeList) Nodes() []*Node {
	cur := l.owner.slots[l.idx].list
	out := make([]*Node, len(cur))
	copy(out, cur)
	return out
}

// Append adds a node at the end of the list.
func (l *NodeList) Append(c *Node) error {
	return l.InsertAt(l.Len(), c)
}

// InsertAt inserts a node before position i (i == Len appends).
func (l *NodeList) InsertAt(i int, c *Node) error {
	if c == nil {
		return &CardinalityError{Kind: l.owner.kind, Prop: l.desc.Prop, Msg: "list element cannot be nil"}
	}
	if i < 0 || i > l.Len() {
		return &CardinalityError{Kind: l.owner.kind, Prop: l.desc.Prop, Msg: "index out of range"}
	}
	if err := l.owner.validateAttach(l.desc, c); err != nil {
		return err
	}
	cur := l.owner.slots[l.idx].list
	cur = append(cur, nil)
	copy(cur[i+1:], cur[i:])
	cur[i] = c
	l.owner.slots[l.idx].list = cur
	c.parent = l.owner
	c.parentProp = l.desc.Prop
	return nil
}

// ReplaceAt swaps the i-th element for c, detaching the old occupant.
func (l *NodeList) ReplaceAt(i int, c *Node) error {
	if i < 0 || i >= l.Len() {
		return &CardinalityError{Kind: l.owner.kind, Prop: l.desc.Prop, Msg: "index out of range"}
	}
	if c == nil {
		return &CardinalityError{Kind: l.owner.kind, Prop: l.desc.Prop, Msg: "list element cannot be nil"}
	}
	if err := l.owner.validateAttach(l.desc, c); err != nil {
		return err
	}
	cur := l.owner.slots[l.idx].list
	cur[i].detach()
	cur[i] = c
	c.parent = l.owner
	c.parentProp = l.desc.Prop
	return nil
}

// RemoveAt detaches and removes the i-th element.
func (l *NodeList) RemoveAt(i int) error {
	if i < 0 || i >= l.Len() {
		return &CardinalityError{Kind: l.owner.kind, Prop: l.desc.Prop, Msg: "index out of range"}
	}
	cur := l.owner.slots[l.idx].list
	cur[i].detach()
	l.owner.slots[l.idx].list = append(cur[:i], cur[i+1:]...)
	return nil
}

/* ---------- ownership checks ---------- */

// validateAttach enforces invariants 1, 2 and 4 before ownership transfer.
// The ancestor walk runs for cycle-risk slots and for every list insertion:
// list slots carry no element-kind constraint, so any of them could be
// handed an ancestor.
func (n *Node) validateAttach(d PropertyDescriptor, c *Node) error {
	if c.tree != n.tree {
		return &InvalidStructureError{Msg: "node belongs to a different tree context"}
	}
	if c.parent != nil {
		return &InvalidStructureError{Msg: "node already has a parent"}
	}
	if c == n {
		return &CycleError{Kind: n.kind, Prop: d.Prop}
	}
	if d.CycleRisk || d.Kind == ChildList {
		for a := n.parent; a != nil; a = a.parent {
			if a == c {
				return &CycleError{Kind: n.kind, Prop: d.Prop}
			}
		}
	}
	return nil
}

func (n *Node) detach() {
	n.parent = nil
	n.parentProp = PropInvalid
}

/* ---------- cloning ---------- */

// CloneSubtree deep-copies the subtree rooted at n into the target tree
// context, preserving spans and producing entirely new node identities.
// The target may be n's own tree. The clone is detached (no parent).
func (n *Node) CloneSubtree(target *Tree) *Node {
	out := target.NewNode(n.kind)
	out.start, out.end = n.start, n.end
	row := PropertiesFor(n.kind, target.version)
	for i, d := range row {
		_, src := descriptorOf(n.kind, n.tree.version, d.Prop)
		switch d.Kind {
		case ValueProp:
			out.slots[i].value = n.slots[src].value
		case OptionalChild, MandatoryChild:
			if c := n.slots[src].child; c != nil {
				cc := c.CloneSubtree(target)
				out.slots[i].child = cc
				cc.parent = out
				cc.parentProp = d.Prop
			}
		case ChildList:
			for _, c := range n.slots[src].list {
				cc := c.CloneSubtree(target)
				out.slots[i].list = append(out.slots[i].list, cc)
				cc.parent = out
				cc.parentProp = d.Prop
			}
		}
	}
	return out
}
