// rewrite.go — the non-destructive rewrite event store.
//
// WHAT THIS MODULE DOES
// =====================
// Edits are described, not applied: a RewriteStore is a side table of
// pending changes keyed by (node identity, structural property), leaving the
// underlying tree untouched. Readers that want the edited view — chiefly the
// flattener — go through the Effective* accessors, which return the pending
// value when one is recorded and fall through to the tree otherwise.
//
// The key is the node's stable NodeID, not its pointer, so a store survives
// any amount of aliasing and can be serialized or diffed.
//
// LAYERING
// ========
// Stores chain: NewRewriteStore(base) builds a layer whose lookups fall
// through to base before reaching the tree. Recording always writes the top
// layer, so a speculative layer can be discarded wholesale while the base
// stays intact.
//
// MOVES
// =====
// Relocating a subtree is expressed with a MoveTarget placeholder: a node
// that references the moved subtree without owning it. Recording the
// placeholder at the destination and a deletion at the origin describes the
// move; the flattener follows the reference when it reaches the placeholder.
package pdt

/* ---------- store ---------- */

type eventKey struct {
	id   NodeID
	prop Property
}

// pending is one recorded change. For child and value properties the
// replacement lives in value (nil means deletion); list edits carry the
// full replacement sequence.
type pending struct {
	isList bool
	value  any
	list   []*Node
}

// RewriteStore accumulates pending edits against one tree context.
type RewriteStore struct {
	tree   *Tree
	base   *RewriteStore
	events map[eventKey]pending
}

// NewRewriteStore creates a store layered over base, which may be nil for a
// root layer. tree is ignored (taken from base) when base is non-nil.
func NewRewriteStore(tree *Tree, base *RewriteStore) *RewriteStore {
	if base != nil {
		tree = base.tree
	}
	return &RewriteStore{
		tree:   tree,
		base:   base,
		events: make(map[eventKey]pending),
	}
}

func (s *RewriteStore) Tree() *Tree { return s.tree }

// RecordReplace records a replacement for a child or value property of n.
// A nil replacement on a child property is a deletion marker; whether the
// deletion is legal (optional vs mandatory) is judged at flatten time, when
// the final shape is known. Replacement nodes must come from the store's
// tree context but are NOT attached to it.
func (s *RewriteStore) RecordReplace(n *Node, p Property, v any) error {
	if n.tree != s.tree {
		return &InvalidStructureError{Msg: "node belongs to a different tree context"}
	}
	d, _ := descriptorOf(n.kind, s.tree.version, p)
	switch d.Kind {
	case ChildList:
		return &CardinalityError{Kind: n.kind, Prop: p, Msg: "use RecordListEdit for child lists"}
	case OptionalChild, MandatoryChild:
		if v != nil {
			c, ok := v.(*Node)
			if !ok {
				return &CardinalityError{Kind: n.kind, Prop: p, Msg: "replacement must be a node or nil"}
			}
			if c.tree != s.tree {
				return &InvalidStructureError{Msg: "replacement belongs to a different tree context"}
			}
		}
	case ValueProp:
		// Same value typing rules as a direct write.
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
		}
	}
	s.events[eventKey{n.id, p}] = pending{value: v}
	return nil
}

// RecordListEdit records a wholesale replacement of a child-list property.
// Elements must come from the store's tree context; they are referenced,
// not attached, so the base tree keeps its current children.
func (s *RewriteStore) RecordListEdit(n *Node, p Property, elems []*Node) error {
	if n.tree != s.tree {
		return &InvalidStructureError{Msg: "node belongs to a different tree context"}
	}
	d, _ := descriptorOf(n.kind, s.tree.version, p)
	if d.Kind != ChildList {
		return &CardinalityError{Kind: n.kind, Prop: p, Msg: "not a child-list property"}
	}
	cp := make([]*Node, len(elems))
	for i, e := range elems {
		if e == nil {
			return &CardinalityError{Kind: n.kind, Prop: p, Msg: "list element cannot be nil"}
		}
		if e.tree != s.tree {
			return &InvalidStructureError{Msg: "list element belongs to a different tree context"}
		}
		cp[i] = e
	}
	s.events[eventKey{n.id, p}] = pending{isList: true, list: cp}
	return nil
}

// HasChange reports whether any layer of the store records an edit for
// (n, p).
func (s *RewriteStore) HasChange(n *Node, p Property) bool {
	_, ok := s.lookup(n.id, p)
	return ok
}

// lookup walks the layer chain for a pending entry.
func (s *RewriteStore) lookup(id NodeID, p Property) (pending, bool) {
	for l := s; l != nil; l = l.base {
		if ev, ok := l.events[eventKey{id, p}]; ok {
			return ev, true
		}
	}
	return pending{}, false
}

/* ---------- effective view ---------- */

// EffectiveChild returns the child the edited tree would have at (n, p):
// the most recent recorded replacement, or the tree's current child when no
// edit is pending. A nil store reads the tree directly.
func (s *RewriteStore) EffectiveChild(n *Node, p Property) *Node {
	if s != nil {
		if ev, ok := s.lookup(n.id, p); ok {
			if ev.value == nil {
				return nil
			}
			return ev.value.(*Node)
		}
	}
	return n.Child(p)
}

// EffectiveValue returns the edited view of a value property.
func (s *RewriteStore) EffectiveValue(n *Node, p Property) any {
	if s != nil {
		if ev, ok := s.lookup(n.id, p); ok {
			return ev.value
		}
	}
	return n.Value(p)
}

// EffectiveList returns the edited view of a child-list property. The
// returned slice is freshly allocated either way.
func (s *RewriteStore) EffectiveList(n *Node, p Property) []*Node {
	if s != nil {
		if ev, ok := s.lookup(n.id, p); ok {
			out := make([]*Node, len(ev.list))
			copy(out, ev.list)
			return out
		}
	}
	return n.List(p).Nodes()
}

/* ---------- moves ---------- */

// CreateMoveTarget builds a MoveTarget placeholder referencing n without
// taking ownership. Record the placeholder at the destination slot and a
// deletion (or list edit) at the origin to describe a move.
func (s *RewriteStore) CreateMoveTarget(n *Node) (*Node, error) {
	if n.tree != s.tree {
		return nil, &InvalidStructureError{Msg: "node belongs to a different tree context"}
	}
	mt := s.tree.NewNode(KindMoveTarget)
	if err := mt.SetValue(PropTarget, n); err != nil {
		return nil, err
	}
	return mt, nil
}
