// match.go — structural equivalence over registry rows.
//
// Match compares two subtrees by shape and content: same kinds, same plain
// values, equivalent children in the same slots. Spans, node identities and
// tree contexts are ignored, so a clone always matches its original and a
// freshly built replacement matches the source it mimics. Like traversal,
// matching is one generic algorithm over the descriptor rows rather than a
// per-kind method set.
package pdt

// Match reports whether a and b are structurally equivalent. Two nils
// match; nil never matches a node.
func Match(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	rowA := PropertiesFor(a.kind, a.tree.version)
	rowB := PropertiesFor(b.kind, b.tree.version)
	if len(rowA) != len(rowB) {
		return false
	}
	for i, d := range rowA {
		if rowB[i].Prop != d.Prop || rowB[i].Kind != d.Kind {
			return false
		}
		switch d.Kind {
		case ValueProp:
			if d.ValueType == ValNode {
				// Non-owning references match by payload equivalence.
				ra, _ := a.slots[i].value.(*Node)
				rb, _ := b.slots[i].value.(*Node)
				if !Match(ra, rb) {
					return false
				}
			} else if !valueEq(a.slots[i].value, b.slots[i].value, d.ValueType) {
				return false
			}
		case OptionalChild, MandatoryChild:
			if !Match(a.slots[i].child, b.slots[i].child) {
				return false
			}
		case ChildList:
			la, lb := a.slots[i].list, b.slots[i].list
			if len(la) != len(lb) {
				return false
			}
			for j := range la {
				if !Match(la[j], lb[j]) {
					return false
				}
			}
		}
	}
	return true
}

// valueEq compares plain values, treating an unset slot as the zero value
// of its type.
func valueEq(a, b any, t ValueType) bool {
	switch t {
	case ValString:
		av, _ := a.(string)
		bv, _ := b.(string)
		return av == bv
	case ValInt:
		av, _ := a.(int)
		bv, _ := b.(int)
		return av == bv
	case ValBool:
		av, _ := a.(bool)
		bv, _ := b.(bool)
		return av == bv
	default:
		return a == b
	}
}
