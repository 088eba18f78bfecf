// dump.go — XML-ish structural dump for debugging and golden tests.
//
// DumpString renders a subtree one node per line, children nested under
// the property that owns them, plain values inlined as attributes. The
// output is stable across runs (property order is the registry row order),
// which makes it usable as golden-test material.
package pdt

import (
	"fmt"
	"strings"
)

// DumpString returns the indented structural dump of the subtree at n.
func DumpString(n *Node) string {
	var d dumper
	d.node(n)
	return d.buf.String()
}

type dumper struct {
	buf   strings.Builder
	depth int
}

func (d *dumper) line(format string, args ...any) {
	d.buf.WriteString(strings.Repeat("\t", d.depth))
	fmt.Fprintf(&d.buf, format, args...)
	d.buf.WriteByte('\n')
}

func (d *dumper) node(n *Node) {
	if n == nil {
		return
	}
	row := PropertiesFor(n.kind, n.tree.version)

	// Plain values become attributes; child-bearing slots decide whether
	// the element can self-close.
	var attrs strings.Builder
	hasChildren := false
	for i, desc := range row {
		switch desc.Kind {
		case ValueProp:
			if desc.ValueType == ValNode {
				if n.slots[i].value != nil {
					hasChildren = true
				}
				continue
			}
			fmt.Fprintf(&attrs, " %s='%v'", desc.Prop, n.Value(desc.Prop))
		case OptionalChild, MandatoryChild:
			if n.slots[i].child != nil {
				hasChildren = true
			}
		case ChildList:
			if len(n.slots[i].list) > 0 {
				hasChildren = true
			}
		}
	}

	if !hasChildren {
		d.line("<%s%s/>", n.kind, attrs.String())
		return
	}
	d.line("<%s%s>", n.kind, attrs.String())
	d.depth++
	for i, desc := range row {
		switch desc.Kind {
		case ValueProp:
			if desc.ValueType == ValNode && n.slots[i].value != nil {
				d.line("<%s ref='true'>", desc.Prop)
				d.depth++
				d.node(n.slots[i].value.(*Node))
				d.depth--
				d.line("</%s>", desc.Prop)
			}
		case OptionalChild, MandatoryChild:
			if c := n.slots[i].child; c != nil {
				d.line("<%s>", desc.Prop)
				d.depth++
				d.node(c)
				d.depth--
				d.line("</%s>", desc.Prop)
			}
		case ChildList:
			if kids := n.slots[i].list; len(kids) > 0 {
				d.line("<%s>", desc.Prop)
				d.depth++
				for _, c := range kids {
					d.node(c)
				}
				d.depth--
				d.line("</%s>", desc.Prop)
			}
		}
	}
	d.depth--
	d.line("</%s>", n.kind)
}
