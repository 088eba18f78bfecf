// node_test.go
package pdt

import (
	"errors"
	"testing"
)

func Test_Node_SingleOwner(t *testing.T) {
	tr := newTestTree()
	id := tr.NewIdentifier("x")
	a := tr.NewNode(KindEchoStatement)
	b := tr.NewNode(KindEchoStatement)

	if err := a.List(PropExpressions).Append(id); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	err := b.List(PropExpressions).Append(id)
	var ise *InvalidStructureError
	if !errors.As(err, &ise) {
		t.Fatalf("second attach: got %v, want *InvalidStructureError", err)
	}
	if id.Parent() != a {
		t.Fatalf("failed attach must not steal ownership")
	}
}

func Test_Node_CrossTree_Rejected(t *testing.T) {
	tr1 := newTestTree()
	tr2 := newTestTree()
	stmt := tr1.NewNode(KindEchoStatement)
	alien := tr2.NewIdentifier("x")

	err := stmt.List(PropExpressions).Append(alien)
	var ise *InvalidStructureError
	if !errors.As(err, &ise) {
		t.Fatalf("cross-tree attach: got %v, want *InvalidStructureError", err)
	}
}

func Test_Node_MandatoryNil_Rejected(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	err := c.SetChild(PropName, nil)
	var ce *CardinalityError
	if !errors.As(err, &ce) {
		t.Fatalf("nil mandatory: got %v, want *CardinalityError", err)
	}
	// Optional slots accept nil as clearing.
	if err := c.SetChild(PropSuperClass, nil); err != nil {
		t.Fatalf("nil optional: %v", err)
	}
}

func Test_Node_Cycle_Rejected(t *testing.T) {
	tr := newTestTree()
	inner := mustBlock(t, tr, true)
	cond := mustVariable(t, tr, "c")
	ifStmt, err := tr.NewIfStatement(cond, inner, nil)
	if err != nil {
		t.Fatalf("NewIfStatement: %v", err)
	}
	outer := mustBlock(t, tr, true, ifStmt)

	// outer owns ifStmt; making it ifStmt's child would close a loop.
	err = ifStmt.SetChild(PropFalseStatement, outer)
	var cy *CycleError
	if !errors.As(err, &cy) {
		t.Fatalf("cycle attach: got %v, want *CycleError", err)
	}
	// Self-attachment is the degenerate cycle.
	err = ifStmt.SetChild(PropFalseStatement, ifStmt)
	if !errors.As(err, &cy) {
		t.Fatalf("self attach: got %v, want *CycleError", err)
	}
}

func Test_Node_ListInsert_RejectsAncestor(t *testing.T) {
	tr := newTestTree()
	inner := mustBlock(t, tr, true)
	outer := mustBlock(t, tr, true, inner)

	var cy *CycleError
	err := inner.List(PropStatements).Append(outer)
	if !errors.As(err, &cy) {
		t.Fatalf("ancestor append: got %v, want *CycleError", err)
	}
	if outer.Parent() != nil || inner.Parent() != outer {
		t.Fatalf("failed append must leave ownership untouched")
	}

	// Lists without a flagged risk refuse ancestors all the same.
	c := mustClass(t, tr, "A")
	if err := outer.List(PropStatements).Append(c); err != nil {
		t.Fatalf("attach class: %v", err)
	}
	if err := c.List(PropInterfaces).Append(outer); !errors.As(err, &cy) {
		t.Fatalf("ancestor into interfaces: got %v, want *CycleError", err)
	}

	// ReplaceAt goes through the same gate.
	if err := inner.List(PropStatements).Append(mustEcho(t, tr, "'x'")); err != nil {
		t.Fatalf("seed statement: %v", err)
	}
	if err := inner.List(PropStatements).ReplaceAt(0, outer); !errors.As(err, &cy) {
		t.Fatalf("ancestor replace: got %v, want *CycleError", err)
	}
}

func Test_Node_SetChild_DetachesPrevious(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	oldName := c.Child(PropName)
	if err := c.SetChild(PropName, tr.NewIdentifier("B")); err != nil {
		t.Fatalf("replace name: %v", err)
	}
	if oldName.Parent() != nil {
		t.Fatalf("replaced child must be detached")
	}
	if got := c.Child(PropName).StringValue(PropName); got != "B" {
		t.Fatalf("name: got %q want %q", got, "B")
	}
}

func Test_Node_ListView_IsLive(t *testing.T) {
	tr := newTestTree()
	b := mustBlock(t, tr, true)
	v1 := b.List(PropStatements)
	v2 := b.List(PropStatements)

	if err := v1.Append(mustEcho(t, tr, "'a'")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if v2.Len() != 1 {
		t.Fatalf("second view should see the append, len=%d", v2.Len())
	}
	if err := v2.InsertAt(0, mustEcho(t, tr, "'b'")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := v1.RemoveAt(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if v1.Len() != 1 {
		t.Fatalf("len after remove: %d", v1.Len())
	}

	old := v1.At(0)
	if err := v1.ReplaceAt(0, mustEcho(t, tr, "'c'")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if old.Parent() != nil {
		t.Fatalf("replaced element must be detached")
	}
	if v1.Len() != 1 {
		t.Fatalf("replace must not change length: %d", v1.Len())
	}
}

func Test_Node_LocationInParent(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	name := c.Child(PropName)

	prop, ok := name.LocationInParent()
	if !ok || prop != PropName {
		t.Fatalf("location: got (%v,%v) want (name,true)", prop, ok)
	}
	body := c.Child(PropBody)
	stmt := mustEcho(t, tr, "'x'")
	if err := body.List(PropStatements).Append(stmt); err != nil {
		t.Fatalf("append: %v", err)
	}
	if prop, _ := stmt.LocationInParent(); prop != PropStatements {
		t.Fatalf("list members report the list property, got %s", prop)
	}
	if _, ok := c.LocationInParent(); ok {
		t.Fatalf("detached root has no location")
	}
}

func Test_Node_ValueTyping(t *testing.T) {
	tr := newTestTree()
	b := tr.NewNode(KindBlock)
	var ce *CardinalityError
	if err := b.SetValue(PropIsCurly, "yes"); !errors.As(err, &ce) {
		t.Fatalf("wrong value type: got %v, want *CardinalityError", err)
	}
	if err := b.SetValue(PropIsCurly, true); err != nil {
		t.Fatalf("bool write: %v", err)
	}
	if !b.BoolValue(PropIsCurly) {
		t.Fatalf("read back: want true")
	}
	// Unset slots read as zero values.
	s := tr.NewNode(KindScalar)
	if got := s.StringValue(PropValue); got != "" {
		t.Fatalf("unset string: got %q", got)
	}
}

func Test_Node_Clone_IsDetachedEquivalent(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	c.SetSourceRange(10, 42)
	mustBlock(t, tr, true, c)

	cl := c.CloneSubtree(tr)
	if cl.Parent() != nil {
		t.Fatalf("clone must be detached")
	}
	if cl.ID() == c.ID() {
		t.Fatalf("clone must carry a fresh identity")
	}
	if !Match(c, cl) {
		t.Fatalf("clone must match its original:\n%s\nvs\n%s", DumpString(c), DumpString(cl))
	}
	if cl.Start() != 10 || cl.End() != 42 {
		t.Fatalf("clone keeps spans, got [%d,%d)", cl.Start(), cl.End())
	}
	// Deep copy: editing the clone leaves the original alone.
	if err := cl.SetChild(PropName, tr.NewIdentifier("B")); err != nil {
		t.Fatalf("rename clone: %v", err)
	}
	if got := c.Child(PropName).StringValue(PropName); got != "A" {
		t.Fatalf("original mutated through clone: %q", got)
	}
}

func Test_Tree_Root_And_Comments(t *testing.T) {
	tr := newTestTree()
	prog, err := tr.NewProgram(mustEcho(t, tr, "'x'"))
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if err := tr.SetRoot(prog); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	other := newTestTree()
	alien, _ := other.NewProgram()
	var ise *InvalidStructureError
	if err := tr.SetRoot(alien); !errors.As(err, &ise) {
		t.Fatalf("alien root: got %v", err)
	}

	cm := tr.NewNode(KindComment)
	cm.put(PropCommentType, CommentLine)
	if err := tr.AddComment(cm); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	var ce error = tr.AddComment(tr.NewIdentifier("x"))
	if !errors.As(ce, &ise) {
		t.Fatalf("non-comment trivia: got %v", ce)
	}
}
