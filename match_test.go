// match_test.go
package pdt

import "testing"

func Test_Match_CloneMatchesOriginal(t *testing.T) {
	tr := newTestTree()
	c, err := tr.NewClassDeclaration(ModifierFinal, "A",
		tr.NewIdentifier("B"),
		[]*Node{tr.NewIdentifier("I")},
		mustBlock(t, tr, true, mustEcho(t, tr, "'x'")))
	if err != nil {
		t.Fatalf("class: %v", err)
	}
	if !Match(c, c.CloneSubtree(tr)) {
		t.Fatalf("clone must match its original")
	}
	// Clones into a different tree context match too.
	other := newTestTree()
	if !Match(c, c.CloneSubtree(other)) {
		t.Fatalf("cross-tree clone must match")
	}
}

func Test_Match_SeesValueDifferences(t *testing.T) {
	tr := newTestTree()
	a := mustClass(t, tr, "A")
	b := mustClass(t, tr, "B")
	if Match(a, b) {
		t.Fatalf("different names must not match")
	}
	x := tr.NewScalar("1", ScalarInt)
	y := tr.NewScalar("1", ScalarString)
	if Match(x, y) {
		t.Fatalf("different scalar categories must not match")
	}
}

func Test_Match_SeesListDifferences(t *testing.T) {
	tr := newTestTree()
	one := mustBlock(t, tr, true, mustEcho(t, tr, "'x'"))
	two := mustBlock(t, tr, true, mustEcho(t, tr, "'x'"), mustEcho(t, tr, "'y'"))
	if Match(one, two) {
		t.Fatalf("different list lengths must not match")
	}
}

func Test_Match_IgnoresSpansAndIdentity(t *testing.T) {
	tr := newTestTree()
	a := tr.NewIdentifier("x")
	a.SetSourceRange(0, 1)
	b := tr.NewIdentifier("x")
	b.SetSourceRange(100, 101)
	if !Match(a, b) {
		t.Fatalf("spans and node ids are not structural")
	}
}

func Test_Match_KindMismatch(t *testing.T) {
	tr := newTestTree()
	if Match(tr.NewIdentifier("x"), tr.NewScalar("x", ScalarString)) {
		t.Fatalf("different kinds must not match")
	}
	if Match(nil, tr.NewIdentifier("x")) {
		t.Fatalf("nil never matches a node")
	}
	if !Match(nil, nil) {
		t.Fatalf("two nils match")
	}
}
