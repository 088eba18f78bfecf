// helpers_test.go
package pdt

import "testing"

// Builders shared across the test files. Each one fails the test on the
// spot so the cases themselves stay linear.

func newTestTree() *Tree { return NewTree(PHP82) }

func mustVariable(t *testing.T, tr *Tree, name string) *Node {
	t.Helper()
	v, err := tr.NewVariable(name)
	if err != nil {
		t.Fatalf("NewVariable(%q): %v", name, err)
	}
	return v
}

func mustBlock(t *testing.T, tr *Tree, curly bool, stmts ...*Node) *Node {
	t.Helper()
	b, err := tr.NewBlock(curly, stmts...)
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}
	return b
}

func mustClass(t *testing.T, tr *Tree, name string) *Node {
	t.Helper()
	c, err := tr.NewClassDeclaration(ModifierNone, name, nil, nil, mustBlock(t, tr, true))
	if err != nil {
		t.Fatalf("NewClassDeclaration(%q): %v", name, err)
	}
	return c
}

func mustEcho(t *testing.T, tr *Tree, literal string) *Node {
	t.Helper()
	e, err := tr.NewEchoStatement(tr.NewScalar(literal, ScalarString))
	if err != nil {
		t.Fatalf("NewEchoStatement: %v", err)
	}
	return e
}

func mustFlatten(t *testing.T, n *Node, store *RewriteStore) string {
	t.Helper()
	out, err := Flatten(n, store)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	return out
}
