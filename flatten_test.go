// flatten_test.go
package pdt

import (
	"errors"
	"strings"
	"testing"
)

func Test_Flatten_EmptyClass(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	got := mustFlatten(t, c, nil)
	if got != "class A{\n}\n" {
		t.Fatalf("empty class:\ngot  %q\nwant %q", got, "class A{\n}\n")
	}
}

func Test_Flatten_Implements_OnlyWhenNonEmpty(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")

	if got := mustFlatten(t, c, nil); strings.Contains(got, "implements") {
		t.Fatalf("empty interface list must not emit implements: %q", got)
	}

	store := NewRewriteStore(tr, nil)
	if err := store.RecordListEdit(c, PropInterfaces, []*Node{tr.NewIdentifier("I")}); err != nil {
		t.Fatalf("RecordListEdit: %v", err)
	}
	got := mustFlatten(t, c, store)
	if !strings.Contains(got, "implements I") {
		t.Fatalf("edited view must emit implements: %q", got)
	}
	// The base tree is still pristine.
	if base := mustFlatten(t, c, nil); strings.Contains(base, "implements") {
		t.Fatalf("base tree leaked the edit: %q", base)
	}

	if err := store.RecordListEdit(c, PropInterfaces, []*Node{tr.NewIdentifier("I"), tr.NewIdentifier("J")}); err != nil {
		t.Fatalf("RecordListEdit: %v", err)
	}
	if got := mustFlatten(t, c, store); !strings.Contains(got, "implements I, J") {
		t.Fatalf("separator: %q", got)
	}
}

func Test_Flatten_ExtendsAndModifiers(t *testing.T) {
	tr := newTestTree()
	body := mustBlock(t, tr, true)
	c, err := tr.NewClassDeclaration(ModifierAbstract, "A", tr.NewIdentifier("B"), nil, body)
	if err != nil {
		t.Fatalf("class: %v", err)
	}
	got := mustFlatten(t, c, nil)
	if got != "abstract class A extends B{\n}\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Flatten_ColonWhile_ClosesWithEndwhile(t *testing.T) {
	tr := newTestTree()
	body := mustBlock(t, tr, false, mustEcho(t, tr, "'x'"))
	w, err := tr.NewWhileStatement(mustVariable(t, tr, "i"), body)
	if err != nil {
		t.Fatalf("while: %v", err)
	}
	got := mustFlatten(t, w, nil)
	want := "while ($i)\n:\necho 'x';\nendwhile;\n"
	if got != want {
		t.Fatalf("colon while:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Flatten_ColonIf_CloserDependsOnElse(t *testing.T) {
	tr := newTestTree()

	// Without else the true branch closes the statement.
	solo, err := tr.NewIfStatement(mustVariable(t, tr, "c"),
		mustBlock(t, tr, false, mustEcho(t, tr, "'a'")), nil)
	if err != nil {
		t.Fatalf("if: %v", err)
	}
	if got := mustFlatten(t, solo, nil); !strings.HasSuffix(got, "endif;\n") {
		t.Fatalf("solo if must close with endif: %q", got)
	}

	// With an else branch, only the else closes.
	both, err := tr.NewIfStatement(mustVariable(t, tr, "c"),
		mustBlock(t, tr, false, mustEcho(t, tr, "'a'")),
		mustBlock(t, tr, false, mustEcho(t, tr, "'b'")))
	if err != nil {
		t.Fatalf("if/else: %v", err)
	}
	got := mustFlatten(t, both, nil)
	want := "if($c):\necho 'a';\n\nelse:\necho 'b';\nendif;\n"
	if got != want {
		t.Fatalf("if/else:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Flatten_Program_TagInterleaving(t *testing.T) {
	tr := newTestTree()
	prog, err := tr.NewProgram(mustEcho(t, tr, "'hi'"))
	if err != nil {
		t.Fatalf("program: %v", err)
	}
	got := mustFlatten(t, prog, nil)
	want := "<?php\necho 'hi';\n?>\n"
	if got != want {
		t.Fatalf("program:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Flatten_DeletedMandatory_IsIncompleteRewrite(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	c.SetSourceRange(3, 17)
	store := NewRewriteStore(tr, nil)
	if err := store.RecordReplace(c, PropName, nil); err != nil {
		t.Fatalf("record deletion: %v", err)
	}
	_, err := Flatten(c, store)
	var ire *IncompleteRewriteError
	if !errors.As(err, &ire) {
		t.Fatalf("got %v, want *IncompleteRewriteError", err)
	}
	if ire.Prop != PropName || ire.Start != 3 {
		t.Fatalf("error detail: %+v", ire)
	}
}

func Test_Flatten_SourceOnlyNodes(t *testing.T) {
	tr := newTestTree()

	html := tr.NewNode(KindInLineHtml)
	html.SetSourceRange(5, 30)
	prog, err := tr.NewProgram(html)
	if err != nil {
		t.Fatalf("program: %v", err)
	}
	_, err = Flatten(prog, nil)
	var une *UnflattenableNodeError
	if !errors.As(err, &une) {
		t.Fatalf("inline html: got %v", err)
	}
	if une.Start != 5 || une.End != 30 {
		t.Fatalf("span lost: %+v", une)
	}

	if _, err := Flatten(tr.NewNode(KindASTError), nil); !errors.As(err, &une) {
		t.Fatalf("parse-error node: got %v", err)
	}
	if _, err := Flatten(tr.NewScalar("??", ScalarUnknown), nil); !errors.As(err, &une) {
		t.Fatalf("unknown scalar: got %v", err)
	}
}

func Test_Flatten_MethodModifierOrder(t *testing.T) {
	tr := newTestTree()
	fn, err := tr.NewFunctionDeclaration("f", nil, nil, mustBlock(t, tr, true))
	if err != nil {
		t.Fatalf("function: %v", err)
	}
	m := tr.NewNode(KindMethodDeclaration)
	m.put(PropModifier, ModifierStatic|ModifierPublic)
	if err := m.SetChild(PropFunction, fn); err != nil {
		t.Fatalf("attach function: %v", err)
	}
	got := mustFlatten(t, m, nil)
	if !strings.HasPrefix(got, "public static function f()") {
		t.Fatalf("modifier order: %q", got)
	}
}

func Test_Flatten_Enum(t *testing.T) {
	tr := newTestTree()
	hearts, err := tr.NewEnumCase("Hearts", tr.NewScalar("'H'", ScalarString))
	if err != nil {
		t.Fatalf("case: %v", err)
	}
	e, err := tr.NewEnumDeclaration("Suit", tr.NewIdentifier("string"),
		[]*Node{tr.NewIdentifier("HasColor")}, mustBlock(t, tr, true, hearts))
	if err != nil {
		t.Fatalf("enum: %v", err)
	}
	got := mustFlatten(t, e, nil)
	want := "enum Suit: string implements HasColor{\ncase Hearts = 'H';\n}\n"
	if got != want {
		t.Fatalf("enum:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Flatten_Match(t *testing.T) {
	tr := newTestTree()
	armOne, err := tr.NewMatchArm([]*Node{tr.NewScalar("1", ScalarInt)}, tr.NewScalar("'a'", ScalarString), false)
	if err != nil {
		t.Fatalf("arm: %v", err)
	}
	armDef, err := tr.NewMatchArm(nil, tr.NewScalar("'b'", ScalarString), true)
	if err != nil {
		t.Fatalf("default arm: %v", err)
	}
	m, err := tr.NewMatchExpression(mustVariable(t, tr, "x"), armOne, armDef)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	got := mustFlatten(t, m, nil)
	want := "match ($x) {\n1 => 'a',\ndefault => 'b'\n}"
	if got != want {
		t.Fatalf("match:\ngot  %q\nwant %q", got, want)
	}
}

func Test_Flatten_MoveTarget_ReordersStatements(t *testing.T) {
	tr := newTestTree()
	first := mustEcho(t, tr, "'first'")
	second := mustEcho(t, tr, "'second'")
	block := mustBlock(t, tr, true, first, second)
	store := NewRewriteStore(tr, nil)

	mt, err := store.CreateMoveTarget(first)
	if err != nil {
		t.Fatalf("CreateMoveTarget: %v", err)
	}
	if err := store.RecordListEdit(block, PropStatements, []*Node{second, mt}); err != nil {
		t.Fatalf("RecordListEdit: %v", err)
	}
	got := mustFlatten(t, block, store)
	want := "{\necho 'second';\necho 'first';\n}\n"
	if got != want {
		t.Fatalf("move:\ngot  %q\nwant %q", got, want)
	}
	// Ownership in the tree never changed.
	if first.Parent() != block {
		t.Fatalf("moved statement re-parented in the tree")
	}
}

func Test_Flatten_Expressions(t *testing.T) {
	tr := newTestTree()
	cases := []struct {
		build func(t *testing.T) *Node
		want  string
	}{
		{func(t *testing.T) *Node {
			t.Helper()
			n, err := tr.NewAssignment(mustVariable(t, tr, "a"), "=", tr.NewScalar("1", ScalarInt))
			if err != nil {
				t.Fatal(err)
			}
			return n
		}, "$a=1"},
		{func(t *testing.T) *Node {
			t.Helper()
			n, err := tr.NewInfixExpression(mustVariable(t, tr, "a"), "+", tr.NewScalar("2", ScalarInt))
			if err != nil {
				t.Fatal(err)
			}
			return n
		}, "$a + 2"},
		{func(t *testing.T) *Node {
			t.Helper()
			n, err := tr.NewFunctionInvocation("strlen", mustVariable(t, tr, "s"))
			if err != nil {
				t.Fatal(err)
			}
			return n
		}, "strlen($s)"},
		{func(t *testing.T) *Node {
			t.Helper()
			n := tr.NewNode(KindCastExpression)
			if err := n.SetChild(PropExpression, mustVariable(t, tr, "a")); err != nil {
				t.Fatal(err)
			}
			if err := n.SetValue(PropCastingType, CastTypeString); err != nil {
				t.Fatal(err)
			}
			return n
		}, "(string)$a"},
	}
	for _, tc := range cases {
		got := mustFlatten(t, tc.build(t), nil)
		if got != tc.want {
			t.Fatalf("flatten mismatch:\ngot  %q\nwant %q", got, tc.want)
		}
	}
}

func Test_Flatten_Layered_EditWins(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	base := NewRewriteStore(tr, nil)
	if err := base.RecordReplace(c, PropName, tr.NewIdentifier("Base")); err != nil {
		t.Fatalf("base record: %v", err)
	}
	top := NewRewriteStore(nil, base)
	if err := top.RecordReplace(c, PropName, tr.NewIdentifier("Top")); err != nil {
		t.Fatalf("top record: %v", err)
	}
	if got := mustFlatten(t, c, top); got != "class Top{\n}\n" {
		t.Fatalf("layered flatten: %q", got)
	}
	if got := mustFlatten(t, c, base); got != "class Base{\n}\n" {
		t.Fatalf("base flatten: %q", got)
	}
}
