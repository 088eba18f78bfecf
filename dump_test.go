// dump_test.go
package pdt

import (
	"strings"
	"testing"
)

func Test_Dump_NestsChildrenUnderProperties(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	got := DumpString(c)

	for _, frag := range []string{
		"<ClassDeclaration",
		"<name>",
		"<Identifier name='A'/>",
		"<body>",
		"</ClassDeclaration>",
	} {
		if !strings.Contains(got, frag) {
			t.Fatalf("dump missing %q:\n%s", frag, got)
		}
	}
}

func Test_Dump_IsStable(t *testing.T) {
	tr := newTestTree()
	c := mustClass(t, tr, "A")
	if DumpString(c) != DumpString(c) {
		t.Fatalf("dump must be deterministic")
	}
}

func Test_Dump_LeafSelfCloses(t *testing.T) {
	tr := newTestTree()
	got := DumpString(tr.NewScalar("1", ScalarInt))
	if !strings.HasPrefix(got, "<Scalar ") || !strings.Contains(got, "/>") {
		t.Fatalf("leaf dump: %q", got)
	}
}
