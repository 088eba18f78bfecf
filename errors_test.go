// errors_test.go
package pdt

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapErrorWithSource_CaretSnippet(t *testing.T) {
	src := "<?php\nclass A {\n}\n"
	err := &IncompleteRewriteError{
		Kind:  KindClassDeclaration,
		Prop:  PropName,
		Start: strings.Index(src, "class"),
		End:   strings.Index(src, "{"),
	}
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	if !strings.Contains(msg, "REWRITE ERROR at 2:1") {
		t.Fatalf("header/position missing:\n%s", msg)
	}
	if !strings.Contains(msg, "class A {") {
		t.Fatalf("offending line missing:\n%s", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("caret missing:\n%s", msg)
	}
}

func Test_WrapErrorWithSource_LeavesOthersAlone(t *testing.T) {
	plain := errors.New("boom")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("unrecognized errors must pass through, got %v", got)
	}
	ce := &CardinalityError{Kind: KindBlock, Prop: PropIsCurly, Msg: "x"}
	if got := WrapErrorWithSource(ce, "src"); got != error(ce) {
		t.Fatalf("cardinality errors carry no span, got %v", got)
	}
}

func Test_WrapErrorWithSource_ClampsOffsets(t *testing.T) {
	err := &UnflattenableNodeError{Kind: KindInLineHtml, Start: 9999, End: 10000}
	msg := WrapErrorWithSource(err, "short\n").Error()
	if !strings.Contains(msg, "SOURCE-ONLY NODE") {
		t.Fatalf("wrap failed on out-of-range span:\n%s", msg)
	}
}

func Test_ModifierString_CanonicalOrder(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{ModifierNone, ""},
		{ModifierPublic, "public"},
		{ModifierFinal | ModifierPublic | ModifierStatic, "public static final"},
		{ModifierAbstract | ModifierProtected, "protected abstract"},
		{ModifierPrivate | ModifierReadonly, "private readonly"},
	}
	for _, tc := range cases {
		if got := ModifierString(tc.in); got != tc.want {
			t.Fatalf("ModifierString(%#x): got %q want %q", tc.in, got, tc.want)
		}
	}
}
