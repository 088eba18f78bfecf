// errors.go: structural error taxonomy and caret-snippet rendering
//
// What this file does
// -------------------
// Defines the typed errors raised by the node model, the rewrite store and
// the flattener, and a helper that turns span-carrying errors into readable
// snippets with a caret pointing at the offending source position.
//
// The taxonomy:
//   - *CardinalityError      wrong property kind, or nil where mandatory.
//   - *InvalidStructureError node already owned elsewhere / alien tree.
//   - *CycleError            ownership transfer would create a cycle.
//   - *IncompleteRewriteError a mandatory child was deleted or never
//     supplied by the time the flattener needed it.
//   - *UnflattenableNodeError the node kind is defined only by its original
//     source bytes (parse-error placeholders, raw inline HTML); the caller
//     must splice the original bytes instead of generated text.
//
// The first three are caller defects and fail fast at the call site. The
// last two are session-level outcomes an edit session is expected to handle.
// Nothing in this core retries: it is synchronous and deterministic, so all
// failures propagate immediately.
//
// Behavior guarantees
// -------------------
//   - WrapErrorWithSource leaves unrecognized errors untouched.
//   - Byte offsets out of range are clamped so the caret renders safely.
//   - Output is plain text (no ANSI colors), suitable for logs.
package pdt

import (
	"fmt"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// CardinalityError reports a property accessed or written with the wrong
// cardinality: a value read through a child accessor, a nil assigned to a
// mandatory child, a scalar of the wrong type, and so on.
type CardinalityError struct {
	Kind NodeKind
	Prop Property
	Msg  string
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("cardinality error on %s.%s: %s", e.Kind, e.Prop, e.Msg)
}

// InvalidStructureError reports an ownership-transfer attempt with a node
// that already has a parent or belongs to a different tree context.
type InvalidStructureError struct {
	Msg string
}

func (e *InvalidStructureError) Error() string {
	return "invalid structure: " + e.Msg
}

// CycleError reports an ownership transfer that would make a node its own
// ancestor.
type CycleError struct {
	Kind NodeKind
	Prop Property
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle: assigning to %s.%s would make the node its own ancestor", e.Kind, e.Prop)
}

// IncompleteRewriteError is returned by Flatten when the effective value of
// a mandatory child is absent — typically because a rewrite recorded a
// deletion for it. Start/End locate the affected node in the original
// source when known (placeholders carry -1).
type IncompleteRewriteError struct {
	Kind       NodeKind
	Prop       Property
	Start, End int
}

func (e *IncompleteRewriteError) Error() string {
	return fmt.Sprintf("incomplete rewrite: %s.%s has no effective value", e.Kind, e.Prop)
}

// UnflattenableNodeError is returned by Flatten for nodes whose text exists
// only as original source bytes. It is not a defect: callers substitute the
// bytes at [Start, End) instead of generated text.
type UnflattenableNodeError struct {
	Kind       NodeKind
	Start, End int
}

func (e *UnflattenableNodeError) Error() string {
	return fmt.Sprintf("cannot flatten %s [%d,%d): node is defined by its original source bytes", e.Kind, e.Start, e.End)
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes the span-carrying errors of
// this package (*IncompleteRewriteError, *UnflattenableNodeError) and leaves
// everything else untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *IncompleteRewriteError:
		line, col := NewLineIndex(src).LineCol(e.Start)
		return fmt.Errorf("%s", prettySnippet(src, "REWRITE ERROR", line, col, e.Error()))
	case *UnflattenableNodeError:
		line, col := NewLineIndex(src).LineCol(e.Start)
		return fmt.Errorf("%s", prettySnippet(src, "SOURCE-ONLY NODE", line, col, e.Error()))
	default:
		return err
	}
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

// prettySnippet builds a snippet with a header and a caret. It shows at most
// one previous and one next line when available. Coordinates are 1-based and
// clamped to the source bounds.
func prettySnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
