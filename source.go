// source.go — byte spans and source coordinate mapping.
//
// WHAT THIS MODULE DOES
// =====================
// Nodes locate themselves in the original text as half-open byte intervals
// [Start, End); this file supplies the types and lookups around those
// intervals: a Span value, extraction of a node's original bytes, and a
// LineIndex that maps byte offsets to 1-based line/column coordinates in
// O(log lines) after a single O(n) scan.
//
// A LineIndex is read-only after construction and safe to share for
// concurrent reads; build one per source text and reuse it for every
// diagnostic against that text.
package pdt

import "sort"

// Span is a half-open byte interval [Start, End) in the original UTF-8
// source. Placeholder nodes carry the invalid span {-1, -1}.
type Span struct {
	Start int // inclusive
	End   int // exclusive
}

// Valid reports whether the span points into real source.
func (s Span) Valid() bool { return s.Start >= 0 && s.End >= s.Start }

// Len is the byte length of the span; 0 for invalid spans.
func (s Span) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.End - s.Start
}

// Span returns the node's source interval.
func (n *Node) Span() Span { return Span{Start: n.start, End: n.end} }

// SourceFor returns the original bytes a node was parsed from, clamped to
// the source bounds. Placeholders and out-of-range spans yield "".
func SourceFor(n *Node, src string) string {
	sp := n.Span()
	if !sp.Valid() || sp.Start >= len(src) {
		return ""
	}
	end := sp.End
	if end > len(src) {
		end = len(src)
	}
	return src[sp.Start:end]
}

// LineIndex maps byte offsets to line/column coordinates.
type LineIndex struct {
	// starts[i] is the byte offset of line i+1.
	starts []int
	size   int
}

// NewLineIndex scans src once and returns a reusable index.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, size: len(src)}
}

// LineCol returns the 1-based line and column of a byte offset, clamping
// out-of-range offsets to the source bounds.
func (li *LineIndex) LineCol(off int) (line, col int) {
	if off < 0 {
		off = 0
	}
	if off > li.size {
		off = li.size
	}
	// First line start strictly greater than off; the line is the one before.
	i := sort.SearchInts(li.starts, off+1) - 1
	return i + 1, off - li.starts[i] + 1
}

// Line returns the 1-based line number alone.
func (li *LineIndex) Line(off int) int {
	line, _ := li.LineCol(off)
	return line
}

// LineCount is the number of lines in the indexed source. An empty source
// has one (empty) line.
func (li *LineIndex) LineCount() int { return len(li.starts) }
