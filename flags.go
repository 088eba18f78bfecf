// flags.go — plain-value vocabularies stored in ValueProp slots.
//
// These are the integer codes the parser stores in value properties and the
// flattener turns back into surface syntax: declaration modifiers, scalar
// and quote categories, cast and include forms. They live here rather than
// on the nodes so the node model stays shape-only.
package pdt

import "strings"

/* ---------- modifiers ---------- */

// Modifier bits for classes, methods, fields, constants and promoted
// constructor parameters. Combine with |.
const (
	ModifierNone      = 0
	ModifierPublic    = 1 << 0
	ModifierProtected = 1 << 1
	ModifierPrivate   = 1 << 2
	ModifierStatic    = 1 << 3
	ModifierAbstract  = 1 << 4
	ModifierFinal     = 1 << 5
	ModifierReadonly  = 1 << 6
)

// ModifierString renders a modifier bitmask in canonical order. The result
// is empty for ModifierNone and never carries surrounding spaces.
func ModifierString(m int) string {
	var parts []string
	if m&ModifierPublic != 0 {
		parts = append(parts, "public")
	}
	if m&ModifierProtected != 0 {
		parts = append(parts, "protected")
	}
	if m&ModifierPrivate != 0 {
		parts = append(parts, "private")
	}
	if m&ModifierStatic != 0 {
		parts = append(parts, "static")
	}
	if m&ModifierReadonly != 0 {
		parts = append(parts, "readonly")
	}
	if m&ModifierAbstract != 0 {
		parts = append(parts, "abstract")
	}
	if m&ModifierFinal != 0 {
		parts = append(parts, "final")
	}
	return strings.Join(parts, " ")
}

/* ---------- scalar & quote categories ---------- */

// Scalar categories stored in PropScalarType.
const (
	ScalarInt = iota
	ScalarReal
	ScalarString
	ScalarSystem // magic constants: __LINE__, __CLASS__ and friends
	ScalarBigInt
	ScalarUnknown
)

// Quote categories stored in PropQuoteType.
const (
	QuoteDouble = iota
	QuoteSingle
	QuoteHeredoc
	QuoteNowdoc
)

/* ---------- expression forms ---------- */

// Cast forms stored in PropCastingType.
const (
	CastTypeInt = iota
	CastTypeReal
	CastTypeString
	CastTypeArray
	CastTypeObject
	CastTypeBool
	CastTypeUnset
)

var castNames = [...]string{"int", "real", "string", "array", "object", "bool", "unset"}

// CastString renders a cast form without its parentheses.
func CastString(t int) string {
	if t < 0 || t >= len(castNames) {
		return "?"
	}
	return castNames[t]
}

// Include forms stored in PropIncludeType.
const (
	IncludeRequire = iota
	IncludeRequireOnce
	IncludeInclude
	IncludeIncludeOnce
)

var includeNames = [...]string{"require", "require_once", "include", "include_once"}

// IncludeString renders an include form keyword.
func IncludeString(t int) string {
	if t < 0 || t >= len(includeNames) {
		return "?"
	}
	return includeNames[t]
}

// Array access forms stored in PropArrayType.
const (
	ArrayAccessVariable = iota // $a[...]
	ArrayAccessHashtable       // $a{...}, removed in PHP 8
)

// Conditional operator forms stored in PropOperatorType on a
// ConditionalExpression.
const (
	ConditionalTernary  = iota // a ? b : c
	ConditionalCoalesce        // a ?? b
)

// Use-statement forms stored in PropStatementType.
const (
	UseNone = iota
	UseFunction
	UseConst
)

// Comment categories stored in PropCommentType.
const (
	CommentLine = iota
	CommentBlock
	CommentPHPDoc
)
