// flatten.go — canonical source text from an edited tree.
//
// WHAT THIS MODULE DOES
// =====================
// Flatten serializes a subtree back to PHP text, reading every child, list
// and value through a RewriteStore so the output reflects pending edits
// without the tree ever being mutated. The output is canonical, not
// formatted: fixed spacing, one statement per line, no comment or
// whitespace preservation. Callers that need faithful text run the result
// through a formatter or splice original source ranges around it.
//
// FAILURE MODES
// =============
// Two error shapes come back, both carrying the offending node's span:
//
//   - *IncompleteRewriteError: a mandatory child has no effective value,
//     because an edit deleted it or a placeholder was never completed.
//   - *UnflattenableNodeError: the node's text exists only as original
//     source bytes (parse-error placeholders, inline HTML, scalars whose
//     category was never resolved). Callers splice the bytes at the span.
//
// The first error aborts the whole flatten; there is no partial output.
//
// Templates follow the grammar's canonical form. One template is a
// deliberate behavior change from older serializers: the implements clause
// of a class is emitted exactly when the effective interface list is
// non-empty. Colon-style blocks close with the keyword their parent slot
// dictates (endif;, endwhile;, endfor;, endforeach;, endswitch;).
package pdt

import (
	"strconv"
	"strings"
)

// Flatten returns the canonical text of the subtree rooted at n as seen
// through store. A nil store flattens the tree as-is.
func Flatten(n *Node, store *RewriteStore) (string, error) {
	f := &flattener{store: store}
	f.node(n)
	if f.err != nil {
		return "", f.err
	}
	return f.buf.String(), nil
}

/* ---------- writer ---------- */

// flattener accumulates output and the first error; once err is set every
// method is a no-op so templates stay free of error plumbing.
type flattener struct {
	buf   strings.Builder
	store *RewriteStore
	err   error
}

func (f *flattener) s(txt string) {
	if f.err == nil {
		f.buf.WriteString(txt)
	}
}

/* ---------- effective reads ---------- */

func (f *flattener) child(n *Node, p Property) *Node {
	return f.store.EffectiveChild(n, p)
}

// mand reads a mandatory child and records an IncompleteRewriteError when
// its effective value is absent.
func (f *flattener) mand(n *Node, p Property) *Node {
	c := f.store.EffectiveChild(n, p)
	if c == nil && f.err == nil {
		f.err = &IncompleteRewriteError{Kind: n.kind, Prop: p, Start: n.start, End: n.end}
	}
	return c
}

func (f *flattener) list(n *Node, p Property) []*Node {
	return f.store.EffectiveList(n, p)
}

func (f *flattener) strOf(n *Node, p Property) string {
	return f.store.EffectiveValue(n, p).(string)
}

func (f *flattener) intOf(n *Node, p Property) int {
	return f.store.EffectiveValue(n, p).(int)
}

func (f *flattener) boolOf(n *Node, p Property) bool {
	return f.store.EffectiveValue(n, p).(bool)
}

// join flattens a list with a separator between elements.
func (f *flattener) join(elems []*Node, sep string) {
	for i, e := range elems {
		if i > 0 {
			f.s(sep)
		}
		f.node(e)
	}
}

// joinWrapped emits lead+elements+post, or nothing when the list is empty.
func (f *flattener) joinWrapped(elems []*Node, sep, lead, post string) {
	if len(elems) == 0 {
		return
	}
	f.s(lead)
	f.join(elems, sep)
	f.s(post)
}

/* ---------- dispatch ---------- */

func (f *flattener) node(n *Node) {
	if f.err != nil || n == nil {
		return
	}
	switch n.kind {

	case KindProgram:
		f.program(n)

	case KindBlock:
		f.block(n)

	case KindNamespaceDeclaration:
		f.s("namespace ")
		f.node(f.child(n, PropName))
		if !f.boolOf(n, PropIsBracketed) {
			f.s(";\n")
		}
		f.node(f.mand(n, PropBody))

	case KindNamespaceName:
		if f.boolOf(n, PropIsGlobal) {
			f.s("\\")
		}
		if f.boolOf(n, PropIsCurrent) {
			f.s("namespace\\")
		}
		f.join(f.list(n, PropSegments), "\\")

	case KindUseStatement:
		f.s("use ")
		switch f.intOf(n, PropStatementType) {
		case UseFunction:
			f.s("function ")
		case UseConst:
			f.s("const ")
		}
		ns := f.child(n, PropNamespace)
		if ns != nil {
			f.node(ns)
			f.s("\\{")
		}
		f.join(f.list(n, PropParts), ", ")
		if ns != nil {
			f.s("}")
		}
		f.s(";\n")

	case KindUseStatementPart:
		if p := n.parent; p != nil && p.kind == KindUseStatement &&
			f.intOf(p, PropStatementType) == UseNone {
			switch f.intOf(n, PropStatementType) {
			case UseFunction:
				f.s("function ")
			case UseConst:
				f.s("const ")
			}
		}
		f.node(f.mand(n, PropName))
		if alias := f.child(n, PropAlias); alias != nil {
			f.s(" as ")
			f.node(alias)
		}

	case KindDeclareStatement:
		f.s("declare (")
		names := f.list(n, PropNames)
		values := f.list(n, PropValues)
		for i := range names {
			if i > 0 {
				f.s(", ")
			}
			f.node(names[i])
			f.s(" = ")
			if i < len(values) {
				f.node(values[i])
			}
		}
		f.s(")")
		f.node(f.mand(n, PropBody))

	case KindClassDeclaration:
		f.attrGroups(n, "\n")
		if m := f.intOf(n, PropModifier); m != ModifierNone {
			f.s(ModifierString(m))
			f.s(" ")
		}
		f.s("class ")
		f.node(f.mand(n, PropName))
		if super := f.child(n, PropSuperClass); super != nil {
			f.s(" extends ")
			f.node(super)
		}
		f.joinWrapped(f.list(n, PropInterfaces), ", ", " implements ", "")
		f.node(f.mand(n, PropBody))

	case KindInterfaceDeclaration:
		f.attrGroups(n, "\n")
		f.s("interface ")
		f.node(f.mand(n, PropName))
		f.joinWrapped(f.list(n, PropInterfaces), ", ", " extends ", "")
		f.node(f.mand(n, PropBody))

	case KindTraitDeclaration:
		f.attrGroups(n, "\n")
		f.s("trait ")
		f.node(f.mand(n, PropName))
		if super := f.child(n, PropSuperClass); super != nil {
			f.s(" extends ")
			f.node(super)
		}
		f.node(f.mand(n, PropBody))

	case KindEnumDeclaration:
		f.attrGroups(n, "\n")
		f.s("enum ")
		f.node(f.mand(n, PropName))
		if st := f.child(n, PropScalarType); st != nil {
			f.s(": ")
			f.node(st)
		}
		f.joinWrapped(f.list(n, PropInterfaces), ", ", " implements ", "")
		f.node(f.mand(n, PropBody))

	case KindEnumCase:
		f.attrGroups(n, "\n")
		f.s("case ")
		f.node(f.mand(n, PropName))
		if v := f.child(n, PropValue); v != nil {
			f.s(" = ")
			f.node(v)
		}
		f.s(";\n")

	case KindFunctionDeclaration:
		f.attrGroups(n, "\n")
		f.s(" function ")
		if f.boolOf(n, PropIsReference) {
			f.s("&")
		}
		f.node(f.mand(n, PropName))
		f.s("(")
		f.join(f.list(n, PropParameters), ", ")
		f.s(")")
		if rt := f.child(n, PropReturnType); rt != nil {
			f.s(":")
			f.node(rt)
		}
		f.node(f.child(n, PropBody))

	case KindLambdaFunctionDeclaration:
		if f.boolOf(n, PropIsStatic) {
			f.s(" static")
		}
		f.s(" function ")
		if f.boolOf(n, PropIsReference) {
			f.s("&")
		}
		f.s("(")
		f.join(f.list(n, PropParameters), ", ")
		f.s(")")
		f.joinWrapped(f.list(n, PropLexicalVars), ", ", " use (", ")")
		if rt := f.child(n, PropReturnType); rt != nil {
			f.s(":")
			f.node(rt)
		}
		f.node(f.child(n, PropBody))

	case KindArrowFunctionDeclaration:
		if f.boolOf(n, PropIsStatic) {
			f.s(" static")
		}
		f.s(" fn ")
		if f.boolOf(n, PropIsReference) {
			f.s("&")
		}
		f.s("(")
		f.join(f.list(n, PropParameters), ", ")
		f.s(")")
		if rt := f.child(n, PropReturnType); rt != nil {
			f.s(":")
			f.node(rt)
			f.s(" ")
		}
		f.s(" => ")
		f.node(f.child(n, PropBody))

	case KindMethodDeclaration:
		f.attrGroups(n, "\n")
		f.s(ModifierString(f.intOf(n, PropModifier)))
		f.node(f.mand(n, PropFunction))

	case KindFormalParameter:
		f.attrGroups(n, " ")
		if n.tree.version >= PHP80 {
			if m := f.intOf(n, PropModifier); m != ModifierNone {
				f.s(ModifierString(m))
				f.s(" ")
			}
		}
		if pt := f.child(n, PropParameterType); pt != nil {
			f.node(pt)
			f.s(" ")
		}
		if f.boolOf(n, PropIsVariadic) {
			f.s("...")
		}
		f.node(f.mand(n, PropParameterName))
		if dv := f.child(n, PropDefaultValue); dv != nil {
			f.s(" = ")
			f.node(dv)
		}

	case KindFieldsDeclaration:
		f.attrGroups(n, "\n")
		mod := ModifierString(f.intOf(n, PropModifier))
		ft := f.child(n, PropFieldsType)
		for _, field := range f.list(n, PropFields) {
			f.s(mod)
			f.s(" ")
			if ft != nil {
				f.node(ft)
				f.s(" ")
			}
			f.node(field)
			f.s(";\n")
		}

	case KindSingleFieldDeclaration:
		f.node(f.mand(n, PropName))
		if v := f.child(n, PropValue); v != nil {
			f.s(" = ")
			f.node(v)
		}

	case KindConstantDeclaration:
		f.attrGroups(n, "\n")
		if m := f.intOf(n, PropModifier); m != ModifierNone {
			f.s(ModifierString(m))
			f.s(" ")
		}
		f.s("const ")
		names := f.list(n, PropNames)
		inits := f.list(n, PropInitializers)
		for i := range names {
			if i > 0 {
				f.s(", ")
			}
			f.node(names[i])
			f.s(" = ")
			if i < len(inits) {
				f.node(inits[i])
			}
		}
		f.s(";\n")

	case KindAttributeGroup:
		f.s("#[")
		f.join(f.list(n, PropAttrs), ", ")
		f.s("]")

	case KindAttribute:
		f.node(f.mand(n, PropClassName))
		f.joinWrapped(f.list(n, PropArgs), ", ", "(", ")")

	case KindExpressionStatement:
		f.node(f.mand(n, PropExpression))
		f.s(";")

	case KindIfStatement:
		f.s("if(")
		f.node(f.mand(n, PropCondition))
		f.s(")")
		f.node(f.mand(n, PropTrueStatement))
		if fs := f.child(n, PropFalseStatement); fs != nil {
			f.s("else")
			f.node(fs)
		}

	case KindWhileStatement:
		f.s("while (")
		f.node(f.mand(n, PropCondition))
		f.s(")\n")
		f.node(f.mand(n, PropBody))

	case KindDoStatement:
		f.s("do ")
		f.node(f.mand(n, PropBody))
		f.s("while (")
		f.node(f.mand(n, PropCondition))
		f.s(");\n")

	case KindForStatement:
		f.s("for (")
		f.join(f.list(n, PropInitializers), ", ")
		f.s(" ; ")
		f.join(f.list(n, PropConditions), ", ")
		f.s(" ; ")
		f.join(f.list(n, PropUpdaters), ", ")
		f.s(" ) ")
		f.node(f.mand(n, PropBody))

	case KindForEachStatement:
		f.s("foreach (")
		f.node(f.mand(n, PropExpression))
		f.s(" as ")
		if k := f.child(n, PropKey); k != nil {
			f.node(k)
			f.s(" => ")
		}
		f.node(f.mand(n, PropValue))
		f.s(")")
		f.node(f.mand(n, PropStatement))

	case KindSwitchStatement:
		f.s("switch (")
		f.node(f.mand(n, PropExpression))
		f.s(")")
		f.node(f.mand(n, PropBody))

	case KindSwitchCase:
		if f.boolOf(n, PropIsDefault) {
			f.s("default:\n")
		} else {
			f.s("case ")
			if v := f.child(n, PropValue); v != nil {
				f.node(v)
				f.s(":\n")
			}
		}
		for _, act := range f.list(n, PropActions) {
			f.node(act)
		}

	case KindBreakStatement:
		f.s("break")
		if e := f.child(n, PropExpression); e != nil {
			f.s(" ")
			f.node(e)
		}
		f.s(";\n")

	case KindContinueStatement:
		f.s("continue")
		if e := f.child(n, PropExpression); e != nil {
			f.s(" ")
			f.node(e)
		}
		f.s(";\n")

	case KindReturnStatement:
		f.s("return")
		if e := f.child(n, PropExpression); e != nil {
			f.s(" ")
			f.node(e)
		}
		f.s(";\n")

	case KindThrowStatement:
		f.s("throw ")
		f.node(f.mand(n, PropExpression))
		f.s(";\n")

	case KindTryStatement:
		f.s("try ")
		f.node(f.mand(n, PropBody))
		for _, cc := range f.list(n, PropCatchClauses) {
			f.node(cc)
		}
		f.node(f.child(n, PropFinallyClause))

	case KindCatchClause:
		f.s("catch (")
		f.join(f.list(n, PropClassNames), " | ")
		f.s(" ")
		f.node(f.child(n, PropVariable))
		f.s(") ")
		f.node(f.mand(n, PropBody))

	case KindFinallyClause:
		f.s("finally ")
		f.node(f.mand(n, PropBody))

	case KindGlobalStatement:
		f.s("global ")
		f.join(f.list(n, PropVariables), ", ")
		f.s(";\n")

	case KindStaticStatement:
		f.s("static ")
		f.join(f.list(n, PropExpressions), ", ")
		f.s(";\n")

	case KindEchoStatement:
		f.s("echo ")
		f.join(f.list(n, PropExpressions), ", ")
		f.s(";\n")

	case KindGotoLabel:
		f.node(f.mand(n, PropName))
		f.s(":\n")

	case KindGotoStatement:
		f.s("goto ")
		f.node(f.mand(n, PropLabel))
		f.s(";\n")

	case KindEmptyStatement:
		f.s(";\n")

	case KindIdentifier:
		f.s(f.strOf(n, PropName))

	case KindVariable:
		if f.boolOf(n, PropIsDollared) {
			f.s("$")
		}
		f.node(f.mand(n, PropName))

	case KindReflectionVariable:
		f.s("$")
		f.node(f.mand(n, PropName))

	case KindScalar:
		if f.intOf(n, PropScalarType) == ScalarUnknown {
			f.err = &UnflattenableNodeError{Kind: n.kind, Start: n.start, End: n.end}
			return
		}
		f.s(f.strOf(n, PropValue))

	case KindQuote:
		switch f.intOf(n, PropQuoteType) {
		case QuoteDouble:
			f.s("\"")
			f.join(f.list(n, PropExpressions), "")
			f.s("\"")
		case QuoteSingle:
			f.s("'")
			f.join(f.list(n, PropExpressions), "")
			f.s("'")
		case QuoteHeredoc:
			f.s("<<<Heredoc\n")
			f.join(f.list(n, PropExpressions), "")
			f.s("\nHeredoc")
		case QuoteNowdoc:
			f.s("<<<'Nowdoc'\n")
			f.join(f.list(n, PropExpressions), "")
			f.s("\nNowdoc")
		}

	case KindArrayCreation:
		f.s("array(")
		f.join(f.list(n, PropElements), ",")
		f.s(")")

	case KindArrayElement:
		if k := f.child(n, PropKey); k != nil {
			f.node(k)
			f.s("=>")
		}
		f.node(f.mand(n, PropValue))

	case KindArraySpreadElement:
		f.s("...")
		f.node(f.mand(n, PropValue))

	case KindArrayAccess:
		f.node(f.mand(n, PropName))
		if f.intOf(n, PropArrayType) == ArrayAccessHashtable {
			f.s("{")
			f.node(f.child(n, PropIndex))
			f.s("}")
		} else {
			f.s("[")
			f.node(f.child(n, PropIndex))
			f.s("]")
		}

	case KindListVariable:
		f.s("list(")
		f.join(f.list(n, PropVariables), ", ")
		f.s(")")

	case KindAssignment:
		f.node(f.mand(n, PropLeftHandSide))
		f.s(f.strOf(n, PropOperator))
		f.node(f.mand(n, PropRightHandSide))

	case KindInfixExpression:
		f.node(f.mand(n, PropLeftHandSide))
		f.s(" ")
		f.s(f.strOf(n, PropOperator))
		f.s(" ")
		f.node(f.mand(n, PropRightHandSide))

	case KindPrefixExpression:
		f.s(f.strOf(n, PropOperator))
		f.node(f.mand(n, PropVariable))

	case KindPostfixExpression:
		f.node(f.mand(n, PropVariable))
		f.s(f.strOf(n, PropOperator))

	case KindUnaryOperation:
		f.s(f.strOf(n, PropOperator))
		f.node(f.mand(n, PropExpression))

	case KindConditionalExpression:
		f.node(f.mand(n, PropCondition))
		switch f.intOf(n, PropOperatorType) {
		case ConditionalTernary:
			f.s(" ? ")
			f.node(f.child(n, PropTrueStatement))
			f.s(" : ")
			f.node(f.child(n, PropFalseStatement))
		case ConditionalCoalesce:
			f.s(" ?? ")
			f.node(f.child(n, PropTrueStatement))
		}

	case KindCastExpression:
		f.s("(")
		f.s(CastString(f.intOf(n, PropCastingType)))
		f.s(")")
		f.node(f.mand(n, PropExpression))

	case KindCloneExpression:
		f.s("clone ")
		f.node(f.mand(n, PropExpression))

	case KindInstanceOfExpression:
		f.node(f.mand(n, PropExpression))
		f.s(" instanceof ")
		f.node(f.mand(n, PropClassName))

	case KindIgnoreError:
		f.s("@")
		f.node(f.mand(n, PropExpression))

	case KindInclude:
		f.s(IncludeString(f.intOf(n, PropIncludeType)))
		f.s(" (")
		f.node(f.mand(n, PropExpression))
		f.s(")")

	case KindBackTickExpression:
		f.s("`")
		f.join(f.list(n, PropExpressions), "")
		f.s("`")

	case KindParenthesisExpression:
		f.s("(")
		f.node(f.mand(n, PropExpression))
		f.s(")")

	case KindReference:
		f.s("&")
		f.node(f.mand(n, PropExpression))

	case KindFunctionInvocation:
		f.node(f.mand(n, PropFunctionName))
		f.s("(")
		f.join(f.list(n, PropParameters), ",")
		f.s(")")

	case KindFunctionName:
		f.node(f.mand(n, PropName))

	case KindMethodInvocation:
		f.node(f.mand(n, PropDispatcher))
		f.s("->")
		f.node(f.mand(n, PropMethod))

	case KindFieldAccess:
		f.node(f.mand(n, PropDispatcher))
		f.s("->")
		f.node(f.mand(n, PropField))

	case KindStaticMethodInvocation:
		f.node(f.mand(n, PropClassName))
		f.s("::")
		f.node(f.mand(n, PropMethod))

	case KindStaticFieldAccess:
		f.node(f.mand(n, PropClassName))
		f.s("::")
		f.node(f.mand(n, PropField))

	case KindStaticConstantAccess:
		f.node(f.mand(n, PropClassName))
		f.s("::")
		f.node(f.mand(n, PropConstant))

	case KindClassInstanceCreation:
		f.s("new ")
		f.node(f.mand(n, PropClassName))
		f.s("(")
		f.join(f.list(n, PropCtorParams), ",")
		f.s(")")

	case KindClassName:
		f.node(f.mand(n, PropName))

	case KindYieldExpression:
		f.s("yield")
		if e := f.child(n, PropExpression); e != nil {
			f.s(" ")
			f.node(e)
		}

	case KindThrowExpression:
		f.s("throw ")
		f.node(f.mand(n, PropExpression))

	case KindMatchExpression:
		f.s("match (")
		f.node(f.mand(n, PropSubject))
		f.s(") {\n")
		f.join(f.list(n, PropArms), ",\n")
		f.s("\n}")

	case KindMatchArm:
		if f.boolOf(n, PropIsDefault) {
			f.s("default")
		} else {
			f.join(f.list(n, PropConditions), ", ")
		}
		f.s(" => ")
		f.node(f.mand(n, PropValue))

	case KindNamedArg:
		f.s(f.strOf(n, PropName))
		f.s(": ")
		f.node(f.mand(n, PropExpression))

	case KindVariadicPlaceholder:
		f.s("...")

	case KindIntersectionType:
		f.join(f.list(n, PropTypes), "&")

	case KindEmptyExpression:
		// nothing to emit

	case KindComment:
		f.s(commentMarker(f.intOf(n, PropCommentType)))
		f.s("\n")

	case KindASTError, KindInLineHtml:
		f.err = &UnflattenableNodeError{Kind: n.kind, Start: n.start, End: n.end}

	case KindMoveTarget:
		target := f.store.EffectiveValue(n, PropTarget)
		if target == nil {
			if f.err == nil {
				f.err = &IncompleteRewriteError{Kind: n.kind, Prop: PropTarget, Start: n.start, End: n.end}
			}
			return
		}
		f.node(target.(*Node))

	default:
		if f.err == nil {
			f.err = &InvalidStructureError{Msg: "no flatten template for kind " + strconv.Itoa(int(n.kind))}
		}
	}
}

/* ---------- irregular templates ---------- */

// program interleaves php and html regions: open tag before the first php
// statement, close tag before each html run and at end of file. Trailing
// trivia is emitted after the close tag.
func (f *flattener) program(n *Node) {
	inPHP := false
	for _, stmt := range f.list(n, PropStatements) {
		isHTML := stmt.kind == KindInLineHtml
		switch {
		case !isHTML && !inPHP:
			f.s("<?php\n")
			f.node(stmt)
			inPHP = true
		case !isHTML && inPHP:
			f.node(stmt)
			f.s("\n")
		case isHTML && inPHP:
			f.s("?>\n")
			f.node(stmt)
			f.s("\n")
			inPHP = false
		default:
			f.node(stmt)
			f.s("\n")
		}
	}
	if inPHP {
		f.s("?>\n")
	}
	for _, c := range n.tree.comments {
		f.node(c)
	}
}

// block renders either a curly block or an alternative-syntax block whose
// closing keyword depends on which parent slot owns it. A non-curly block
// directly under a namespace declaration has no delimiters at all.
func (f *flattener) block(n *Node) {
	curly := f.boolOf(n, PropIsCurly)
	if !curly && n.parent != nil && n.parent.kind == KindNamespaceDeclaration {
		for _, stmt := range f.list(n, PropStatements) {
			f.node(stmt)
		}
		return
	}
	if curly {
		f.s("{\n")
	} else {
		f.s(":\n")
	}
	for _, stmt := range f.list(n, PropStatements) {
		f.node(stmt)
	}
	if curly {
		f.s("}\n")
		return
	}
	prop, ok := n.LocationInParent()
	if !ok {
		return
	}
	switch {
	case n.parent.kind == KindIfStatement && prop == PropTrueStatement:
		if f.child(n.parent, PropFalseStatement) == nil {
			f.s("endif;\n")
		} else {
			f.s("\n")
		}
	case n.parent.kind == KindIfStatement && prop == PropFalseStatement:
		f.s("endif;\n")
	case n.parent.kind == KindWhileStatement && prop == PropBody:
		f.s("endwhile;\n")
	case n.parent.kind == KindForStatement && prop == PropBody:
		f.s("endfor;\n")
	case n.parent.kind == KindForEachStatement && prop == PropStatement:
		f.s("endforeach;\n")
	case n.parent.kind == KindSwitchStatement && prop == PropBody:
		f.s("endswitch;\n")
	}
}

// attrGroups renders the attribute groups of a declaration, each followed
// by trailer ("\n" on declarations, " " inline on parameters). No-op
// before PHP 8.
func (f *flattener) attrGroups(n *Node, trailer string) {
	if n.tree.version < PHP80 {
		return
	}
	for _, g := range f.list(n, PropAttrGroups) {
		f.node(g)
		f.s(trailer)
	}
}

// commentMarker is the canonical stand-in for comment text, which exists
// only in the original source.
func commentMarker(t int) string {
	switch t {
	case CommentLine:
		return "//"
	case CommentBlock:
		return "/* */"
	case CommentPHPDoc:
		return "/** */"
	default:
		return ""
	}
}
