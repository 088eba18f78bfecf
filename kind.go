// kind.go — the closed set of AST node kinds.
//
// Every node carries exactly one NodeKind tag. The set is closed on purpose:
// traversal, cloning, matching and flattening are single generic algorithms
// that switch over this tag (or, more often, over the registry row it selects
// in property.go), so adding a kind is a compile-time-visible, single-site
// change here plus one registry entry.
//
// KindMoveTarget is the one deliberately irregular member: a minimally
// constructed placeholder standing in for a subtree relocated by a rewrite.
// It has no valid span and references its payload without owning it; see
// rewrite.go.
package pdt

// NodeKind is the tag distinguishing one AST variant from another.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Structure.
	KindProgram
	KindBlock
	KindNamespaceDeclaration
	KindNamespaceName
	KindUseStatement
	KindUseStatementPart
	KindDeclareStatement

	// Declarations.
	KindClassDeclaration
	KindInterfaceDeclaration
	KindTraitDeclaration
	KindEnumDeclaration
	KindEnumCase
	KindFunctionDeclaration
	KindLambdaFunctionDeclaration
	KindArrowFunctionDeclaration
	KindMethodDeclaration
	KindFormalParameter
	KindFieldsDeclaration
	KindSingleFieldDeclaration
	KindConstantDeclaration
	KindAttributeGroup
	KindAttribute

	// Statements.
	KindExpressionStatement
	KindIfStatement
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindForEachStatement
	KindSwitchStatement
	KindSwitchCase
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindFinallyClause
	KindGlobalStatement
	KindStaticStatement
	KindEchoStatement
	KindGotoLabel
	KindGotoStatement
	KindEmptyStatement

	// Expressions.
	KindIdentifier
	KindVariable
	KindReflectionVariable
	KindScalar
	KindQuote
	KindArrayCreation
	KindArrayElement
	KindArraySpreadElement
	KindArrayAccess
	KindListVariable
	KindAssignment
	KindInfixExpression
	KindPrefixExpression
	KindPostfixExpression
	KindUnaryOperation
	KindConditionalExpression
	KindCastExpression
	KindCloneExpression
	KindInstanceOfExpression
	KindIgnoreError
	KindInclude
	KindBackTickExpression
	KindParenthesisExpression
	KindReference
	KindFunctionInvocation
	KindFunctionName
	KindMethodInvocation
	KindFieldAccess
	KindStaticMethodInvocation
	KindStaticFieldAccess
	KindStaticConstantAccess
	KindClassInstanceCreation
	KindClassName
	KindYieldExpression
	KindThrowExpression
	KindMatchExpression
	KindMatchArm
	KindNamedArg
	KindVariadicPlaceholder
	KindIntersectionType
	KindEmptyExpression

	// Terminal / source-defined.
	KindASTError
	KindInLineHtml
	KindComment

	// Rewrite placeholder.
	KindMoveTarget

	kindCount
)

// MinVersion returns the first PHPVersion in which the kind exists.
func (k NodeKind) MinVersion() PHPVersion {
	switch k {
	case KindArrowFunctionDeclaration:
		return PHP74
	case KindMatchExpression, KindMatchArm, KindNamedArg,
		KindAttributeGroup, KindAttribute,
		KindThrowExpression, KindVariadicPlaceholder:
		return PHP80
	case KindEnumDeclaration, KindEnumCase, KindIntersectionType:
		return PHP81
	default:
		return PHP5
	}
}

var kindNames = map[NodeKind]string{
	KindProgram:                   "Program",
	KindBlock:                     "Block",
	KindNamespaceDeclaration:      "NamespaceDeclaration",
	KindNamespaceName:             "NamespaceName",
	KindUseStatement:              "UseStatement",
	KindUseStatementPart:          "UseStatementPart",
	KindDeclareStatement:          "DeclareStatement",
	KindClassDeclaration:          "ClassDeclaration",
	KindInterfaceDeclaration:      "InterfaceDeclaration",
	KindTraitDeclaration:          "TraitDeclaration",
	KindEnumDeclaration:           "EnumDeclaration",
	KindEnumCase:                  "EnumCase",
	KindFunctionDeclaration:       "FunctionDeclaration",
	KindLambdaFunctionDeclaration: "LambdaFunctionDeclaration",
	KindArrowFunctionDeclaration:  "ArrowFunctionDeclaration",
	KindMethodDeclaration:         "MethodDeclaration",
	KindFormalParameter:           "FormalParameter",
	KindFieldsDeclaration:         "FieldsDeclaration",
	KindSingleFieldDeclaration:    "SingleFieldDeclaration",
	KindConstantDeclaration:       "ConstantDeclaration",
	KindAttributeGroup:            "AttributeGroup",
	KindAttribute:                 "Attribute",
	KindExpressionStatement:       "ExpressionStatement",
	KindIfStatement:               "IfStatement",
	KindWhileStatement:            "WhileStatement",
	KindDoStatement:               "DoStatement",
	KindForStatement:              "ForStatement",
	KindForEachStatement:          "ForEachStatement",
	KindSwitchStatement:           "SwitchStatement",
	KindSwitchCase:                "SwitchCase",
	KindBreakStatement:            "BreakStatement",
	KindContinueStatement:         "ContinueStatement",
	KindReturnStatement:           "ReturnStatement",
	KindThrowStatement:            "ThrowStatement",
	KindTryStatement:              "TryStatement",
	KindCatchClause:               "CatchClause",
	KindFinallyClause:             "FinallyClause",
	KindGlobalStatement:           "GlobalStatement",
	KindStaticStatement:           "StaticStatement",
	KindEchoStatement:             "EchoStatement",
	KindGotoLabel:                 "GotoLabel",
	KindGotoStatement:             "GotoStatement",
	KindEmptyStatement:            "EmptyStatement",
	KindIdentifier:                "Identifier",
	KindVariable:                  "Variable",
	KindReflectionVariable:        "ReflectionVariable",
	KindScalar:                    "Scalar",
	KindQuote:                     "Quote",
	KindArrayCreation:             "ArrayCreation",
	KindArrayElement:              "ArrayElement",
	KindArraySpreadElement:        "ArraySpreadElement",
	KindArrayAccess:               "ArrayAccess",
	KindListVariable:              "ListVariable",
	KindAssignment:                "Assignment",
	KindInfixExpression:           "InfixExpression",
	KindPrefixExpression:          "PrefixExpression",
	KindPostfixExpression:         "PostfixExpression",
	KindUnaryOperation:            "UnaryOperation",
	KindConditionalExpression:     "ConditionalExpression",
	KindCastExpression:            "CastExpression",
	KindCloneExpression:           "CloneExpression",
	KindInstanceOfExpression:      "InstanceOfExpression",
	KindIgnoreError:               "IgnoreError",
	KindInclude:                   "Include",
	KindBackTickExpression:        "BackTickExpression",
	KindParenthesisExpression:     "ParenthesisExpression",
	KindReference:                 "Reference",
	KindFunctionInvocation:        "FunctionInvocation",
	KindFunctionName:              "FunctionName",
	KindMethodInvocation:          "MethodInvocation",
	KindFieldAccess:               "FieldAccess",
	KindStaticMethodInvocation:    "StaticMethodInvocation",
	KindStaticFieldAccess:         "StaticFieldAccess",
	KindStaticConstantAccess:      "StaticConstantAccess",
	KindClassInstanceCreation:     "ClassInstanceCreation",
	KindClassName:                 "ClassName",
	KindYieldExpression:           "YieldExpression",
	KindThrowExpression:           "ThrowExpression",
	KindMatchExpression:           "MatchExpression",
	KindMatchArm:                  "MatchArm",
	KindNamedArg:                  "NamedArg",
	KindVariadicPlaceholder:       "VariadicPlaceholder",
	KindIntersectionType:          "IntersectionType",
	KindEmptyExpression:           "EmptyExpression",
	KindASTError:                  "ASTError",
	KindInLineHtml:                "InLineHtml",
	KindComment:                   "Comment",
	KindMoveTarget:                "MoveTarget",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "InvalidKind"
}
