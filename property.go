// property.go — the structural property descriptor registry.
//
// WHAT THIS MODULE DOES
// =====================
// Every node kind owns a fixed, ordered row of structural properties: plain
// values (flags, operator strings, modifier bitmasks), optional children,
// mandatory children, and child lists. This file is the single source of
// truth for those rows. The node model (node.go) sizes its slot arrays from
// them, the visitor (visitor.go) walks children in their declared order, the
// rewrite store keys pending edits by them, and the flattener reads child
// values through them.
//
// Properties are enum-indexed (Property), not string-keyed: a lookup is a
// slice scan over a short row, and an unknown (kind, property) pairing is a
// programmer error that fails fast.
//
// The declared order of a row is the semantic visit order. For a class
// declaration that is: attribute groups, name, superclass, interfaces, body,
// then the modifier value.
//
// VERSIONING
// ==========
// Rows may grow with the language. A descriptor's Since field names the first
// PHPVersion that carries it (attribute groups appear in 8.0, constructor
// property promotion adds a modifier to formal parameters in 8.0).
// PropertiesFor filters by the requested version and panics on a kind that
// does not exist at that version at all.
package pdt

import "fmt"

/* ---------- property tags ---------- */

// Property names one structural slot. Tags are shared across kinds: PropBody
// on a class declaration and PropBody on a while statement are the same tag
// attached to different rows. Identity of a slot is always (kind, property).
type Property int

const (
	PropInvalid Property = iota

	PropStatements
	PropIsCurly
	PropName
	PropIsBracketed
	PropBody
	PropSegments
	PropIsGlobal
	PropIsCurrent
	PropNamespace
	PropParts
	PropStatementType
	PropAlias
	PropNames
	PropValues
	PropAttrGroups
	PropSuperClass
	PropInterfaces
	PropModifier
	PropScalarType
	PropValue
	PropIsReference
	PropParameters
	PropReturnType
	PropIsStatic
	PropLexicalVars
	PropFunction
	PropParameterType
	PropParameterName
	PropDefaultValue
	PropIsVariadic
	PropFieldsType
	PropFields
	PropInitializers
	PropAttrs
	PropClassName
	PropArgs
	PropExpression
	PropCondition
	PropTrueStatement
	PropFalseStatement
	PropConditions
	PropUpdaters
	PropKey
	PropStatement
	PropActions
	PropIsDefault
	PropCatchClauses
	PropFinallyClause
	PropClassNames
	PropVariable
	PropLabel
	PropIsDollared
	PropQuoteType
	PropElements
	PropIndex
	PropArrayType
	PropVariables
	PropLeftHandSide
	PropOperator
	PropRightHandSide
	PropOperatorType
	PropCastingType
	PropIncludeType
	PropExpressions
	PropFunctionName
	PropDispatcher
	PropMethod
	PropField
	PropConstant
	PropCtorParams
	PropSubject
	PropArms
	PropTypes
	PropCommentType
	PropTarget
)

var propertyNames = map[Property]string{
	PropStatements:     "statements",
	PropIsCurly:        "isCurly",
	PropName:           "name",
	PropIsBracketed:    "isBracketed",
	PropBody:           "body",
	PropSegments:       "segments",
	PropIsGlobal:       "isGlobal",
	PropIsCurrent:      "isCurrent",
	PropNamespace:      "namespace",
	PropParts:          "parts",
	PropStatementType:  "statementType",
	PropAlias:          "alias",
	PropNames:          "names",
	PropValues:         "values",
	PropAttrGroups:     "attrGroups",
	PropSuperClass:     "superClass",
	PropInterfaces:     "interfaces",
	PropModifier:       "modifier",
	PropScalarType:     "scalarType",
	PropValue:          "value",
	PropIsReference:    "isReference",
	PropParameters:     "parameters",
	PropReturnType:     "returnType",
	PropIsStatic:       "isStatic",
	PropLexicalVars:    "lexicalVars",
	PropFunction:       "function",
	PropParameterType:  "parameterType",
	PropParameterName:  "parameterName",
	PropDefaultValue:   "defaultValue",
	PropIsVariadic:     "isVariadic",
	PropFieldsType:     "fieldsType",
	PropFields:         "fields",
	PropInitializers:   "initializers",
	PropAttrs:          "attrs",
	PropClassName:      "className",
	PropArgs:           "args",
	PropExpression:     "expression",
	PropCondition:      "condition",
	PropTrueStatement:  "trueStatement",
	PropFalseStatement: "falseStatement",
	PropConditions:     "conditions",
	PropUpdaters:       "updaters",
	PropKey:            "key",
	PropStatement:      "statement",
	PropActions:        "actions",
	PropIsDefault:      "isDefault",
	PropCatchClauses:   "catchClauses",
	PropFinallyClause:  "finallyClause",
	PropClassNames:     "classNames",
	PropVariable:       "variable",
	PropLabel:          "label",
	PropIsDollared:     "isDollared",
	PropQuoteType:      "quoteType",
	PropElements:       "elements",
	PropIndex:          "index",
	PropArrayType:      "arrayType",
	PropVariables:      "variables",
	PropLeftHandSide:   "leftHandSide",
	PropOperator:       "operator",
	PropRightHandSide:  "rightHandSide",
	PropOperatorType:   "operatorType",
	PropCastingType:    "castingType",
	PropIncludeType:    "includeType",
	PropExpressions:    "expressions",
	PropFunctionName:   "functionName",
	PropDispatcher:     "dispatcher",
	PropMethod:         "method",
	PropField:          "field",
	PropConstant:       "constant",
	PropCtorParams:     "ctorParams",
	PropSubject:        "subject",
	PropArms:           "arms",
	PropTypes:          "types",
	PropCommentType:    "commentType",
	PropTarget:         "target",
}

func (p Property) String() string {
	if s, ok := propertyNames[p]; ok {
		return s
	}
	return "invalidProperty"
}

/* ---------- descriptors ---------- */

// PropertyKind is the cardinality of a structural property.
type PropertyKind int

const (
	// ValueProp holds a plain value (string, int, bool, or a non-owning
	// node reference). No ownership semantics.
	ValueProp PropertyKind = iota
	// OptionalChild holds zero or one owned subtree.
	OptionalChild
	// MandatoryChild holds exactly one owned subtree after construction.
	MandatoryChild
	// ChildList holds an owned, ordered, mutable sequence of subtrees.
	ChildList
)

func (k PropertyKind) String() string {
	switch k {
	case ValueProp:
		return "value"
	case OptionalChild:
		return "optional child"
	case MandatoryChild:
		return "mandatory child"
	case ChildList:
		return "child list"
	default:
		return "?"
	}
}

// ValueType narrows what a ValueProp slot may hold.
type ValueType int

const (
	ValNone ValueType = iota
	ValString
	ValInt
	ValBool
	// ValNode is a non-owning node reference; only MoveTarget uses it.
	ValNode
)

// PropertyDescriptor is the static metadata of one structural property
// on one node kind.
type PropertyDescriptor struct {
	Prop      Property
	Kind      PropertyKind
	ValueType ValueType
	// CycleRisk marks properties through which a descendant could be
	// re-attached as an ancestor; setting them runs the acyclicity check.
	// List insertions run the check regardless of the flag.
	CycleRisk bool
	// Since is the first language version carrying this property.
	Since PHPVersion
}

/* ---------- registry ---------- */

// PropertiesFor returns the ordered descriptor row for a node kind at a
// language version. The returned slice is shared and must not be mutated.
//
// An unknown kind, or a kind that does not exist at the given version,
// is a programmer error and panics.
func PropertiesFor(kind NodeKind, version PHPVersion) []PropertyDescriptor {
	row, ok := shapes[kind]
	if !ok {
		panic(fmt.Sprintf("pdt: no property row for kind %s", kind))
	}
	if version < kind.MinVersion() {
		panic(fmt.Sprintf("pdt: kind %s does not exist at %s", kind, version))
	}
	// Fast path: most rows are version-independent.
	trim := 0
	for _, d := range row {
		if d.Since > version {
			trim++
		}
	}
	if trim == 0 {
		return row
	}
	out := make([]PropertyDescriptor, 0, len(row)-trim)
	for _, d := range row {
		if d.Since <= version {
			out = append(out, d)
		}
	}
	return out
}

// descriptorOf resolves one property on a kind/version, panicking if the
// pairing is unknown (fail fast; this is always a caller defect).
func descriptorOf(kind NodeKind, version PHPVersion, p Property) (PropertyDescriptor, int) {
	row := PropertiesFor(kind, version)
	for i, d := range row {
		if d.Prop == p {
			return d, i
		}
	}
	panic(fmt.Sprintf("pdt: kind %s has no property %q at %s", kind, p, version))
}

func valueProp(p Property, t ValueType) PropertyDescriptor {
	return PropertyDescriptor{Prop: p, Kind: ValueProp, ValueType: t}
}
func optChild(p Property) PropertyDescriptor {
	return PropertyDescriptor{Prop: p, Kind: OptionalChild}
}
func mandChild(p Property) PropertyDescriptor {
	return PropertyDescriptor{Prop: p, Kind: MandatoryChild}
}
func childList(p Property) PropertyDescriptor {
	return PropertyDescriptor{Prop: p, Kind: ChildList}
}
func (d PropertyDescriptor) cycle() PropertyDescriptor {
	d.CycleRisk = true
	return d
}
func (d PropertyDescriptor) since(v PHPVersion) PropertyDescriptor {
	d.Since = v
	return d
}

// shapes is the declarative shape table: one ordered row per kind, in
// semantic visit order.
var shapes = map[NodeKind][]PropertyDescriptor{
	KindProgram: {
		childList(PropStatements).cycle(),
	},
	KindBlock: {
		valueProp(PropIsCurly, ValBool),
		childList(PropStatements).cycle(),
	},
	KindNamespaceDeclaration: {
		optChild(PropName),
		mandChild(PropBody).cycle(),
		valueProp(PropIsBracketed, ValBool),
	},
	KindNamespaceName: {
		childList(PropSegments),
		valueProp(PropIsGlobal, ValBool),
		valueProp(PropIsCurrent, ValBool),
	},
	KindUseStatement: {
		optChild(PropNamespace),
		childList(PropParts),
		valueProp(PropStatementType, ValInt),
	},
	KindUseStatementPart: {
		mandChild(PropName),
		optChild(PropAlias),
		valueProp(PropStatementType, ValInt),
	},
	KindDeclareStatement: {
		childList(PropNames),
		childList(PropValues),
		mandChild(PropBody).cycle(),
	},

	KindClassDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		mandChild(PropName),
		optChild(PropSuperClass),
		childList(PropInterfaces),
		mandChild(PropBody).cycle(),
		valueProp(PropModifier, ValInt),
	},
	KindInterfaceDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		mandChild(PropName),
		childList(PropInterfaces),
		mandChild(PropBody).cycle(),
	},
	KindTraitDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		mandChild(PropName),
		optChild(PropSuperClass),
		mandChild(PropBody).cycle(),
	},
	KindEnumDeclaration: {
		childList(PropAttrGroups),
		mandChild(PropName),
		optChild(PropScalarType),
		childList(PropInterfaces),
		mandChild(PropBody).cycle(),
	},
	KindEnumCase: {
		childList(PropAttrGroups),
		mandChild(PropName),
		optChild(PropValue),
	},
	KindFunctionDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		mandChild(PropName),
		childList(PropParameters),
		optChild(PropReturnType),
		optChild(PropBody).cycle(),
		valueProp(PropIsReference, ValBool),
	},
	KindLambdaFunctionDeclaration: {
		childList(PropParameters),
		childList(PropLexicalVars),
		optChild(PropReturnType),
		optChild(PropBody).cycle(),
		valueProp(PropIsStatic, ValBool),
		valueProp(PropIsReference, ValBool),
	},
	KindArrowFunctionDeclaration: {
		childList(PropParameters),
		optChild(PropReturnType),
		optChild(PropBody).cycle(),
		valueProp(PropIsStatic, ValBool),
		valueProp(PropIsReference, ValBool),
	},
	KindMethodDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		mandChild(PropFunction).cycle(),
		valueProp(PropModifier, ValInt),
	},
	KindFormalParameter: {
		childList(PropAttrGroups).since(PHP80),
		optChild(PropParameterType),
		mandChild(PropParameterName),
		optChild(PropDefaultValue),
		valueProp(PropIsVariadic, ValBool),
		valueProp(PropModifier, ValInt).since(PHP80),
	},
	KindFieldsDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		optChild(PropFieldsType),
		childList(PropFields),
		valueProp(PropModifier, ValInt),
	},
	KindSingleFieldDeclaration: {
		mandChild(PropName),
		optChild(PropValue),
	},
	KindConstantDeclaration: {
		childList(PropAttrGroups).since(PHP80),
		childList(PropNames),
		childList(PropInitializers).cycle(),
		valueProp(PropModifier, ValInt),
	},
	KindAttributeGroup: {
		childList(PropAttrs),
	},
	KindAttribute: {
		mandChild(PropClassName),
		childList(PropArgs).cycle(),
	},

	KindExpressionStatement: {
		mandChild(PropExpression),
	},
	KindIfStatement: {
		mandChild(PropCondition).cycle(),
		mandChild(PropTrueStatement).cycle(),
		optChild(PropFalseStatement).cycle(),
	},
	KindWhileStatement: {
		mandChild(PropCondition).cycle(),
		mandChild(PropBody).cycle(),
	},
	KindDoStatement: {
		mandChild(PropBody).cycle(),
		mandChild(PropCondition).cycle(),
	},
	KindForStatement: {
		childList(PropInitializers).cycle(),
		childList(PropConditions).cycle(),
		childList(PropUpdaters).cycle(),
		mandChild(PropBody).cycle(),
	},
	KindForEachStatement: {
		mandChild(PropExpression).cycle(),
		optChild(PropKey).cycle(),
		mandChild(PropValue).cycle(),
		mandChild(PropStatement).cycle(),
	},
	KindSwitchStatement: {
		mandChild(PropExpression).cycle(),
		mandChild(PropBody).cycle(),
	},
	KindSwitchCase: {
		optChild(PropValue).cycle(),
		childList(PropActions).cycle(),
		valueProp(PropIsDefault, ValBool),
	},
	KindBreakStatement: {
		optChild(PropExpression),
	},
	KindContinueStatement: {
		optChild(PropExpression),
	},
	KindReturnStatement: {
		optChild(PropExpression),
	},
	KindThrowStatement: {
		mandChild(PropExpression),
	},
	KindTryStatement: {
		mandChild(PropBody).cycle(),
		childList(PropCatchClauses).cycle(),
		optChild(PropFinallyClause),
	},
	KindCatchClause: {
		childList(PropClassNames),
		optChild(PropVariable),
		mandChild(PropBody).cycle(),
	},
	KindFinallyClause: {
		mandChild(PropBody).cycle(),
	},
	KindGlobalStatement: {
		childList(PropVariables),
	},
	KindStaticStatement: {
		childList(PropExpressions).cycle(),
	},
	KindEchoStatement: {
		childList(PropExpressions).cycle(),
	},
	KindGotoLabel: {
		mandChild(PropName),
	},
	KindGotoStatement: {
		mandChild(PropLabel),
	},
	KindEmptyStatement: {},

	KindIdentifier: {
		valueProp(PropName, ValString),
	},
	KindVariable: {
		mandChild(PropName),
		valueProp(PropIsDollared, ValBool),
	},
	KindReflectionVariable: {
		mandChild(PropName),
	},
	KindScalar: {
		valueProp(PropValue, ValString),
		valueProp(PropScalarType, ValInt),
	},
	KindQuote: {
		childList(PropExpressions).cycle(),
		valueProp(PropQuoteType, ValInt),
	},
	KindArrayCreation: {
		childList(PropElements).cycle(),
	},
	KindArrayElement: {
		optChild(PropKey),
		mandChild(PropValue),
	},
	KindArraySpreadElement: {
		mandChild(PropValue),
	},
	KindArrayAccess: {
		mandChild(PropName),
		optChild(PropIndex),
		valueProp(PropArrayType, ValInt),
	},
	KindListVariable: {
		childList(PropVariables).cycle(),
	},
	KindAssignment: {
		mandChild(PropLeftHandSide).cycle(),
		mandChild(PropRightHandSide).cycle(),
		valueProp(PropOperator, ValString),
	},
	KindInfixExpression: {
		mandChild(PropLeftHandSide).cycle(),
		mandChild(PropRightHandSide).cycle(),
		valueProp(PropOperator, ValString),
	},
	KindPrefixExpression: {
		mandChild(PropVariable).cycle(),
		valueProp(PropOperator, ValString),
	},
	KindPostfixExpression: {
		mandChild(PropVariable).cycle(),
		valueProp(PropOperator, ValString),
	},
	KindUnaryOperation: {
		mandChild(PropExpression).cycle(),
		valueProp(PropOperator, ValString),
	},
	KindConditionalExpression: {
		mandChild(PropCondition).cycle(),
		optChild(PropTrueStatement).cycle(),
		optChild(PropFalseStatement).cycle(),
		valueProp(PropOperatorType, ValInt),
	},
	KindCastExpression: {
		mandChild(PropExpression).cycle(),
		valueProp(PropCastingType, ValInt),
	},
	KindCloneExpression: {
		mandChild(PropExpression),
	},
	KindInstanceOfExpression: {
		mandChild(PropExpression).cycle(),
		mandChild(PropClassName),
	},
	KindIgnoreError: {
		mandChild(PropExpression),
	},
	KindInclude: {
		mandChild(PropExpression),
		valueProp(PropIncludeType, ValInt),
	},
	KindBackTickExpression: {
		childList(PropExpressions).cycle(),
	},
	KindParenthesisExpression: {
		mandChild(PropExpression).cycle(),
	},
	KindReference: {
		mandChild(PropExpression),
	},
	KindFunctionInvocation: {
		mandChild(PropFunctionName),
		childList(PropParameters).cycle(),
	},
	KindFunctionName: {
		mandChild(PropName),
	},
	KindMethodInvocation: {
		mandChild(PropDispatcher).cycle(),
		mandChild(PropMethod),
	},
	KindFieldAccess: {
		mandChild(PropDispatcher).cycle(),
		mandChild(PropField),
	},
	KindStaticMethodInvocation: {
		mandChild(PropClassName),
		mandChild(PropMethod),
	},
	KindStaticFieldAccess: {
		mandChild(PropClassName),
		mandChild(PropField),
	},
	KindStaticConstantAccess: {
		mandChild(PropClassName),
		mandChild(PropConstant),
	},
	KindClassInstanceCreation: {
		mandChild(PropClassName),
		childList(PropCtorParams).cycle(),
	},
	KindClassName: {
		mandChild(PropName),
	},
	KindYieldExpression: {
		optChild(PropExpression),
	},
	KindThrowExpression: {
		mandChild(PropExpression),
	},
	KindMatchExpression: {
		mandChild(PropSubject).cycle(),
		childList(PropArms).cycle(),
	},
	KindMatchArm: {
		childList(PropConditions).cycle(),
		mandChild(PropValue).cycle(),
		valueProp(PropIsDefault, ValBool),
	},
	KindNamedArg: {
		valueProp(PropName, ValString),
		mandChild(PropExpression),
	},
	KindVariadicPlaceholder: {},
	KindIntersectionType: {
		childList(PropTypes),
	},
	KindEmptyExpression: {},

	KindASTError:   {},
	KindInLineHtml: {},
	KindComment: {
		valueProp(PropCommentType, ValInt),
	},

	KindMoveTarget: {
		valueProp(PropTarget, ValNode),
	},
}
