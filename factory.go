// factory.go — typed constructors for programmatically built nodes.
//
// Tree.NewNode hands out bare placeholders; these constructors produce
// nodes that already satisfy their mandatory-slot obligations, so callers
// assembling replacement subtrees for a rewrite never hold a half-built
// node longer than one call. They cover the kinds rewrites build in
// practice; anything else is a NewNode plus SetChild/SetValue sequence.
//
// All constructors return detached nodes with the invalid span, ready to be
// attached to the tree or recorded in a rewrite store.
package pdt

// put writes a value slot directly; constructors know their types match the
// descriptor so the public SetValue checks would be dead weight here.
func (n *Node) put(p Property, v any) {
	_, i := descriptorOf(n.kind, n.tree.version, p)
	n.slots[i].value = v
}

// NewIdentifier builds an Identifier node carrying name.
func (t *Tree) NewIdentifier(name string) *Node {
	n := t.NewNode(KindIdentifier)
	n.put(PropName, name)
	return n
}

// NewScalar builds a Scalar node from its literal text and category.
func (t *Tree) NewScalar(value string, scalarType int) *Node {
	n := t.NewNode(KindScalar)
	n.put(PropValue, value)
	n.put(PropScalarType, scalarType)
	return n
}

// NewVariable builds a dollared variable $name.
func (t *Tree) NewVariable(name string) (*Node, error) {
	n := t.NewNode(KindVariable)
	n.put(PropIsDollared, true)
	if err := n.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	return n, nil
}

// NewNamespaceName builds a namespace name from its segments.
func (t *Tree) NewNamespaceName(global bool, segments ...string) (*Node, error) {
	n := t.NewNode(KindNamespaceName)
	n.put(PropIsGlobal, global)
	n.put(PropIsCurrent, false)
	segs := n.List(PropSegments)
	for _, s := range segments {
		if err := segs.Append(t.NewIdentifier(s)); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewBlock builds a block of the given delimiter style around stmts.
func (t *Tree) NewBlock(curly bool, stmts ...*Node) (*Node, error) {
	n := t.NewNode(KindBlock)
	n.put(PropIsCurly, curly)
	list := n.List(PropStatements)
	for _, s := range stmts {
		if err := list.Append(s); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewProgram builds a program root around stmts.
func (t *Tree) NewProgram(stmts ...*Node) (*Node, error) {
	n := t.NewNode(KindProgram)
	list := n.List(PropStatements)
	for _, s := range stmts {
		if err := list.Append(s); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewExpressionStatement wraps an expression as a statement.
func (t *Tree) NewExpressionStatement(expr *Node) (*Node, error) {
	n := t.NewNode(KindExpressionStatement)
	if err := n.SetChild(PropExpression, expr); err != nil {
		return nil, err
	}
	return n, nil
}

// NewEchoStatement builds echo e1, e2, ...;
func (t *Tree) NewEchoStatement(exprs ...*Node) (*Node, error) {
	n := t.NewNode(KindEchoStatement)
	list := n.List(PropExpressions)
	for _, e := range exprs {
		if err := list.Append(e); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewReturnStatement builds a return statement; expr may be nil.
func (t *Tree) NewReturnStatement(expr *Node) (*Node, error) {
	n := t.NewNode(KindReturnStatement)
	if expr != nil {
		if err := n.SetChild(PropExpression, expr); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewAssignment builds lhs <op> rhs, where op includes the equals sign
// ("=", "+=", ".=", ...).
func (t *Tree) NewAssignment(lhs *Node, op string, rhs *Node) (*Node, error) {
	n := t.NewNode(KindAssignment)
	n.put(PropOperator, op)
	if err := n.SetChild(PropLeftHandSide, lhs); err != nil {
		return nil, err
	}
	if err := n.SetChild(PropRightHandSide, rhs); err != nil {
		return nil, err
	}
	return n, nil
}

// NewInfixExpression builds lhs <op> rhs.
func (t *Tree) NewInfixExpression(lhs *Node, op string, rhs *Node) (*Node, error) {
	n := t.NewNode(KindInfixExpression)
	n.put(PropOperator, op)
	if err := n.SetChild(PropLeftHandSide, lhs); err != nil {
		return nil, err
	}
	if err := n.SetChild(PropRightHandSide, rhs); err != nil {
		return nil, err
	}
	return n, nil
}

// NewIfStatement builds an if statement; falseStmt may be nil.
func (t *Tree) NewIfStatement(cond, trueStmt, falseStmt *Node) (*Node, error) {
	n := t.NewNode(KindIfStatement)
	if err := n.SetChild(PropCondition, cond); err != nil {
		return nil, err
	}
	if err := n.SetChild(PropTrueStatement, trueStmt); err != nil {
		return nil, err
	}
	if falseStmt != nil {
		if err := n.SetChild(PropFalseStatement, falseStmt); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewWhileStatement builds a while loop.
func (t *Tree) NewWhileStatement(cond, body *Node) (*Node, error) {
	n := t.NewNode(KindWhileStatement)
	if err := n.SetChild(PropCondition, cond); err != nil {
		return nil, err
	}
	if err := n.SetChild(PropBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// NewFunctionInvocation builds name(args...).
func (t *Tree) NewFunctionInvocation(name string, args ...*Node) (*Node, error) {
	fn := t.NewNode(KindFunctionName)
	if err := fn.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	n := t.NewNode(KindFunctionInvocation)
	if err := n.SetChild(PropFunctionName, fn); err != nil {
		return nil, err
	}
	params := n.List(PropParameters)
	for _, a := range args {
		if err := params.Append(a); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewClassDeclaration builds a class declaration. superClass may be nil and
// interfaces may be empty.
func (t *Tree) NewClassDeclaration(modifier int, name string, superClass *Node, interfaces []*Node, body *Node) (*Node, error) {
	n := t.NewNode(KindClassDeclaration)
	n.put(PropModifier, modifier)
	if err := n.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	if superClass != nil {
		if err := n.SetChild(PropSuperClass, superClass); err != nil {
			return nil, err
		}
	}
	ifaces := n.List(PropInterfaces)
	for _, it := range interfaces {
		if err := ifaces.Append(it); err != nil {
			return nil, err
		}
	}
	if err := n.SetChild(PropBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// NewInterfaceDeclaration builds an interface declaration.
func (t *Tree) NewInterfaceDeclaration(name string, extends []*Node, body *Node) (*Node, error) {
	n := t.NewNode(KindInterfaceDeclaration)
	if err := n.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	ifaces := n.List(PropInterfaces)
	for _, it := range extends {
		if err := ifaces.Append(it); err != nil {
			return nil, err
		}
	}
	if err := n.SetChild(PropBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// NewFunctionDeclaration builds a named function. returnType and body may
// be nil (abstract signatures carry no body).
func (t *Tree) NewFunctionDeclaration(name string, params []*Node, returnType, body *Node) (*Node, error) {
	n := t.NewNode(KindFunctionDeclaration)
	n.put(PropIsReference, false)
	if err := n.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	plist := n.List(PropParameters)
	for _, p := range params {
		if err := plist.Append(p); err != nil {
			return nil, err
		}
	}
	if returnType != nil {
		if err := n.SetChild(PropReturnType, returnType); err != nil {
			return nil, err
		}
	}
	if body != nil {
		if err := n.SetChild(PropBody, body); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewFormalParameter builds a parameter; paramType and defaultValue may be
// nil.
func (t *Tree) NewFormalParameter(paramType *Node, name string, defaultValue *Node) (*Node, error) {
	n := t.NewNode(KindFormalParameter)
	n.put(PropIsVariadic, false)
	if t.version >= PHP80 {
		n.put(PropModifier, ModifierNone)
	}
	if paramType != nil {
		if err := n.SetChild(PropParameterType, paramType); err != nil {
			return nil, err
		}
	}
	v, err := t.NewVariable(name)
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(PropParameterName, v); err != nil {
		return nil, err
	}
	if defaultValue != nil {
		if err := n.SetChild(PropDefaultValue, defaultValue); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewEnumDeclaration builds an enum; scalarType may be nil for pure enums.
func (t *Tree) NewEnumDeclaration(name string, scalarType *Node, interfaces []*Node, body *Node) (*Node, error) {
	n := t.NewNode(KindEnumDeclaration)
	if err := n.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	if scalarType != nil {
		if err := n.SetChild(PropScalarType, scalarType); err != nil {
			return nil, err
		}
	}
	ifaces := n.List(PropInterfaces)
	for _, it := range interfaces {
		if err := ifaces.Append(it); err != nil {
			return nil, err
		}
	}
	if err := n.SetChild(PropBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// NewEnumCase builds one enum case; value may be nil for pure enums.
func (t *Tree) NewEnumCase(name string, value *Node) (*Node, error) {
	n := t.NewNode(KindEnumCase)
	if err := n.SetChild(PropName, t.NewIdentifier(name)); err != nil {
		return nil, err
	}
	if value != nil {
		if err := n.SetChild(PropValue, value); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewMatchArm builds one match arm; empty conditions plus isDefault marks
// the default arm.
func (t *Tree) NewMatchArm(conditions []*Node, value *Node, isDefault bool) (*Node, error) {
	n := t.NewNode(KindMatchArm)
	n.put(PropIsDefault, isDefault)
	conds := n.List(PropConditions)
	for _, c := range conditions {
		if err := conds.Append(c); err != nil {
			return nil, err
		}
	}
	if err := n.SetChild(PropValue, value); err != nil {
		return nil, err
	}
	return n, nil
}

// NewMatchExpression builds match (subject) { arms... }.
func (t *Tree) NewMatchExpression(subject *Node, arms ...*Node) (*Node, error) {
	n := t.NewNode(KindMatchExpression)
	if err := n.SetChild(PropSubject, subject); err != nil {
		return nil, err
	}
	alist := n.List(PropArms)
	for _, a := range arms {
		if err := alist.Append(a); err != nil {
			return nil, err
		}
	}
	return n, nil
}
