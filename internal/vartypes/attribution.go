package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/diagnostics"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// visit is C5's top-level dispatch (spec.md §4.1), driving a pre-order
// traversal that recurses into every node shape that could nest an
// assignment, so none are missed.
func (c *Context) visit(node ast.Node) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.OwnerDef:
		return c.visitOwnerDef(n)
	case *ast.Def:
		return c.visitDef(n)
	case *ast.AssignExpr:
		return c.visitAssign(n.Target, n.Value, n)
	case *ast.MultiAssignExpr:
		return c.visitMultiAssign(n)
	case *ast.UninitializedDecl:
		return c.visitUninitializedDeclLike(n.Target, n.Declared, n)
	case *ast.TypeDeclaration:
		if n.Value != nil {
			return c.visitAssign(n.Target, n.Value, n)
		}
		return c.visitUninitializedDeclLike(n.Target, n.Declared, n)
	case *ast.MacroLikeNode:
		if c.outsideDef {
			return c.visit(n.Body)
		}
		return nil
	case *ast.CallExpr:
		return c.visitCall(n)
	case *ast.Var:
		if n.Name == "self" {
			c.foundSelf = true
		}
		return nil
	case *ast.Expressions:
		return c.visitStatements(n.Body)
	case *ast.IfExpr:
		if err := c.visit(n.Cond); err != nil {
			return err
		}
		if err := c.visitStatements(n.Then); err != nil {
			return err
		}
		return c.visitStatements(n.Else)
	case *ast.CaseExpr:
		if n.Subject != nil {
			if err := c.visit(n.Subject); err != nil {
				return err
			}
		}
		for _, w := range n.Whens {
			for _, cnd := range w.Conds {
				if err := c.visit(cnd); err != nil {
					return err
				}
			}
			if err := c.visitStatements(w.Body); err != nil {
				return err
			}
		}
		return c.visitStatements(n.Else)
	case *ast.BinaryExpr:
		if err := c.visit(n.Left); err != nil {
			return err
		}
		return c.visit(n.Right)
	case *ast.ReturnStmt:
		return c.visit(n.Value)
	default:
		return nil
	}
}

func (c *Context) visitStatements(stmts []ast.Node) error {
	for _, s := range stmts {
		if err := c.visit(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) visitOwnerDef(n *ast.OwnerDef) error {
	restore := c.pushOwner(n)
	err := c.visitStatements(n.Body)
	restore()
	return err
}

func (c *Context) visitDef(def *ast.Def) error {
	if def.Shadowed {
		return nil
	}
	restore := c.enterMethod(def)
	err := c.visitStatements(def.Body)
	restore()
	return err
}

// visitAssign is §4.1.1.
func (c *Context) visitAssign(target, value ast.Node, site ast.Node) error {
	if ContainsSelf(value) {
		c.foundSelf = true
	}
	c.errSlot = nil

	var hardErr error
	switch t := target.(type) {
	case *ast.GlobalVar:
		c.assignGlobal(t, value)
	case *ast.ClassVar:
		c.assignClassVar(t, value)
	case *ast.InstanceVar:
		hardErr = c.assignInstanceVar(t, value)
	case *ast.Path:
		// constants have their own typing rules; nothing to do here.
	default:
		return c.visit(value)
	}
	if hardErr != nil {
		return hardErr
	}

	if c.errSlot != nil {
		c.recordAssignError(target)
		c.errSlot = nil
	}
	return nil
}

func (c *Context) recordAssignError(target ast.Node) {
	switch t := target.(type) {
	case *ast.GlobalVar:
		c.Result.recordError("", t.Name, c.errSlot)
	case *ast.ClassVar:
		c.Result.recordError(c.classVarOwnerName(), t.Name, c.errSlot)
	case *ast.InstanceVar:
		c.Result.recordError(c.currentOwner().Name, t.Name, c.errSlot)
	}
}

func (c *Context) assignGlobal(g *ast.GlobalVar, value ast.Node) {
	if _, ok := c.Resolver.AlreadyTypedGlobal(g.Name); ok {
		return
	}
	if t := c.guessType(value); t != nil {
		c.addTypeInfo(c.Result.Globals, g.Name, t, g)
	}
}

func (c *Context) assignClassVar(cv *ast.ClassVar, value ast.Node) {
	owner := c.classVarOwnerName()
	if _, ok := c.Resolver.AlreadyTypedClassVar(owner, cv.Name); ok {
		return
	}
	if t := c.guessType(value); t != nil {
		c.addTypeInfo(c.Result.classVarBucket(owner), cv.Name, t, cv)
	}
}

func (c *Context) addTypeInfo(bucket map[string]*TypeInfo, name string, t typesystem.Type, node ast.Node) {
	existing, ok := bucket[name]
	if !ok {
		bucket[name] = &TypeInfo{Type: t, FirstLocation: node.GetToken(), OutsideDef: c.outsideDef}
		return
	}
	existing.Type = typesystem.Merge(existing.Type, t)
	if c.outsideDef {
		existing.OutsideDef = true
	}
}

// assignInstanceVar is §4.1.1's instance-var branch plus steps 4-5.
func (c *Context) assignInstanceVar(iv *ast.InstanceVar, value ast.Node) error {
	owner := c.currentOwner()
	switch {
	case owner.IsTopLevel:
		return nil
	case owner.Kind.ForbidsInstanceVars():
		return diagnostics.NewForbiddenInstanceVar(iv.Token, owner.Name)
	case owner.Kind.IsGeneric():
		c.assignGenericInstanceVar(owner.Name, iv, value)
	default:
		c.assignConcreteInstanceVar(owner.Name, iv, value)
	}
	c.addToCurrentInit(iv.Name)
	return nil
}

func (c *Context) addToCurrentInit(name string) {
	if c.currentInit != nil && !c.foundSelf {
		c.currentInit.addVar(name)
	}
}

func (c *Context) assignConcreteInstanceVar(owner string, iv *ast.InstanceVar, value ast.Node) {
	if c.outsideDef {
		c.Result.markOutside(owner, iv.Name)
	}
	if _, explicit := c.explicitFor(owner, iv.Name); explicit {
		_ = c.visit(value)
		return
	}
	if t := c.guessType(value); t != nil {
		c.addInstanceVarTypeInfo(owner, iv.Name, typesystem.ResolvedElem(t), iv)
	}
}

func (c *Context) assignGenericInstanceVar(owner string, iv *ast.InstanceVar, value ast.Node) {
	if c.outsideDef {
		c.Result.markOutside(owner, iv.Name)
	}
	if _, explicit := c.explicitFor(owner, iv.Name); explicit {
		_ = c.visit(value)
		return
	}
	for _, e := range c.guessTypeVars(value) {
		c.addInstanceVarTypeInfo(owner, iv.Name, e, iv)
	}
}

func (c *Context) addInstanceVarTypeInfo(owner, name string, elem typesystem.TypeExprElem, node ast.Node) {
	bucket := c.Result.instanceVarBucket(owner)
	info, ok := bucket[name]
	if !ok {
		bucket[name] = &InstanceVarTypeInfo{
			Location:   node.GetToken(),
			TypeVars:   []typesystem.TypeExprElem{elem},
			OutsideDef: c.outsideDef,
		}
		return
	}
	info.TypeVars = append(info.TypeVars, elem)
	if c.outsideDef {
		info.OutsideDef = true
	}
}

// visitUninitializedDeclLike handles both UninitializedDecl and a
// value-less TypeDeclaration (spec.md §4.1: "treat as an instance-variable
// assignment whose guessed type is the declared type").
func (c *Context) visitUninitializedDeclLike(target ast.Node, declared ast.Type, site ast.Node) error {
	iv, ok := target.(*ast.InstanceVar)
	if !ok {
		return nil
	}
	c.errSlot = nil
	owner := c.currentOwner()
	if owner.IsTopLevel {
		return nil
	}
	if owner.Kind.ForbidsInstanceVars() {
		return diagnostics.NewForbiddenInstanceVar(iv.Token, owner.Name)
	}

	if c.outsideDef {
		c.Result.markOutside(owner.Name, iv.Name)
	}
	if _, explicit := c.explicitFor(owner.Name, iv.Name); !explicit {
		if owner.Kind.IsGeneric() {
			if declared != nil {
				c.addInstanceVarTypeInfo(owner.Name, iv.Name, typesystem.UnresolvedElem(declared), site)
			}
		} else if declared != nil {
			t, ok := c.Resolver.LookupType(declared, c.currentScope(), false)
			if ok {
				if checked := c.checkLegality(t, site); checked != nil {
					c.addInstanceVarTypeInfo(owner.Name, iv.Name, typesystem.ResolvedElem(checked), site)
				}
			}
		}
	}

	if c.errSlot != nil {
		c.Result.recordError(owner.Name, iv.Name, c.errSlot)
		c.errSlot = nil
	}
	c.addToCurrentInit(iv.Name)
	return nil
}

// visitMultiAssign is §4.1.1's "Multi-assign rule".
func (c *Context) visitMultiAssign(n *ast.MultiAssignExpr) error {
	for _, v := range n.Values {
		if ContainsSelf(v) {
			c.foundSelf = true
		}
	}

	if len(n.Targets) == len(n.Values) {
		for i := range n.Targets {
			if err := c.visitAssign(n.Targets[i], n.Values[i], n); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range n.Targets {
		if iv, ok := t.(*ast.InstanceVar); ok {
			c.addToCurrentInit(iv.Name)
		}
	}
	if len(n.Values) == 1 {
		if tup, ok := c.guessType(n.Values[0]).(typesystem.Tuple); ok && len(tup.Elems) >= len(n.Targets) {
			for i, target := range n.Targets {
				c.assignDistributedElement(target, tup.Elems[i])
			}
		}
	}
	return nil
}

func (c *Context) assignDistributedElement(target ast.Node, elemType typesystem.Type) {
	iv, ok := target.(*ast.InstanceVar)
	if !ok {
		return
	}
	owner := c.currentOwner()
	if owner.IsTopLevel || owner.Kind.ForbidsInstanceVars() {
		return
	}
	if _, explicit := c.explicitFor(owner.Name, iv.Name); explicit {
		return
	}
	if _, already := c.Result.GuessedInstanceVars[owner.Name][iv.Name]; already {
		return
	}
	c.addInstanceVarTypeInfo(owner.Name, iv.Name, typesystem.ResolvedElem(elemType), iv)
	if c.outsideDef {
		c.Result.markOutside(owner.Name, iv.Name)
	}
}

// visitCall is §4.1's Call rule plus §4.1.2.
func (c *Context) visitCall(call *ast.CallExpr) error {
	if !c.outsideDef {
		c.tryForeignOutParams(call)
		return c.visitCallChildren(call)
	}
	// Outside a method body: the pass sets the call's resolution scope
	// (program vs. current owner's metaclass — c.currentScope() already
	// carries that) and attempts macro expansion; the expansion, if any,
	// is re-visited in place of the call's own children (spec.md §4.1).
	if expansion, ok := c.Resolver.ExpandMacro(call, c.currentScope()); ok {
		return c.visit(expansion)
	}
	return c.visitCallChildren(call)
}

func (c *Context) visitCallChildren(call *ast.CallExpr) error {
	if call.Receiver != nil {
		if err := c.visit(call.Receiver); err != nil {
			return err
		}
	}
	for _, a := range call.Args {
		if err := c.visit(a.Value); err != nil {
			return err
		}
	}
	if call.HasBlock {
		return c.visitStatements(call.BlockBody)
	}
	return nil
}

// tryForeignOutParams is §4.1.2. An out argument is matched to its
// parameter's element type by the argument's Name only (the key of
// ForeignFunc.OutElemTypes); a positional out argument, whose Name is
// empty, matches only an entry registered under the empty name.
func (c *Context) tryForeignOutParams(call *ast.CallExpr) {
	if call.Receiver == nil {
		return
	}
	for _, a := range call.Args {
		if !a.Out {
			continue
		}
		iv, ok := a.Value.(*ast.InstanceVar)
		if !ok {
			continue
		}
		fn, ok := c.Resolver.ForeignFunction(call.Receiver, call.Name)
		if !ok {
			continue
		}
		elemType, ok := fn.OutElemTypes[a.Name]
		if !ok {
			continue
		}
		c.attributeForeignOut(iv, elemType, call)
	}
}

func (c *Context) attributeForeignOut(iv *ast.InstanceVar, t typesystem.Type, site ast.Node) {
	owner := c.currentOwner()
	if owner.IsTopLevel || owner.Kind.ForbidsInstanceVars() {
		return
	}
	if _, explicit := c.explicitFor(owner.Name, iv.Name); explicit {
		return
	}
	checked := c.checkLegality(t, site)
	if checked == nil {
		return
	}
	c.addInstanceVarTypeInfo(owner.Name, iv.Name, typesystem.ResolvedElem(checked), iv)
	if c.outsideDef {
		c.Result.markOutside(owner.Name, iv.Name)
	}
	c.addToCurrentInit(iv.Name)
}
