package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// guessType is C3 (spec.md §4.2): a pure function from an AST node to a
// concrete type, or nil for "no guess". Its only side effects are pushes
// and pops of the methods-being-checked / constants-being-resolved
// stacks, both paired on every return path, and the one-shot errSlot the
// legality check fills when it rejects a type.
func (c *Context) guessType(node ast.Node) typesystem.Type {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.IntegerLiteral:
		return integerWidth(n.Width)
	case *ast.FloatLiteral:
		return floatWidth(n.Width)
	case *ast.CharLiteral:
		return typesystem.Char
	case *ast.BoolLiteral:
		return typesystem.Bool
	case *ast.NilLiteral:
		return typesystem.Nil
	case *ast.StringLiteral:
		return typesystem.String
	case *ast.StringInterpolation:
		return typesystem.String
	case *ast.SymbolLiteral:
		return typesystem.Symbol
	case *ast.RegexLiteral:
		return typesystem.Regex
	case *ast.RangeLiteral:
		b := c.guessType(n.From)
		e := c.guessType(n.To)
		if b == nil || e == nil {
			return nil
		}
		return typesystem.Range{Begin: b, End: e}
	case *ast.ArrayLiteral:
		return c.guessArrayLiteral(n)
	case *ast.HashLiteral:
		return c.guessHashLiteral(n)
	case *ast.TupleLiteral:
		return c.guessTupleLiteral(n)
	case *ast.NamedTupleLiteral:
		return c.guessNamedTupleLiteral(n)
	case *ast.BinaryExpr:
		return typesystem.Merge(c.guessType(n.Left), c.guessType(n.Right))
	case *ast.IfExpr:
		return typesystem.Merge(c.guessBlockValue(n.Then), c.guessBlockValue(n.Else))
	case *ast.CaseExpr:
		return c.guessCase(n)
	case *ast.BoolIntrinsic:
		return typesystem.Bool
	case *ast.SizeOfExpr:
		return typesystem.I32
	case *ast.NopExpr:
		return typesystem.Nil
	case *ast.UninitializedDecl:
		return c.guessDeclaredType(n.Declared)
	case *ast.CastExpr:
		return c.guessCast(n)
	case *ast.Var:
		return c.guessVar(n)
	case *ast.InstanceVar:
		return c.guessInstanceVarRef(n)
	case *ast.Path:
		return c.guessPath(n)
	case *ast.CallExpr:
		return c.guessCall(n)
	case *ast.Expressions:
		return c.guessBlockValue(n.Body)
	default:
		return nil
	}
}

func (c *Context) guessBlockValue(stmts []ast.Node) typesystem.Type {
	if len(stmts) == 0 {
		return nil
	}
	return c.guessType(stmts[len(stmts)-1])
}

func (c *Context) guessCase(n *ast.CaseExpr) typesystem.Type {
	var result typesystem.Type
	for _, w := range n.Whens {
		result = typesystem.Merge(result, c.guessBlockValue(w.Body))
	}
	// Deliberately not widened with Nil when HasElse is false: mirrors the
	// source's treatment of an else-less case as fully covering (spec.md
	// §9 Open Question). Do not "fix".
	return typesystem.Merge(result, c.guessBlockValue(n.Else))
}

func (c *Context) guessDeclaredType(decl ast.Type) typesystem.Type {
	if decl == nil {
		return nil
	}
	t, ok := c.Resolver.LookupType(decl, c.currentScope(), false)
	if !ok {
		return nil
	}
	return c.checkLegality(t, decl)
}

func (c *Context) guessCast(n *ast.CastExpr) typesystem.Type {
	if n.Nilable {
		t, ok := c.Resolver.LookupType(n.Target, c.currentScope(), false)
		if !ok {
			return nil
		}
		checked := c.checkLegality(t, n)
		if checked == nil {
			return nil
		}
		return typesystem.Merge(checked, typesystem.Nil)
	}
	if tof, ok := n.Target.(*ast.TypeOfType); ok && len(tof.Exprs) == 1 {
		return c.guessType(tof.Exprs[0])
	}
	t, ok := c.Resolver.LookupType(n.Target, c.currentScope(), false)
	if !ok {
		return nil
	}
	return c.checkLegality(t, n)
}

// guessVar is §4.2.2.
func (c *Context) guessVar(v *ast.Var) typesystem.Type {
	if v.Name == "self" {
		owner := c.currentOwner()
		if owner.Kind == typesystem.KindConcreteClass {
			return typesystem.Class{Name: owner.Name, Kind: owner.Kind, Params: owner.TypeParams}.Virtualized()
		}
		return nil
	}
	for _, p := range c.currentParams {
		if p.Name != v.Name {
			continue
		}
		if p.Restriction != nil {
			t, ok := c.Resolver.LookupType(p.Restriction, c.currentScope(), false)
			if !ok {
				return nil
			}
			return c.checkLegality(t, v)
		}
		return c.guessType(p.Default)
	}
	if bp := c.currentBlockParam; bp != nil && bp.Name == v.Name {
		if bp.Restriction != nil {
			t, ok := c.Resolver.LookupType(bp.Restriction, c.currentScope(), false)
			if !ok {
				return nil
			}
			return c.checkLegality(t, v)
		}
		return typesystem.Proc{Return: typesystem.Void}
	}
	return nil
}

// guessInstanceVarRef is §4.2.3.
func (c *Context) guessInstanceVarRef(iv *ast.InstanceVar) typesystem.Type {
	owner := c.currentOwner().Name
	if decl, ok := c.explicitFor(owner, iv.Name); ok {
		t, ok := c.Resolver.LookupType(decl.Declared, c.currentScope(), false)
		if !ok {
			return nil
		}
		return c.checkLegality(t, iv)
	}
	if info, ok := c.Result.GuessedInstanceVars[owner][iv.Name]; ok && len(info.TypeVars) > 0 {
		if first := info.TypeVars[0]; first.IsResolved() {
			return first.Resolved
		}
	}
	return nil
}

// guessPath is §4.2.4.
func (c *Context) guessPath(p *ast.Path) typesystem.Type {
	if c.Resolver.IsTypeReference(p) {
		t, ok := c.resolveTypeRefPath(p)
		if !ok {
			return nil
		}
		return typesystem.Metaclass{Of: t}
	}
	cst, ok := c.Resolver.LookupConstant(p)
	if !ok {
		return nil
	}
	if cst.HasEnum {
		return cst.EnumType
	}
	key := pathKeyString(p)
	for _, onStack := range c.constantsBeingResolved {
		if onStack == key {
			return nil
		}
	}
	c.constantsBeingResolved = append(c.constantsBeingResolved, key)
	result := c.guessType(cst.Value)
	c.constantsBeingResolved = c.constantsBeingResolved[:len(c.constantsBeingResolved)-1]
	return result
}

func integerWidth(width string) typesystem.Type {
	switch width {
	case "Int8":
		return typesystem.I8
	case "Int16":
		return typesystem.I16
	case "Int64":
		return typesystem.I64
	case "UInt8":
		return typesystem.U8
	case "UInt16":
		return typesystem.U16
	case "UInt32":
		return typesystem.U32
	case "UInt64":
		return typesystem.U64
	default:
		return typesystem.I32
	}
}

func floatWidth(width string) typesystem.Type {
	if width == "Float32" {
		return typesystem.F32
	}
	return typesystem.F64
}

func pathKeyString(p *ast.Path) string {
	s := ""
	for i, n := range p.Names {
		if i > 0 {
			s += "::"
		}
		s += n
	}
	return s
}

// resolveTypeRefPath resolves a Path used as a bare type reference (e.g.
// the `C` in `C {x, y}`, or a constant path known to denote a type) by
// building a synthetic NamedType and routing it through the same
// annotation-resolution oracle every other type lookup uses.
func (c *Context) resolveTypeRefPath(p *ast.Path) (typesystem.Type, bool) {
	nt := &ast.NamedType{Token: p.Token, Name: pathKeyString(p)}
	return c.Resolver.LookupType(nt, c.currentScope(), false)
}

// resolveAsType resolves node to the type it denotes when used as a
// receiver that must be a type rather than a value (spec.md §4.2.1 rules
// 1-4): a bare Path, or any other node whose guessed value is a Metaclass
// or a Class outright (e.g. a GenericTypeRef instantiation).
func (c *Context) resolveAsType(node ast.Node) (typesystem.Type, bool) {
	switch v := node.(type) {
	case *ast.Path:
		return c.resolveTypeRefPath(v)
	case *ast.GenericTypeRef:
		base, ok := v.Base.(*ast.Path)
		if !ok {
			return nil, false
		}
		nt := &ast.NamedType{Token: v.Token, Name: pathKeyString(base), Args: v.Args}
		return c.Resolver.LookupType(nt, c.currentScope(), false)
	}
	t := c.guessType(node)
	if t == nil {
		return nil, false
	}
	if mc, ok := t.(typesystem.Metaclass); ok {
		return mc.Of, true
	}
	if cl, ok := t.(typesystem.Class); ok {
		return cl, true
	}
	return nil, false
}

func ownerNameOf(t typesystem.Type) (string, bool) {
	switch v := t.(type) {
	case typesystem.Class:
		return v.Name, true
	case typesystem.Metaclass:
		return ownerNameOf(v.Of)
	}
	return "", false
}
