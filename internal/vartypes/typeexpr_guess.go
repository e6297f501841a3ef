package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// guessTypeVars is C4 (spec.md §4.3): the generic-owner variant of
// guessType. Results stay as syntactic type-expression elements so a
// later instantiation can re-resolve them in the proper scope. Rules
// mirror C3 case by case except where §4.3 calls out a difference.
func (c *Context) guessTypeVars(node ast.Node) []typesystem.TypeExprElem {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.RangeLiteral, *ast.TupleLiteral, *ast.NamedTupleLiteral, *ast.Path, *ast.CastExpr:
		return c.fallbackToC3(node)
	case *ast.ArrayLiteral:
		return c.guessArrayLiteralTypeVars(n)
	case *ast.HashLiteral:
		return c.guessHashLiteralTypeVars(n)
	case *ast.BinaryExpr:
		return append(c.guessTypeVars(n.Left), c.guessTypeVars(n.Right)...)
	case *ast.IfExpr:
		return append(c.guessTypeVarsBlock(n.Then), c.guessTypeVarsBlock(n.Else)...)
	case *ast.CaseExpr:
		var out []typesystem.TypeExprElem
		for _, w := range n.Whens {
			out = append(out, c.guessTypeVarsBlock(w.Body)...)
		}
		return append(out, c.guessTypeVarsBlock(n.Else)...)
	case *ast.Expressions:
		return c.guessTypeVarsBlock(n.Body)
	case *ast.Var:
		return c.guessVarTypeVars(n)
	case *ast.InstanceVar:
		return c.guessInstanceVarTypeVars(n)
	case *ast.CallExpr:
		return c.guessCallTypeVars(n)
	case *ast.UninitializedDecl:
		if n.Declared == nil {
			return nil
		}
		return []typesystem.TypeExprElem{typesystem.UnresolvedElem(n.Declared)}
	default:
		return c.fallbackToC3(node)
	}
}

func (c *Context) fallbackToC3(node ast.Node) []typesystem.TypeExprElem {
	if t := c.guessType(node); t != nil {
		return []typesystem.TypeExprElem{typesystem.ResolvedElem(t)}
	}
	return nil
}

func (c *Context) guessTypeVarsBlock(stmts []ast.Node) []typesystem.TypeExprElem {
	var out []typesystem.TypeExprElem
	for _, s := range stmts {
		out = append(out, c.guessTypeVars(s)...)
	}
	return out
}

func (c *Context) guessArrayLiteralTypeVars(n *ast.ArrayLiteral) []typesystem.TypeExprElem {
	if n.Of != nil {
		app := typesystem.GenericApp{Name: "Array", Args: []typesystem.TypeExprElem{typesystem.UnresolvedElem(n.Of)}}
		return []typesystem.TypeExprElem{typesystem.UnresolvedElem(app)}
	}
	if n.Constructor != nil {
		t, ok := c.resolveAsType(n.Constructor)
		if !ok {
			return nil
		}
		if cl, isClass := t.(typesystem.Class); isClass && cl.IsUninstantiatedGeneric() {
			var args []typesystem.TypeExprElem
			for _, e := range n.Elements {
				args = append(args, c.guessTypeVars(e)...)
			}
			if len(args) == 0 {
				return nil
			}
			app := typesystem.GenericApp{Name: cl.Name, Args: args}
			return []typesystem.TypeExprElem{typesystem.UnresolvedElem(app)}
		}
		return c.fallbackToC3(n)
	}
	return c.fallbackToC3(n)
}

func (c *Context) guessHashLiteralTypeVars(n *ast.HashLiteral) []typesystem.TypeExprElem {
	if n.OfKey != nil || n.OfValue != nil {
		app := typesystem.GenericApp{Name: "Hash", Args: []typesystem.TypeExprElem{
			typesystem.UnresolvedElem(n.OfKey),
			typesystem.UnresolvedElem(n.OfValue),
		}}
		return []typesystem.TypeExprElem{typesystem.UnresolvedElem(app)}
	}
	return c.fallbackToC3(n)
}

// guessVarTypeVars is §4.3 "Var / block-arg": return the restriction node
// itself, unresolved, while still running a resolution attempt so the
// legality check can fire as a side effect.
func (c *Context) guessVarTypeVars(v *ast.Var) []typesystem.TypeExprElem {
	if v.Name == "self" {
		return c.fallbackToC3(v)
	}
	for _, p := range c.currentParams {
		if p.Name != v.Name {
			continue
		}
		if p.Restriction != nil {
			if t, ok := c.Resolver.LookupType(p.Restriction, c.currentScope(), false); ok {
				c.checkLegality(t, v)
			}
			return []typesystem.TypeExprElem{typesystem.UnresolvedElem(p.Restriction)}
		}
		return c.guessTypeVars(p.Default)
	}
	if bp := c.currentBlockParam; bp != nil && bp.Name == v.Name {
		if bp.Restriction != nil {
			if t, ok := c.Resolver.LookupType(bp.Restriction, c.currentScope(), false); ok {
				c.checkLegality(t, v)
			}
			return []typesystem.TypeExprElem{typesystem.UnresolvedElem(bp.Restriction)}
		}
		return []typesystem.TypeExprElem{typesystem.ResolvedElem(typesystem.Proc{Return: typesystem.Void})}
	}
	return nil
}

// guessInstanceVarTypeVars is §4.3's InstanceVar case: the explicit
// declaration's type expression if present, else the full previously
// recorded expression list.
func (c *Context) guessInstanceVarTypeVars(iv *ast.InstanceVar) []typesystem.TypeExprElem {
	owner := c.currentOwner().Name
	if decl, ok := c.explicitFor(owner, iv.Name); ok {
		return []typesystem.TypeExprElem{typesystem.UnresolvedElem(decl.Declared)}
	}
	if info, ok := c.Result.GuessedInstanceVars[owner][iv.Name]; ok {
		out := make([]typesystem.TypeExprElem, len(info.TypeVars))
		copy(out, info.TypeVars)
		return out
	}
	return nil
}

// guessCallTypeVars is §4.3's `T.new` override; every other call shape
// falls back to C3.
func (c *Context) guessCallTypeVars(call *ast.CallExpr) []typesystem.TypeExprElem {
	if call.Name == "new" && call.Receiver != nil {
		t, ok := c.resolveAsType(call.Receiver)
		if !ok {
			return nil
		}
		if cl, isClass := t.(typesystem.Class); isClass && cl.IsUninstantiatedGeneric() {
			return nil
		}
		return c.fallbackToC3(call)
	}
	return c.fallbackToC3(call)
}
