package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// guessArrayLiteral handles the three forms spec.md §4.2 "Array literal
// details" distinguishes.
func (c *Context) guessArrayLiteral(n *ast.ArrayLiteral) typesystem.Type {
	if n.Constructor != nil {
		t, ok := c.resolveAsType(n.Constructor)
		if !ok {
			return nil
		}
		if cl, isClass := t.(typesystem.Class); isClass && cl.Kind.IsGeneric() {
			elem := c.guessElements(n.Elements)
			if elem == nil {
				return nil
			}
			cl.Args = []typesystem.Type{elem}
			return c.checkLegality(cl, n)
		}
		return c.checkLegality(t, n)
	}
	if n.Of != nil {
		t, ok := c.Resolver.LookupType(n.Of, c.currentScope(), false)
		if !ok {
			return nil
		}
		checked := c.checkLegality(t, n)
		if checked == nil {
			return nil
		}
		return typesystem.Array{Elem: checked}
	}
	elem := c.guessElements(n.Elements)
	if elem == nil {
		return nil
	}
	return typesystem.Array{Elem: elem}
}

func (c *Context) guessElements(elems []ast.Node) typesystem.Type {
	var merged typesystem.Type
	anyGuessed := false
	for _, e := range elems {
		t := c.guessType(e)
		if t != nil {
			anyGuessed = true
		}
		merged = typesystem.Merge(merged, t)
	}
	if !anyGuessed {
		return nil
	}
	return merged
}

func (c *Context) guessHashLiteral(n *ast.HashLiteral) typesystem.Type {
	if n.OfKey != nil && n.OfValue != nil {
		k, ok1 := c.Resolver.LookupType(n.OfKey, c.currentScope(), false)
		v, ok2 := c.Resolver.LookupType(n.OfValue, c.currentScope(), false)
		if !ok1 || !ok2 {
			return nil
		}
		kc := c.checkLegality(k, n)
		vc := c.checkLegality(v, n)
		if kc == nil || vc == nil {
			return nil
		}
		return typesystem.Hash{Key: kc, Value: vc}
	}
	keys := make([]ast.Node, len(n.Pairs))
	vals := make([]ast.Node, len(n.Pairs))
	for i, p := range n.Pairs {
		keys[i] = p.Key
		vals[i] = p.Value
	}
	kMerged := c.guessElements(keys)
	vMerged := c.guessElements(vals)
	if kMerged == nil || vMerged == nil {
		return nil
	}
	return typesystem.Hash{Key: kMerged, Value: vMerged}
}

// guessTupleLiteral and guessNamedTupleLiteral are all-or-nothing: a
// single unguessable element drops the whole tuple (spec.md §4.2).
func (c *Context) guessTupleLiteral(n *ast.TupleLiteral) typesystem.Type {
	elems := make([]typesystem.Type, len(n.Elements))
	for i, e := range n.Elements {
		t := c.guessType(e)
		if t == nil {
			return nil
		}
		elems[i] = t
	}
	return typesystem.Tuple{Elems: elems}
}

func (c *Context) guessNamedTupleLiteral(n *ast.NamedTupleLiteral) typesystem.Type {
	types := make([]typesystem.Type, len(n.Values))
	for i, v := range n.Values {
		t := c.guessType(v)
		if t == nil {
			return nil
		}
		types[i] = t
	}
	return typesystem.NamedTuple{Names: append([]string(nil), n.Names...), Types: types}
}
