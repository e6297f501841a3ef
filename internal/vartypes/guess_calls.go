package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/symbols"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// guessCall is §4.2.1: first-match-wins priority order over the call's
// shape, except that a two-arg `malloc` whose receiver is not the bare
// Pointer type (rule 4) falls through to rules 5 and 6.
func (c *Context) guessCall(call *ast.CallExpr) typesystem.Type {
	switch {
	case call.Name == "new" && call.Receiver != nil:
		return c.guessNewCall(call)
	case call.Name == "new" && call.Receiver == nil:
		return c.guessUnqualifiedNew(call)
	case isPointerMallocOrNull(call):
		return c.guessPointerMallocOrNull(call)
	case call.Name == "malloc" && call.Receiver != nil && len(call.Args) == 2:
		if t := c.guessPointerMallocTwoArg(call); t != nil {
			return t
		}
	}
	if t, matched := c.guessForeignCall(call); matched {
		return t
	}
	return c.guessMethodAnnotationCall(call)
}

// guessNewCall is rule 1: `T.new` / `T(X).new`.
func (c *Context) guessNewCall(call *ast.CallExpr) typesystem.Type {
	t, ok := c.resolveAsType(call.Receiver)
	if !ok {
		return nil
	}
	if annotated := c.guessFromMethodAnnotation(t, call); annotated != nil {
		return annotated
	}
	return c.checkLegality(t, call)
}

// guessUnqualifiedNew is rule 2: bare `new(...)` inside a concrete or
// primitive owner.
func (c *Context) guessUnqualifiedNew(call *ast.CallExpr) typesystem.Type {
	owner := c.currentOwnerAsType()
	if owner == nil {
		return nil
	}
	if annotated := c.guessFromMethodAnnotation(owner, call); annotated != nil {
		return annotated
	}
	return c.checkLegality(owner, call)
}

func isPointerMallocOrNull(call *ast.CallExpr) bool {
	if call.Name != "malloc" && call.Name != "null" {
		return false
	}
	g, ok := call.Receiver.(*ast.GenericTypeRef)
	if !ok {
		return false
	}
	p, ok := g.Base.(*ast.Path)
	return ok && len(p.Names) == 1 && p.Names[0] == "Pointer"
}

// guessPointerMallocOrNull is rule 3.
func (c *Context) guessPointerMallocOrNull(call *ast.CallExpr) typesystem.Type {
	t, ok := c.resolveAsType(call.Receiver)
	if !ok {
		return nil
	}
	if _, isPointer := t.(typesystem.Pointer); !isPointer {
		return nil
	}
	return t
}

// guessPointerMallocTwoArg is rule 4.
func (c *Context) guessPointerMallocTwoArg(call *ast.CallExpr) typesystem.Type {
	if !c.Resolver.IsPointerType(call.Receiver) {
		return nil
	}
	elem := c.guessType(call.Args[1].Value)
	if elem == nil {
		return nil
	}
	return typesystem.Pointer{Elem: elem}
}

// guessForeignCall is rule 5's value-producing half: resolve a foreign
// function's declared return type, or a foreign external variable's
// declared type. matched reports whether the receiver was a foreign
// descriptor at all, regardless of whether a type was produced.
func (c *Context) guessForeignCall(call *ast.CallExpr) (typesystem.Type, bool) {
	if call.Receiver == nil {
		return nil, false
	}
	if fn, ok := c.Resolver.ForeignFunction(call.Receiver, call.Name); ok {
		if fn.HasReturn {
			return fn.ReturnType, true
		}
		return nil, true
	}
	if t, ok := c.Resolver.ForeignVariable(call.Receiver, call.Name); ok {
		return t, true
	}
	return nil, false
}

// guessMethodAnnotationCall is rule 6: resolve the receiver (or, for an
// unqualified call, the current owner) and defer to §4.2.5.
func (c *Context) guessMethodAnnotationCall(call *ast.CallExpr) typesystem.Type {
	var owner typesystem.Type
	if call.Receiver != nil {
		t, ok := c.resolveAsType(call.Receiver)
		if !ok {
			return nil
		}
		owner = t
	} else {
		owner = c.currentOwnerAsType()
		if owner == nil {
			return nil
		}
	}
	return c.guessFromMethodAnnotation(owner, call)
}

// guessFromMethodAnnotation is §4.2.5.
func (c *Context) guessFromMethodAnnotation(owner typesystem.Type, call *ast.CallExpr) typesystem.Type {
	ownerName, ok := ownerNameOf(owner)
	if !ok {
		return nil
	}
	candidates := c.Resolver.Candidates(ownerName, call.Name, len(call.Args), call.HasBlock)
	if len(candidates) == 0 {
		return nil
	}
	// Zero-arg, blockless `new`: narrow to the first candidate, the
	// deliberate heuristic for picking the most-derived inherited
	// constructor (spec.md §9).
	if call.Name == "new" && len(call.Args) == 0 && !call.HasBlock && len(candidates) > 1 {
		candidates = candidates[:1]
	}

	scope := symbols.Scope{OwnerName: ownerName}
	if allDeclareReturnType(candidates) {
		if t, ok := c.agreeingReturnType(candidates, scope); ok {
			return t
		}
	}
	if len(candidates) != 1 {
		return nil
	}
	return c.inferFromBody(ownerName, candidates[0])
}

func allDeclareReturnType(defs []*ast.Def) bool {
	for _, d := range defs {
		if d.ReturnType == nil {
			return false
		}
	}
	return true
}

func (c *Context) agreeingReturnType(defs []*ast.Def, scope symbols.Scope) (typesystem.Type, bool) {
	var agreed typesystem.Type
	for _, d := range defs {
		t, ok := c.Resolver.LookupType(d.ReturnType, scope, false)
		if !ok {
			return nil, false
		}
		checked := c.checkLegality(t, d.ReturnType)
		if checked == nil {
			return nil, false
		}
		if agreed == nil {
			agreed = checked
		} else if !agreed.Equal(checked) {
			return nil, false
		}
	}
	return agreed, agreed != nil
}

// inferFromBody is §4.2.5 step (c): body inference through a single
// matching candidate, guarded by the methods-being-checked cycle stack.
func (c *Context) inferFromBody(ownerName string, def *ast.Def) typesystem.Type {
	for _, onStack := range c.methodsBeingChecked {
		if onStack == def {
			return nil
		}
	}
	c.methodsBeingChecked = append(c.methodsBeingChecked, def)

	savedParams, savedBlock := c.currentParams, c.currentBlockParam
	c.currentParams = def.Params
	c.currentBlockParam = def.BlockParam

	savedOverride := c.ownerOverride
	c.ownerOverride = &ownerFrame{Name: ownerName, Kind: typesystem.KindConcreteClass}

	returns := GatherReturns(def.Body)
	types := make([]typesystem.Type, 0, len(returns)+1)
	for _, r := range returns {
		if r == nil {
			types = append(types, typesystem.Nil)
		} else {
			types = append(types, c.guessType(r))
		}
	}
	types = append(types, c.guessBlockValue(def.Body))
	merged := typesystem.MergeAll(types...)

	c.ownerOverride = savedOverride
	c.currentParams, c.currentBlockParam = savedParams, savedBlock
	c.methodsBeingChecked = c.methodsBeingChecked[:len(c.methodsBeingChecked)-1]

	return merged
}
