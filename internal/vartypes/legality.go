package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/diagnostics"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// checkLegality is C7 (spec.md §4.5): after every resolution of a name to
// a type, reject abstract roots and uninstantiated generics (recording a
// one-shot error via errSlot), virtualize concrete classes, and pass
// anything else through unchanged.
func (c *Context) checkLegality(t typesystem.Type, node ast.Node) typesystem.Type {
	if t == nil {
		return nil
	}
	cl, ok := t.(typesystem.Class)
	if !ok {
		return t
	}
	if c.Policy.IsAbstractRoot(cl.Name) {
		c.recordLegalityError(node, cl.String())
		return nil
	}
	if cl.IsUninstantiatedGeneric() {
		c.recordLegalityError(node, cl.String())
		return nil
	}
	if cl.Kind == typesystem.KindConcreteClass {
		return cl.Virtualized()
	}
	return cl
}

func (c *Context) recordLegalityError(node ast.Node, offending string) {
	if c.errSlot != nil {
		return
	}
	c.errSlot = &Error{
		Node:          node,
		OffendingType: offending,
		Diagnostic:    diagnostics.NewDisallowedVariableType(node.GetToken(), offending),
	}
}
