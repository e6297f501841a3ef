package vartypes

import (
	"testing"

	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/config"
	"github.com/wethu/ivarguess/internal/symbols"
	"github.com/wethu/ivarguess/internal/typesystem"
)

func newTestContext(table *symbols.SymbolTable) *Context {
	if table == nil {
		table = symbols.New()
	}
	return newContext(table, config.DefaultLegalityPolicy(), nil)
}

func TestContainsSelfDetectsEscape(t *testing.T) {
	if ContainsSelf(&ast.IntegerLiteral{}) {
		t.Errorf("a plain literal should not contain self")
	}
	if !ContainsSelf(&ast.Var{Name: "self"}) {
		t.Errorf("a bare self reference should be detected")
	}
	call := &ast.CallExpr{Name: "foo", Args: []ast.Arg{{Value: &ast.Var{Name: "self"}}}}
	if !ContainsSelf(call) {
		t.Errorf("self passed as an argument should be detected")
	}
}

func TestContainsSelfClassCallException(t *testing.T) {
	call := &ast.CallExpr{Receiver: &ast.Var{Name: "self"}, Name: "class"}
	if ContainsSelf(call) {
		t.Errorf("self.class should not count as an escape")
	}
	// But a receiver of self with any other method name does escape.
	other := &ast.CallExpr{Receiver: &ast.Var{Name: "self"}, Name: "freeze"}
	if !ContainsSelf(other) {
		t.Errorf("self.freeze should count as an escape")
	}
}

func TestGatherReturnsStopsAtNestedDef(t *testing.T) {
	body := []ast.Node{
		&ast.ReturnStmt{Value: &ast.IntegerLiteral{}},
		&ast.Def{Name: "inner", Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.StringLiteral{}},
		}},
		&ast.ReturnStmt{},
	}
	returns := GatherReturns(body)
	if len(returns) != 2 {
		t.Fatalf("got %d returns, want 2 (nested def's return must not be gathered)", len(returns))
	}
	if returns[1] != nil {
		t.Errorf("bare `return` should gather as a nil placeholder")
	}
}

func TestGuessArrayLiteralBareMergesElements(t *testing.T) {
	c := newTestContext(nil)
	n := &ast.ArrayLiteral{Elements: []ast.Node{&ast.IntegerLiteral{}, &ast.StringLiteral{}}}
	got := c.guessType(n)
	arr, ok := got.(typesystem.Array)
	if !ok {
		t.Fatalf("guessType(array literal) = %T, want Array", got)
	}
	want := typesystem.Merge(typesystem.I32, typesystem.String)
	if arr.Elem.String() != want.String() {
		t.Errorf("Array elem = %s, want %s", arr.Elem, want)
	}
}

func TestGuessArrayLiteralOfClause(t *testing.T) {
	c := newTestContext(nil)
	n := &ast.ArrayLiteral{Of: &ast.NamedType{Name: "String"}}
	got := c.guessType(n)
	arr, ok := got.(typesystem.Array)
	if !ok || !arr.Elem.Equal(typesystem.String) {
		t.Errorf("guessType([of String]) = %v, want Array(String)", got)
	}
}

func TestGuessTupleLiteralAllOrNothing(t *testing.T) {
	c := newTestContext(nil)
	good := &ast.TupleLiteral{Elements: []ast.Node{&ast.IntegerLiteral{}, &ast.StringLiteral{}}}
	if got := c.guessType(good); got == nil {
		t.Errorf("fully guessable tuple should not guess to none")
	}

	// An element that can't be guessed (a bare local var outside a
	// param/block-arg list) drops the whole tuple.
	bad := &ast.TupleLiteral{Elements: []ast.Node{&ast.IntegerLiteral{}, &ast.Var{Name: "unknown"}}}
	if got := c.guessType(bad); got != nil {
		t.Errorf("guessType(bad tuple) = %v, want none", got)
	}
}

func TestGuessVarSelfUnderConcreteOwner(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "C", Kind: typesystem.KindConcreteClass})
	c := newTestContext(table)
	c.owners = append(c.owners, ownerFrame{Name: "C", Kind: typesystem.KindConcreteClass})

	got := c.guessType(&ast.Var{Name: "self"})
	cl, ok := got.(typesystem.Class)
	if !ok || cl.Name != "C" || !cl.IsVirtual {
		t.Errorf("guessType(self) under concrete owner C = %v, want virtual Class{C}", got)
	}
}

func TestGuessVarSelfUnderGenericOwnerIsNone(t *testing.T) {
	c := newTestContext(nil)
	c.owners = append(c.owners, ownerFrame{Name: "G", Kind: typesystem.KindGenericClass, TypeParams: []string{"T"}})

	if got := c.guessType(&ast.Var{Name: "self"}); got != nil {
		t.Errorf("guessType(self) under a generic owner = %v, want none", got)
	}
}

func TestGuessCastAsTypeofSingleExprRecurses(t *testing.T) {
	c := newTestContext(nil)
	n := &ast.CastExpr{
		Operand: &ast.IntegerLiteral{},
		Target:  &ast.TypeOfType{Exprs: []ast.Node{&ast.StringLiteral{}}},
	}
	got := c.guessType(n)
	if got == nil || !got.Equal(typesystem.String) {
		t.Errorf("as(typeof(single-expr)) = %v, want the recursed guess (String)", got)
	}
}

func TestCheckLegalityRejectsAbstractRoot(t *testing.T) {
	c := newTestContext(nil)
	t_ := typesystem.Class{Name: "Object", Kind: typesystem.KindConcreteClass}
	node := &ast.InstanceVar{Name: "x"}
	if got := c.checkLegality(t_, node); got != nil {
		t.Errorf("checkLegality(Object) = %v, want nil", got)
	}
	if c.errSlot == nil || c.errSlot.OffendingType != "Object" {
		t.Errorf("errSlot = %+v, want an Object-offending error", c.errSlot)
	}
}

func TestCheckLegalityVirtualizesConcreteClass(t *testing.T) {
	c := newTestContext(nil)
	in := typesystem.Class{Name: "Animal", Kind: typesystem.KindConcreteClass}
	got := c.checkLegality(in, &ast.InstanceVar{Name: "x"})
	cl, ok := got.(typesystem.Class)
	if !ok || !cl.IsVirtual {
		t.Errorf("checkLegality(concrete class) = %v, want virtualized", got)
	}
	if c.errSlot != nil {
		t.Errorf("errSlot should stay nil for a legal type")
	}
}
