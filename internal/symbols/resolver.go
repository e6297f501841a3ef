// Package symbols defines the contract the guessing pass uses to ask
// "what type does this path/annotation denote in this scope?" (spec.md
// §6 EXTERNAL INTERFACES: "A name-resolution oracle"). The real resolver
// is a whole semantic-analysis subsystem and is explicitly out of scope
// (spec.md §1); this package only pins down the interface funvibe-funxy's
// internal/symbols.SymbolTable plays an analogous role for — a lookup
// surface the analyzer consults without owning — plus a small in-memory
// implementation for tests and the demo CLI.
package symbols

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// Scope identifies where a lookup happens: at the top-level program, or
// on a given owner's metaclass (spec.md §4.1: "the pass sets the call's
// resolution scope (program vs. current owner's metaclass)").
type Scope struct {
	IsProgram  bool
	OwnerName  string
	TypeParams []string // the enclosing generic owner's type parameter names, if any
}

// Constant is what LookupConstant returns for a constant path: its
// (already-expanded) value expression, plus the enum type it is known to
// carry if the constant has already been typed as an enum member
// (spec.md §4.2.4).
type Constant struct {
	Value    ast.Node
	EnumType typesystem.Type // non-nil if already resolved as an enum member
	HasEnum  bool
}

// ForeignFunc is the declared signature of a foreign-library function
// (spec.md §4.1.2, §4.2.1 rule 5).
type ForeignFunc struct {
	ReturnType    typesystem.Type
	HasReturn     bool
	OutElemTypes  map[string]typesystem.Type // param name -> pointed-to element type, for `out` params
}

// Resolver is the name-resolution oracle the spec treats as external.
// Every method may legitimately fail to resolve (returns ok == false);
// the guesser always treats that as "no guess", never as an error
// (spec.md §7: "Resolver failures ... return none and do not fail the
// pass").
type Resolver interface {
	// LookupType resolves a type-annotation node to a concrete type. A
	// bare reference to one of scope.TypeParams resolves to a rigid type
	// variable marker rather than failing, so that call sites under a
	// generic owner can still run the legality check on it.
	LookupType(t ast.Type, scope Scope, allowTypeof bool) (typesystem.Type, bool)

	// LookupConstant resolves a constant path to its bound value.
	LookupConstant(path *ast.Path) (Constant, bool)

	// IsTypeReference reports whether path denotes a type (as opposed to
	// a constant value) in the current scope (spec.md §4.2.4).
	IsTypeReference(path *ast.Path) bool

	// Candidates returns every method definition on ownerName's metaclass
	// whose block-presence and argument count match the call site
	// (spec.md §4.2.5).
	Candidates(ownerName, method string, argCount int, hasBlock bool) []*ast.Def

	// ForeignFunction resolves receiver.name to a foreign-library
	// function's declared signature, if receiver denotes a foreign
	// library descriptor (spec.md §4.1.2, §4.2.1 rule 5).
	ForeignFunction(receiver ast.Node, name string) (ForeignFunc, bool)

	// ForeignVariable resolves receiver.name to an external variable's
	// declared type (spec.md §4.2.1 rule 5).
	ForeignVariable(receiver ast.Node, name string) (typesystem.Type, bool)

	// IsPointerType reports whether node is a bare reference to the
	// Pointer type constructor (spec.md §4.2.1 rules 3-4).
	IsPointerType(node ast.Node) bool

	// AlreadyTypedGlobal implements the "symbol table already has this
	// global typed" short-circuit of spec.md §4.1.1 step 3.
	AlreadyTypedGlobal(name string) (typesystem.Type, bool)

	// AlreadyTypedClassVar is the class-variable analogue of
	// AlreadyTypedGlobal.
	AlreadyTypedClassVar(owner, name string) (typesystem.Type, bool)

	// ExpandMacro attempts macro expansion of call in scope (spec.md
	// §4.1's Call rule: "outside a method body ... attempts macro
	// expansion; the expansion (if any) is re-visited"). Most calls are
	// not macro invocations, so ok is false far more often than true.
	ExpandMacro(call *ast.CallExpr, scope Scope) (ast.Node, bool)
}
