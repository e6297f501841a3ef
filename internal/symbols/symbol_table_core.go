package symbols

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// SymbolTable is a small in-memory Resolver used by tests and the demo
// CLI. A real compiler's symbol table additionally tracks scoping,
// imports, and incremental re-analysis; none of that is this pass's
// concern (spec.md §1), so this type only holds what the guesser's
// external contract (§6) asks a resolver to answer.
type SymbolTable struct {
	// Types maps a bare name to its resolved Class info (kind, type
	// params). Primitive names resolve through the primitiveNames table
	// (symbol_table_resolution.go) first; this map is consulted for
	// class/module/enum names.
	Types map[string]typesystem.Class

	// Constants maps a dotted constant path (joined with "::") to its
	// bound value and, if known, enum type.
	Constants map[string]Constant

	// TypeReferences is the set of dotted paths that denote a type
	// rather than a constant value.
	TypeReferences map[string]bool

	// Methods maps an owner name to its method definitions, in
	// declaration order (Candidates returns matches in this order, which
	// the guesser's "first candidate" tie-break for inherited zero-arg
	// `new` relies on).
	Methods map[string][]*ast.Def

	// ForeignFunctions maps "Lib.fn" to its declared signature.
	ForeignFunctions map[string]ForeignFunc

	// ForeignVariables maps "Lib.var" to its declared type.
	ForeignVariables map[string]typesystem.Type

	// ForeignLibraries is the set of names that denote a foreign-library
	// descriptor (the receiver of a `LibX.fn(...)` call).
	ForeignLibraries map[string]bool

	// PointerTypeNames is the set of names denoting the bare Pointer
	// type constructor.
	PointerTypeNames map[string]bool

	// TypedGlobals / TypedClassVars back AlreadyTypedGlobal /
	// AlreadyTypedClassVar.
	TypedGlobals   map[string]typesystem.Type
	TypedClassVars map[string]map[string]typesystem.Type

	// MacroExpansions maps a bare macro call name to the node its
	// invocation expands to, backing ExpandMacro. Keyed by name only (not
	// by scope or arguments): this in-memory stand-in resolves the same
	// way a top-level macro expanding to a fixed declaration shape would,
	// which is all the fixtures and demo program in this module need.
	MacroExpansions map[string]ast.Node
}

// New returns an empty SymbolTable ready for test/demo registration.
func New() *SymbolTable {
	return &SymbolTable{
		Types:            make(map[string]typesystem.Class),
		Constants:        make(map[string]Constant),
		TypeReferences:   make(map[string]bool),
		Methods:          make(map[string][]*ast.Def),
		ForeignFunctions: make(map[string]ForeignFunc),
		ForeignVariables: make(map[string]typesystem.Type),
		ForeignLibraries: make(map[string]bool),
		PointerTypeNames: make(map[string]bool),
		TypedGlobals:     make(map[string]typesystem.Type),
		TypedClassVars:   make(map[string]map[string]typesystem.Type),
		MacroExpansions:  make(map[string]ast.Node),
	}
}

// RegisterMacroExpansion registers the node that a call to the bare
// macro name expands to.
func (t *SymbolTable) RegisterMacroExpansion(name string, expansion ast.Node) {
	t.MacroExpansions[name] = expansion
}

// RegisterType registers a class/module/enum's resolved Class info under
// its bare name.
func (t *SymbolTable) RegisterType(c typesystem.Class) {
	t.Types[c.Name] = c
}

// RegisterMethod appends def to ownerName's method list.
func (t *SymbolTable) RegisterMethod(ownerName string, def *ast.Def) {
	t.Methods[ownerName] = append(t.Methods[ownerName], def)
}

// RegisterConstant registers path's value and, optionally, its known
// enum type.
func (t *SymbolTable) RegisterConstant(path string, c Constant) {
	t.Constants[path] = c
}

// RegisterForeignLibrary marks name as a foreign-library descriptor.
func (t *SymbolTable) RegisterForeignLibrary(name string) {
	t.ForeignLibraries[name] = true
}

// RegisterForeignFunction registers "Lib.fn"'s declared signature.
func (t *SymbolTable) RegisterForeignFunction(lib, fn string, sig ForeignFunc) {
	t.ForeignFunctions[lib+"."+fn] = sig
}

// RegisterForeignVariable registers "Lib.var"'s declared type.
func (t *SymbolTable) RegisterForeignVariable(lib, v string, typ typesystem.Type) {
	t.ForeignVariables[lib+"."+v] = typ
}

// RegisterPointerType marks name as the bare Pointer type constructor.
func (t *SymbolTable) RegisterPointerType(name string) {
	t.PointerTypeNames[name] = true
}

// SetTypedGlobal seeds the "already typed" globals map used by the
// §4.1.1 step-3 short-circuit.
func (t *SymbolTable) SetTypedGlobal(name string, typ typesystem.Type) {
	t.TypedGlobals[name] = typ
}

// SetTypedClassVar is the class-variable analogue of SetTypedGlobal.
func (t *SymbolTable) SetTypedClassVar(owner, name string, typ typesystem.Type) {
	if t.TypedClassVars[owner] == nil {
		t.TypedClassVars[owner] = make(map[string]typesystem.Type)
	}
	t.TypedClassVars[owner][name] = typ
}

func pathKey(path *ast.Path) string {
	s := ""
	for i, n := range path.Names {
		if i > 0 {
			s += "::"
		}
		s += n
	}
	return s
}
