package symbols

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/typesystem"
)

var primitiveNames = map[string]typesystem.Type{
	"Int8":    typesystem.I8,
	"Int16":   typesystem.I16,
	"Int32":   typesystem.I32,
	"Int64":   typesystem.I64,
	"UInt8":   typesystem.U8,
	"UInt16":  typesystem.U16,
	"UInt32":  typesystem.U32,
	"UInt64":  typesystem.U64,
	"Float32": typesystem.F32,
	"Float64": typesystem.F64,
	"Bool":    typesystem.Bool,
	"Char":    typesystem.Char,
	"Nil":     typesystem.Nil,
	"String":  typesystem.String,
	"Symbol":  typesystem.Symbol,
	"Regex":   typesystem.Regex,
	"Void":    typesystem.Void,
}

// LookupType implements Resolver.
func (t *SymbolTable) LookupType(typ ast.Type, scope Scope, allowTypeof bool) (typesystem.Type, bool) {
	switch n := typ.(type) {
	case *ast.TypeOfType:
		if !allowTypeof {
			return nil, false
		}
		// Resolution of typeof(...) requires inference the resolver
		// doesn't perform on the guesser's behalf here; the one case the
		// guesser handles itself is the single-expression form, inline
		// in guess.go's cast rule. Multi-expression typeof is left
		// unresolved (none), same as any other resolver failure.
		return nil, false

	case *ast.NamedType:
		return t.lookupNamed(n, scope)
	}
	return nil, false
}

func (t *SymbolTable) lookupNamed(n *ast.NamedType, scope Scope) (typesystem.Type, bool) {
	for _, p := range scope.TypeParams {
		if p == n.Name {
			return typesystem.TypeParam{Name: n.Name}, true
		}
	}

	if prim, ok := primitiveNames[n.Name]; ok {
		return prim, true
	}

	class, ok := t.Types[n.Name]
	if !ok {
		return nil, false
	}

	if len(n.Args) == 0 {
		return class, true
	}

	args := make([]typesystem.Type, 0, len(n.Args))
	for _, a := range n.Args {
		resolved, ok := t.LookupType(a, scope, false)
		if !ok {
			return nil, false
		}
		args = append(args, resolved)
	}
	class.Args = args
	return class, true
}

// LookupConstant implements Resolver.
func (t *SymbolTable) LookupConstant(path *ast.Path) (Constant, bool) {
	c, ok := t.Constants[pathKey(path)]
	return c, ok
}

// IsTypeReference implements Resolver.
func (t *SymbolTable) IsTypeReference(path *ast.Path) bool {
	key := pathKey(path)
	if t.TypeReferences[key] {
		return true
	}
	_, isType := t.Types[key]
	return isType
}

// Candidates implements Resolver.
func (t *SymbolTable) Candidates(ownerName, method string, argCount int, hasBlock bool) []*ast.Def {
	var result []*ast.Def
	for _, def := range t.Methods[ownerName] {
		if def.Name != method || def.Shadowed {
			continue
		}
		if (def.BlockParam != nil) != hasBlock {
			continue
		}
		if !acceptsArgCount(def, argCount) {
			continue
		}
		result = append(result, def)
	}
	return result
}

func acceptsArgCount(def *ast.Def, argCount int) bool {
	required := 0
	for _, p := range def.Params {
		if p.Default == nil {
			required++
		}
	}
	return argCount >= required && argCount <= len(def.Params)
}

// ForeignFunction implements Resolver.
func (t *SymbolTable) ForeignFunction(receiver ast.Node, name string) (ForeignFunc, bool) {
	lib, ok := foreignLibName(receiver, t)
	if !ok {
		return ForeignFunc{}, false
	}
	sig, ok := t.ForeignFunctions[lib+"."+name]
	return sig, ok
}

// ForeignVariable implements Resolver.
func (t *SymbolTable) ForeignVariable(receiver ast.Node, name string) (typesystem.Type, bool) {
	lib, ok := foreignLibName(receiver, t)
	if !ok {
		return nil, false
	}
	typ, ok := t.ForeignVariables[lib+"."+name]
	return typ, ok
}

func foreignLibName(receiver ast.Node, t *SymbolTable) (string, bool) {
	path, ok := receiver.(*ast.Path)
	if !ok {
		return "", false
	}
	key := pathKey(path)
	if t.ForeignLibraries[key] {
		return key, true
	}
	return "", false
}

// IsPointerType implements Resolver.
func (t *SymbolTable) IsPointerType(node ast.Node) bool {
	path, ok := node.(*ast.Path)
	if !ok {
		return false
	}
	return t.PointerTypeNames[pathKey(path)]
}

// AlreadyTypedGlobal implements Resolver.
func (t *SymbolTable) AlreadyTypedGlobal(name string) (typesystem.Type, bool) {
	typ, ok := t.TypedGlobals[name]
	return typ, ok
}

// AlreadyTypedClassVar implements Resolver.
func (t *SymbolTable) AlreadyTypedClassVar(owner, name string) (typesystem.Type, bool) {
	m, ok := t.TypedClassVars[owner]
	if !ok {
		return nil, false
	}
	typ, ok := m[name]
	return typ, ok
}

// ExpandMacro implements Resolver. Scope is unused by this in-memory
// stand-in (registered expansions are not scope-sensitive), but is part
// of the interface because a real macro expander would need it to decide
// whether the call resolves against the program or the current owner's
// metaclass (spec.md §4.1).
func (t *SymbolTable) ExpandMacro(call *ast.CallExpr, scope Scope) (ast.Node, bool) {
	expansion, ok := t.MacroExpansions[call.Name]
	return expansion, ok
}
