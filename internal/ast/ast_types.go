package ast

import "github.com/wethu/ivarguess/internal/token"

// Type is a type-annotation AST node: syntax that must be resolved via
// the name-resolution oracle before it denotes a typesystem.Type. Kept
// separate from the expression Node hierarchy the way funvibe-funxy's
// ast.Type sits beside ast.Expression. String renders the raw syntax so a
// Type can stand in unresolved as a typesystem.TypeExprNode (spec.md
// §4.3) without ast importing typesystem.
type Type interface {
	Node
	typeNode()
	String() string
}

// NamedType is a simple or parameterized named type, e.g. `Int`, `T`,
// `Array(Int)`.
type NamedType struct {
	Token token.Token
	Name  string
	Args  []Type
}

func (t *NamedType) GetToken() token.Token { return t.Token }
func (t *NamedType) typeNode()             {}

func (t *NamedType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	s := t.Name + "("
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}
