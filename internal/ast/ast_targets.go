package ast

import "github.com/wethu/ivarguess/internal/token"

// GlobalVar is a `$name` reference, in target or expression position.
type GlobalVar struct {
	Token token.Token
	Name  string
}

func (g *GlobalVar) GetToken() token.Token { return g.Token }

// ClassVar is an `@@name` reference.
type ClassVar struct {
	Token token.Token
	Name  string
}

func (c *ClassVar) GetToken() token.Token { return c.Token }

// InstanceVar is an `@name` reference.
type InstanceVar struct {
	Token token.Token
	Name  string
}

func (i *InstanceVar) GetToken() token.Token { return i.Token }

// Var is a bare local-variable reference, a formal parameter reference,
// or `self` (Var{Name: "self"}).
type Var struct {
	Token token.Token
	Name  string
}

func (v *Var) GetToken() token.Token { return v.Token }

// Path is a constant reference, e.g. `Foo::BAR` or a bare type name used
// as a value (spec.md §4.2.4).
type Path struct {
	Token token.Token
	Names []string // e.g. ["Foo", "BAR"]
}

func (p *Path) GetToken() token.Token { return p.Token }
