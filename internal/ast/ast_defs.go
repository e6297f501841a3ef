package ast

import "github.com/wethu/ivarguess/internal/token"

// OwnerDefKind distinguishes the three syntactic forms that can open a
// new "current owner" scope (spec.md §4.1: "Class / module / enum
// definition").
type OwnerDefKind int

const (
	OwnerClass OwnerDefKind = iota
	OwnerModule
	OwnerEnum
)

// OwnerDef represents a class/module/enum definition. The pass derives
// the owner's kind (concrete or generic, and whether it forbids instance
// variables) from this definition alone — Kind and TypeParams, through
// IsGeneric and ForbidsInstanceVars below — without consulting the name
// resolver.
type OwnerDef struct {
	Token      token.Token
	Kind       OwnerDefKind
	Name       string
	TypeParams []string // non-empty iff the class/module is generic
	Body       []Node
}

func (d *OwnerDef) GetToken() token.Token { return d.Token }

// IsGeneric reports whether this owner is parameterized and not yet
// instantiated — purely syntactic (a non-empty type-parameter list),
// unlike the kind/concreteness questions spec.md routes through the
// resolver for a *reference* to an owner.
func (d *OwnerDef) IsGeneric() bool { return len(d.TypeParams) > 0 }

// ForbidsInstanceVars reports whether this owner's syntactic kind
// disallows instance-variable assignment outright (spec.md §4.1.1 step
// 4). In this language, only enums fall in that bucket: a class or
// module, generic or not, may always carry instance variables.
func (d *OwnerDef) ForbidsInstanceVars() bool { return d.Kind == OwnerEnum }

// Param is one formal parameter of a Def: a name, an optional type
// restriction, and an optional default-value expression (spec.md §4.2.2:
// "use the parameter's type restriction ... otherwise its default-value
// guess").
type Param struct {
	Name        string
	Restriction Type // nil if unrestricted
	Default     Node // nil if no default
}

// Def represents a method definition. PrevDef links to a definition this
// one redefines (spec.md §4.1: "shadowed by a later redefinition that
// does not reach back via a 'previous def' reference" — i.e. a
// redefinition that explicitly chains to the original via `previous_def`
// keeps both live; one that doesn't shadows and supersedes it).
type Def struct {
	Token      token.Token
	Name       string
	Params     []Param
	BlockParam *Param // nil if the method takes no block
	ReturnType Type   // explicit declared return-type annotation, nil if absent
	Body       []Node
	PrevDef    *Def // non-nil if this def explicitly calls through to a previous one
	Shadowed   bool // true if a later redefinition supersedes this one outright
}

func (d *Def) GetToken() token.Token { return d.Token }

// IsInitializer reports whether this Def is the initializer method by
// the language's fixed convention name.
func (d *Def) IsInitializer() bool { return d.Name == "initialize" }
