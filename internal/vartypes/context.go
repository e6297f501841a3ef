package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/config"
	"github.com/wethu/ivarguess/internal/symbols"
	"github.com/wethu/ivarguess/internal/token"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// ExplicitInstanceVar is one entry of the explicit_instance_vars input
// (spec.md §3): a pre-existing declaration that suppresses guessing for
// that (owner,name).
type ExplicitInstanceVar struct {
	Declared ast.Type
	Location token.Token
}

// ownerFrame is the lexically-scoped "current owner" the attribution
// visitor pushes/pops at each class/module/enum boundary (spec.md §4.1,
// §5 "current owner ... saved and restored with lexically scoped
// acquisition").
type ownerFrame struct {
	Name       string
	Kind       typesystem.ClassKind
	TypeParams []string
	IsTopLevel bool
}

// Context is the single structure packaging every piece of mutable
// visitor state spec.md §9 calls out ("package as a single context
// structure owned by the pass; push/pop saves via scoped acquisition at
// each scope boundary"), plus the shared Resolver/policy/output buckets
// C3/C4/C5 all read and write through.
type Context struct {
	Resolver symbols.Resolver
	Policy   *config.LegalityPolicy
	Explicit map[string]map[string]ExplicitInstanceVar
	Result   *Result

	owners []ownerFrame

	outsideDef  bool
	foundSelf   bool
	currentInit *InitializeInfo

	currentParams     []ast.Param
	currentBlockParam *ast.Param

	// ownerOverride implements guess_type's method-body-inference "swap
	// the lookup owner" step (spec.md §4.2.5c) without disturbing the
	// real owners stack traversal state lives on.
	ownerOverride *ownerFrame

	methodsBeingChecked    []*ast.Def // LIFO cycle-break stack, spec.md §4.2.5c / §5
	constantsBeingResolved []string   // LIFO cycle-break stack, spec.md §4.2.4 / §5

	// errSlot is the one-shot per-assignment out-parameter spec.md §7
	// describes: set by the legality check, drained at the end of the
	// assignment step, never threaded as a field visible across sites.
	errSlot *Error
}

func newContext(resolver symbols.Resolver, policy *config.LegalityPolicy, explicit map[string]map[string]ExplicitInstanceVar) *Context {
	if explicit == nil {
		explicit = make(map[string]map[string]ExplicitInstanceVar)
	}
	return &Context{
		Resolver: resolver,
		Policy:   policy,
		Explicit: explicit,
		Result:   newResult(),
		owners: []ownerFrame{{
			Name:       "<program>",
			Kind:       typesystem.KindTopLevel,
			IsTopLevel: true,
		}},
		outsideDef: true,
	}
}

func (c *Context) currentOwner() ownerFrame {
	if c.ownerOverride != nil {
		return *c.ownerOverride
	}
	return c.owners[len(c.owners)-1]
}

// classVarOwnerName resolves the class-var owner by climbing enclosing
// types (spec.md §3): in this traversal the nearest pushed owner frame
// already is that climb, since nested class/module bodies push and pop
// in lexical order.
func (c *Context) classVarOwnerName() string {
	return c.currentOwner().Name
}

func (c *Context) currentScope() symbols.Scope {
	o := c.currentOwner()
	return symbols.Scope{IsProgram: o.IsTopLevel, OwnerName: o.Name, TypeParams: o.TypeParams}
}

// currentOwnerAsType returns the current owner as a Class, or nil if the
// owner is the top-level program or a generic (not-yet-instantiated)
// class/module — the precondition spec.md §4.2.1 rule 2 and §4.2.5b
// place on unqualified `new(...)` / self-call resolution.
func (c *Context) currentOwnerAsType() typesystem.Type {
	o := c.currentOwner()
	if o.IsTopLevel || o.Kind.IsGeneric() {
		return nil
	}
	return typesystem.Class{Name: o.Name, Kind: o.Kind, Params: o.TypeParams}
}

func (c *Context) explicitFor(owner, name string) (ExplicitInstanceVar, bool) {
	m, ok := c.Explicit[owner]
	if !ok {
		return ExplicitInstanceVar{}, false
	}
	d, ok := m[name]
	return d, ok
}

func (c *Context) pushOwner(def *ast.OwnerDef) func() {
	frame := ownerFrame{Name: def.Name, Kind: ownerKindFor(def), TypeParams: append([]string(nil), def.TypeParams...)}
	c.Result.ensureInitBucket(frame.Name)
	c.owners = append(c.owners, frame)
	savedOutside := c.outsideDef
	c.outsideDef = true
	return func() {
		c.outsideDef = savedOutside
		c.owners = c.owners[:len(c.owners)-1]
	}
}

func ownerKindFor(n *ast.OwnerDef) typesystem.ClassKind {
	if n.ForbidsInstanceVars() {
		return typesystem.KindForbidden
	}
	if n.Kind == ast.OwnerModule {
		if n.IsGeneric() {
			return typesystem.KindGenericModule
		}
		return typesystem.KindConcreteModule
	}
	if n.IsGeneric() {
		return typesystem.KindGenericClass
	}
	return typesystem.KindConcreteClass
}

// enterMethod implements the Def rule of spec.md §4.1: clear found-self,
// record args/block arg, allocate an InitializeInfo if warranted, and
// return a restore closure that pushes the finished InitializeInfo (if
// any) and restores the saved state — the scoped-acquisition pattern
// spec.md §9 calls for.
func (c *Context) enterMethod(def *ast.Def) func() {
	savedOutside := c.outsideDef
	savedFoundSelf := c.foundSelf
	savedInit := c.currentInit
	savedParams := c.currentParams
	savedBlock := c.currentBlockParam

	c.outsideDef = false
	c.foundSelf = false
	c.currentParams = def.Params
	c.currentBlockParam = def.BlockParam

	var newInit *InitializeInfo
	if def.IsInitializer() && !c.currentOwner().IsTopLevel {
		newInit = &InitializeInfo{Def: def}
	}
	c.currentInit = newInit

	return func() {
		if newInit != nil {
			owner := c.currentOwner().Name
			c.Result.InitializeInfos[owner] = append(c.Result.InitializeInfos[owner], newInit)
		}
		c.outsideDef = savedOutside
		c.foundSelf = savedFoundSelf
		c.currentInit = savedInit
		c.currentParams = savedParams
		c.currentBlockParam = savedBlock
	}
}

// addVar records name into an InitializeInfo's definite-assignment list,
// insertion order preserved, deduplicated.
func (info *InitializeInfo) addVar(name string) {
	for _, n := range info.InstanceVars {
		if n == name {
			return
		}
	}
	info.InstanceVars = append(info.InstanceVars, name)
}

func (r *Result) ensureInitBucket(owner string) {
	if _, ok := r.InitializeInfos[owner]; !ok {
		r.InitializeInfos[owner] = []*InitializeInfo{}
	}
}
