// Package vartypes implements the variable-type guessing pass: the
// recursive expression-type guesser (C3/C4) and the instance-variable
// attribution engine (C5) built on top of it, per spec.md. It is the
// analogue of funvibe-funxy's internal/analyzer, split the same way the
// teacher splits its analyzer package into one file per concern
// (declarations_*.go, inference_*.go, helpers*.go) rather than one
// monolithic visitor.
package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/diagnostics"
	"github.com/wethu/ivarguess/internal/token"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// TypeInfo is the per-(name) record for a global or class variable
// (spec.md §3: "TypeInfo (for globals/class vars)").
type TypeInfo struct {
	Type          typesystem.Type
	FirstLocation token.Token
	OutsideDef    bool
}

// InstanceVarTypeInfo is the per-(owner,name) record for a guessed
// instance variable (spec.md §3: "InstanceVarTypeInfo").
type InstanceVarTypeInfo struct {
	Location   token.Token
	TypeVars   []typesystem.TypeExprElem // append-only multiset
	OutsideDef bool
}

// InitializeInfo records which instance variables a single
// `initialize`-style definition assigns before any `self` escape
// (spec.md §3 "Initialize infos", GLOSSARY "Definite initializer").
type InitializeInfo struct {
	Def          *ast.Def
	InstanceVars []string // insertion order preserved
}

// Error is the record kept in the Errors bucket: the node at which a
// forbidden type surfaced, and that type's rendering (spec.md §3
// "Error").
type Error struct {
	Node          ast.Node
	OffendingType string
	Diagnostic    *diagnostics.DiagnosticError
}

// orderedStringSet preserves first-sighting order while deduplicating,
// backing instance_vars_outside (spec.md §3 invariants call for stable,
// order-preserving membership). InitializeInfo.InstanceVars keeps the
// same ordering and dedup in a plain slice via InitializeInfo.addVar.
type orderedStringSet struct {
	order []string
	seen  map[string]bool
}

func newOrderedStringSet() *orderedStringSet {
	return &orderedStringSet{seen: make(map[string]bool)}
}

func (s *orderedStringSet) Add(name string) {
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

func (s *orderedStringSet) Has(name string) bool { return s.seen[name] }

func (s *orderedStringSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Result holds every output bucket of a pass run (spec.md §6 OUTPUTS).
// Buckets are created empty, populated once, and handed back read-only.
type Result struct {
	Globals             map[string]*TypeInfo
	ClassVars           map[string]map[string]*TypeInfo
	GuessedInstanceVars map[string]map[string]*InstanceVarTypeInfo
	InstanceVarsOutside map[string]*orderedStringSet
	InitializeInfos     map[string][]*InitializeInfo
	Errors              map[string]map[string]*Error
}

func newResult() *Result {
	return &Result{
		Globals:             make(map[string]*TypeInfo),
		ClassVars:           make(map[string]map[string]*TypeInfo),
		GuessedInstanceVars: make(map[string]map[string]*InstanceVarTypeInfo),
		InstanceVarsOutside: make(map[string]*orderedStringSet),
		InitializeInfos:     make(map[string][]*InitializeInfo),
		Errors:              make(map[string]map[string]*Error),
	}
}

// InstanceVarsOutsideNames returns the ordered name list for owner, or
// nil if no instance variable of owner was ever assigned outside a def.
func (r *Result) InstanceVarsOutsideNames(owner string) []string {
	set, ok := r.InstanceVarsOutside[owner]
	if !ok {
		return nil
	}
	return set.Slice()
}

func (r *Result) markOutside(owner, name string) {
	if r.InstanceVarsOutside[owner] == nil {
		r.InstanceVarsOutside[owner] = newOrderedStringSet()
	}
	r.InstanceVarsOutside[owner].Add(name)
}

func (r *Result) classVarBucket(owner string) map[string]*TypeInfo {
	if r.ClassVars[owner] == nil {
		r.ClassVars[owner] = make(map[string]*TypeInfo)
	}
	return r.ClassVars[owner]
}

func (r *Result) instanceVarBucket(owner string) map[string]*InstanceVarTypeInfo {
	if r.GuessedInstanceVars[owner] == nil {
		r.GuessedInstanceVars[owner] = make(map[string]*InstanceVarTypeInfo)
	}
	return r.GuessedInstanceVars[owner]
}

// recordError records err for (owner,name) iff no error has been
// recorded for that pair yet (spec.md §3 invariant: "errors[T][n] is set
// at most once; later errors for the same (T,n) are dropped").
func (r *Result) recordError(owner, name string, err *Error) {
	if r.Errors[owner] == nil {
		r.Errors[owner] = make(map[string]*Error)
	}
	if _, exists := r.Errors[owner][name]; exists {
		return
	}
	r.Errors[owner][name] = err
}
