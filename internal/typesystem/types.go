// Package typesystem models the resolved types and type formers the
// guessing pass produces and merges. It plays the role that
// funvibe-funxy's internal/typesystem plays for its Hindley-Milner
// inferencer: a closed set of Type implementations plus String/Equal
// structural operations — except here there is no unification, only
// merge (widening) and syntactic type-expression carrying, per spec.md
// §4.4 and §4.3.
package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the result of a successful guess: a fully resolved type, never
// carrying unresolved syntax. Compare with TypeExprElem (typeexpr.go), which
// is what the generic-owner guesser (C4) produces instead.
type Type interface {
	String() string
	// Equal reports structural equality, used for union deduplication
	// and for "already typed" checks.
	Equal(Type) bool
}

// Primitive is a built-in scalar type: an integer/float width, Bool,
// Char, Nil, String, Symbol, or Regex.
type Primitive struct {
	Name string
}

func (p Primitive) String() string { return p.Name }
func (p Primitive) Equal(o Type) bool {
	op, ok := o.(Primitive)
	return ok && op.Name == p.Name
}

var (
	I8     = Primitive{"Int8"}
	I16    = Primitive{"Int16"}
	I32    = Primitive{"Int32"}
	I64    = Primitive{"Int64"}
	U8     = Primitive{"UInt8"}
	U16    = Primitive{"UInt16"}
	U32    = Primitive{"UInt32"}
	U64    = Primitive{"UInt64"}
	F32    = Primitive{"Float32"}
	F64    = Primitive{"Float64"}
	Bool   = Primitive{"Bool"}
	Char   = Primitive{"Char"}
	Nil    = Primitive{"Nil"}
	String = Primitive{"String"}
	Symbol = Primitive{"Symbol"}
	Regex  = Primitive{"Regex"}
	Void   = Primitive{"Void"}
)

// ClassKind distinguishes the owner kinds §4.1.1 and §4.3 dispatch on.
type ClassKind int

const (
	// KindTopLevel is the implicit top-level program/file-module owner.
	// Instance variables are always illegal there.
	KindTopLevel ClassKind = iota
	// KindConcreteClass is an ordinary, non-generic class.
	KindConcreteClass
	// KindConcreteModule is a non-generic module (mixin/namespace).
	KindConcreteModule
	// KindGenericClass is a class parameterized by one or more type
	// variables and not yet instantiated.
	KindGenericClass
	// KindGenericModule is the module analogue of KindGenericClass.
	KindGenericModule
	// KindForbidden marks an owner kind (e.g. a value-type construct in
	// some language variants) that syntactically disallows instance
	// variables altogether.
	KindForbidden
)

// IsGeneric reports whether values of this kind must be guessed as type
// expressions (C4) rather than resolved types (C3).
func (k ClassKind) IsGeneric() bool {
	return k == KindGenericClass || k == KindGenericModule
}

// ForbidsInstanceVars reports whether assigning @name under an owner of
// this kind is a hard error (spec.md §4.1.1 step 4, §7
// InstanceVarForbiddenHere).
func (k ClassKind) ForbidsInstanceVars() bool {
	return k == KindForbidden
}

// Class represents a resolved class/module type, concrete or generic,
// instantiated or not. A Class with no Args is a plain non-parameterized
// class or a bare (uninstantiated) generic; a generic Class with Args
// populated is an instantiation (e.g. Box(Int)).
type Class struct {
	Name      string
	Kind      ClassKind
	Params    []string // type parameter names, for a generic owner
	Args      []Type   // instantiation arguments, if any
	IsVirtual bool     // true once resolved via self or the legality check
}

func (c Class) String() string {
	if len(c.Args) == 0 {
		if c.IsVirtual {
			return c.Name + "+"
		}
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	s := fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
	if c.IsVirtual {
		s += "+"
	}
	return s
}

func (c Class) Equal(o Type) bool {
	oc, ok := o.(Class)
	if !ok || oc.Name != c.Name || len(oc.Args) != len(c.Args) || oc.IsVirtual != c.IsVirtual {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(oc.Args[i]) {
			return false
		}
	}
	return true
}

// IsUninstantiatedGeneric reports whether this denotes a generic class or
// module used bare, with no type arguments supplied (the case C7 must
// reject as a variable type; spec.md §4.5).
func (c Class) IsUninstantiatedGeneric() bool {
	return c.Kind.IsGeneric() && len(c.Args) == 0
}

// Virtualized returns the "virtual" form of a concrete class: the type
// guess_type returns for `self` inside a concrete owner (spec.md §4.2.2)
// and that the legality check returns for any concrete class (§4.5).
func (c Class) Virtualized() Class {
	c.IsVirtual = true
	return c
}

// TypeParam is a reference to an enclosing generic owner's rigid type
// parameter (e.g. `T` inside `class Box(T)`). It resolves successfully
// (so the legality check in C4 can still run on it, spec.md §4.3) but
// is never itself treated as a forbidden abstract root or uninstantiated
// generic.
type TypeParam struct {
	Name string
}

func (p TypeParam) String() string { return p.Name }
func (p TypeParam) Equal(o Type) bool {
	op, ok := o.(TypeParam)
	return ok && op.Name == p.Name
}

// Metaclass is the type of a type: `T.class`. Constructors and
// class-level methods are looked up on it (GLOSSARY).
type Metaclass struct {
	Of Type
}

func (m Metaclass) String() string { return m.Of.String() + ".class" }
func (m Metaclass) Equal(o Type) bool {
	om, ok := o.(Metaclass)
	return ok && om.Of.Equal(m.Of)
}

// Nilable represents `T?`, i.e. `T | Nil`.
type Nilable struct {
	Of Type
}

func (n Nilable) String() string { return n.Of.String() + "?" }
func (n Nilable) Equal(o Type) bool {
	on, ok := o.(Nilable)
	return ok && on.Of.Equal(n.Of)
}

// Array represents `Array(T)`.
type Array struct {
	Elem Type
}

func (a Array) String() string { return fmt.Sprintf("Array(%s)", a.Elem.String()) }
func (a Array) Equal(o Type) bool {
	oa, ok := o.(Array)
	return ok && oa.Elem.Equal(a.Elem)
}

// Hash represents `Hash(K, V)`.
type Hash struct {
	Key, Value Type
}

func (h Hash) String() string { return fmt.Sprintf("Hash(%s, %s)", h.Key.String(), h.Value.String()) }
func (h Hash) Equal(o Type) bool {
	oh, ok := o.(Hash)
	return ok && oh.Key.Equal(h.Key) && oh.Value.Equal(h.Value)
}

// Range represents `Range(B, E)`.
type Range struct {
	Begin, End Type
}

func (r Range) String() string {
	return fmt.Sprintf("Range(%s, %s)", r.Begin.String(), r.End.String())
}
func (r Range) Equal(o Type) bool {
	orng, ok := o.(Range)
	return ok && orng.Begin.Equal(r.Begin) && orng.End.Equal(r.End)
}

// Tuple represents `{T1, T2, ...}`. Guessing a tuple literal is
// all-or-nothing: see vartypes/guess_literals.go.
type Tuple struct {
	Elems []Type
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
func (t Tuple) Equal(o Type) bool {
	ot, ok := o.(Tuple)
	if !ok || len(ot.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(ot.Elems[i]) {
			return false
		}
	}
	return true
}

// NamedTuple represents `{x: T1, y: T2}`.
type NamedTuple struct {
	Names []string // insertion order preserved, parallel to Types
	Types []Type
}

func (nt NamedTuple) String() string {
	parts := make([]string, len(nt.Names))
	for i, n := range nt.Names {
		parts[i] = fmt.Sprintf("%s: %s", n, nt.Types[i].String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
func (nt NamedTuple) Equal(o Type) bool {
	ont, ok := o.(NamedTuple)
	if !ok || len(ont.Names) != len(nt.Names) {
		return false
	}
	for i := range nt.Names {
		if nt.Names[i] != ont.Names[i] || !nt.Types[i].Equal(ont.Types[i]) {
			return false
		}
	}
	return true
}

// Proc represents a proc/closure type, e.g. a block parameter with no
// restriction (spec.md §4.2.2: "a block parameter with no restriction is
// taken to be a proc producing void").
type Proc struct {
	Params []Type
	Return Type
}

func (p Proc) String() string {
	parts := make([]string, len(p.Params))
	for i, a := range p.Params {
		parts[i] = a.String()
	}
	return fmt.Sprintf("Proc(%s -> %s)", strings.Join(parts, ", "), p.Return.String())
}
func (p Proc) Equal(o Type) bool {
	op, ok := o.(Proc)
	if !ok || len(op.Params) != len(p.Params) || !op.Return.Equal(p.Return) {
		return false
	}
	for i := range p.Params {
		if !p.Params[i].Equal(op.Params[i]) {
			return false
		}
	}
	return true
}

// Pointer represents `Pointer(T)`.
type Pointer struct {
	Elem Type
}

func (p Pointer) String() string { return fmt.Sprintf("Pointer(%s)", p.Elem.String()) }
func (p Pointer) Equal(o Type) bool {
	op, ok := o.(Pointer)
	return ok && op.Elem.Equal(p.Elem)
}

// Union represents a normalized set of two or more alternative types,
// the result of Merge-ing distinct guesses (spec.md §4.4: "Merging is
// the language's canonical union/widening operator").
type Union struct {
	Alts []Type // normalized: flattened, deduplicated, sorted by String()
}

func (u Union) String() string {
	parts := make([]string, len(u.Alts))
	for i, a := range u.Alts {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}
func (u Union) Equal(o Type) bool {
	ou, ok := o.(Union)
	if !ok || len(ou.Alts) != len(u.Alts) {
		return false
	}
	for i := range u.Alts {
		if !u.Alts[i].Equal(ou.Alts[i]) {
			return false
		}
	}
	return true
}

// NormalizeUnion flattens nested unions, deduplicates by String(), and
// sorts for deterministic output (spec.md Testable Property 5: merge
// order must not affect the stored type).
func NormalizeUnion(types []Type) Type {
	flat := make([]Type, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		if u, ok := t.(Union); ok {
			flat = append(flat, u.Alts...)
		} else {
			flat = append(flat, t)
		}
	}

	seen := make(map[string]bool, len(flat))
	unique := make([]Type, 0, len(flat))
	for _, t := range flat {
		s := t.String()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, t)
		}
	}

	if len(unique) == 0 {
		return nil
	}
	if len(unique) == 1 {
		return unique[0]
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i].String() < unique[j].String() })
	return Union{Alts: unique}
}
