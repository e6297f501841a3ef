// Package ast is the minimal abstract syntax tree the guessing pass
// walks. The real parser is an external collaborator (spec.md §1); this
// package exists only to give that collaborator's output a concrete,
// in-repo shape, modeled after funvibe-funxy's internal/ast package
// (token-carrying node structs, a flat Node interface, exhaustive
// type-switch dispatch at the consuming side rather than the visitor
// double-dispatch the teacher also carries — see DESIGN.md).
package ast

import "github.com/wethu/ivarguess/internal/token"

// Node is the base interface every AST node satisfies.
type Node interface {
	GetToken() token.Token
}

// Program is the root of a compilation unit: a flat list of top-level
// statements, evaluated "outside any def" until a class/module/enum or
// def boundary is entered.
type Program struct {
	Token      token.Token
	Statements []Node
}

func (p *Program) GetToken() token.Token { return p.Token }
