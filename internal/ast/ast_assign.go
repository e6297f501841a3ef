package ast

import "github.com/wethu/ivarguess/internal/token"

// AssignExpr is `target = value` (spec.md §4.1.1).
type AssignExpr struct {
	Token  token.Token
	Target Node
	Value  Node
}

func (n *AssignExpr) GetToken() token.Token { return n.Token }

// MultiAssignExpr is `t1, t2, ... = v1, v2, ...` (spec.md §4.1.1
// "Multi-assign rule").
type MultiAssignExpr struct {
	Token   token.Token
	Targets []Node
	Values  []Node
}

func (n *MultiAssignExpr) GetToken() token.Token { return n.Token }

// UninitializedDecl is a `v :: T`-style declaration with no value
// (spec.md §4.1: "treat as an instance-variable assignment whose guessed
// type is the declared type").
type UninitializedDecl struct {
	Token    token.Token
	Target   Node
	Declared Type
}

func (n *UninitializedDecl) GetToken() token.Token { return n.Token }

// TypeDeclaration is `v : T = e`, with Value nil if no initializer is
// given (in which case it behaves like UninitializedDecl; with Value
// set, spec.md §4.1 says to "delegate to the assignment rule on that
// target/value pair").
type TypeDeclaration struct {
	Token    token.Token
	Target   Node
	Declared Type
	Value    Node // nil if this declaration carries no value
}

func (n *TypeDeclaration) GetToken() token.Token { return n.Token }
