package ast

import "github.com/wethu/ivarguess/internal/token"

// BinaryExpr is `left op right`. Op is opaque to the guesser except for
// the boolean-intrinsic operators handled by BoolIntrinsic below; every
// other operator merges its two operands' guessed types (spec.md §4.2).
type BinaryExpr struct {
	Token       token.Token
	Op          string
	Left, Right Node
}

func (n *BinaryExpr) GetToken() token.Token { return n.Token }

// IfExpr is `if cond; then...; else...; end`, or `unless` when Negated
// is set (negation does not affect the guessed type — only which branch
// is "then" vs "else" semantically; the guesser merges both regardless).
type IfExpr struct {
	Token      token.Token
	Negated    bool
	Cond       Node
	Then, Else []Node
	HasElse    bool
}

func (n *IfExpr) GetToken() token.Token { return n.Token }

// WhenClause is one `when cond1, cond2 ... ; body` arm of a CaseExpr.
type WhenClause struct {
	Conds []Node
	Body  []Node
}

// CaseExpr is `case x; when a; ...; else; ...; end`. Per spec.md §9 Open
// Question, a CaseExpr with no Else is still merged over only the When
// bodies present — it is not widened with Nil to account for an
// unmatched case. This is deliberately mirrored, not "fixed".
type CaseExpr struct {
	Token   token.Token
	Subject Node // nil for a subject-less `case` (pure when/cond chain)
	Whens   []WhenClause
	Else    []Node
	HasElse bool
}

func (n *CaseExpr) GetToken() token.Token { return n.Token }

// BoolIntrinsicOp enumerates the boolean-returning intrinsic expression
// forms spec.md §4.2 lists together: `!x`, `x.is_a?(T)`, `x.responds_to?(:m)`.
type BoolIntrinsicOp int

const (
	IntrinsicNot BoolIntrinsicOp = iota
	IntrinsicIsA
	IntrinsicRespondsTo
)

type BoolIntrinsic struct {
	Token   token.Token
	Op      BoolIntrinsicOp
	Operand Node
}

func (n *BoolIntrinsic) GetToken() token.Token { return n.Token }

// SizeOfKind distinguishes `sizeof(T)` from `instance_sizeof(T)`; both
// guess to Int32 (spec.md §4.2).
type SizeOfKind int

const (
	SizeOfType SizeOfKind = iota
	InstanceSizeOfType
)

type SizeOfExpr struct {
	Token    token.Token
	Kind     SizeOfKind
	Operand  Type
}

func (n *SizeOfExpr) GetToken() token.Token { return n.Token }

// NopExpr is a no-op placeholder expression; guesses to Nil.
type NopExpr struct {
	Token token.Token
}

func (n *NopExpr) GetToken() token.Token { return n.Token }

// CastExpr is `e.as(T)` (Nilable == false) or `e.as?(T)` (Nilable ==
// true). spec.md §4.2: `.as(T)` guesses to T unless T is `typeof(x)` with
// a single expression, in which case the guesser recurses on x instead;
// `.as?(T)` guesses to `T | Nil` if T resolves, else none.
type CastExpr struct {
	Token   token.Token
	Operand Node
	Target  Type
	Nilable bool
}

func (n *CastExpr) GetToken() token.Token { return n.Token }

// TypeOfType is the `typeof(e1, e2, ...)` type-annotation form. The cast
// rule only special-cases the single-expression case; with more than one
// expression it resolves through the ordinary name-resolution oracle
// like any other Type node.
type TypeOfType struct {
	Token token.Token
	Exprs []Node
}

func (n *TypeOfType) GetToken() token.Token { return n.Token }
func (n *TypeOfType) typeNode()             {}

func (n *TypeOfType) String() string {
	s := "typeof("
	for i := range n.Exprs {
		if i > 0 {
			s += ", "
		}
		s += n.Exprs[i].GetToken().Lexeme
	}
	return s + ")"
}

// GenericTypeRef denotes a generic type instantiated in expression/receiver
// position, e.g. `Pointer(T)` in `Pointer(T).malloc` or `T(X)` in
// `T(X).new` (spec.md §4.2.1 rules 1 and 3). Base is ordinarily a *Path;
// Args resolve the same way a NamedType's Args do.
type GenericTypeRef struct {
	Token token.Token
	Base  Node
	Args  []Type
}

func (n *GenericTypeRef) GetToken() token.Token { return n.Token }

// Arg is one call argument; Out marks the `LibX.fn(out @v)` idiom
// (spec.md §4.1.2), and Name is set for named/keyword arguments.
type Arg struct {
	Name  string
	Value Node
	Out   bool
}

// CallExpr is `receiver.name(args) { block }` or an unqualified
// `name(args)`. Receiver is nil for an unqualified call (including bare
// `new(...)`, spec.md §4.2.1 rule 2).
type CallExpr struct {
	Token     token.Token
	Receiver  Node // nil for unqualified calls
	Name      string
	Args      []Arg
	HasBlock  bool
	BlockBody []Node
}

func (n *CallExpr) GetToken() token.Token { return n.Token }

// Expressions is a sequence of statements evaluated for effect, whose
// guessed type is that of its last expression (spec.md §4.2), or none if
// empty.
type Expressions struct {
	Token token.Token
	Body  []Node
}

func (n *Expressions) GetToken() token.Token { return n.Token }

// ReturnStmt is `return e` or a bare `return` (Value == nil, treated by
// the return-gatherer as a Nil placeholder; spec.md §4.7).
type ReturnStmt struct {
	Token token.Token
	Value Node
}

func (n *ReturnStmt) GetToken() token.Token { return n.Token }

// MacroLikeNode stands in for a macro-expanded top-level construct
// (spec.md §4.1: "traversed only in outside-def context to allow
// macro-expanded top-level declarations"). Expansion itself happened in
// the parser; Body is the already-expanded replacement subtree.
type MacroLikeNode struct {
	Token token.Token
	Body  Node
}

func (n *MacroLikeNode) GetToken() token.Token { return n.Token }
