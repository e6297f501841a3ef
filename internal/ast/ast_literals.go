package ast

import "github.com/wethu/ivarguess/internal/token"

// IntegerLiteral carries its resolved literal width (e.g. "Int32",
// "UInt8") the way a real lexer would already have disambiguated a
// numeric suffix.
type IntegerLiteral struct {
	Token token.Token
	Width string // one of "Int8".."Int64", "UInt8".."UInt64"; any other value (including empty) means Int32
	Value int64
}

func (n *IntegerLiteral) GetToken() token.Token { return n.Token }

// FloatLiteral is analogous to IntegerLiteral for floating-point widths.
type FloatLiteral struct {
	Token token.Token
	Width string // "Float32" or "Float64"; defaults to Float64 if empty
	Value float64
}

func (n *FloatLiteral) GetToken() token.Token { return n.Token }

type CharLiteral struct {
	Token token.Token
	Value rune
}

func (n *CharLiteral) GetToken() token.Token { return n.Token }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) GetToken() token.Token { return n.Token }

type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) GetToken() token.Token { return n.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) GetToken() token.Token { return n.Token }

// StringInterpolation is `"...#{expr}..."`; its guessed type is always
// String regardless of the interpolated parts' types.
type StringInterpolation struct {
	Token token.Token
	Parts []Node
}

func (n *StringInterpolation) GetToken() token.Token { return n.Token }

type SymbolLiteral struct {
	Token token.Token
	Value string
}

func (n *SymbolLiteral) GetToken() token.Token { return n.Token }

type RegexLiteral struct {
	Token token.Token
	Value string
}

func (n *RegexLiteral) GetToken() token.Token { return n.Token }

// RangeLiteral is `a..b` or `a...b` (exclusivity does not affect the
// guessed type; spec.md §4.2: `Range(guess(a), guess(b))`).
type RangeLiteral struct {
	Token     token.Token
	From, To  Node
	Exclusive bool
}

func (n *RangeLiteral) GetToken() token.Token { return n.Token }

// ArrayLiteral covers all three forms spec.md §4.2 distinguishes:
//   - bare `[x, y]`                          (Constructor == nil, Of == nil)
//   - `[x, y] of T`                          (Of != nil)
//   - explicit constructor `C {x, y}`        (Constructor != nil)
type ArrayLiteral struct {
	Token       token.Token
	Elements    []Node
	Of          Type // `of T` clause, nil if absent
	Constructor Node // explicit `C {...}` constructor reference, nil if bare
}

func (n *ArrayLiteral) GetToken() token.Token { return n.Token }

// HashPair is one `key => value` entry of a HashLiteral.
type HashPair struct {
	Key, Value Node
}

// HashLiteral is `{k1 => v1, k2 => v2}`, with an optional `of K => V`
// clause analogous to ArrayLiteral's `of T`.
type HashLiteral struct {
	Token    token.Token
	Pairs    []HashPair
	OfKey    Type
	OfValue  Type
}

func (n *HashLiteral) GetToken() token.Token { return n.Token }

// TupleLiteral is `{e1, e2, ...}` in positional (non-named) form.
type TupleLiteral struct {
	Token    token.Token
	Elements []Node
}

func (n *TupleLiteral) GetToken() token.Token { return n.Token }

// NamedTupleLiteral is `{x: e1, y: e2}`.
type NamedTupleLiteral struct {
	Token  token.Token
	Names  []string
	Values []Node
}

func (n *NamedTupleLiteral) GetToken() token.Token { return n.Token }
