package vartypes

import "github.com/wethu/ivarguess/internal/ast"

// GatherReturns is C2 (spec.md §4.7): collects every explicit `return e`
// anywhere in a method body, with a nil entry standing in for a bare
// `return` (the caller treats nil as the Nil placeholder). Traversal
// stops at a nested Def boundary: a nested method owns its own returns.
func GatherReturns(body []ast.Node) []ast.Node {
	var out []ast.Node
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.ReturnStmt:
			out = append(out, v.Value)
		case *ast.Def:
			return
		case *ast.IfExpr:
			walk(v.Cond)
			for _, s := range v.Then {
				walk(s)
			}
			for _, s := range v.Else {
				walk(s)
			}
		case *ast.CaseExpr:
			walk(v.Subject)
			for _, w := range v.Whens {
				for _, cnd := range w.Conds {
					walk(cnd)
				}
				for _, s := range w.Body {
					walk(s)
				}
			}
			for _, s := range v.Else {
				walk(s)
			}
		case *ast.Expressions:
			for _, s := range v.Body {
				walk(s)
			}
		case *ast.BinaryExpr:
			walk(v.Left)
			walk(v.Right)
		case *ast.CallExpr:
			walk(v.Receiver)
			for _, a := range v.Args {
				walk(a.Value)
			}
			for _, s := range v.BlockBody {
				walk(s)
			}
		case *ast.MacroLikeNode:
			walk(v.Body)
		case *ast.AssignExpr:
			walk(v.Value)
		case *ast.MultiAssignExpr:
			for _, val := range v.Values {
				walk(val)
			}
		case *ast.TypeDeclaration:
			walk(v.Value)
		case *ast.BoolIntrinsic:
			walk(v.Operand)
		case *ast.CastExpr:
			walk(v.Operand)
		}
	}
	for _, s := range body {
		walk(s)
	}
	return out
}
