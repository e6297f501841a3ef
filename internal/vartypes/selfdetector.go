package vartypes

import "github.com/wethu/ivarguess/internal/ast"

// ContainsSelf is C1 (spec.md §4.6): a subtree walk reporting whether
// `self` is mentioned in a way that would escape the instance. The one
// exception is `self.class`, which yields the metaclass without exposing
// the instance and so does not count as an escape.
func ContainsSelf(node ast.Node) bool {
	found := false
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if found || n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.Var:
			if v.Name == "self" {
				found = true
			}
		case *ast.CallExpr:
			if isSelfClassCall(v) {
				for _, a := range v.Args {
					walk(a.Value)
				}
				for _, s := range v.BlockBody {
					walk(s)
				}
				return
			}
			walk(v.Receiver)
			for _, a := range v.Args {
				walk(a.Value)
			}
			for _, s := range v.BlockBody {
				walk(s)
			}
		case *ast.BinaryExpr:
			walk(v.Left)
			walk(v.Right)
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
		case *ast.BoolIntrinsic:
			walk(v.Operand)
		case *ast.CastExpr:
			walk(v.Operand)
		case *ast.Expressions:
			for _, s := range v.Body {
				walk(s)
			}
		case *ast.ReturnStmt:
			walk(v.Value)
		case *ast.MacroLikeNode:
			walk(v.Body)
		case *ast.AssignExpr:
			walk(v.Target)
			walk(v.Value)
		case *ast.MultiAssignExpr:
			for _, t := range v.Targets {
				walk(t)
			}
			for _, val := range v.Values {
				walk(val)
			}
		case *ast.UninitializedDecl:
			walk(v.Target)
		case *ast.TypeDeclaration:
			walk(v.Target)
			walk(v.Value)
		case *ast.RangeLiteral:
			walk(v.From)
			walk(v.To)
		case *ast.ArrayLiteral:
			for _, e := range v.Elements {
				walk(e)
			}
			walk(v.Constructor)
		case *ast.HashLiteral:
			for _, p := range v.Pairs {
				walk(p.Key)
				walk(p.Value)
			}
		case *ast.TupleLiteral:
			for _, e := range v.Elements {
				walk(e)
			}
		case *ast.NamedTupleLiteral:
			for _, val := range v.Values {
				walk(val)
			}
		case *ast.StringInterpolation:
			for _, p := range v.Parts {
				walk(p)
			}
		case *ast.GenericTypeRef:
			walk(v.Base)
		case *ast.Def:
			for _, s := range v.Body {
				walk(s)
			}
		case *ast.OwnerDef:
			for _, s := range v.Body {
				walk(s)
			}
		}
	}
	walk(node)
	return found
}

func isSelfClassCall(c *ast.CallExpr) bool {
	v, ok := c.Receiver.(*ast.Var)
	return ok && v.Name == "self" && c.Name == "class" && len(c.Args) == 0 && !c.HasBlock
}
