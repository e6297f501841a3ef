package main

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/symbols"
	"github.com/wethu/ivarguess/internal/typesystem"
)

// demoProgram builds a small, fixed AST standing in for a program a real
// parser would hand the pass: a global, a class with an initializer, and a
// generic owner — enough to exercise globals, class vars, instance vars,
// and type-expression guessing in one run. This module treats the parser
// as an external collaborator (spec.md §1), so there is no source-to-AST
// step here; the fixture below plays that role for the demo.
func demoProgram() (*ast.Program, *symbols.SymbolTable) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "Counter", Kind: typesystem.KindConcreteClass})
	table.RegisterType(typesystem.Class{Name: "Box", Kind: typesystem.KindGenericClass, Params: []string{"T"}})

	counterInit := &ast.Def{
		Name: "initialize",
		Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "count"}, Value: &ast.IntegerLiteral{}},
		},
	}
	counter := &ast.OwnerDef{
		Kind: ast.OwnerClass,
		Name: "Counter",
		Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.ClassVar{Name: "instances"}, Value: &ast.IntegerLiteral{}},
			counterInit,
		},
	}

	boxInit := &ast.Def{
		Name:   "initialize",
		Params: []ast.Param{{Name: "value", Restriction: &ast.NamedType{Name: "T"}}},
		Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "value"}, Value: &ast.Var{Name: "value"}},
		},
	}
	box := &ast.OwnerDef{
		Kind:       ast.OwnerClass,
		Name:       "Box",
		TypeParams: []string{"T"},
		Body:       []ast.Node{boxInit},
	}

	program := &ast.Program{
		Statements: []ast.Node{
			&ast.AssignExpr{Target: &ast.GlobalVar{Name: "greeting"}, Value: &ast.StringLiteral{Value: "hi"}},
			&ast.AssignExpr{Target: &ast.GlobalVar{Name: "greeting"}, Value: &ast.IntegerLiteral{}},
			counter,
			box,
		},
	}
	return program, table
}
