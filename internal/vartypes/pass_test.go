package vartypes

import (
	"testing"

	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/diagnostics"
	"github.com/wethu/ivarguess/internal/symbols"
	"github.com/wethu/ivarguess/internal/typesystem"
)

func runPass(t *testing.T, stmts []ast.Node, table *symbols.SymbolTable) *Result {
	t.Helper()
	program := &ast.Program{Statements: stmts}
	if table == nil {
		table = symbols.New()
	}
	result, err := Run(program, table, nil, nil)
	if err != nil {
		t.Fatalf("Run returned unexpected hard error: %v", err)
	}
	return result
}

// S1 — simple int global.
func TestS1SimpleIntGlobal(t *testing.T) {
	stmts := []ast.Node{
		&ast.AssignExpr{Target: &ast.GlobalVar{Name: "x"}, Value: &ast.IntegerLiteral{}},
	}
	result := runPass(t, stmts, nil)

	info, ok := result.Globals["x"]
	if !ok {
		t.Fatalf("globals[x] missing")
	}
	if !info.Type.Equal(typesystem.I32) {
		t.Errorf("globals[x].type = %s, want Int32", info.Type)
	}
	if !info.OutsideDef {
		t.Errorf("globals[x].outside_def = false, want true")
	}
}

// S2 — merged global.
func TestS2MergedGlobal(t *testing.T) {
	stmts := []ast.Node{
		&ast.AssignExpr{Target: &ast.GlobalVar{Name: "x"}, Value: &ast.IntegerLiteral{}},
		&ast.AssignExpr{Target: &ast.GlobalVar{Name: "x"}, Value: &ast.StringLiteral{Value: "s"}},
	}
	result := runPass(t, stmts, nil)

	info, ok := result.Globals["x"]
	if !ok {
		t.Fatalf("globals[x] missing")
	}
	want := typesystem.Merge(typesystem.I32, typesystem.String)
	if info.Type.String() != want.String() {
		t.Errorf("globals[x].type = %s, want %s", info.Type, want)
	}
	if !info.OutsideDef {
		t.Errorf("globals[x].outside_def = false, want true")
	}
}

// S3 — definite vs indefinite initialization.
func TestS3DefiniteVsIndefiniteInit(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "C", Kind: typesystem.KindConcreteClass})

	initDef := &ast.Def{
		Name: "initialize",
		Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "a"}, Value: &ast.IntegerLiteral{}},
			&ast.CallExpr{Name: "some_call", Args: []ast.Arg{{Value: &ast.Var{Name: "self"}}}},
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "b"}, Value: &ast.IntegerLiteral{}},
		},
	}
	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "C", Body: []ast.Node{initDef}},
	}
	result := runPass(t, stmts, table)

	infos := result.InitializeInfos["C"]
	if len(infos) != 1 {
		t.Fatalf("initialize_infos[C] has %d entries, want 1", len(infos))
	}
	if got := infos[0].InstanceVars; len(got) != 1 || got[0] != "a" {
		t.Errorf("initialize_infos[C][0].instance_vars = %v, want [a]", got)
	}

	a, ok := result.GuessedInstanceVars["C"]["a"]
	if !ok || len(a.TypeVars) != 1 || !a.TypeVars[0].Resolved.Equal(typesystem.I32) {
		t.Errorf("guessed_instance_vars[C][a] = %+v, want [Int32]", a)
	}
	b, ok := result.GuessedInstanceVars["C"]["b"]
	if !ok || len(b.TypeVars) != 1 || !b.TypeVars[0].Resolved.Equal(typesystem.I32) {
		t.Errorf("guessed_instance_vars[C][b] = %+v, want [Int32]", b)
	}

	if names := result.InstanceVarsOutsideNames("C"); len(names) != 0 {
		t.Errorf("instance_vars_outside[C] = %v, want empty", names)
	}
}

// S4 — outside any def.
func TestS4ClassVarOutsideDef(t *testing.T) {
	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "C", Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.ClassVar{Name: "count"}, Value: &ast.IntegerLiteral{}},
		}},
	}
	result := runPass(t, stmts, nil)

	info, ok := result.ClassVars["C"]["count"]
	if !ok {
		t.Fatalf("class_vars[C][count] missing")
	}
	if !info.Type.Equal(typesystem.I32) {
		t.Errorf("class_vars[C][count].type = %s, want Int32", info.Type)
	}
	if !info.OutsideDef {
		t.Errorf("class_vars[C][count].outside_def = false, want true")
	}
}

// S5 — forbidden type.
func TestS5ForbiddenType(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "C", Kind: typesystem.KindConcreteClass})
	table.RegisterType(typesystem.Class{Name: "Array", Kind: typesystem.KindGenericClass, Params: []string{"T"}})

	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "C", Body: []ast.Node{
			&ast.UninitializedDecl{
				Target:   &ast.InstanceVar{Name: "x"},
				Declared: &ast.NamedType{Name: "Array"},
			},
		}},
	}
	result := runPass(t, stmts, table)

	errEntry, ok := result.Errors["C"]["x"]
	if !ok {
		t.Fatalf("errors[C][x] missing")
	}
	if errEntry.OffendingType != "Array" {
		t.Errorf("errors[C][x].offending_type = %s, want Array", errEntry.OffendingType)
	}
	if errEntry.Diagnostic == nil || errEntry.Diagnostic.Code != diagnostics.ErrDisallowedVariableType {
		t.Errorf("errors[C][x] diagnostic = %+v, want ErrDisallowedVariableType", errEntry.Diagnostic)
	}
	if _, guessed := result.GuessedInstanceVars["C"]["x"]; guessed {
		t.Errorf("guessed_instance_vars[C][x] should stay unset")
	}
}

// S6 — tuple destructuring.
func TestS6TupleDestructuring(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "C", Kind: typesystem.KindConcreteClass})

	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "C", Body: []ast.Node{
			&ast.MultiAssignExpr{
				Targets: []ast.Node{&ast.InstanceVar{Name: "a"}, &ast.InstanceVar{Name: "b"}},
				Values: []ast.Node{&ast.TupleLiteral{Elements: []ast.Node{
					&ast.StringLiteral{Value: "x"},
					&ast.IntegerLiteral{},
				}}},
			},
		}},
	}
	result := runPass(t, stmts, table)

	a, ok := result.GuessedInstanceVars["C"]["a"]
	if !ok || len(a.TypeVars) != 1 || !a.TypeVars[0].Resolved.Equal(typesystem.String) {
		t.Errorf("guessed_instance_vars[C][a] = %+v, want [String]", a)
	}
	b, ok := result.GuessedInstanceVars["C"]["b"]
	if !ok || len(b.TypeVars) != 1 || !b.TypeVars[0].Resolved.Equal(typesystem.I32) {
		t.Errorf("guessed_instance_vars[C][b] = %+v, want [Int32]", b)
	}
}

// S7 — constant cycle.
func TestS7ConstantCycle(t *testing.T) {
	table := symbols.New()
	table.RegisterConstant("A", symbols.Constant{Value: &ast.Path{Names: []string{"B"}}})
	table.RegisterConstant("B", symbols.Constant{Value: &ast.Path{Names: []string{"A"}}})

	stmts := []ast.Node{
		&ast.AssignExpr{Target: &ast.GlobalVar{Name: "x"}, Value: &ast.Path{Names: []string{"A"}}},
	}
	result := runPass(t, stmts, table)

	if _, ok := result.Globals["x"]; ok {
		t.Errorf("globals[x] should be absent for an unresolvable constant cycle")
	}
}

// S8 — generic owner.
func TestS8GenericOwner(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "G", Kind: typesystem.KindGenericClass, Params: []string{"T"}})

	initDef := &ast.Def{
		Name: "initialize",
		Params: []ast.Param{
			{Name: "x", Restriction: &ast.NamedType{Name: "T"}},
		},
		Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "v"}, Value: &ast.Var{Name: "x"}},
		},
	}
	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "G", TypeParams: []string{"T"}, Body: []ast.Node{initDef}},
	}
	result := runPass(t, stmts, table)

	v, ok := result.GuessedInstanceVars["G"]["v"]
	if !ok || len(v.TypeVars) != 1 {
		t.Fatalf("guessed_instance_vars[G][v] = %+v, want one type-expr element", v)
	}
	elem := v.TypeVars[0]
	if elem.IsResolved() {
		t.Errorf("guessed_instance_vars[G][v].type_vars[0] is resolved to %s, want unresolved T", elem.Resolved)
	}
	if elem.String() != "T" {
		t.Errorf("guessed_instance_vars[G][v].type_vars[0].String() = %s, want T", elem.String())
	}
}

// Forbidden-owner hard error (spec.md §7 failure channel 1): assigning an
// instance variable inside an enum aborts traversal instead of merely
// recording a soft error.
func TestForbiddenInstanceVarHardErrors(t *testing.T) {
	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerEnum, Name: "Color", Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "rgb"}, Value: &ast.IntegerLiteral{}},
		}},
	}
	program := &ast.Program{Statements: stmts}
	_, err := Run(program, symbols.New(), nil, nil)
	if err == nil {
		t.Fatalf("expected a hard error for instance var inside an enum")
	}
	de, ok := err.(*diagnostics.DiagnosticError)
	if !ok || de.Code != diagnostics.ErrInstanceVarForbiddenHere {
		t.Errorf("err = %+v, want ErrInstanceVarForbiddenHere", err)
	}
}

// Explicit declarations suppress guessing entirely (Testable Property 1).
func TestExplicitInstanceVarSuppressesGuessing(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "C", Kind: typesystem.KindConcreteClass})

	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "C", Body: []ast.Node{
			&ast.AssignExpr{Target: &ast.InstanceVar{Name: "x"}, Value: &ast.IntegerLiteral{}},
		}},
	}
	program := &ast.Program{Statements: stmts}
	explicit := map[string]map[string]ExplicitInstanceVar{
		"C": {"x": {Declared: &ast.NamedType{Name: "String"}}},
	}
	result, err := Run(program, table, nil, explicit)
	if err != nil {
		t.Fatalf("unexpected hard error: %v", err)
	}
	if _, ok := result.GuessedInstanceVars["C"]["x"]; ok {
		t.Errorf("guessed_instance_vars[C][x] should stay absent when explicitly declared")
	}
}

// Outside a method body, a macro-shaped call expands and the expansion
// is re-visited in place of the call itself (spec.md §4.1's Call rule).
func TestMacroCallOutsideDefExpandsAndIsRevisited(t *testing.T) {
	table := symbols.New()
	table.RegisterMacroExpansion("define_x", &ast.AssignExpr{
		Target: &ast.GlobalVar{Name: "x"},
		Value:  &ast.IntegerLiteral{},
	})

	stmts := []ast.Node{
		&ast.CallExpr{Name: "define_x"},
	}
	result := runPass(t, stmts, table)

	info, ok := result.Globals["x"]
	if !ok {
		t.Fatalf("globals[x] absent; macro expansion was not re-visited")
	}
	if !info.Type.Equal(typesystem.I32) {
		t.Errorf("globals[x].Type = %v, want I32", info.Type)
	}
}

// Inside a method body, a same-named call is not treated as a macro
// expansion site — only the outside-def Call rule attempts expansion.
func TestMacroExpansionNotAttemptedInsideMethodBody(t *testing.T) {
	table := symbols.New()
	table.RegisterType(typesystem.Class{Name: "C", Kind: typesystem.KindConcreteClass})
	table.RegisterMacroExpansion("define_x", &ast.AssignExpr{
		Target: &ast.GlobalVar{Name: "x"},
		Value:  &ast.IntegerLiteral{},
	})

	stmts := []ast.Node{
		&ast.OwnerDef{Kind: ast.OwnerClass, Name: "C", Body: []ast.Node{
			&ast.Def{Name: "run", Body: []ast.Node{
				&ast.CallExpr{Name: "define_x"},
			}},
		}},
	}
	result := runPass(t, stmts, table)

	if _, ok := result.Globals["x"]; ok {
		t.Errorf("globals[x] should stay absent: macro expansion is outside-def only")
	}
}
