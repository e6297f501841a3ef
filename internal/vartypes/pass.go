package vartypes

import (
	"github.com/wethu/ivarguess/internal/ast"
	"github.com/wethu/ivarguess/internal/config"
	"github.com/wethu/ivarguess/internal/symbols"
)

// Run executes the variable-type guessing pass over program and returns
// its output buckets (spec.md §6). A non-nil error is always the hard
// InstanceVarForbiddenHere diagnostic (spec.md §7): every other failure
// mode is silent (no guess), recorded in Result.Errors instead of
// aborting.
func Run(program *ast.Program, resolver symbols.Resolver, policy *config.LegalityPolicy, explicit map[string]map[string]ExplicitInstanceVar) (*Result, error) {
	if policy == nil {
		policy = config.DefaultLegalityPolicy()
	}
	ctx := newContext(resolver, policy, explicit)
	if err := ctx.visitStatements(program.Statements); err != nil {
		return ctx.Result, err
	}
	return ctx.Result, nil
}
