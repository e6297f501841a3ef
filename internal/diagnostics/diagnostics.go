// Package diagnostics holds the two failure channels the guessing pass can
// surface (spec.md §7): a hard, traversal-aborting error and a soft,
// per-(owner,name) recorded error. Mirrors funvibe-funxy's
// internal/diagnostics.DiagnosticError / ErrorCode pairing, as consumed by
// internal/analyzer/analyzer_errors_test.go's expectAnalyzerError helper.
package diagnostics

import (
	"fmt"

	"github.com/wethu/ivarguess/internal/token"
)

// ErrorCode identifies a class of diagnostic for tooling (LSP code, test
// assertions) independent of the rendered message text.
type ErrorCode string

const (
	// ErrInstanceVarForbiddenHere is raised immediately when an instance
	// variable is assigned under an owner whose kind disallows instance
	// variables (an enum). An instance variable assigned at the top-level
	// program is ignored, not reported.
	ErrInstanceVarForbiddenHere ErrorCode = "V001"

	// ErrDisallowedVariableType is recorded (first offending site wins)
	// when a guessed or declared type may not appear as a variable type:
	// an uninstantiated generic class/module, or an abstract root.
	ErrDisallowedVariableType ErrorCode = "V002"
)

// DiagnosticError is the single error type every surface in this module
// returns or records.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: [%s] %s", e.File, e.Token, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Token, e.Code, e.Message)
}

// NewForbiddenInstanceVar builds the hard "cannot declare instance
// variables in <owner>" diagnostic (spec.md §6 failure channel 1).
func NewForbiddenInstanceVar(tok token.Token, ownerName string) *DiagnosticError {
	return &DiagnosticError{
		Code:    ErrInstanceVarForbiddenHere,
		Token:   tok,
		Message: fmt.Sprintf("cannot declare instance variables in %s", ownerName),
	}
}

// NewDisallowedVariableType builds the soft per-(owner,name) diagnostic
// for a forbidden variable type (spec.md §6 failure channel 2).
func NewDisallowedVariableType(tok token.Token, offendingType string) *DiagnosticError {
	return &DiagnosticError{
		Code:    ErrDisallowedVariableType,
		Token:   tok,
		Message: fmt.Sprintf("can't use %s as the type of a variable", offendingType),
	}
}
