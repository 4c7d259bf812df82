package calc

import (
	"errors"
	"fmt"
)

// Error kinds reported by the evaluator. Match them with errors.Is.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrUnknownToken   = errors.New("unknown token")
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("math domain error")
	ErrOverflow       = errors.New("math range error")
)

// EvaluationError describes why an expression could not be evaluated
type EvaluationError struct {
	Expression string // input as given to Evaluate
	Pos        int    // byte offset of the offending token, -1 when not tied to one
	Kind       error  // one of the Err* sentinels
	Message    string // human-readable detail
}

func newError(kind error, pos int, format string, args ...interface{}) *EvaluationError {
	return &EvaluationError{
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *EvaluationError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Kind
}
