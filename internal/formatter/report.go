package formatter

import (
	"errors"

	"github.com/yildizm/SciCalc/internal/calc"
)

// Outcome is one line of a transcript: an evaluated expression or a memory
// command applied to the previous result.
type Outcome struct {
	Expression string `json:"expression"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Position   int    `json:"position,omitempty"` // 1-based column, 0 when unknown
	Command    bool   `json:"command,omitempty"`
}

// Failed reports whether the outcome is an evaluation failure
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Report is the transcript of one CLI session
type Report struct {
	Outcomes []Outcome
	History  []string
	Memory   string
}

// NewOutcome builds the outcome of evaluating expression. A non-nil err is
// described by its message, and by kind and column when it is a
// *calc.EvaluationError.
func NewOutcome(expression, result string, err error) Outcome {
	o := Outcome{Expression: expression, Result: result}
	if err == nil {
		return o
	}

	o.Result = ""
	o.Error = err.Error()
	var evalErr *calc.EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Message != "" {
			o.Error = evalErr.Message
		}
		o.Kind = evalErr.Kind.Error()
		if evalErr.Pos >= 0 {
			o.Position = evalErr.Pos + 1
		}
	}
	return o
}

// CommandOutcome records a memory command
func CommandOutcome(label, memory string) Outcome {
	return Outcome{Expression: label, Result: memory, Command: true}
}

// Evaluated counts outcomes that were expressions rather than commands
func (r *Report) Evaluated() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Command {
			n++
		}
	}
	return n
}

// FailedCount counts failed evaluations
func (r *Report) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// HasFailures reports whether any evaluation failed
func (r *Report) HasFailures() bool {
	return r.FailedCount() > 0
}
