// Package calc implements the calculator's expression language: a small
// infix grammar over float64 with a fixed set of functions and constants.
//
// The evaluator only knows the operators + - * / ^ (also written **), unary
// signs, parentheses, the functions sin cos tan log ln sqrt and the constants
// pi and e. Anything else is rejected while parsing.
package calc

import (
	"math"
)

type node interface {
	eval() (float64, error)
}

type nodeNumber struct {
	v   float64
	pos int
}

type nodeUnary struct {
	op tokenKind
	x  node
}

type nodeBinary struct {
	op          tokenKind
	pos         int
	left, right node
}

type nodeCall struct {
	name string
	pos  int
	fn   function
	arg  node
}

type function func(x float64) (float64, error)

// functions is the complete set of callable names. log is base 10 and ln is
// the natural logarithm, matching calculator keys rather than math.Log.
var functions = map[string]function{
	"sin":  plain(math.Sin),
	"cos":  plain(math.Cos),
	"tan":  plain(math.Tan),
	"sqrt": sqrt,
	"log":  logarithm(math.Log10),
	"ln":   logarithm(math.Log),
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// FunctionNames lists the callable names in keypad order.
func FunctionNames() []string {
	return []string{"sin", "cos", "tan", "log", "ln", "sqrt"}
}

func plain(fn func(float64) float64) function {
	return func(x float64) (float64, error) {
		return fn(x), nil
	}
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, newError(ErrDomain, -1, "square root of negative number %s", Format(x))
	}
	return math.Sqrt(x), nil
}

func logarithm(fn func(float64) float64) function {
	return func(x float64) (float64, error) {
		if x <= 0 {
			return 0, newError(ErrDomain, -1, "logarithm of non-positive number %s", Format(x))
		}
		return fn(x), nil
	}
}

func (n nodeNumber) eval() (float64, error) {
	if math.IsInf(n.v, 0) {
		return 0, newError(ErrOverflow, n.pos, "number too large")
	}
	return n.v, nil
}

func (n nodeUnary) eval() (float64, error) {
	x, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	if n.op == tokMinus {
		return -x, nil
	}
	return x, nil
}

func (n nodeBinary) eval() (float64, error) {
	a, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	b, err := n.right.eval()
	if err != nil {
		return 0, err
	}

	var v float64
	switch n.op {
	case tokPlus:
		v = a + b
	case tokMinus:
		v = a - b
	case tokStar:
		v = a * b
	case tokSlash:
		if b == 0 {
			return 0, newError(ErrDivisionByZero, n.pos, "division by zero")
		}
		v = a / b
	case tokPow:
		if a == 0 && b < 0 {
			return 0, newError(ErrDivisionByZero, n.pos, "0 cannot be raised to a negative power")
		}
		v = math.Pow(a, b)
		if math.IsNaN(v) {
			return 0, newError(ErrDomain, n.pos, "negative number cannot be raised to a fractional power")
		}
	}
	return checkFinite(v, n.pos)
}

func (n nodeCall) eval() (float64, error) {
	x, err := n.arg.eval()
	if err != nil {
		return 0, err
	}
	v, err := n.fn(x)
	if err != nil {
		if e, ok := err.(*EvaluationError); ok {
			e.Pos = n.pos
			e.Message = n.name + ": " + e.Message
		}
		return 0, err
	}
	return checkFinite(v, n.pos)
}

func checkFinite(v float64, pos int) (float64, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newError(ErrOverflow, pos, "result too large")
	}
	return v, nil
}

// Evaluate parses and evaluates expr. Any failure is an *EvaluationError.
func Evaluate(expr string) (float64, error) {
	tree, err := parse(expr)
	if err != nil {
		return 0, withExpression(err, expr)
	}
	v, err := tree.eval()
	if err != nil {
		return 0, withExpression(err, expr)
	}
	return v, nil
}

func withExpression(err error, expr string) error {
	if e, ok := err.(*EvaluationError); ok {
		e.Expression = expr
	}
	return err
}
