// Package keypad describes the calculator's button grid.
package keypad

import (
	"slices"

	"github.com/yildizm/SciCalc/internal/calc"
)

// Kind classifies a button label by what it does
type Kind int

const (
	KindUnknown Kind = iota
	KindDigit
	KindOperator
	KindParen
	KindFunction
	KindConstant
	KindClear
	KindEquals
	KindMemory
	KindTheme
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindOperator:
		return "operator"
	case KindParen:
		return "paren"
	case KindFunction:
		return "function"
	case KindConstant:
		return "constant"
	case KindClear:
		return "clear"
	case KindEquals:
		return "equals"
	case KindMemory:
		return "memory"
	case KindTheme:
		return "theme"
	default:
		return "unknown"
	}
}

// Button labels that are not single characters
const (
	Clear        = "C"
	Equals       = "="
	Power        = "^"
	Pi           = "pi"
	E            = "e"
	MemoryClear  = "MC"
	MemoryRecall = "MR"
	MemoryStore  = "MS"
	MemoryAdd    = "M+"
	Theme        = "Theme"
)

// Columns is the width of the grid.
const Columns = 5

// labels in row-major order, Columns per row.
var labels = []string{
	"7", "8", "9", "/", Clear,
	"4", "5", "6", "*", "(",
	"1", "2", "3", "-", ")",
	"0", ".", Equals, "+", "sin",
	"cos", "tan", "log", "ln", "sqrt",
	Power, Pi, E, MemoryClear, MemoryRecall,
	MemoryStore, MemoryAdd, Theme,
}

// Button is one cell of the grid
type Button struct {
	Label string
	Kind  Kind
	Row   int
	Col   int
}

// Layout returns the grid as rows of buttons. The last row may be short.
func Layout() [][]Button {
	rows := make([][]Button, 0, (len(labels)+Columns-1)/Columns)
	for i, label := range labels {
		if i%Columns == 0 {
			rows = append(rows, make([]Button, 0, Columns))
		}
		r := len(rows) - 1
		rows[r] = append(rows[r], Button{Label: label, Kind: Classify(label), Row: r, Col: i % Columns})
	}
	return rows
}

// Classify maps a button label to its kind. Unknown labels are KindUnknown.
func Classify(label string) Kind {
	if slices.Contains(calc.FunctionNames(), label) {
		return KindFunction
	}
	switch label {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return KindDigit
	case "+", "-", "*", "/", Power:
		return KindOperator
	case "(", ")":
		return KindParen
	case Pi, E:
		return KindConstant
	case Clear:
		return KindClear
	case Equals:
		return KindEquals
	case MemoryClear, MemoryRecall, MemoryStore, MemoryAdd:
		return KindMemory
	case Theme:
		return KindTheme
	default:
		return KindUnknown
	}
}
