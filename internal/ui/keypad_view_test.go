package ui

import (
	"strings"
	"testing"

	"github.com/yildizm/SciCalc/internal/keypad"
	"github.com/yildizm/SciCalc/internal/theme"
)

func TestHitTest(t *testing.T) {
	rows := keypad.Layout()

	tests := []struct {
		name  string
		x, y  int
		label string
		hit   bool
	}{
		{"first cell", 0, 0, "7", true},
		{"last column of first cell", cellWidth - 1, 0, "7", true},
		{"gap after first cell", cellWidth, 0, "", false},
		{"second cell", cellWidth + cellGap, 0, "8", true},
		{"row gap", 0, 1, "", false},
		{"second row", 0, 1 + rowGap, "4", true},
		{"clear button", 4 * (cellWidth + cellGap), 0, keypad.Clear, true},
		{"theme button", 2 * (cellWidth + cellGap), 6 * (1 + rowGap), keypad.Theme, true},
		{"missing cell on short row", 3 * (cellWidth + cellGap), 6 * (1 + rowGap), "", false},
		{"below keypad", 0, 7 * (1 + rowGap), "", false},
		{"right of keypad", keypadWidth + 1, 0, "", false},
		{"negative", -1, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := hitTest(rows, tt.x, tt.y)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%v, got %v (%+v)", tt.hit, ok, b)
			}
			if ok && b.Label != tt.label {
				t.Errorf("Expected %q, got %q", tt.label, b.Label)
			}
		})
	}
}

func TestCellOriginRoundTrip(t *testing.T) {
	rows := keypad.Layout()
	for _, row := range rows {
		for _, b := range row {
			x, y := cellOrigin(b.Row, b.Col)
			got, ok := hitTest(rows, x, y)
			if !ok || got.Label != b.Label {
				t.Errorf("Origin of %q hit %q (ok=%v)", b.Label, got.Label, ok)
			}
		}
	}
}

func TestRenderKeypad(t *testing.T) {
	rows := keypad.Layout()
	out := renderKeypad(NewStyles(theme.Dark), rows, 0, 0)

	lines := strings.Split(out, "\n")
	want := len(rows) + (len(rows)-1)*rowGap
	if len(lines) != want {
		t.Errorf("Expected %d lines, got %d", want, len(lines))
	}
	for _, row := range rows {
		for _, b := range row {
			if !strings.Contains(out, b.Label) {
				t.Errorf("Expected label %q in keypad", b.Label)
			}
		}
	}
}
