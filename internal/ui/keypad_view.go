package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/SciCalc/internal/keypad"
)

// renderKeypad draws the grid with the focused cell highlighted
func renderKeypad(s *Styles, rows [][]keypad.Button, focusRow, focusCol int) string {
	gap := strings.Repeat(" ", cellGap)
	lines := make([]string, 0, len(rows)*(1+rowGap))
	for r, row := range rows {
		cells := make([]string, 0, len(row)*2)
		for c, b := range row {
			if c > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, s.Button(b, r == focusRow && c == focusCol))
		}
		if r > 0 {
			for i := 0; i < rowGap; i++ {
				lines = append(lines, "")
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

// hitTest maps a cell offset relative to the keypad's top-left corner to the
// button drawn there. Gaps between buttons hit nothing.
func hitTest(rows [][]keypad.Button, x, y int) (keypad.Button, bool) {
	if x < 0 || y < 0 {
		return keypad.Button{}, false
	}
	if y%(1+rowGap) != 0 || x%(cellWidth+cellGap) >= cellWidth {
		return keypad.Button{}, false
	}
	r := y / (1 + rowGap)
	c := x / (cellWidth + cellGap)
	if r >= len(rows) || c >= len(rows[r]) {
		return keypad.Button{}, false
	}
	return rows[r][c], true
}

// cellOrigin returns the offset of a button's first cell within the keypad
func cellOrigin(row, col int) (x, y int) {
	return col * (cellWidth + cellGap), row * (1 + rowGap)
}
