package formatter

import (
	"strings"
	"unicode/utf8"
)

// displayExpression makes an empty expression visible in listings
func displayExpression(expr string) string {
	if strings.TrimSpace(expr) == "" {
		return "(empty)"
	}
	return expr
}

func memoryValue(memory string) string {
	if memory == "" {
		return "0"
	}
	return memory
}

// escapeMarkdownCell keeps an expression inside a single table cell
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// escapeCSVString flattens line breaks and truncates long messages
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if utf8.RuneCountInString(s) > 100 {
		s = string([]rune(s)[:97]) + "..."
	}

	return s
}
