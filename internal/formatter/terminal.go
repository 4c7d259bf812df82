package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats a transcript as plain text using go-termfmt trees
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeOutcomes(&b, report.Outcomes)
	f.writeSummary(&b, report)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Calculation Transcript"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeOutcomes writes one tree item per outcome; failures carry their kind
// and column as children
func (f *terminalFormatter) writeOutcomes(b *strings.Builder, outcomes []Outcome) {
	if len(outcomes) == 0 {
		b.WriteString("No expressions evaluated\n\n")
		return
	}

	items := make([]termfmt.TreeItem, 0, len(outcomes))
	for i, o := range outcomes {
		item := termfmt.TreeItem{
			Label: displayExpression(o.Expression),
			Last:  i == len(outcomes)-1,
		}
		switch {
		case o.Failed():
			item.Label = termfmt.GetEmoji("error", f.opts) + " " + item.Label
			item.Value = o.Error
			item.Children = f.errorDetails(o)
		case o.Command:
			item.Value = "memory = " + o.Result
		default:
			item.Value = "= " + o.Result
		}
		items = append(items, item)
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) errorDetails(o Outcome) []termfmt.TreeItem {
	var children []termfmt.TreeItem
	if o.Kind != "" {
		children = append(children, termfmt.TreeItem{Label: "Kind", Value: o.Kind})
	}
	if o.Position > 0 {
		children = append(children, termfmt.TreeItem{Label: "Column", Value: fmt.Sprintf("%d", o.Position)})
	}
	if len(children) > 0 {
		children[len(children)-1].Last = true
	}
	return children
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Summary\n")

	items := []termfmt.TreeItem{
		{Label: "Evaluated", Value: fmt.Sprintf("%d", report.Evaluated())},
		{Label: "Failed", Value: fmt.Sprintf("%d", report.FailedCount())},
		{Label: "History", Value: fmt.Sprintf("%d", len(report.History))},
		{Label: "Memory", Value: memoryValue(report.Memory), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
