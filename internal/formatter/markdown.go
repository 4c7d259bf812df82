package formatter

import (
	"fmt"
	"strings"
	"time"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Calculation Transcript\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, report)
	f.writeOutcomeTable(&b, report.Outcomes)
	f.writeHistory(&b, report.History)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Evaluated | %d |\n", report.Evaluated())
	fmt.Fprintf(b, "| Failed | %d |\n", report.FailedCount())
	fmt.Fprintf(b, "| Memory | %s |\n\n", memoryValue(report.Memory))
}

func (f *markdownFormatter) writeOutcomeTable(b *strings.Builder, outcomes []Outcome) {
	b.WriteString("## Results\n\n")
	if len(outcomes) == 0 {
		b.WriteString("_No expressions evaluated._\n\n")
		return
	}

	b.WriteString("| # | Expression | Result | Error |\n")
	b.WriteString("|---|------------|--------|-------|\n")
	for i, o := range outcomes {
		result := o.Result
		if o.Command {
			result = "memory = " + o.Result
		}
		errText := ""
		if o.Failed() {
			errText = o.Error
			if o.Kind != "" {
				errText = o.Kind + ": " + errText
			}
		}
		fmt.Fprintf(b, "| %d | `%s` | %s | %s |\n",
			i+1,
			escapeMarkdownCell(displayExpression(o.Expression)),
			escapeMarkdownCell(result),
			escapeMarkdownCell(errText))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeHistory(b *strings.Builder, history []string) {
	if len(history) == 0 {
		return
	}
	b.WriteString("## History\n\n")
	for _, entry := range history {
		b.WriteString("- `" + entry + "`\n")
	}
	b.WriteString("\n")
}
