package formatter

import (
	"encoding/json"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// TranscriptOutput is the JSON document for a transcript
type TranscriptOutput struct {
	Summary  *SummaryOutput `json:"summary"`
	Outcomes []Outcome      `json:"outcomes"`
	History  []string       `json:"history"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Evaluated int    `json:"evaluated"`
	Failed    int    `json:"failed"`
	Memory    string `json:"memory"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &TranscriptOutput{
		Summary: &SummaryOutput{
			Evaluated: report.Evaluated(),
			Failed:    report.FailedCount(),
			Memory:    memoryValue(report.Memory),
		},
		Outcomes: report.Outcomes,
		History:  report.History,
	}
	if output.Outcomes == nil {
		output.Outcomes = []Outcome{}
	}
	if output.History == nil {
		output.History = []string{}
	}

	return json.MarshalIndent(output, "", "  ")
}
