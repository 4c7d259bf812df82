package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/SciCalc/internal/calc"
	"github.com/yildizm/SciCalc/internal/formatter"
	"github.com/yildizm/SciCalc/internal/keypad"
	"github.com/yildizm/SciCalc/internal/logger"
	"github.com/yildizm/SciCalc/internal/session"
)

var evalPrecision int

// errEvaluationFailed makes the process exit non-zero after the transcript
// has been printed
var errEvaluationFailed = errors.New("one or more expressions failed to evaluate")

func newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions and print a transcript",
		Long: `Evaluate expressions in a single calculator session.

Each argument is one expression. Without arguments, expressions are read from
stdin one per line; blank lines and lines starting with # are skipped. The
memory commands MC, MS and M+ apply to the result of the previous line.

The command exits with a non-zero status when any expression fails.

Examples:
  scicalc eval "2+3*4" "sqrt(16)"
  scicalc eval -o json "sin(pi/2)" "1/0"
  printf '6*7\nMS\nln(e)\n' | scicalc eval`,
		RunE: runEval,
	}

	cmd.Flags().IntVarP(&evalPrecision, "precision", "p", -1, "significant digits in results, 1-17 (-1 = shortest)")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if cmd.Flags().Changed("precision") {
		cfg.Display.Precision = evalPrecision
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	lines := args
	if len(lines) == 0 {
		var err error
		if lines, err = readExpressions(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	log := newLogger("eval")
	log.SetOutput(cmd.ErrOrStderr())
	s := newSession(cfg, log)

	report := evaluateLines(s, lines)

	f, err := newFormatter()
	if err != nil {
		return err
	}
	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format transcript: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	if report.HasFailures() {
		log.WarnWithFields("evaluation finished with failures", []logger.Field{
			logger.F("failed", report.FailedCount()),
			logger.F("evaluated", report.Evaluated()),
		})
		return errEvaluationFailed
	}
	return nil
}

// evaluateLines runs every line through one session, so memory carries over
// from line to line
func evaluateLines(s *session.Session, lines []string) *formatter.Report {
	report := &formatter.Report{}
	for _, line := range lines {
		report.Outcomes = append(report.Outcomes, evaluateLine(s, strings.TrimSpace(line)))
	}
	report.History = s.History()
	report.Memory = calc.Format(s.Memory())
	return report
}

func evaluateLine(s *session.Session, line string) formatter.Outcome {
	if isMemoryCommand(line) {
		label := strings.ToUpper(line)
		_ = s.Press(label)
		return formatter.CommandOutcome(label, calc.Format(s.Memory()))
	}

	s.SetBuffer(line)
	result, err := s.Commit()
	return formatter.NewOutcome(line, result, err)
}

// isMemoryCommand reports whether line is one of the memory buttons that
// make sense without a keypad. MR is left out: it appends to the buffer,
// and every line replaces the buffer.
func isMemoryCommand(line string) bool {
	switch strings.ToUpper(line) {
	case keypad.MemoryClear, keypad.MemoryStore, keypad.MemoryAdd:
		return true
	}
	return false
}

// readExpressions reads one expression per line, skipping blanks and comments
func readExpressions(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("scanner error: %w", err)
	}
	return lines, nil
}
