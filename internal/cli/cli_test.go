package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/SciCalc/internal/formatter"
	"github.com/yildizm/SciCalc/internal/session"
)

// execute runs the root command in isolation from the user's own
// configuration and returns what it wrote to stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := NewRootCommand("test", "abc123", "today")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

func decodeTranscript(t *testing.T, out string) formatter.TranscriptOutput {
	t.Helper()
	var transcript formatter.TranscriptOutput
	if err := json.Unmarshal([]byte(out), &transcript); err != nil {
		t.Fatalf("Failed to decode transcript: %v\n%s", err, out)
	}
	return transcript
}

func TestEvalArguments(t *testing.T) {
	out, err := execute(t, "", "eval", "-o", "json", "2+3*4", "sqrt(16)", "2^10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	transcript := decodeTranscript(t, out)
	want := []string{"14", "4", "1024"}
	if len(transcript.Outcomes) != len(want) {
		t.Fatalf("Expected %d outcomes, got %d", len(want), len(transcript.Outcomes))
	}
	for i, w := range want {
		if transcript.Outcomes[i].Result != w {
			t.Errorf("Outcome %d: expected %s, got %s", i, w, transcript.Outcomes[i].Result)
		}
	}
	if transcript.Summary.Evaluated != 3 || transcript.Summary.Failed != 0 {
		t.Errorf("Unexpected summary: %+v", transcript.Summary)
	}
	if len(transcript.History) != 3 || transcript.History[0] != "2+3*4 = 14" {
		t.Errorf("Unexpected history: %v", transcript.History)
	}
}

func TestEvalFailureExitsNonZero(t *testing.T) {
	out, err := execute(t, "", "eval", "-o", "json", "1/0", "1+1")
	if !errors.Is(err, errEvaluationFailed) {
		t.Fatalf("Expected errEvaluationFailed, got %v", err)
	}

	transcript := decodeTranscript(t, out)
	failed := transcript.Outcomes[0]
	if failed.Kind != "division by zero" {
		t.Errorf("Expected division by zero, got %q", failed.Kind)
	}
	if failed.Position != 2 {
		t.Errorf("Expected column 2, got %d", failed.Position)
	}
	if failed.Result != "" {
		t.Errorf("Expected no result for a failure, got %q", failed.Result)
	}
	if transcript.Outcomes[1].Result != "2" {
		t.Errorf("Expected session to recover after an error, got %q", transcript.Outcomes[1].Result)
	}
	if transcript.Summary.Failed != 1 {
		t.Errorf("Expected 1 failure, got %d", transcript.Summary.Failed)
	}
}

func TestEvalFromStdinWithMemory(t *testing.T) {
	stdin := `# running total
6*7
MS

10
m+
MC
ln(e)
`
	out, err := execute(t, stdin, "eval", "-o", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	transcript := decodeTranscript(t, out)
	if len(transcript.Outcomes) != 6 {
		t.Fatalf("Expected 6 outcomes, got %d: %+v", len(transcript.Outcomes), transcript.Outcomes)
	}

	tests := []struct {
		expression string
		result     string
		command    bool
	}{
		{"6*7", "42", false},
		{"MS", "42", true},
		{"10", "10", false},
		{"M+", "52", true},
		{"MC", "0", true},
		{"ln(e)", "1", false},
	}
	for i, tt := range tests {
		got := transcript.Outcomes[i]
		if got.Expression != tt.expression || got.Result != tt.result || got.Command != tt.command {
			t.Errorf("Outcome %d: expected %+v, got %+v", i, tt, got)
		}
	}
	if transcript.Summary.Evaluated != 3 {
		t.Errorf("Expected commands to be excluded from the count, got %d", transcript.Summary.Evaluated)
	}
	if transcript.Summary.Memory != "0" {
		t.Errorf("Expected memory 0, got %s", transcript.Summary.Memory)
	}
}

func TestEvalPrecision(t *testing.T) {
	out, err := execute(t, "", "eval", "-o", "json", "--precision", "4", "1/3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := decodeTranscript(t, out).Outcomes[0].Result; got != "0.3333" {
		t.Errorf("Expected 0.3333, got %s", got)
	}

	for _, p := range []string{"99", "0"} {
		if _, err := execute(t, "", "eval", "--precision", p, "1"); err == nil {
			t.Errorf("Expected precision %s to be rejected", p)
		}
	}
}

func TestEvalTextOutput(t *testing.T) {
	out, err := execute(t, "", "eval", "--no-color", "--no-emoji", "1+1", "sqrt(-1)")
	if err == nil {
		t.Fatal("Expected an error for the failed expression")
	}
	for _, want := range []string{"Calculation Transcript", "= 2", "math domain error", "Summary"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestEvalCSVOutput(t *testing.T) {
	out, err := execute(t, "", "eval", "-o", "csv", "7/2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Index,Expression,Result,Error,Kind,Column") {
		t.Errorf("Expected CSV header, got:\n%s", out)
	}
	if !strings.Contains(out, "7/2,3.5") {
		t.Errorf("Expected CSV row, got:\n%s", out)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	if _, err := execute(t, "", "eval", "-o", "xml", "1"); err == nil {
		t.Error("Expected unknown output format to be rejected")
	}
}

func TestReadExpressions(t *testing.T) {
	input := "  1+1  \n\n# comment\n2*3\n   \n"
	lines, err := readExpressions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "1+1" || lines[1] != "2*3" {
		t.Errorf("Expected [1+1 2*3], got %v", lines)
	}
}

func TestIsMemoryCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"MC", true},
		{"ms", true},
		{"M+", true},
		{"MR", false},
		{"M", false},
		{"1+1", false},
	}

	for _, tt := range tests {
		if got := isMemoryCommand(tt.line); got != tt.expected {
			t.Errorf("isMemoryCommand(%q): expected %v, got %v", tt.line, tt.expected, got)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "SciCalc test (abc123) built on today") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "scicalc.yaml")

	out, err := execute(t, "", "--no-emoji", "config", "init", "--minimal", "--path", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("Expected path in output, got %s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}

	if _, err := execute(t, "", "config", "init", "--path", path); err == nil {
		t.Error("Expected init to refuse to overwrite without --force")
	}

	out, err = execute(t, "", "--no-emoji", "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") || !strings.Contains(out, "Theme: dark") {
		t.Errorf("Unexpected validate output: %s", out)
	}
}

func TestConfigValidateReportsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("display:\n  precision: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "--no-emoji", "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(out, "Configuration validation failed") {
		t.Errorf("Expected failure report, got %s", out)
	}

	// The same file stops every other command before it runs
	if _, err := execute(t, "", "--config", path, "eval", "1"); err == nil {
		t.Error("Expected eval to fail with an invalid config")
	}
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "", "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var shown map[string]interface{}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("Expected JSON, got %v", err)
	}
	for _, key := range []string{"display", "ui", "output", "logging"} {
		if _, ok := shown[key]; !ok {
			t.Errorf("Expected key %q in config", key)
		}
	}

	out, err = execute(t, "", "config", "show")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "precision: -1") {
		t.Errorf("Expected YAML output, got %s", out)
	}

	if _, err := execute(t, "", "config", "show", "--format", "toml"); err == nil {
		t.Error("Expected unsupported format error")
	}
}

func TestEnvOverridesReachCommands(t *testing.T) {
	t.Setenv("SCICALC_OUTPUT_DEFAULT_FORMAT", "json")
	out, err := execute(t, "", "eval", "3*3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decodeTranscript(t, out).Outcomes[0].Result != "9" {
		t.Errorf("Expected JSON transcript with 9, got %s", out)
	}
}

func TestWatcherDrain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch.calc")
	if err := os.WriteFile(path, []byte("1+2\n# note\n4/0\nMS\n2*"), 0o600); err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	w := newTestWatcher(path, &out)
	w.attach(file)
	defer w.close()

	if err := w.drain(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "1+2 = 3" {
		t.Errorf("Expected 1+2 = 3, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "4/0: division by zero") {
		t.Errorf("Expected division error, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "MS: memory = 0") {
		t.Errorf("Expected MS after an error to leave memory alone, got %q", lines[2])
	}
	if w.partial != "2*" {
		t.Errorf("Expected incomplete line to be held back, got %q", w.partial)
	}

	// Completing the line evaluates it
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("5\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out.Reset()
	if err := w.drain(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "2*5 = 10" {
		t.Errorf("Expected 2*5 = 10, got %q", out.String())
	}
}

func newTestWatcher(path string, out *bytes.Buffer) *lineWatcher {
	log := newLogger("watch")
	log.SetOutput(&bytes.Buffer{})
	return newLineWatcher(path, session.New(), out, log)
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherRewindsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch.calc")
	if err := os.WriteFile(path, []byte("100+200\n300+400\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	file, err := openWatchFile(path, true, newLogger("watch"))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	w := newTestWatcher(path, &out)
	w.attach(file)
	defer w.close()

	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "300+400 = 700") {
		t.Fatalf("Expected both lines evaluated, got %q", out.String())
	}

	// Rewriting the file with shorter contents starts over from the top
	if err := os.WriteFile(path, []byte("2+2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "2+2 = 4" {
		t.Errorf("Expected 2+2 = 4 after truncation, got %q", out.String())
	}
}

func TestWatcherFollowsRecreatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.calc")
	if err := os.WriteFile(path, []byte("6*7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	file, err := openWatchFile(path, false, newLogger("watch"))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	w := newTestWatcher(path, &out)
	w.attach(file)
	defer w.close()

	appendFile(t, path, "40+4\nMS\n")
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "6*7") || !strings.Contains(out.String(), "MS: memory = 44") {
		t.Errorf("Expected only the appended lines evaluated, got %q", out.String())
	}

	// Events for other files in the directory are ignored
	other := filepath.Join(dir, "other.calc")
	if err := w.handleEvent(fsnotify.Event{Name: other, Op: fsnotify.Remove}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if w.file == nil {
		t.Fatal("Expected an event on another file to keep the watched file open")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if w.file != nil {
		t.Error("Expected the removed file to be closed")
	}

	// A write before the create event is seen still picks the file up
	if err := os.WriteFile(path, []byte("1+1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "1+1 = 2" {
		t.Errorf("Expected recreated file read from the start, got %q", out.String())
	}

	appendFile(t, path, "M+\n")
	out.Reset()
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "M+: memory = 46") {
		t.Errorf("Expected memory to survive the recreation, got %q", out.String())
	}

	// Rename away, then a write to a new file at the path reopens it
	if err := os.Rename(path, filepath.Join(dir, "moved.calc")); err != nil {
		t.Fatal(err)
	}
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Rename}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := os.WriteFile(path, []byte("3^2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "3^2 = 9" {
		t.Errorf("Expected 3^2 = 9 after rename, got %q", out.String())
	}
}

func TestOutputFlagListsFormats(t *testing.T) {
	flag := NewRootCommand("test", "abc123", "today").PersistentFlags().Lookup("output")
	for _, f := range formatter.Formats {
		if !strings.Contains(flag.Usage, f) {
			t.Errorf("Expected --output usage to mention %s, got %q", f, flag.Usage)
		}
	}
}

func TestValidateWatchFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exprs.txt")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"regular file", file, false},
		{"empty path", "  ", true},
		{"traversal", "../../etc/hosts", true},
		{"directory", dir, true},
		{"missing", filepath.Join(dir, "missing.txt"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWatchFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
