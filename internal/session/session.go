// Package session implements the calculator session: the expression buffer,
// the memory register, the history log and the theme flag, together with the
// input handling that mutates them.
package session

import (
	"time"

	"github.com/yildizm/SciCalc/internal/calc"
	"github.com/yildizm/SciCalc/internal/history"
	"github.com/yildizm/SciCalc/internal/logger"
	"github.com/yildizm/SciCalc/internal/theme"
)

// ErrorSentinel is shown in the buffer after a failed evaluation. The next
// appending input replaces it.
const ErrorSentinel = "Error"

// Session holds all calculator state for one run of the program
type Session struct {
	buffer     string
	errorShown bool
	memory     float64
	history    *history.Recorder
	theme      *theme.Controller
	precision  int
	log        *logger.Logger
}

// Option configures a Session
type Option func(*Session)

// WithPrecision rounds displayed results to n significant digits (-1 = shortest)
func WithPrecision(n int) Option {
	return func(s *Session) { s.precision = n }
}

// WithDarkTheme selects the starting palette
func WithDarkTheme(dark bool) Option {
	return func(s *Session) { s.theme = theme.New(dark) }
}

// WithLogger sets the logger used for debug output
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l.WithComponent("session") }
}

// New creates a session with an empty buffer, zero memory, empty history and
// the dark theme unless configured otherwise.
func New(opts ...Option) *Session {
	s := &Session{
		history:   history.NewRecorder(),
		theme:     theme.New(true),
		precision: -1,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffer returns the current expression buffer
func (s *Session) Buffer() string {
	return s.buffer
}

// SetBuffer replaces the buffer wholesale, as when the user edits the display
// text directly.
func (s *Session) SetBuffer(text string) {
	s.buffer = text
	s.errorShown = false
}

// ShowingError reports whether the buffer holds the error sentinel
func (s *Session) ShowingError() bool {
	return s.errorShown
}

// Memory returns the memory register
func (s *Session) Memory() float64 {
	return s.memory
}

// History returns the history log in insertion order
func (s *Session) History() []string {
	return s.history.Entries()
}

// HistoryLen returns the number of history entries without copying the log
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// Theme returns the theme controller
func (s *Session) Theme() *theme.Controller {
	return s.theme
}

// ToggleTheme switches between the dark and light palettes
func (s *Session) ToggleTheme() {
	s.theme.Toggle()
	s.log.Debug("theme switched to %s", s.theme.Name())
}

// Commit evaluates the buffer. On success the buffer is replaced by the
// result and "<expression> = <result>" is appended to the history. On failure
// the buffer becomes ErrorSentinel and the *calc.EvaluationError is returned
// for the caller to show.
func (s *Session) Commit() (string, error) {
	expression := s.buffer
	start := time.Now()
	v, err := calc.Evaluate(expression)
	if err != nil {
		s.buffer = ErrorSentinel
		s.errorShown = true
		s.log.DebugWithFields("evaluation failed", []logger.Field{logger.Expr(expression), logger.Err(err)})
		return "", err
	}

	result := calc.FormatPrecision(v, s.precision)
	s.buffer = result
	s.errorShown = false
	s.history.Record(history.Entry(expression, result))
	s.log.DebugWithFields("evaluated", []logger.Field{
		logger.Expr(expression),
		logger.Result(result),
		logger.Duration(time.Since(start)),
	})
	return result, nil
}
