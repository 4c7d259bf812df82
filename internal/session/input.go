package session

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/yildizm/SciCalc/internal/calc"
	"github.com/yildizm/SciCalc/internal/keypad"
)

// keyChars are the characters a raw key press may append
const keyChars = "0123456789+-*/.()"

// Key characters with a special meaning
const (
	KeyEnter     = '\r'
	KeyNewline   = '\n'
	KeyBackspace = '\b'
	KeyDelete    = 0x7f
)

// EventKind distinguishes the input events the presentation layer raises
type EventKind int

const (
	EventButton EventKind = iota // Label holds the button text
	EventKey                     // Char holds the typed character
	EventCommit                  // Enter
	EventDelete                  // Backspace
)

// Event is one input event
type Event struct {
	Kind  EventKind
	Label string
	Char  rune
}

// Handle applies one input event. Only evaluation can fail.
func (s *Session) Handle(ev Event) error {
	switch ev.Kind {
	case EventButton:
		return s.Press(ev.Label)
	case EventKey:
		return s.Key(ev.Char)
	case EventCommit:
		_, err := s.Commit()
		return err
	case EventDelete:
		s.Backspace()
	}
	return nil
}

// Press activates the button with the given label. Unknown labels are ignored.
func (s *Session) Press(label string) error {
	switch keypad.Classify(label) {
	case keypad.KindDigit, keypad.KindOperator, keypad.KindParen:
		s.append(label)
	case keypad.KindFunction:
		s.append(label + "(")
	case keypad.KindConstant:
		if label == keypad.Pi {
			s.append(calc.Format(math.Pi))
		} else {
			s.append(calc.Format(math.E))
		}
	case keypad.KindClear:
		s.Clear()
	case keypad.KindEquals:
		_, err := s.Commit()
		return err
	case keypad.KindMemory:
		s.pressMemory(label)
	case keypad.KindTheme:
		s.ToggleTheme()
	}
	return nil
}

func (s *Session) pressMemory(label string) {
	switch label {
	case keypad.MemoryClear:
		s.MemoryClear()
	case keypad.MemoryRecall:
		s.MemoryRecall()
	case keypad.MemoryStore:
		s.MemoryStore()
	case keypad.MemoryAdd:
		s.MemoryAdd()
	}
}

// Key handles a raw character from the keyboard. Digits, operators, the
// decimal point and parentheses are appended; Enter evaluates; Backspace
// deletes. Anything else is ignored.
func (s *Session) Key(ch rune) error {
	switch {
	case ch == KeyEnter || ch == KeyNewline:
		_, err := s.Commit()
		return err
	case ch == KeyBackspace || ch == KeyDelete:
		s.Backspace()
	case ch != 0 && strings.ContainsRune(keyChars, ch):
		s.append(string(ch))
	}
	return nil
}

// Clear empties the buffer
func (s *Session) Clear() {
	s.buffer = ""
	s.errorShown = false
}

// Backspace removes the last character of the buffer. On the error sentinel
// it clears the whole buffer.
func (s *Session) Backspace() {
	if s.errorShown {
		s.Clear()
		return
	}
	if s.buffer == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.buffer)
	s.buffer = s.buffer[:len(s.buffer)-size]
}

func (s *Session) append(text string) {
	if s.errorShown {
		s.buffer = ""
		s.errorShown = false
	}
	s.buffer += text
}
