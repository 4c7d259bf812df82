package calc

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "name"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: start}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: start}
	case '*':
		l.i++
		if l.i < len(l.s) && l.s[l.i] == '*' {
			l.i++
			return token{kind: tokPow, text: "**", pos: start}
		}
		return token{kind: tokStar, text: "*", pos: start}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: start}
	case '^':
		l.i++
		return token{kind: tokPow, text: "^", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	}

	ch := l.s[l.i]
	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(l.s[l.i]) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}
	if ch == '.' || isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return token{kind: tokIllegal, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, pos: start, num: f}
	}

	// Consume a whole UTF-8 sequence so the error shows the real character.
	r, size := utf8.DecodeRuneInString(l.s[start:])
	l.i += size
	return token{kind: tokIllegal, text: string(r), pos: start}
}

// scanNumber returns the end offset of the decimal literal starting at i.
// An exponent suffix is only taken when digits follow it, so "2e" lexes as
// the number 2 followed by the identifier e.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
