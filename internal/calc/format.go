package calc

import (
	"strconv"
	"strings"
)

// Format returns the display form of v: the shortest decimal that parses back
// to v, with integral values shown without a fractional part ("4", not "4.0").
// Exponent notation is used below 1e-4 and from 1e16 upwards.
func Format(v float64) string {
	if v == 0 {
		return "0" // also folds -0
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs < 1e-4 || abs >= 1e16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPrecision rounds v to the given number of significant digits before
// formatting it. A negative precision means shortest round-trip form; 0 is
// treated as 1 since a result needs at least one digit.
func FormatPrecision(v float64, precision int) string {
	if precision < 0 {
		return Format(v)
	}
	if precision == 0 {
		precision = 1
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', precision, 64), 64)
	if err != nil {
		return Format(v)
	}
	return Format(rounded)
}

// ParseNumber parses s as a plain decimal literal with an optional sign.
// Surrounding whitespace is ignored. Unlike strconv.ParseFloat it rejects
// "inf", "nan", hex floats and underscores.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	body := s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if body == "" || (body[0] != '.' && !isDigit(body[0])) {
		return 0, false
	}
	if scanNumber(body, 0) != len(body) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
