package ir

import (
	"errors"
	"fmt"
)

// ErrInvalidLiteral is the sentinel wrapped by every literal parse failure.
var ErrInvalidLiteral = errors.New("invalid literal")

// LiteralError describes why a decimal literal was rejected.
type LiteralError struct {
	Literal string // the rejected input
	Pos     int    // byte offset of the offending character, -1 when the input is too short
	Reason  string
}

// Error implements the error interface.
func (e *LiteralError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("invalid literal %q at offset %d: %s", e.Literal, e.Pos, e.Reason)
	}
	return fmt.Sprintf("invalid literal %q: %s", e.Literal, e.Reason)
}

// Unwrap returns ErrInvalidLiteral so errors.Is matches every LiteralError.
func (e *LiteralError) Unwrap() error {
	return ErrInvalidLiteral
}

// Parse converts a decimal literal to an Int.
//
// The grammar is:
//
//	literal ::= [ '-' ] digit { digit }
//	digit   ::= '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9'
//
// Leading zeros are accepted and dropped, and "-0" parses to 0. A leading
// '+', surrounding whitespace, an empty digit run or any other byte is
// rejected with a *LiteralError.
func Parse(s string) (Int, error) {
	sign := Positive
	digits := s
	if len(digits) > 0 && digits[0] == '-' {
		sign = Negative
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return Int{}, &LiteralError{Literal: s, Pos: -1, Reason: "no digits"}
	}
	offset := len(s) - len(digits)
	mag := make(Magnitude, len(digits))
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return Int{}, &LiteralError{Literal: s, Pos: offset + i, Reason: fmt.Sprintf("unexpected character %q", c)}
		}
		mag[i] = Digit(c - '0')
	}
	return New(sign, mag), nil
}

// MustParse is like Parse but panics if the literal is invalid.
// Use only in tests or with literals known to be valid.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}

// ParseAll parses every literal in order and stops at the first failure.
func ParseAll(literals ...string) ([]Int, error) {
	out := make([]Int, len(literals))
	for i, s := range literals {
		x, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}
