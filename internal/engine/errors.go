package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/tally/internal/ir"
)

// Sentinel errors. Every error returned by the engine wraps exactly one of
// these or ir.ErrInvalidLiteral, so callers can branch with errors.Is.
var (
	// ErrDivideByZero is returned by Div, Mod and DivMod for a zero divisor.
	ErrDivideByZero = errors.New("division by zero")

	// ErrRecursionLimitExceeded is wrapped by *RecursionLimitError.
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")

	// ErrNegativeExponent is returned by Power for a negative exponent when
	// the engine was built with WithStrictExponent.
	ErrNegativeExponent = errors.New("negative exponent")

	// ErrUnknownOp is returned by Eval and Apply for an unknown operation.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrArity is returned by Eval and Apply when the operand count does
	// not match the operation.
	ErrArity = errors.New("wrong number of operands")
)

// RuntimeError is the error returned by Eval and Apply.
//
// It records which operation failed and on which operands, and carries the
// underlying cause so errors.Is and errors.As still reach the sentinel or
// typed error beneath it.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Op is the operation being evaluated.
	Op ir.Op

	// Operands are the literal operands as given by the caller.
	Operands []string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidLiteral indicates a malformed decimal literal.
	ErrCodeInvalidLiteral RuntimeErrorCode = "INVALID_LITERAL"

	// ErrCodeDivideByZero indicates a zero divisor in Div or Mod.
	ErrCodeDivideByZero RuntimeErrorCode = "DIVIDE_BY_ZERO"

	// ErrCodeRecursionLimit indicates the depth guard tripped.
	ErrCodeRecursionLimit RuntimeErrorCode = "RECURSION_LIMIT_EXCEEDED"

	// ErrCodeNegativeExponent indicates a negative exponent in strict mode.
	ErrCodeNegativeExponent RuntimeErrorCode = "NEGATIVE_EXPONENT"

	// ErrCodeUnknownOp indicates an operation name the engine does not know.
	ErrCodeUnknownOp RuntimeErrorCode = "UNKNOWN_OP"

	// ErrCodeArity indicates a wrong operand count.
	ErrCodeArity RuntimeErrorCode = "ARITY"

	// ErrCodeInternal covers anything else.
	ErrCodeInternal RuntimeErrorCode = "INTERNAL"
)

// Name returns the lowercase form used in suites and scenarios,
// e.g. "divide_by_zero".
func (c RuntimeErrorCode) Name() string {
	return strings.ToLower(string(c))
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s(%s): %v", e.Code, e.Op, strings.Join(e.Operands, ", "), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// CodeOf classifies err. It returns the empty code for a nil error.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &re) && re.Code != "":
		return re.Code
	case errors.Is(err, ir.ErrInvalidLiteral):
		return ErrCodeInvalidLiteral
	case errors.Is(err, ErrDivideByZero):
		return ErrCodeDivideByZero
	case errors.Is(err, ErrRecursionLimitExceeded):
		return ErrCodeRecursionLimit
	case errors.Is(err, ErrNegativeExponent):
		return ErrCodeNegativeExponent
	case errors.Is(err, ErrUnknownOp):
		return ErrCodeUnknownOp
	case errors.Is(err, ErrArity):
		return ErrCodeArity
	}
	return ErrCodeInternal
}

// IsInvalidLiteral returns true if err was caused by a malformed literal.
func IsInvalidLiteral(err error) bool {
	return errors.Is(err, ir.ErrInvalidLiteral)
}

// IsDivideByZero returns true if err was caused by a zero divisor.
func IsDivideByZero(err error) bool {
	return errors.Is(err, ErrDivideByZero)
}

// IsRecursionLimit returns true if err was caused by the depth guard.
func IsRecursionLimit(err error) bool {
	return errors.Is(err, ErrRecursionLimitExceeded)
}

func newRuntimeError(op ir.Op, operands []string, err error) *RuntimeError {
	re := &RuntimeError{
		Code:     CodeOf(err),
		Op:       op,
		Operands: operands,
		Err:      err,
	}
	var rl *RecursionLimitError
	if errors.As(err, &rl) {
		re.Details = map[string]string{
			"depth": fmt.Sprintf("%d", rl.Depth),
			"limit": fmt.Sprintf("%d", rl.Limit),
		}
	}
	return re
}
