package compiler

import (
	"fmt"
	"slices"

	"github.com/roach88/tally/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrUnknownOp        = "E201" // op is not an engine operation
	ErrArity            = "E202" // wrong number of args for op
	ErrInvalidLiteral   = "E203" // arg or want is not a decimal literal
	ErrExpectation      = "E204" // exactly one of want/error is required
	ErrUnknownErrorCode = "E205" // error names no known error code
	ErrEmptySuite       = "E206" // suite has no cases
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled suite.
// Returns all errors found (does not fail-fast).
//
// A case expecting invalid_literal may carry malformed args; every other
// case must have well-formed args.
func Validate(s *ir.Suite) []ValidationError {
	var errs []ValidationError

	// E206: at least one case
	if len(s.Cases) == 0 {
		errs = append(errs, ValidationError{
			Field:   "cases",
			Message: fmt.Sprintf("suite %q has no cases", s.Name),
			Code:    ErrEmptySuite,
		})
	}

	for i, c := range s.Cases {
		errs = append(errs, validateCase(c, fmt.Sprintf("cases[%d]", i))...)
	}
	return errs
}

func validateCase(c ir.Case, field string) []ValidationError {
	var errs []ValidationError

	info, known := c.Op.Info()
	if !known {
		// E201
		errs = append(errs, ValidationError{
			Field:   field + ".op",
			Message: fmt.Sprintf("unknown operation %q", c.Op),
			Code:    ErrUnknownOp,
		})
	} else if len(c.Args) != info.Arity {
		// E202
		errs = append(errs, ValidationError{
			Field:   field + ".args",
			Message: fmt.Sprintf("%s takes %d args, got %d", c.Op, info.Arity, len(c.Args)),
			Code:    ErrArity,
		})
	}

	// E204: exactly one expectation
	switch {
	case c.Want == "" && c.WantError == "":
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "one of want or error is required",
			Code:    ErrExpectation,
		})
	case c.Want != "" && c.WantError != "":
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "want and error are mutually exclusive",
			Code:    ErrExpectation,
		})
	}

	// E205
	if c.WantError != "" && !slices.Contains(ir.ErrorNames, c.WantError) {
		errs = append(errs, ValidationError{
			Field:   field + ".error",
			Message: fmt.Sprintf("unknown error code %q, want one of %v", c.WantError, ir.ErrorNames),
			Code:    ErrUnknownErrorCode,
		})
	}

	// E203
	if c.WantError != ir.ErrorNameInvalidLiteral {
		for j, arg := range c.Args {
			if _, err := ir.Parse(arg); err != nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.args[%d]", field, j),
					Message: err.Error(),
					Code:    ErrInvalidLiteral,
				})
			}
		}
	}
	if c.Want != "" && known {
		if err := validateWant(c.Want, info.Result); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".want",
				Message: err.Error(),
				Code:    ErrInvalidLiteral,
			})
		}
	}

	return errs
}

func validateWant(want string, kind ir.ResultKind) error {
	switch kind {
	case ir.ResultBool:
		if want != "true" && want != "false" {
			return fmt.Errorf("want %q is not a boolean", want)
		}
	case ir.ResultOrdering:
		if want != "-1" && want != "0" && want != "1" {
			return fmt.Errorf("want %q is not -1, 0 or 1", want)
		}
	default:
		x, err := ir.Parse(want)
		if err != nil {
			return err
		}
		// Results are always canonical.
		if x.String() != want {
			return fmt.Errorf("want %q is not canonical, use %q", want, x.String())
		}
	}
	return nil
}
