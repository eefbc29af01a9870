package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tally/internal/ir"
)

func TestCodeOf(t *testing.T) {
	_, litErr := ir.Parse("1x")

	tests := []struct {
		name string
		err  error
		want RuntimeErrorCode
	}{
		{"nil", nil, ""},
		{"literal", litErr, ErrCodeInvalidLiteral},
		{"divide", ErrDivideByZero, ErrCodeDivideByZero},
		{"wrapped divide", fmt.Errorf("outer: %w", ErrDivideByZero), ErrCodeDivideByZero},
		{"recursion", &RecursionLimitError{Op: ir.OpMul, Depth: 3, Limit: 2}, ErrCodeRecursionLimit},
		{"negative exponent", ErrNegativeExponent, ErrCodeNegativeExponent},
		{"unknown op", ErrUnknownOp, ErrCodeUnknownOp},
		{"arity", ErrArity, ErrCodeArity},
		{"runtime error", &RuntimeError{Code: ErrCodeDivideByZero, Err: errors.New("x")}, ErrCodeDivideByZero},
		{"other", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestRuntimeErrorCodeName(t *testing.T) {
	assert.Equal(t, ir.ErrorNameDivideByZero, ErrCodeDivideByZero.Name())
	assert.Equal(t, ir.ErrorNameInvalidLiteral, ErrCodeInvalidLiteral.Name())
	assert.Equal(t, ir.ErrorNameRecursionLimit, ErrCodeRecursionLimit.Name())
	assert.Equal(t, ir.ErrorNameNegativeExponent, ErrCodeNegativeExponent.Name())
}

func TestRuntimeError_ErrorFormat(t *testing.T) {
	err := newRuntimeError(ir.OpDiv, []string{"1", "0"}, ErrDivideByZero)
	assert.Equal(t, "DIVIDE_BY_ZERO: div(1, 0): division by zero", err.Error())

	bare := &RuntimeError{Code: ErrCodeInternal, Err: errors.New("boom")}
	assert.Equal(t, "INTERNAL: boom", bare.Error())
}

func TestErrorHelpers(t *testing.T) {
	wrapped := newRuntimeError(ir.OpMod, []string{"1", "0"}, ErrDivideByZero)
	assert.True(t, IsDivideByZero(wrapped))
	assert.False(t, IsInvalidLiteral(wrapped))
	assert.False(t, IsRecursionLimit(wrapped))

	_, litErr := ir.Parse("-")
	assert.True(t, IsInvalidLiteral(newRuntimeError(ir.OpNeg, []string{"-"}, litErr)))

	rl := newRuntimeError(ir.OpAdd, nil, &RecursionLimitError{Op: ir.OpAdd, Depth: 9, Limit: 8})
	assert.True(t, IsRecursionLimit(rl))
	assert.True(t, IsRecursionLimitError(rl))
}
