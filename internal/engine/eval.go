package engine

import (
	"fmt"
	"strconv"

	"github.com/roach88/tally/internal/ir"
)

// Value is the result of one evaluation. Kind selects which field holds
// the result.
type Value struct {
	Kind     ir.ResultKind
	Int      ir.Int
	Ordering int
	Bool     bool
}

// IntValue wraps an integer result.
func IntValue(x ir.Int) Value {
	return Value{Kind: ir.ResultInt, Int: x}
}

// OrderingValue wraps a Compare result.
func OrderingValue(c int) Value {
	return Value{Kind: ir.ResultOrdering, Ordering: c}
}

// BoolValue wraps a predicate result.
func BoolValue(b bool) Value {
	return Value{Kind: ir.ResultBool, Bool: b}
}

// String renders v the way suites and scenarios spell expected results:
// a canonical literal, "-1"/"0"/"1", or "true"/"false".
func (v Value) String() string {
	switch v.Kind {
	case ir.ResultOrdering:
		return strconv.Itoa(v.Ordering)
	case ir.ResultBool:
		return strconv.FormatBool(v.Bool)
	}
	return ir.Serialize(v.Int)
}

// Canonical returns v as a canonical JSON value: decimals as strings,
// orderings as numbers, predicates as booleans.
func (v Value) Canonical() any {
	switch v.Kind {
	case ir.ResultOrdering:
		return v.Ordering
	case ir.ResultBool:
		return v.Bool
	}
	return v.Int
}

// Eval parses the literal operands and applies op.
// Failures are returned as *RuntimeError.
func (e *Engine) Eval(op ir.Op, literals ...string) (Value, error) {
	if err := checkArity(op, len(literals)); err != nil {
		return Value{}, newRuntimeError(op, literals, err)
	}
	args, err := ir.ParseAll(literals...)
	if err != nil {
		return Value{}, newRuntimeError(op, literals, err)
	}
	v, err := e.apply(op, args)
	if err != nil {
		return Value{}, newRuntimeError(op, literals, err)
	}
	return v, nil
}

// Apply applies op to already parsed operands.
// Failures are returned as *RuntimeError.
func (e *Engine) Apply(op ir.Op, args ...ir.Int) (Value, error) {
	v, err := e.apply(op, args)
	if err != nil {
		operands := make([]string, len(args))
		for i, x := range args {
			operands[i] = x.String()
		}
		return Value{}, newRuntimeError(op, operands, err)
	}
	return v, nil
}

func checkArity(op ir.Op, n int) error {
	info, ok := op.Info()
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownOp, op)
	}
	if n != info.Arity {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArity, info.Name, info.Arity, n)
	}
	return nil
}

func (e *Engine) apply(op ir.Op, args []ir.Int) (Value, error) {
	if err := checkArity(op, len(args)); err != nil {
		return Value{}, err
	}

	switch op {
	case ir.OpNeg:
		return IntValue(e.Negate(args[0])), nil
	case ir.OpAbs:
		return IntValue(e.Abs(args[0])), nil
	}

	x, y := args[0], args[1]
	switch op {
	case ir.OpAdd:
		return intResult(e.Add(x, y))
	case ir.OpSub:
		return intResult(e.Sub(x, y))
	case ir.OpMul:
		return intResult(e.Mul(x, y))
	case ir.OpDiv:
		return intResult(e.Div(x, y))
	case ir.OpMod:
		return intResult(e.Mod(x, y))
	case ir.OpPow:
		return intResult(e.Power(x, y))
	case ir.OpMin:
		return intResult(e.Min(x, y))
	case ir.OpMax:
		return intResult(e.Max(x, y))
	case ir.OpCmp:
		c, err := e.Compare(x, y)
		if err != nil {
			return Value{}, err
		}
		return OrderingValue(c), nil
	case ir.OpEq:
		return boolResult(e.Equal(x, y))
	case ir.OpNe:
		return boolResult(e.NotEqual(x, y))
	case ir.OpLt:
		return boolResult(e.LessThan(x, y))
	case ir.OpLe:
		return boolResult(e.LessThanOrEqual(x, y))
	case ir.OpGt:
		return boolResult(e.GreaterThan(x, y))
	case ir.OpGe:
		return boolResult(e.GreaterThanOrEqual(x, y))
	}
	return Value{}, fmt.Errorf("%w %q", ErrUnknownOp, op)
}

func intResult(x ir.Int, err error) (Value, error) {
	if err != nil {
		return Value{}, err
	}
	return IntValue(x), nil
}

func boolResult(b bool, err error) (Value, error) {
	if err != nil {
		return Value{}, err
	}
	return BoolValue(b), nil
}
