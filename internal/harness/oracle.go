package harness

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/ir"
)

// maxOracleExponent bounds exponents the oracle will compute.
const maxOracleExponent = 4096

// Oracle evaluates operations with apd's BigInt, independently of the
// engine, and renders results the way engine.Value.String does.
//
// Division truncates toward zero and the remainder takes the sign of the
// dividend, matching BigInt.Quo and BigInt.Rem.
func Oracle(op ir.Op, literals ...string) (string, error) {
	if op.Arity() != len(literals) {
		return "", fmt.Errorf("oracle: %s takes %d operands, got %d", op, op.Arity(), len(literals))
	}
	xs := make([]*apd.BigInt, len(literals))
	for i, s := range literals {
		// Validate with the engine's grammar; apd alone accepts '+'.
		if _, err := ir.Parse(s); err != nil {
			return "", err
		}
		x, ok := new(apd.BigInt).SetString(s, 10)
		if !ok {
			return "", fmt.Errorf("oracle: apd rejected %q", s)
		}
		xs[i] = x
	}

	z := new(apd.BigInt)
	switch op {
	case ir.OpNeg:
		return z.Neg(xs[0]).String(), nil
	case ir.OpAbs:
		return z.Abs(xs[0]).String(), nil
	}

	x, y := xs[0], xs[1]
	switch op {
	case ir.OpAdd:
		z.Add(x, y)
	case ir.OpSub:
		z.Sub(x, y)
	case ir.OpMul:
		z.Mul(x, y)
	case ir.OpDiv, ir.OpMod:
		if y.Sign() == 0 {
			return "", engine.ErrDivideByZero
		}
		if op == ir.OpDiv {
			z.Quo(x, y)
		} else {
			z.Rem(x, y)
		}
	case ir.OpPow:
		if y.Sign() < 0 {
			return "0", nil
		}
		if !y.IsInt64() || y.Int64() > maxOracleExponent {
			return "", fmt.Errorf("oracle: exponent %s too large", y)
		}
		z.SetInt64(1)
		for n := y.Int64(); n > 0; n-- {
			z.Mul(z, x)
		}
	case ir.OpCmp:
		return fmt.Sprint(x.Cmp(y)), nil
	case ir.OpEq:
		return fmt.Sprint(x.Cmp(y) == 0), nil
	case ir.OpNe:
		return fmt.Sprint(x.Cmp(y) != 0), nil
	case ir.OpLt:
		return fmt.Sprint(x.Cmp(y) < 0), nil
	case ir.OpLe:
		return fmt.Sprint(x.Cmp(y) <= 0), nil
	case ir.OpGt:
		return fmt.Sprint(x.Cmp(y) > 0), nil
	case ir.OpGe:
		return fmt.Sprint(x.Cmp(y) >= 0), nil
	case ir.OpMin:
		if y.Cmp(x) < 0 {
			return y.String(), nil
		}
		return x.String(), nil
	case ir.OpMax:
		if y.Cmp(x) > 0 {
			return y.String(), nil
		}
		return x.String(), nil
	default:
		return "", fmt.Errorf("oracle: unsupported operation %q", op)
	}
	return z.String(), nil
}
