package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/ir"
	"github.com/roach88/tally/internal/testutil"
)

// defaultSampleDigits bounds sampled operands when Property.Digits is 0.
const defaultSampleDigits = 20

// oracleExponents are the exponents the oracle checks Power with; operand
// values would make apd's reference result unreasonably large.
var oracleExponents = []string{"0", "1", "2", "3", "7", "16"}

// PropertyError is returned when a law fails.
// It includes the operands and both outcomes to help debug the failure.
type PropertyError struct {
	Type     string   // property type
	Law      string   // the equation that failed, e.g. "a+b = b+a"
	Op       ir.Op    // operation under test
	Operands []string // operands the law failed for
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Property failed: %s (%s) for %s\n", e.Type, e.Op, e.Law)
	fmt.Fprintf(&buf, "  Operands: [%s]\n", strings.Join(e.Operands, ", "))
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// propertyCheck evaluates one Property against an engine.
type propertyCheck struct {
	eng  *engine.Engine
	prop Property
	op   ir.Op
}

// outcome evaluates op and renders the result, or "error <code>".
func (c *propertyCheck) outcome(op ir.Op, args ...string) string {
	v, err := c.eng.Eval(op, args...)
	if err != nil {
		return "error " + engine.CodeOf(err).Name()
	}
	return v.String()
}

// value is like outcome but turns an engine error into a PropertyError,
// for intermediate results a law builds on.
func (c *propertyCheck) value(law string, operands []string, op ir.Op, args ...string) (string, error) {
	v, err := c.eng.Eval(op, args...)
	if err != nil {
		return "", &PropertyError{
			Type: c.prop.Type, Law: law, Op: c.op, Operands: operands,
			Expected: fmt.Sprintf("%s(%s) to succeed", op, strings.Join(args, ", ")),
			Actual:   err.Error(),
		}
	}
	return v.String(), nil
}

func (c *propertyCheck) expect(law string, operands []string, want, got string) error {
	if want == got {
		return nil
	}
	return &PropertyError{
		Type: c.prop.Type, Law: law, Op: c.op, Operands: operands,
		Expected: want, Actual: got,
	}
}

// operands returns the listed operands followed by the samples.
func operands(p Property) []string {
	out := append([]string(nil), p.Operands...)
	if p.Samples == 0 {
		return out
	}
	digits := p.Digits
	if digits == 0 {
		digits = defaultSampleDigits
	}
	gen := testutil.NewLiterals(p.Seed)
	for i := 0; i < p.Samples; i++ {
		out = append(out, gen.Next(digits))
	}
	return out
}

func norm(s string) string {
	return ir.MustParse(s).String()
}

func isZero(s string) bool {
	return ir.MustParse(s).IsZero()
}

// pairs calls fn for every ordered pair (a, b) with a drawn before b,
// and for (a, a).
func pairs(xs []string, fn func(a, b string) error) error {
	for i := range xs {
		for j := i; j < len(xs); j++ {
			if err := fn(xs[i], xs[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckProperty checks p against eng and returns the first failure.
func CheckProperty(eng *engine.Engine, p Property) error {
	ops := propertyOps[p.Type]
	if ops == nil {
		return fmt.Errorf("unknown property type %q", p.Type)
	}
	c := &propertyCheck{eng: eng, prop: p, op: ops[0]}
	if p.Op != "" {
		op, err := ir.ParseOp(p.Op)
		if err != nil {
			return err
		}
		c.op = op
	}
	xs := operands(p)

	switch p.Type {
	case PropCommutative:
		return c.commutative(xs)
	case PropAssociative:
		return c.associative(xs)
	case PropIdentity:
		return c.identity(xs)
	case PropInverse:
		return c.inverse(xs)
	case PropDivMod:
		return c.divMod(xs)
	case PropTrichotomy:
		return c.trichotomy(xs)
	case PropPowerLaws:
		return c.powerLaws(xs)
	case PropRoundTrip:
		return c.roundTrip(xs)
	case PropOracle:
		if p.Op != "" {
			ops = []ir.Op{c.op}
		}
		for _, op := range ops {
			c.op = op
			if err := c.oracle(xs); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func (c *propertyCheck) commutative(xs []string) error {
	return pairs(xs, func(a, b string) error {
		return c.expect("a op b = b op a", []string{a, b},
			c.outcome(c.op, a, b), c.outcome(c.op, b, a))
	})
}

// associative checks cyclic triples (x[i], x[i+1], x[i+2]).
func (c *propertyCheck) associative(xs []string) error {
	const law = "(a op b) op c = a op (b op c)"
	n := len(xs)
	for i := range xs {
		a, b, d := xs[i], xs[(i+1)%n], xs[(i+2)%n]
		operands := []string{a, b, d}

		ab, err := c.value(law, operands, c.op, a, b)
		if err != nil {
			return err
		}
		bd, err := c.value(law, operands, c.op, b, d)
		if err != nil {
			return err
		}
		if err := c.expect(law, operands, c.outcome(c.op, ab, d), c.outcome(c.op, a, bd)); err != nil {
			return err
		}
	}
	return nil
}

func (c *propertyCheck) identity(xs []string) error {
	for _, a := range xs {
		want := norm(a)
		operands := []string{a}
		var err error
		switch c.op {
		case ir.OpAdd:
			err = errors.Join(
				c.expect("a+0 = a", operands, want, c.outcome(ir.OpAdd, a, "0")),
				c.expect("0+a = a", operands, want, c.outcome(ir.OpAdd, "0", a)),
			)
		case ir.OpSub:
			err = c.expect("a-0 = a", operands, want, c.outcome(ir.OpSub, a, "0"))
		case ir.OpMul:
			err = errors.Join(
				c.expect("a*1 = a", operands, want, c.outcome(ir.OpMul, a, "1")),
				c.expect("1*a = a", operands, want, c.outcome(ir.OpMul, "1", a)),
				c.expect("a*0 = 0", operands, "0", c.outcome(ir.OpMul, a, "0")),
			)
		case ir.OpDiv:
			err = c.expect("a/1 = a", operands, want, c.outcome(ir.OpDiv, a, "1"))
		case ir.OpPow:
			err = c.expect("a^1 = a", operands, want, c.outcome(ir.OpPow, a, "1"))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *propertyCheck) inverse(xs []string) error {
	for _, a := range xs {
		operands := []string{a}
		if c.op == ir.OpSub {
			if err := c.expect("a-a = 0", operands, "0", c.outcome(ir.OpSub, a, a)); err != nil {
				return err
			}
			continue
		}
		neg, err := c.value("a+(-a) = 0", operands, ir.OpNeg, a)
		if err != nil {
			return err
		}
		if err := c.expect("a+(-a) = 0", operands, "0", c.outcome(ir.OpAdd, a, neg)); err != nil {
			return err
		}
	}
	return nil
}

func (c *propertyCheck) divMod(xs []string) error {
	return pairs(xs, func(a, b string) error {
		operands := []string{a, b}
		if isZero(b) {
			return c.expect("a/0 fails", operands,
				"error "+ir.ErrorNameDivideByZero, c.outcome(ir.OpDiv, a, b))
		}

		const law = "(a/b)*b + a%b = a"
		q, err := c.value(law, operands, ir.OpDiv, a, b)
		if err != nil {
			return err
		}
		r, err := c.value(law, operands, ir.OpMod, a, b)
		if err != nil {
			return err
		}
		qb, err := c.value(law, operands, ir.OpMul, q, b)
		if err != nil {
			return err
		}
		if err := c.expect(law, operands, norm(a), c.outcome(ir.OpAdd, qb, r)); err != nil {
			return err
		}

		absR, _ := c.value(law, operands, ir.OpAbs, r)
		absB, _ := c.value(law, operands, ir.OpAbs, b)
		if err := c.expect("|a%b| < |b|", operands, "true", c.outcome(ir.OpLt, absR, absB)); err != nil {
			return err
		}
		if r != "0" {
			return c.expect("sign(a%b) = sign(a)", operands,
				fmt.Sprint(strings.HasPrefix(norm(a), "-")), fmt.Sprint(strings.HasPrefix(r, "-")))
		}
		return nil
	})
}

func (c *propertyCheck) trichotomy(xs []string) error {
	return pairs(xs, func(a, b string) error {
		operands := []string{a, b}
		lt := c.outcome(ir.OpLt, a, b) == "true"
		eq := c.outcome(ir.OpEq, a, b) == "true"
		gt := c.outcome(ir.OpGt, a, b) == "true"

		held := 0
		for _, v := range []bool{lt, eq, gt} {
			if v {
				held++
			}
		}
		if err := c.expect("exactly one of a<b, a=b, a>b", operands, "1", fmt.Sprint(held)); err != nil {
			return err
		}

		want := "0"
		switch {
		case lt:
			want = "-1"
		case gt:
			want = "1"
		}
		return errors.Join(
			c.expect("cmp(a,b) agrees with <", operands, want, c.outcome(ir.OpCmp, a, b)),
			c.expect("a<=b = a<b or a=b", operands, fmt.Sprint(lt || eq), c.outcome(ir.OpLe, a, b)),
			c.expect("a>=b = a>b or a=b", operands, fmt.Sprint(gt || eq), c.outcome(ir.OpGe, a, b)),
			c.expect("a!=b = not a=b", operands, fmt.Sprint(!eq), c.outcome(ir.OpNe, a, b)),
		)
	})
}

func (c *propertyCheck) powerLaws(xs []string) error {
	for _, a := range xs {
		operands := []string{a}
		if err := c.expect("a^0 = 1", operands, "1", c.outcome(ir.OpPow, a, "0")); err != nil {
			return err
		}

		wantNeg := "0"
		if c.eng.StrictExponent() {
			wantNeg = "error " + ir.ErrorNameNegativeExponent
		}
		if err := c.expect("a^-1", operands, wantNeg, c.outcome(ir.OpPow, a, "-1")); err != nil {
			return err
		}

		for _, mn := range [][2]int{{1, 2}, {2, 3}, {3, 5}} {
			m, n := fmt.Sprint(mn[0]), fmt.Sprint(mn[1])
			law := fmt.Sprintf("a^%s * a^%s = a^%d", m, n, mn[0]+mn[1])
			am, err := c.value(law, operands, ir.OpPow, a, m)
			if err != nil {
				return err
			}
			an, err := c.value(law, operands, ir.OpPow, a, n)
			if err != nil {
				return err
			}
			if err := c.expect(law, operands,
				c.outcome(ir.OpPow, a, fmt.Sprint(mn[0]+mn[1])), c.outcome(ir.OpMul, am, an)); err != nil {
				return err
			}
		}

		const law = "(a^2)^3 = a^6"
		a2, err := c.value(law, operands, ir.OpPow, a, "2")
		if err != nil {
			return err
		}
		if err := c.expect(law, operands, c.outcome(ir.OpPow, a, "6"), c.outcome(ir.OpPow, a2, "3")); err != nil {
			return err
		}

		neg, err := c.value("(-a)^2 = a^2", operands, ir.OpNeg, a)
		if err != nil {
			return err
		}
		if err := c.expect("(-a)^2 = a^2", operands, a2, c.outcome(ir.OpPow, neg, "2")); err != nil {
			return err
		}
	}
	return nil
}

func (c *propertyCheck) roundTrip(xs []string) error {
	for _, a := range xs {
		operands := []string{a}
		x := ir.MustParse(a)

		text, err := x.MarshalText()
		if err != nil {
			return err
		}
		var back ir.Int
		if err := back.UnmarshalText(text); err != nil {
			return err
		}
		if err := c.expect("parse(serialize(a)) = a", operands, x.String(), back.String()); err != nil {
			return err
		}
		if v, ok := x.Int64(); ok {
			if err := c.expect("int64 round trip", operands, x.String(), ir.FromInt64(v).String()); err != nil {
				return err
			}
		}

		neg, err := c.value("-(-a) = a", operands, ir.OpNeg, a)
		if err != nil {
			return err
		}
		if c.op == ir.OpNeg {
			if err := c.expect("-(-a) = a", operands, norm(a), c.outcome(ir.OpNeg, neg)); err != nil {
				return err
			}
			continue
		}
		abs, err := c.value("|a|", operands, ir.OpAbs, a)
		if err != nil {
			return err
		}
		if err := errors.Join(
			c.expect("||a|| = |a|", operands, abs, c.outcome(ir.OpAbs, abs)),
			c.expect("|-a| = |a|", operands, abs, c.outcome(ir.OpAbs, neg)),
		); err != nil {
			return err
		}
	}
	return nil
}

// oracle compares the engine with the apd reference for c.op.
func (c *propertyCheck) oracle(xs []string) error {
	check := func(args ...string) error {
		want, err := Oracle(c.op, args...)
		if err != nil {
			if !errors.Is(err, engine.ErrDivideByZero) {
				return err
			}
			want = "error " + ir.ErrorNameDivideByZero
		}
		return c.expect("engine = apd", args, want, c.outcome(c.op, args...))
	}

	if c.op.Arity() == 1 {
		for _, a := range xs {
			if err := check(a); err != nil {
				return err
			}
		}
		return nil
	}
	if c.op == ir.OpPow {
		for _, a := range xs {
			for _, n := range oracleExponents {
				if err := check(a, n); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return pairs(xs, func(a, b string) error {
		return errors.Join(check(a, b), check(b, a))
	})
}
