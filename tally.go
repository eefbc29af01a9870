package tally

import (
	"log/slog"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/ir"
	"github.com/roach88/tally/internal/memo"
)

// Errors matched with errors.Is against any error this package returns.
var (
	ErrInvalidLiteral         = ir.ErrInvalidLiteral
	ErrDivideByZero           = engine.ErrDivideByZero
	ErrRecursionLimitExceeded = engine.ErrRecursionLimitExceeded
	ErrNegativeExponent       = engine.ErrNegativeExponent
)

// Calculator evaluates operations on decimal literals.
// It is safe for concurrent use.
type Calculator struct {
	engine *engine.Engine
}

// Option configures a Calculator.
type Option func(*options)

type options struct {
	engine []engine.EngineOption
}

// WithMaxDepth bounds the recursion depth of one operation.
// The default is 100000; 0 removes the bound.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.engine = append(o.engine, engine.WithMaxDepth(depth))
	}
}

// WithStrictExponent makes Power fail with ErrNegativeExponent for a
// negative exponent.
func WithStrictExponent() Option {
	return func(o *options) {
		o.engine = append(o.engine, engine.WithStrictExponent())
	}
}

// WithLogger sets the logger used for evaluation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.engine = append(o.engine, engine.WithLogger(logger))
	}
}

// WithMemo caches results in process.
func WithMemo() Option {
	return func(o *options) {
		o.engine = append(o.engine, engine.WithMemo(memo.New(memo.Config{})))
	}
}

// New returns a Calculator.
func New(opts ...Option) *Calculator {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Calculator{engine: engine.New(o.engine...)}
}

var std = New()

func (c *Calculator) literal(op ir.Op, args ...string) (string, error) {
	v, err := c.engine.Eval(op, args...)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (c *Calculator) predicate(op ir.Op, a, b string) (bool, error) {
	v, err := c.engine.Eval(op, a, b)
	if err != nil {
		return false, err
	}
	return v.Bool, nil
}

// Add returns a + b.
func (c *Calculator) Add(a, b string) (string, error) { return c.literal(ir.OpAdd, a, b) }

// Sub returns a - b.
func (c *Calculator) Sub(a, b string) (string, error) { return c.literal(ir.OpSub, a, b) }

// Mul returns a * b.
func (c *Calculator) Mul(a, b string) (string, error) { return c.literal(ir.OpMul, a, b) }

// Div returns a / b truncated toward zero.
func (c *Calculator) Div(a, b string) (string, error) { return c.literal(ir.OpDiv, a, b) }

// Mod returns the remainder of a / b with the sign of a.
func (c *Calculator) Mod(a, b string) (string, error) { return c.literal(ir.OpMod, a, b) }

// Power returns a raised to n.
func (c *Calculator) Power(a, n string) (string, error) { return c.literal(ir.OpPow, a, n) }

// Negate returns -a.
func (c *Calculator) Negate(a string) (string, error) { return c.literal(ir.OpNeg, a) }

// Abs returns |a|.
func (c *Calculator) Abs(a string) (string, error) { return c.literal(ir.OpAbs, a) }

// Min returns the smaller of a and b.
func (c *Calculator) Min(a, b string) (string, error) { return c.literal(ir.OpMin, a, b) }

// Max returns the larger of a and b.
func (c *Calculator) Max(a, b string) (string, error) { return c.literal(ir.OpMax, a, b) }

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func (c *Calculator) Compare(a, b string) (int, error) {
	v, err := c.engine.Eval(ir.OpCmp, a, b)
	if err != nil {
		return 0, err
	}
	return v.Ordering, nil
}

// Equal reports a == b.
func (c *Calculator) Equal(a, b string) (bool, error) { return c.predicate(ir.OpEq, a, b) }

// NotEqual reports a != b.
func (c *Calculator) NotEqual(a, b string) (bool, error) { return c.predicate(ir.OpNe, a, b) }

// LessThan reports a < b.
func (c *Calculator) LessThan(a, b string) (bool, error) { return c.predicate(ir.OpLt, a, b) }

// LessThanOrEqual reports a <= b.
func (c *Calculator) LessThanOrEqual(a, b string) (bool, error) { return c.predicate(ir.OpLe, a, b) }

// GreaterThan reports a > b.
func (c *Calculator) GreaterThan(a, b string) (bool, error) { return c.predicate(ir.OpGt, a, b) }

// GreaterThanOrEqual reports a >= b.
func (c *Calculator) GreaterThanOrEqual(a, b string) (bool, error) {
	return c.predicate(ir.OpGe, a, b)
}

// IsLiteral reports whether s is a valid decimal literal.
func IsLiteral(s string) bool {
	_, err := ir.Parse(s)
	return err == nil
}

// Normalize returns the canonical form of a literal.
func Normalize(s string) (string, error) {
	x, err := ir.Parse(s)
	if err != nil {
		return "", err
	}
	return x.String(), nil
}

// Add returns a + b.
func Add(a, b string) (string, error) { return std.Add(a, b) }

// Sub returns a - b.
func Sub(a, b string) (string, error) { return std.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b string) (string, error) { return std.Mul(a, b) }

// Div returns a / b truncated toward zero.
func Div(a, b string) (string, error) { return std.Div(a, b) }

// Mod returns the remainder of a / b with the sign of a.
func Mod(a, b string) (string, error) { return std.Mod(a, b) }

// Power returns a raised to n. A negative n gives "0".
func Power(a, n string) (string, error) { return std.Power(a, n) }

// Negate returns -a.
func Negate(a string) (string, error) { return std.Negate(a) }

// Abs returns |a|.
func Abs(a string) (string, error) { return std.Abs(a) }

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func Compare(a, b string) (int, error) { return std.Compare(a, b) }

// Equal reports a == b.
func Equal(a, b string) (bool, error) { return std.Equal(a, b) }

// NotEqual reports a != b.
func NotEqual(a, b string) (bool, error) { return std.NotEqual(a, b) }

// LessThan reports a < b.
func LessThan(a, b string) (bool, error) { return std.LessThan(a, b) }

// LessThanOrEqual reports a <= b.
func LessThanOrEqual(a, b string) (bool, error) { return std.LessThanOrEqual(a, b) }

// GreaterThan reports a > b.
func GreaterThan(a, b string) (bool, error) { return std.GreaterThan(a, b) }

// GreaterThanOrEqual reports a >= b.
func GreaterThanOrEqual(a, b string) (bool, error) { return std.GreaterThanOrEqual(a, b) }

// Min returns the smaller of a and b.
func Min(a, b string) (string, error) { return std.Min(a, b) }

// Max returns the larger of a and b.
func Max(a, b string) (string, error) { return std.Max(a, b) }

// MustAdd is like Add but panics on error.
func MustAdd(a, b string) string { return must(Add(a, b)) }

// MustMul is like Mul but panics on error.
func MustMul(a, b string) string { return must(Mul(a, b)) }

// MustPower is like Power but panics on error.
func MustPower(a, n string) string { return must(Power(a, n)) }

func must(s string, err error) string {
	if err != nil {
		panic(err)
	}
	return s
}
