package engine

import (
	"log/slog"

	"github.com/roach88/tally/internal/ir"
	"github.com/roach88/tally/internal/magnitude"
)

// DefaultMaxDepth is the default recursion depth bound per evaluation.
// It caps operand digit length for every primitive.
const DefaultMaxDepth = 100000

// Memo caches results of integer-valued operations by operation key.
// Implementations must be safe for concurrent use and must only report a
// hit for a key that was stored with exactly the same bytes.
type Memo interface {
	Lookup(key []byte) (ir.Int, bool)
	Store(key []byte, v ir.Int)
}

// Engine evaluates signed arithmetic over ir.Int.
//
// An Engine holds only configuration fixed at construction and an optional
// memo, so one Engine may be shared between goroutines. Every operation is
// a deterministic function of its operands.
type Engine struct {
	logger         *slog.Logger
	maxDepth       int
	strictExponent bool
	memo           Memo
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithLogger sets the logger. Evaluations log at Debug, guard trips at Warn.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxDepth sets the recursion depth bound per evaluation.
//
// Default: 100000 (DefaultMaxDepth)
// Use WithMaxDepth(0) to disable the bound.
// Use WithMaxDepth(10) for testing guard enforcement.
func WithMaxDepth(maxDepth int) EngineOption {
	return func(e *Engine) {
		e.maxDepth = maxDepth
	}
}

// WithStrictExponent makes Power fail with ErrNegativeExponent for a
// negative exponent instead of returning 0.
func WithStrictExponent() EngineOption {
	return func(e *Engine) {
		e.strictExponent = true
	}
}

// WithMemo enables result memoization through m.
// A memo must not be shared between engines with different depth limits.
func WithMemo(m Memo) EngineOption {
	return func(e *Engine) {
		e.memo = m
	}
}

// New creates an Engine.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   slog.Default(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the configured depth bound; 0 means unbounded.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// StrictExponent reports whether negative exponents are rejected.
func (e *Engine) StrictExponent() bool {
	return e.strictExponent
}

func (e *Engine) guard() *DepthGuard {
	return NewDepthGuard(e.maxDepth)
}

// width returns the digit length of the longest operand.
func width(xs ...ir.Int) int {
	w := 0
	for _, x := range xs {
		w = max(w, x.Len())
	}
	return w
}

// check runs a single-level guard check and logs a trip.
func (e *Engine) check(g *DepthGuard, op ir.Op, w int) error {
	if err := g.Check(op, w); err != nil {
		e.logger.Warn("recursion limit exceeded",
			"op", op,
			"depth", g.Deepest(),
			"limit", g.Limit(),
		)
		return err
	}
	return nil
}

// memoized runs compute through the memo when one is configured.
// The width check happens before the lookup so a cached result is never
// returned for operands this engine would reject. Errors are never stored.
func (e *Engine) memoized(op ir.Op, args []ir.Int, compute func(g *DepthGuard) (ir.Int, error)) (ir.Int, error) {
	g := e.guard()
	if err := e.check(g, op, width(args...)); err != nil {
		return ir.Int{}, err
	}
	if e.memo == nil {
		return compute(g)
	}

	key, err := ir.OperationKey(op, args...)
	if err != nil {
		return ir.Int{}, err
	}
	if v, ok := e.memo.Lookup(key); ok {
		e.logger.Debug("eval", "op", op, "digits", width(args...), "memo_hit", true)
		return v, nil
	}
	v, err := compute(g)
	if err != nil {
		return ir.Int{}, err
	}
	e.memo.Store(key, v)
	return v, nil
}

// Add returns x + y.
//
// Equal signs add magnitudes and keep the sign. Different signs subtract
// the smaller magnitude from the larger and take the larger operand's
// sign; equal magnitudes give 0.
func (e *Engine) Add(x, y ir.Int) (ir.Int, error) {
	return e.memoized(ir.OpAdd, []ir.Int{x, y}, func(*DepthGuard) (ir.Int, error) {
		e.logger.Debug("eval", "op", ir.OpAdd, "digits", width(x, y))
		return add(x, y), nil
	})
}

// Sub returns x - y, computed as x + (-y).
func (e *Engine) Sub(x, y ir.Int) (ir.Int, error) {
	return e.Add(x, Negate(y))
}

// Mul returns x * y. The sign is positive iff the signs are equal.
func (e *Engine) Mul(x, y ir.Int) (ir.Int, error) {
	return e.memoized(ir.OpMul, []ir.Int{x, y}, func(*DepthGuard) (ir.Int, error) {
		e.logger.Debug("eval", "op", ir.OpMul, "digits", width(x, y))
		return mul(x, y), nil
	})
}

// DivMod returns the truncated quotient and remainder of x / y.
// The quotient rounds toward zero and the remainder keeps the sign of x.
func (e *Engine) DivMod(x, y ir.Int) (q, r ir.Int, err error) {
	if y.IsZero() {
		return ir.Int{}, ir.Int{}, ErrDivideByZero
	}
	if err := e.check(e.guard(), ir.OpDiv, x.Len()); err != nil {
		return ir.Int{}, ir.Int{}, err
	}
	e.logger.Debug("eval", "op", "divmod", "digits", x.Len())
	q, r = divMod(x, y)
	return q, r, nil
}

// Div returns x / y truncated toward zero.
func (e *Engine) Div(x, y ir.Int) (ir.Int, error) {
	if y.IsZero() {
		return ir.Int{}, ErrDivideByZero
	}
	return e.memoized(ir.OpDiv, []ir.Int{x, y}, func(*DepthGuard) (ir.Int, error) {
		e.logger.Debug("eval", "op", ir.OpDiv, "digits", x.Len())
		q, _ := divMod(x, y)
		return q, nil
	})
}

// Mod returns the remainder of x / y. A nonzero result has the sign of x.
func (e *Engine) Mod(x, y ir.Int) (ir.Int, error) {
	if y.IsZero() {
		return ir.Int{}, ErrDivideByZero
	}
	return e.memoized(ir.OpMod, []ir.Int{x, y}, func(*DepthGuard) (ir.Int, error) {
		e.logger.Debug("eval", "op", ir.OpMod, "digits", x.Len())
		_, r := divMod(x, y)
		return r, nil
	})
}

// Power returns x raised to n by squaring.
//
// Each level halves the exponent with one long-division step by 2 and
// squares the running base; the accumulator is multiplied by the base
// whenever the exponent at that level is odd. A negative base gives a
// negative result exactly when n is odd. Power(x, 0) is 1 for every x,
// including 0.
//
// A negative n returns 0, or ErrNegativeExponent when the engine was
// built with WithStrictExponent.
func (e *Engine) Power(x, n ir.Int) (ir.Int, error) {
	if n.IsNeg() {
		if e.strictExponent {
			return ir.Int{}, ErrNegativeExponent
		}
		return ir.Int{}, nil
	}
	return e.memoized(ir.OpPow, []ir.Int{x, n}, func(g *DepthGuard) (ir.Int, error) {
		e.logger.Debug("eval", "op", ir.OpPow, "digits", width(x, n))
		return e.power(g, x, n)
	})
}

func (e *Engine) power(g *DepthGuard, x, n ir.Int) (ir.Int, error) {
	two := ir.Magnitude{2}
	base := x.Magnitude()
	exp := n.Magnitude()
	acc := ir.One()

	for !exp.IsZero() {
		if err := e.check(g, ir.OpPow, len(exp)); err != nil {
			return ir.Int{}, err
		}
		half, bit := magnitude.DivMod(exp, two)

		if !bit.IsZero() {
			if err := e.check(g, ir.OpPow, max(len(acc), len(base))); err != nil {
				return ir.Int{}, err
			}
			acc = magnitude.Mul(acc, base)
		}

		exp = half
		if !exp.IsZero() {
			if err := e.check(g, ir.OpPow, len(base)); err != nil {
				return ir.Int{}, err
			}
			base = magnitude.Mul(base, base)
		}
		g.Descend()
	}

	sign := ir.Positive
	if x.IsNeg() && magnitude.IsOdd(n.Magnitude()) {
		sign = ir.Negative
	}
	return ir.New(sign, acc), nil
}

// Negate returns -x. Zero stays zero.
func Negate(x ir.Int) ir.Int {
	if x.IsZero() {
		return ir.Int{}
	}
	return ir.New(x.Sign().Flip(), x.Magnitude())
}

// Abs returns |x|.
func Abs(x ir.Int) ir.Int {
	return ir.New(ir.Positive, x.Magnitude())
}

// Negate returns -x.
func (e *Engine) Negate(x ir.Int) ir.Int {
	return Negate(x)
}

// Abs returns |x|.
func (e *Engine) Abs(x ir.Int) ir.Int {
	return Abs(x)
}

// Compare returns -1, 0 or 1 as x is less than, equal to or greater than y.
func (e *Engine) Compare(x, y ir.Int) (int, error) {
	if err := e.check(e.guard(), ir.OpCmp, width(x, y)); err != nil {
		return 0, err
	}
	return compare(x, y), nil
}

// Equal reports x == y.
func (e *Engine) Equal(x, y ir.Int) (bool, error) {
	c, err := e.Compare(x, y)
	return err == nil && c == 0, err
}

// NotEqual reports x != y.
func (e *Engine) NotEqual(x, y ir.Int) (bool, error) {
	c, err := e.Compare(x, y)
	return err == nil && c != 0, err
}

// LessThan reports x < y.
func (e *Engine) LessThan(x, y ir.Int) (bool, error) {
	c, err := e.Compare(x, y)
	return err == nil && c < 0, err
}

// LessThanOrEqual reports x <= y.
func (e *Engine) LessThanOrEqual(x, y ir.Int) (bool, error) {
	c, err := e.Compare(x, y)
	return err == nil && c <= 0, err
}

// GreaterThan reports x > y.
func (e *Engine) GreaterThan(x, y ir.Int) (bool, error) {
	c, err := e.Compare(x, y)
	return err == nil && c > 0, err
}

// GreaterThanOrEqual reports x >= y.
func (e *Engine) GreaterThanOrEqual(x, y ir.Int) (bool, error) {
	c, err := e.Compare(x, y)
	return err == nil && c >= 0, err
}

// Min returns the smaller of x and y, x on a tie.
func (e *Engine) Min(x, y ir.Int) (ir.Int, error) {
	c, err := e.Compare(x, y)
	if err != nil {
		return ir.Int{}, err
	}
	if c <= 0 {
		return x, nil
	}
	return y, nil
}

// Max returns the larger of x and y, x on a tie.
func (e *Engine) Max(x, y ir.Int) (ir.Int, error) {
	c, err := e.Compare(x, y)
	if err != nil {
		return ir.Int{}, err
	}
	if c >= 0 {
		return x, nil
	}
	return y, nil
}

func add(x, y ir.Int) ir.Int {
	xm, ym := x.Magnitude(), y.Magnitude()
	if x.Sign() == y.Sign() {
		return ir.New(x.Sign(), magnitude.Add(xm, ym))
	}
	switch magnitude.Compare(xm, ym) {
	case 1:
		return ir.New(x.Sign(), magnitude.Sub(xm, ym))
	case -1:
		return ir.New(y.Sign(), magnitude.Sub(ym, xm))
	}
	return ir.Int{}
}

func mul(x, y ir.Int) ir.Int {
	sign := ir.Positive
	if x.Sign() != y.Sign() {
		sign = ir.Negative
	}
	return ir.New(sign, magnitude.Mul(x.Magnitude(), y.Magnitude()))
}

// divMod assumes y is nonzero.
func divMod(x, y ir.Int) (q, r ir.Int) {
	qm, rm := magnitude.DivMod(x.Magnitude(), y.Magnitude())
	qs := ir.Positive
	if x.Sign() != y.Sign() {
		qs = ir.Negative
	}
	return ir.New(qs, qm), ir.New(x.Sign(), rm)
}

// compare orders by sign first. Two negatives compare their magnitudes in
// reverse.
func compare(x, y ir.Int) int {
	xs, ys := x.Sign(), y.Sign()
	switch {
	case xs == ir.Negative && ys == ir.Positive:
		return -1
	case xs == ir.Positive && ys == ir.Negative:
		return 1
	case xs == ir.Positive:
		return magnitude.Compare(x.Magnitude(), y.Magnitude())
	}
	return magnitude.Compare(y.Magnitude(), x.Magnitude())
}
