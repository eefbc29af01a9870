package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/tally/internal/ir"
)

// DepthGuard bounds the recursion depth of one evaluation.
//
// Each evaluation gets its own guard. Every primitive reports its width
// (the digit length it walks) before it runs, and the guard adds the
// nesting level the evaluation has reached. Power is the only operation
// that nests: each halving of the exponent is one level.
//
// Checks happen before any work, so a tripped guard never leaves a
// partial result behind.
type DepthGuard struct {
	limit   int // 0 means unbounded
	levels  int
	deepest int
}

// NewDepthGuard creates a guard with the given limit. A limit of 0
// disables the check.
func NewDepthGuard(limit int) *DepthGuard {
	return &DepthGuard{limit: limit}
}

// Check validates that a primitive of the given width can run at the
// current level.
//
// Returns *RecursionLimitError if the limit would be exceeded.
func (g *DepthGuard) Check(op ir.Op, width int) error {
	depth := g.levels + width
	if depth > g.deepest {
		g.deepest = depth
	}
	if g.limit > 0 && depth > g.limit {
		return &RecursionLimitError{
			Op:    op,
			Depth: depth,
			Limit: g.limit,
		}
	}
	return nil
}

// Descend moves the guard one nesting level down.
func (g *DepthGuard) Descend() {
	g.levels++
}

// Levels returns the current nesting level.
func (g *DepthGuard) Levels() int {
	return g.levels
}

// Deepest returns the largest depth checked so far.
// Used for logging and diagnostics.
func (g *DepthGuard) Deepest() int {
	return g.deepest
}

// Limit returns the configured limit.
func (g *DepthGuard) Limit() int {
	return g.limit
}

// RecursionLimitError is returned when an evaluation would recurse deeper
// than the engine allows. The result is never computed.
type RecursionLimitError struct {
	Op    ir.Op // operation whose primitive tripped the guard
	Depth int   // depth the primitive would have reached
	Limit int   // configured limit
}

// Error implements the error interface.
func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("%s would recurse to depth %d, limit is %d", e.Op, e.Depth, e.Limit)
}

// Unwrap returns ErrRecursionLimitExceeded.
func (e *RecursionLimitError) Unwrap() error {
	return ErrRecursionLimitExceeded
}

// IsRecursionLimitError returns true if err is a *RecursionLimitError.
// Uses errors.As to handle wrapped errors.
func IsRecursionLimitError(err error) bool {
	var rl *RecursionLimitError
	return errors.As(err, &rl)
}
