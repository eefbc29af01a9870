// Package engine implements signed arithmetic over ir.Int.
//
// The engine wires sign bookkeeping around the unsigned algorithms in the
// magnitude package and is the only layer that reports errors. Operations
// are pure: the result depends on the operands alone, never on call order
// or on what was evaluated before.
//
// DIVISION:
//
// Div truncates toward zero and Mod keeps the sign of the dividend, so for
// every nonzero b
//
//	Div(a, b)*b + Mod(a, b) == a
//
// and Div(-17, 5) is -3 with Mod(-17, 5) equal to -2.
//
// DEPTH BOUND:
//
// Every primitive walks a digit sequence, and its depth is the length it
// walks. A DepthGuard checks that depth against the engine's MaxDepth
// before the primitive runs. Power nests one level per halving of the
// exponent. A tripped guard fails the call with *RecursionLimitError and
// never returns a partial result.
//
// MEMOIZATION:
//
// WithMemo caches integer results by ir.OperationKey. A hit returns
// exactly what a fresh computation would. Errors are never cached.
package engine
