// Package magnitude implements unsigned arithmetic over digit sequences.
//
// Every function takes ir.Magnitude values (most-significant digit first),
// never modifies its inputs and returns a freshly allocated, normalized
// result. Single-digit work goes through the digit tables; the algorithms
// here only walk and index digit slices.
package magnitude

import (
	"github.com/roach88/tally/internal/digit"
	"github.com/roach88/tally/internal/ir"
)

var zero = ir.Magnitude{0}

// strip returns m without leading zeros, sharing m's backing array.
// The result must be treated as read-only unless m was allocated by the
// caller.
func strip(m ir.Magnitude) ir.Magnitude {
	if len(m) == 0 {
		return zero
	}
	i := 0
	for i < len(m)-1 && m[i] == 0 {
		i++
	}
	return m[i:]
}

// at returns the digit i places from the least significant end of m, or 0
// past the most significant digit.
func at(m ir.Magnitude, i int) ir.Digit {
	if i >= len(m) {
		return 0
	}
	return m[len(m)-1-i]
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
// A longer normalized magnitude is always greater; equal lengths compare
// digit pairs from the most significant end and stop at the first
// difference.
func Compare(a, b ir.Magnitude) int {
	a, b = strip(a), strip(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := range a {
		if c := digit.CompareDigit(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Add returns a + b.
func Add(a, b ir.Magnitude) ir.Magnitude {
	a, b = strip(a), strip(b)
	n := max(len(a), len(b))
	out := make(ir.Magnitude, n+1)
	var c digit.Carry
	for i := 0; i < n; i++ {
		out[n-i], c = digit.Sum(at(a, i), at(b, i), c)
	}
	if c == 1 {
		out[0] = 1
		return out
	}
	return out[1:]
}

// Sub returns a - b. It panics if a < b; callers order operands with
// Compare first.
func Sub(a, b ir.Magnitude) ir.Magnitude {
	a, b = strip(a), strip(b)
	if Compare(a, b) < 0 {
		panic("magnitude: Sub called with a < b")
	}
	out := make(ir.Magnitude, len(a))
	var borrow digit.Carry
	for i := 0; i < len(a); i++ {
		out[len(a)-1-i], borrow = digit.Diff(at(a, i), at(b, i), borrow)
	}
	// 1000 - 999 leaves 0001
	return strip(out)
}

// Shift returns a * 10^n by appending n zero digits.
func Shift(a ir.Magnitude, n int) ir.Magnitude {
	a = strip(a)
	if a.IsZero() {
		return ir.Zero()
	}
	out := make(ir.Magnitude, len(a)+n)
	copy(out, a)
	return out
}

// MulDigit returns a * d using doubling identities instead of repeated
// addition: every multiple is at most three additions or subtractions away
// from a.
func MulDigit(a ir.Magnitude, d ir.Digit) ir.Magnitude {
	a = strip(a)
	switch d {
	case 0:
		return ir.Zero()
	case 1:
		return a.Clone()
	case 2:
		return Add(a, a)
	case 3:
		return Add(a, MulDigit(a, 2))
	case 4:
		two := MulDigit(a, 2)
		return Add(two, two)
	case 5:
		return Add(a, MulDigit(a, 4))
	case 6:
		three := MulDigit(a, 3)
		return Add(three, three)
	case 7:
		return Sub(Shift(a, 1), MulDigit(a, 3))
	case 8:
		return Sub(Shift(a, 1), MulDigit(a, 2))
	case 9:
		return Sub(Shift(a, 1), a)
	}
	panic("magnitude: MulDigit called with a non-digit")
}

// Mul returns a * b: one shifted partial product per nonzero digit of b,
// accumulated with Add. Partial products are computed once per distinct
// digit value.
func Mul(a, b ir.Magnitude) ir.Magnitude {
	a, b = strip(a), strip(b)
	if a.IsZero() || b.IsZero() {
		return ir.Zero()
	}
	var partials [10]ir.Magnitude
	acc := ir.Zero()
	for i, d := range b {
		if d == 0 {
			continue
		}
		if partials[d] == nil {
			partials[d] = MulDigit(a, d)
		}
		acc = Add(acc, Shift(partials[d], len(b)-1-i))
	}
	return acc
}

// DivMod returns the quotient and remainder of a / b by long division.
// It panics if b is zero; the facade reports that case as an error before
// calling in.
//
// The running remainder takes one digit of a per step, most significant
// first. The quotient digit for a step is the largest q with q*b not above
// the remainder, found by walking the multiples b, 2b, ..., 9b, which are
// built once by repeated Add.
func DivMod(a, b ir.Magnitude) (q, r ir.Magnitude) {
	a, b = strip(a), strip(b)
	if b.IsZero() {
		panic("magnitude: division by zero")
	}

	var multiples [10]ir.Magnitude
	multiples[0] = ir.Zero()
	for k := 1; k < len(multiples); k++ {
		multiples[k] = Add(multiples[k-1], b)
	}

	q = make(ir.Magnitude, 0, len(a))
	r = ir.Magnitude{}
	for _, d := range a {
		r = strip(append(r, d))

		qd := ir.Digit(0)
		for k := 1; k < len(multiples); k++ {
			if Compare(multiples[k], r) > 0 {
				break
			}
			qd = digit.SumDigit(qd, 1, 0)
		}
		q = append(q, qd)
		if qd != 0 {
			r = Sub(r, multiples[qd])
		}
	}
	return strip(q), strip(r)
}

// IsOdd reports whether a is odd.
func IsOdd(a ir.Magnitude) bool {
	if len(a) == 0 {
		return false
	}
	return digit.IsOdd(a[len(a)-1])
}
