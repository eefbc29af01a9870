// Package digit holds the single-digit lookup tables every magnitude
// algorithm is built from.
//
// Each table is a total function over a finite domain (digit 0..9,
// carry/borrow 0..1) stored as a fixed-size array indexed by value. The
// magnitude algorithms never apply +, - or < to digit values themselves;
// they index these tables, so carry, borrow and ordering behavior for a
// digit pair is decided in exactly one place.
package digit

import "github.com/roach88/tally/internal/ir"

// Carry is a carry or borrow flag threaded between adjacent digit
// positions. It is always 0 or 1.
type Carry uint8

// entry is one cell of the add or subtract table.
type entry struct {
	d ir.Digit
	c Carry
}

var (
	sumTable  [10][10][2]entry
	diffTable [10][10][2]entry
	cmpTable  [10][10]int8
	oddTable  = [10]bool{false, true, false, true, false, true, false, true, false, true}
)

func init() {
	for a := 0; a < 10; a++ {
		for b := 0; b < 10; b++ {
			for c := 0; c < 2; c++ {
				s := a + b + c
				sumTable[a][b][c] = entry{d: ir.Digit(s % 10), c: Carry(s / 10)}

				d := a - b - c
				var borrow Carry
				if d < 0 {
					d += 10
					borrow = 1
				}
				diffTable[a][b][c] = entry{d: ir.Digit(d), c: borrow}
			}
			switch {
			case a < b:
				cmpTable[a][b] = -1
			case a > b:
				cmpTable[a][b] = 1
			}
		}
	}
}

// Sum returns the digit and carry-out of a + b + c.
func Sum(a, b ir.Digit, c Carry) (ir.Digit, Carry) {
	e := sumTable[a][b][c]
	return e.d, e.c
}

// SumDigit returns (a + b + c) mod 10.
func SumDigit(a, b ir.Digit, c Carry) ir.Digit {
	return sumTable[a][b][c].d
}

// SumCarryOut returns 1 when a + b + c is at least 10.
func SumCarryOut(a, b ir.Digit, c Carry) Carry {
	return sumTable[a][b][c].c
}

// Diff returns the digit and borrow-out of a - b - c.
func Diff(a, b ir.Digit, c Carry) (ir.Digit, Carry) {
	e := diffTable[a][b][c]
	return e.d, e.c
}

// DiffDigit returns (a - b - c) mod 10.
func DiffDigit(a, b ir.Digit, c Carry) ir.Digit {
	return diffTable[a][b][c].d
}

// DiffBorrowOut returns 1 when a - b - c is below zero.
func DiffBorrowOut(a, b ir.Digit, c Carry) Carry {
	return diffTable[a][b][c].c
}

// CompareDigit returns -1, 0 or 1 as a is less than, equal to or greater
// than b.
func CompareDigit(a, b ir.Digit) int {
	return int(cmpTable[a][b])
}

// IsOdd reports whether d is odd.
func IsOdd(d ir.Digit) bool {
	return oddTable[d]
}
