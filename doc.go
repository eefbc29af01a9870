// Package tally implements arbitrary-precision signed integer arithmetic
// over decimal literals.
//
// A literal is an optional '-' followed by one or more ASCII digits, of any
// length. Leading zeros are accepted on input; results never carry them and
// zero is never written "-0". A leading '+', whitespace or any other
// character is rejected with an error matching ErrInvalidLiteral.
//
// Every operation takes literals and returns a literal, an ordering
// (-1, 0, 1) or a boolean, together with an explicit error:
//
//	sum, err := tally.Add("999999999999999999999999", "1")
//	// sum == "1000000000000000000000000"
//
// Division truncates toward zero and Mod keeps the sign of the dividend,
// so Div("-17", "5") is "-3" and Mod("-17", "5") is "-2". Power with a
// negative exponent returns "0" unless the calculator was built with
// WithStrictExponent.
//
// The package-level functions share one default Calculator. New builds a
// Calculator with its own depth bound, logger or memo.
package tally
