// Package ir provides the foundational value types for tally.
//
// This package contains the integer representation, literal conversion,
// operation identifiers and compiled conformance suites. All other internal
// packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Int is immutable; every accessor hands out a copy of its digits
//   - Magnitudes are most-significant digit first, no leading zeros
//   - Zero has exactly one representation: positive [0]
//   - Decimals cross every serialization boundary as strings, never as
//     JSON numbers, so no float ever touches a value
package ir
