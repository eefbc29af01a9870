package ir

import (
	"math"
)

// Digit is a single base-10 digit, 0 through 9.
type Digit uint8

// Magnitude is a non-negative integer stored as a most-significant-first
// digit sequence.
//
// A normalized magnitude has at least one digit and no leading zero unless
// it is exactly [0]. A nil or empty Magnitude denotes zero; Trim returns
// the canonical form.
type Magnitude []Digit

// Zero returns the canonical zero magnitude.
func Zero() Magnitude {
	return Magnitude{0}
}

// One returns the magnitude 1.
func One() Magnitude {
	return Magnitude{1}
}

// Trim strips leading zero digits until a nonzero digit appears or only
// [0] remains. The receiver is not modified.
func (m Magnitude) Trim() Magnitude {
	i := 0
	for i < len(m)-1 && m[i] == 0 {
		i++
	}
	if len(m) == 0 {
		return Zero()
	}
	out := make(Magnitude, len(m)-i)
	copy(out, m[i:])
	return out
}

// IsZero reports whether m denotes zero.
func (m Magnitude) IsZero() bool {
	for _, d := range m {
		if d != 0 {
			return false
		}
	}
	return true
}

// Clone returns a copy of m.
func (m Magnitude) Clone() Magnitude {
	out := make(Magnitude, len(m))
	copy(out, m)
	return out
}

// String renders the digits of m without a sign.
func (m Magnitude) String() string {
	if len(m) == 0 {
		return "0"
	}
	b := make([]byte, len(m))
	for i, d := range m {
		b[i] = '0' + byte(d)
	}
	return string(b)
}

// Sign is the sign of an Int.
type Sign int8

const (
	// Positive covers zero and every value above it.
	Positive Sign = iota
	// Negative covers every value below zero.
	Negative
)

// String returns "positive" or "negative".
func (s Sign) String() string {
	if s == Negative {
		return "negative"
	}
	return "positive"
}

// Flip returns the opposite sign.
func (s Sign) Flip() Sign {
	if s == Negative {
		return Positive
	}
	return Negative
}

// Int is a signed integer of unbounded size.
// The zero value is the canonical 0.
//
// An Int never carries a negative zero and never holds leading zero
// digits. It is safe to copy and to share between goroutines: no operation
// mutates an existing Int.
type Int struct {
	sign Sign
	mag  Magnitude
}

// New returns the normalized Int with the given sign and magnitude.
// The digits are copied.
func New(sign Sign, mag Magnitude) Int {
	return Normalize(Int{sign: sign, mag: mag})
}

// Normalize strips leading zeros from the magnitude of x and forces a
// positive sign on zero.
func Normalize(x Int) Int {
	mag := x.mag.Trim()
	sign := x.sign
	if mag.IsZero() {
		sign = Positive
	}
	return Int{sign: sign, mag: mag}
}

// FromInt64 returns x as an Int.
func FromInt64(x int64) Int {
	if x == 0 {
		return Int{}
	}
	sign := Positive
	u := uint64(x)
	if x < 0 {
		sign = Negative
		u = uint64(-(x + 1)) + 1 // survives math.MinInt64
	}
	var buf [20]Digit
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = Digit(u % 10)
		u /= 10
	}
	return New(sign, buf[i:])
}

// Sign returns the sign of x. Zero is Positive.
func (x Int) Sign() Sign {
	if x.IsZero() {
		return Positive
	}
	return x.sign
}

// Magnitude returns a copy of the digits of |x|.
func (x Int) Magnitude() Magnitude {
	if len(x.mag) == 0 {
		return Zero()
	}
	return x.mag.Clone()
}

// Len returns the number of digits of |x|.
func (x Int) Len() int {
	if len(x.mag) == 0 {
		return 1
	}
	return len(x.mag)
}

// IsZero reports whether x is 0.
func (x Int) IsZero() bool {
	return x.mag.IsZero()
}

// IsNeg reports whether x is below zero.
func (x Int) IsNeg() bool {
	return x.sign == Negative && !x.IsZero()
}

// Int64 returns x as an int64 and whether it fits.
func (x Int) Int64() (int64, bool) {
	var u uint64
	for _, d := range x.Magnitude() {
		if u > (math.MaxUint64-uint64(d))/10 {
			return 0, false
		}
		u = u*10 + uint64(d)
	}
	if x.IsNeg() {
		if u > uint64(math.MaxInt64)+1 {
			return 0, false
		}
		return -int64(u-1) - 1, true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// Equal reports whether x and y hold the same digits and sign.
// It is a structural comparison; the engine's Compare is the arithmetic one.
func (x Int) Equal(y Int) bool {
	a, b := Normalize(x), Normalize(y)
	if a.sign != b.sign || len(a.mag) != len(b.mag) {
		return false
	}
	for i := range a.mag {
		if a.mag[i] != b.mag[i] {
			return false
		}
	}
	return true
}

// String returns the canonical decimal literal of x.
func (x Int) String() string {
	return Serialize(x)
}

// Serialize returns the sign prefix ("-" or empty) followed by the digits.
func Serialize(x Int) string {
	x = Normalize(x)
	if x.sign == Negative {
		return "-" + x.mag.String()
	}
	return x.mag.String()
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(Serialize(x)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
