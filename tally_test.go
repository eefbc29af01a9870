package tally_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally"
)

func bigInt(t testing.TB, s string) *apd.BigInt {
	t.Helper()
	b, ok := new(apd.BigInt).SetString(s, 10)
	require.True(t, ok, "apd rejected %q", s)
	return b
}

func randomLiteral(r *rand.Rand, maxLen int) string {
	var sb strings.Builder
	if r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	n := 1 + r.IntN(maxLen)
	for i := 0; i < n; i++ {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	return sb.String()
}

func TestErrors(t *testing.T) {
	t.Run("invalid literal", func(t *testing.T) {
		for _, s := range []string{"", "-", "+1", "1.0", "1e3", " 1", "0x10"} {
			_, err := tally.Add(s, "1")
			assert.ErrorIs(t, err, tally.ErrInvalidLiteral, "%q", s)
		}
	})

	t.Run("divide by zero", func(t *testing.T) {
		_, err := tally.Div("5", "0")
		assert.ErrorIs(t, err, tally.ErrDivideByZero)
		_, err = tally.Mod("5", "-000")
		assert.ErrorIs(t, err, tally.ErrDivideByZero)
	})

	t.Run("recursion limit", func(t *testing.T) {
		c := tally.New(tally.WithMaxDepth(8))
		_, err := c.Mul("123456789", "2")
		assert.ErrorIs(t, err, tally.ErrRecursionLimitExceeded)
	})
}

func TestCalculatorWithMemo(t *testing.T) {
	c := tally.New(tally.WithMemo())
	for i := 0; i < 3; i++ {
		got, err := c.Power("-3", "41")
		require.NoError(t, err)
		assert.Equal(t, "-36472996377170786403", got)
	}
}

func TestPredicates(t *testing.T) {
	lt, err := tally.LessThan("-1", "0")
	require.NoError(t, err)
	assert.True(t, lt)

	ge, err := tally.GreaterThanOrEqual("10", "10")
	require.NoError(t, err)
	assert.True(t, ge)

	eq, err := tally.Equal("-0", "000")
	require.NoError(t, err)
	assert.True(t, eq)

	ne, err := tally.NotEqual("1", "1")
	require.NoError(t, err)
	assert.False(t, ne)

	gt, err := tally.GreaterThan("-10", "-9")
	require.NoError(t, err)
	assert.False(t, gt)

	le, err := tally.LessThanOrEqual("3", "2")
	require.NoError(t, err)
	assert.False(t, le)

	lo, err := tally.Min("-3", "2")
	require.NoError(t, err)
	assert.Equal(t, "-3", lo)

	hi, err := tally.Max("-3", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", hi)

	neg, err := tally.Negate("12")
	require.NoError(t, err)
	assert.Equal(t, "-12", neg)

	abs, err := tally.Abs("-12")
	require.NoError(t, err)
	assert.Equal(t, "12", abs)
}

func TestMust(t *testing.T) {
	assert.Equal(t, "3", tally.MustAdd("1", "2"))
	assert.Equal(t, "-6", tally.MustMul("2", "-3"))
	assert.Equal(t, "81", tally.MustPower("-3", "4"))
	assert.Panics(t, func() { tally.MustAdd("x", "1") })
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		a, b, c := randomLiteral(r, 30), randomLiteral(r, 30), randomLiteral(r, 15)

		ab := tally.MustAdd(a, b)
		assert.Equal(t, ab, tally.MustAdd(b, a), "commutative add")
		assert.Equal(t, tally.MustMul(a, b), tally.MustMul(b, a), "commutative mul")
		assert.Equal(t, tally.MustAdd(ab, c), tally.MustAdd(a, tally.MustAdd(b, c)), "associative add")

		na, _ := tally.Negate(a)
		assert.Equal(t, "0", tally.MustAdd(a, na), "inverse")

		norm, err := tally.Normalize(a)
		require.NoError(t, err)
		assert.Equal(t, norm, tally.MustAdd(a, "0"), "additive identity")
		assert.Equal(t, norm, tally.MustMul(a, "1"), "multiplicative identity")
		assert.Equal(t, "0", tally.MustMul(a, "0"))

		if eq, _ := tally.Equal(b, "0"); !eq {
			q, err := tally.Div(a, b)
			require.NoError(t, err)
			m, err := tally.Mod(a, b)
			require.NoError(t, err)
			assert.Equal(t, norm, tally.MustAdd(tally.MustMul(q, b), m), "div/mod %s %s", a, b)

			absM, _ := tally.Abs(m)
			absB, _ := tally.Abs(b)
			lt, _ := tally.LessThan(absM, absB)
			assert.True(t, lt, "|mod| < |b|")

			if m != "0" {
				assert.Equal(t, strings.HasPrefix(norm, "-"), strings.HasPrefix(m, "-"), "mod sign")
			}
		}

		lt, _ := tally.LessThan(a, b)
		eq, _ := tally.Equal(a, b)
		gt, _ := tally.GreaterThan(a, b)
		count := 0
		for _, v := range []bool{lt, eq, gt} {
			if v {
				count++
			}
		}
		assert.Equal(t, 1, count, "trichotomy %s %s", a, b)
	}
}

func TestPowerLaws(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 40; i++ {
		a := randomLiteral(r, 8)
		if eq, _ := tally.Equal(a, "0"); eq {
			continue
		}
		pos, _ := tally.Abs(a)
		neg, _ := tally.Negate(pos)
		norm, _ := tally.Normalize(a)

		assert.Equal(t, "1", tally.MustPower(a, "0"))
		assert.Equal(t, norm, tally.MustPower(a, "1"))
		for _, n := range []string{"2", "6", "12"} {
			assert.Equal(t, tally.MustPower(pos, n), tally.MustPower(neg, n), "even %s^%s", neg, n)
		}
		for _, n := range []string{"3", "7", "13"} {
			want, _ := tally.Negate(tally.MustPower(pos, n))
			assert.Equal(t, want, tally.MustPower(neg, n), "odd %s^%s", neg, n)
		}
	}
}

func TestAgainstApd(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		a, b := randomLiteral(r, 50), randomLiteral(r, 25)
		x, y := bigInt(t, a), bigInt(t, b)

		assert.Equal(t, new(apd.BigInt).Add(x, y).String(), tally.MustAdd(a, b))
		assert.Equal(t, new(apd.BigInt).Mul(x, y).String(), tally.MustMul(a, b))

		got, err := tally.Sub(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(apd.BigInt).Sub(x, y).String(), got)

		c, err := tally.Compare(a, b)
		require.NoError(t, err)
		assert.Equal(t, x.Cmp(y), c)

		if y.Sign() == 0 {
			continue
		}
		q, err := tally.Div(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(apd.BigInt).Quo(x, y).String(), q, "%s / %s", a, b)

		m, err := tally.Mod(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(apd.BigInt).Rem(x, y).String(), m, "%s %% %s", a, b)
	}
}

func FuzzArithmetic(f *testing.F) {
	f.Add("999999999999999999999999", "1")
	f.Add("-17", "5")
	f.Add("1000", "-999")
	f.Add("0", "-0")
	f.Add("123456789012345678901234567890", "2")

	c := tally.New(tally.WithMaxDepth(0))
	f.Fuzz(func(t *testing.T, a, b string) {
		x, okA := new(apd.BigInt).SetString(a, 10)
		y, okB := new(apd.BigInt).SetString(b, 10)

		sum, err := c.Add(a, b)
		if err != nil {
			if !tally.IsLiteral(a) || !tally.IsLiteral(b) {
				return
			}
			t.Fatalf("Add(%q, %q): %v", a, b, err)
		}
		if !okA || !okB {
			t.Fatalf("Add(%q, %q) accepted literals apd rejects", a, b)
		}
		if want := new(apd.BigInt).Add(x, y).String(); sum != want {
			t.Errorf("Add(%q, %q) = %s, want %s", a, b, sum, want)
		}
		prod, err := c.Mul(a, b)
		if err != nil {
			t.Fatal(err)
		}
		if want := new(apd.BigInt).Mul(x, y).String(); prod != want {
			t.Errorf("Mul(%q, %q) = %s, want %s", a, b, prod, want)
		}
		if y.Sign() != 0 {
			q, err := c.Div(a, b)
			if err != nil {
				t.Fatal(err)
			}
			if want := new(apd.BigInt).Quo(x, y).String(); q != want {
				t.Errorf("Div(%q, %q) = %s, want %s", a, b, q, want)
			}
		}
	})
}
