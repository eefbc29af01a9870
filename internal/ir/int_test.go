package ir

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitudeTrim(t *testing.T) {
	tests := []struct {
		name string
		in   Magnitude
		want Magnitude
	}{
		{"empty", Magnitude{}, Magnitude{0}},
		{"nil", nil, Magnitude{0}},
		{"single zero", Magnitude{0}, Magnitude{0}},
		{"all zeros", Magnitude{0, 0, 0}, Magnitude{0}},
		{"leading zeros", Magnitude{0, 0, 4, 2}, Magnitude{4, 2}},
		{"already trimmed", Magnitude{1, 0, 0}, Magnitude{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Trim())
		})
	}
}

func TestMagnitudeTrimDoesNotAlias(t *testing.T) {
	m := Magnitude{0, 1, 2}
	out := m.Trim()
	out[0] = 9
	assert.Equal(t, Magnitude{0, 1, 2}, m)
}

func TestNormalize(t *testing.T) {
	negZero := New(Negative, Magnitude{0, 0})
	assert.Equal(t, Positive, negZero.Sign())
	assert.False(t, negZero.IsNeg())
	assert.Equal(t, "0", negZero.String())
	assert.True(t, negZero.Equal(Int{}))

	x := New(Negative, Magnitude{0, 0, 7})
	assert.Equal(t, "-7", x.String())
	assert.Equal(t, 1, x.Len())
}

func TestNewCopiesDigits(t *testing.T) {
	digits := Magnitude{1, 2, 3}
	x := New(Positive, digits)
	digits[0] = 9
	assert.Equal(t, "123", x.String())

	mag := x.Magnitude()
	mag[0] = 9
	assert.Equal(t, "123", x.String())
}

func TestZeroValue(t *testing.T) {
	var x Int
	assert.True(t, x.IsZero())
	assert.Equal(t, "0", x.String())
	assert.Equal(t, Magnitude{0}, x.Magnitude())
	assert.Equal(t, 1, x.Len())
}

func TestFromInt64(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1234567890, "1234567890"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			x := FromInt64(tt.in)
			assert.Equal(t, tt.want, x.String())

			back, ok := x.Int64()
			require.True(t, ok)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestInt64Overflow(t *testing.T) {
	_, ok := MustParse("9223372036854775808").Int64()
	assert.False(t, ok)

	_, ok = MustParse("-9223372036854775809").Int64()
	assert.False(t, ok)

	_, ok = MustParse("100000000000000000000000").Int64()
	assert.False(t, ok)
}

func TestSignFlip(t *testing.T) {
	assert.Equal(t, Negative, Positive.Flip())
	assert.Equal(t, Positive, Negative.Flip())
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "positive", Positive.String())
}

func TestIntJSON(t *testing.T) {
	type wrapper struct {
		Value Int `json:"value"`
	}

	data, err := json.Marshal(wrapper{Value: MustParse("-00123")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"-123"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"value":"98765432109876543210"}`), &w))
	assert.Equal(t, "98765432109876543210", w.Value.String())

	err = json.Unmarshal([]byte(`{"value":"12a"}`), &w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}
