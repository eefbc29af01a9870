package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/ir"
	"github.com/roach88/tally/internal/testutil"
)

func TestOracle(t *testing.T) {
	tests := []struct {
		op   ir.Op
		args []string
		want string
	}{
		{ir.OpAdd, []string{"999999999999999999999999", "1"}, "1000000000000000000000000"},
		{ir.OpSub, []string{"-5", "-5"}, "0"},
		{ir.OpMul, []string{"-0", "7"}, "0"},
		{ir.OpDiv, []string{"-17", "5"}, "-3"},
		{ir.OpMod, []string{"-17", "5"}, "-2"},
		{ir.OpMod, []string{"17", "-5"}, "2"},
		{ir.OpPow, []string{"-3", "41"}, "-36472996377170786403"},
		{ir.OpPow, []string{"0", "0"}, "1"},
		{ir.OpPow, []string{"2", "-3"}, "0"},
		{ir.OpNeg, []string{"0"}, "0"},
		{ir.OpAbs, []string{"-12"}, "12"},
		{ir.OpCmp, []string{"-5", "-3"}, "-1"},
		{ir.OpLe, []string{"3", "3"}, "true"},
		{ir.OpGt, []string{"3", "3"}, "false"},
		{ir.OpMin, []string{"-3", "2"}, "-3"},
		{ir.OpMax, []string{"007", "7"}, "7"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			got, err := Oracle(tt.op, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOracleErrors(t *testing.T) {
	_, err := Oracle(ir.OpDiv, "1", "0")
	assert.ErrorIs(t, err, engine.ErrDivideByZero)

	_, err = Oracle(ir.OpAdd, "+1", "1")
	assert.ErrorIs(t, err, ir.ErrInvalidLiteral)

	_, err = Oracle(ir.OpAdd, "1")
	assert.ErrorContains(t, err, "takes 2 operands")

	_, err = Oracle(ir.OpPow, "2", "100000")
	assert.ErrorContains(t, err, "too large")
}

func TestOracleAgreesWithEngine(t *testing.T) {
	eng := engine.New(engine.WithMaxDepth(0))
	gen := testutil.NewLiterals(2024)

	for i := 0; i < 300; i++ {
		a, b := gen.Next(40), gen.NonZero(20)
		for _, op := range []ir.Op{ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod, ir.OpCmp, ir.OpMin, ir.OpMax} {
			want, err := Oracle(op, a, b)
			require.NoError(t, err)
			got, err := eng.Eval(op, a, b)
			require.NoError(t, err)
			assert.Equal(t, want, got.String(), "%s(%s, %s)", op, a, b)
		}
	}
}
