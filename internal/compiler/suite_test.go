package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/ir"
)

func compile(t *testing.T, src, path string) (*ir.Suite, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileSuite(v.LookupPath(cue.ParsePath(path)))
}

func TestCompileSuiteBasic(t *testing.T) {
	s, err := compile(t, `
		suite: carry: {
			description: "carry propagation"
			cases: [
				{op: "add", args: [999999999999999999999999, 1], want: 999999999999999999999999 + 1},
				{op: "mod", args: [-17, 5], want: rem(-17, 5)},
				{op: "div", args: [-17, 5], want: quo(-17, 5)},
				{op: "div", args: ["1", "0"], error: "divide_by_zero"},
				{name: "lt", op: "LessThan", args: [3, 4], want: true},
				{op: "cmp", args: [3, 4], want: -1},
			]
		}
	`, "suite.carry")
	require.NoError(t, err)

	assert.Equal(t, "carry", s.Name)
	assert.Equal(t, "carry propagation", s.Description)
	require.Len(t, s.Cases, 6)

	assert.Equal(t, ir.Case{
		Op:   ir.OpAdd,
		Args: []string{"999999999999999999999999", "1"},
		Want: "1000000000000000000000000",
	}, s.Cases[0])
	assert.Equal(t, "-2", s.Cases[1].Want)
	assert.Equal(t, "-3", s.Cases[2].Want)
	assert.Equal(t, ir.ErrorNameDivideByZero, s.Cases[3].WantError)
	assert.Equal(t, []string{"1", "0"}, s.Cases[3].Args)
	assert.Equal(t, "lt", s.Cases[4].Name)
	assert.Equal(t, ir.OpLt, s.Cases[4].Op)
	assert.Equal(t, "true", s.Cases[4].Want)
	assert.Equal(t, "-1", s.Cases[5].Want)
}

func TestCompileSuiteBigArithmetic(t *testing.T) {
	s, err := compile(t, `
		suite: big: cases: [
			{op: "mul", args: [12345678901234567890, 98765432109876543210], want: 12345678901234567890 * 98765432109876543210},
			{op: "pow", args: [2, 100], want: 1267650600228229401496703205376},
		]
	`, "suite.big")
	require.NoError(t, err)
	assert.Equal(t, "1219326311370217952237463801111263526900", s.Cases[0].Want)
	assert.Equal(t, ir.OpPow, s.Cases[1].Op)
	assert.Empty(t, Validate(s))
}

func TestCompileSuiteKeepsStringLiterals(t *testing.T) {
	s, err := compile(t, `
		suite: bad: cases: [{op: "add", args: ["+1", "0x10"], error: "invalid_literal"}]
	`, "suite.bad")
	require.NoError(t, err)
	assert.Equal(t, []string{"+1", "0x10"}, s.Cases[0].Args)
}

func TestCompileSuiteUnknownOpKept(t *testing.T) {
	s, err := compile(t, `
		suite: x: cases: [{op: "sqrt", args: [4], want: 2}]
	`, "suite.x")
	require.NoError(t, err)
	assert.Equal(t, ir.Op("sqrt"), s.Cases[0].Op)
}

func TestCompileSuiteErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"missing cases", `suite: x: description: "nothing"`, "cases"},
		{"missing op", `suite: x: cases: [{args: [1]}]`, "cases[0].op"},
		{"missing args", `suite: x: cases: [{op: "neg"}]`, "cases[0].args"},
		{"float arg", `suite: x: cases: [{op: "neg", args: [1.5]}]`, "cases[0].args[0]"},
		{"float want", `suite: x: cases: [{op: "neg", args: [1], want: 2.0}]`, "cases[0].want"},
		{"bool arg", `suite: x: cases: [{op: "neg", args: [true]}]`, "cases[0].args[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compile(t, tt.src, "suite.x")
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestCompileSuitesOrder(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		suite: zeta: cases: [{op: "neg", args: [1], want: -1}]
		suite: alpha: cases: [{op: "abs", args: [-1], want: 1}]
	`)
	require.NoError(t, v.Err())

	suites, err := CompileSuites(v.LookupPath(cue.ParsePath("suite")))
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "zeta", suites[0].Name)
	assert.Equal(t, "alpha", suites[1].Name)
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Field: "cases", Message: "cases is required"}
	assert.Equal(t, "cases: cases is required", err.Error())
}
