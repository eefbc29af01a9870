package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalText(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "999999999999999999999", "1"}, "1000000000000000000000"},
		{[]string{"sub", "5", "12"}, "-7"},
		{[]string{"Multiply", "-12", "12"}, "-144"},
		{[]string{"div", "-17", "5"}, "-3"},
		{[]string{"mod", "-17", "5"}, "-2"},
		{[]string{"pow", "2", "100"}, "1267650600228229401496703205376"},
		{[]string{"pow", "2", "-1"}, "0"},
		{[]string{"neg", "0"}, "0"},
		{[]string{"abs", "-00042"}, "42"},
		{[]string{"cmp", "-5", "3"}, "-1"},
		{[]string{"LessThanOrEqual", "7", "7"}, "true"},
		{[]string{"ne", "-0", "0"}, "false"},
		{[]string{"min", "-1", "-2"}, "-2"},
		{[]string{"max", "-1", "-2"}, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, _, err := execute(t, append([]string{"eval"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestEvalJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "eval", "pow", "2", "64")
	require.NoError(t, err)

	resp := decode(t, out)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, map[string]any{
		"op":     "pow",
		"args":   []any{"2", "64"},
		"result": "18446744073709551616",
	}, resp["data"])

	out, _, err = execute(t, "--format", "json", "eval", "cmp", "2", "1")
	require.NoError(t, err)
	assert.Equal(t, float64(1), decode(t, out)["data"].(map[string]any)["result"])

	out, _, err = execute(t, "--format", "json", "eval", "gt", "2", "1")
	require.NoError(t, err)
	assert.Equal(t, true, decode(t, out)["data"].(map[string]any)["result"])
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     string
		exitCode int
	}{
		{"divide by zero", []string{"eval", "div", "1", "0"}, "DIVIDE_BY_ZERO", ExitFailure},
		{"mod by zero", []string{"eval", "mod", "1", "-0"}, "DIVIDE_BY_ZERO", ExitFailure},
		{"invalid literal", []string{"eval", "add", "1x", "2"}, "INVALID_LITERAL", ExitFailure},
		{"empty literal", []string{"eval", "add", "", "2"}, "INVALID_LITERAL", ExitFailure},
		{"recursion limit", []string{"--max-depth", "3", "eval", "add", "12345", "1"}, "RECURSION_LIMIT_EXCEEDED", ExitFailure},
		{"strict exponent", []string{"--strict-exponent", "eval", "pow", "2", "-1"}, "NEGATIVE_EXPONENT", ExitFailure},
		{"unknown op", []string{"eval", "sqrt", "4"}, "UNKNOWN_OP", ExitCommandError},
		{"arity", []string{"eval", "add", "1"}, "ARITY", ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestEvalErrorJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "eval", "div", "10", "0")
	require.Error(t, err)

	resp := decode(t, out)
	assert.Equal(t, "error", resp["status"])
	errObj := resp["error"].(map[string]any)
	assert.Equal(t, "DIVIDE_BY_ZERO", errObj["code"])
	assert.Contains(t, errObj["message"], "div(10, 0)")
}

func TestEvalNegativeLiteralsAreOperands(t *testing.T) {
	out, _, err := execute(t, "eval", "add", "-5", "-10")
	require.NoError(t, err)
	assert.Equal(t, "-15\n", out)
}

func TestEvalNoMemo(t *testing.T) {
	out, _, err := execute(t, "--no-memo", "eval", "mul", "99999999999999999999", "99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, "9999999999999999999800000000000000000001\n", out)
}
