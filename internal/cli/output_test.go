package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
		{"exit error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "bad")), ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	cause := errors.New("disk full")

	assert.Equal(t, "write failed: disk full", WrapExitError(ExitFailure, "write failed", cause).Error())
	assert.Equal(t, "bad flag", NewExitError(ExitCommandError, "bad flag").Error())
	assert.ErrorIs(t, WrapExitError(ExitFailure, "write failed", cause), cause)
}

func TestOutputFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf, TraceID: "trace-1"}

	require.NoError(t, f.Success(map[string]string{"result": "42"}, "42"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"result": "42"}, resp.Data)
}

func TestOutputFormatterText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success(map[string]string{"result": "42"}, "42"))
	assert.Equal(t, "42\n", buf.String())
}

func TestOutputFormatterError(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		f := &OutputFormatter{Format: "json", Writer: &buf}
		require.NoError(t, f.Error("DIVIDE_BY_ZERO", "division by zero", nil))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "DIVIDE_BY_ZERO", resp.Error.Code)
		assert.Equal(t, "division by zero", resp.Error.Message)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		f := &OutputFormatter{Format: "text", Writer: &buf, Verbose: true}
		require.NoError(t, f.Error("E005", "not found", "dir=/x"))
		assert.Equal(t, "Error [E005]: not found\nDetails: dir=/x\n", buf.String())
	})
}

func TestOutputFormatterFailureTextIsSilent(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}
	require.NoError(t, f.Failure("TEST_FAILED", "1 failed", TestResult{}))
	assert.Empty(t, buf.String())
}

func TestVerboseLogUsesErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}
	f.VerboseLog("found %d file(s)", 2)

	assert.Empty(t, out.String())
	assert.Equal(t, "found 2 file(s)\n", errOut.String())

	quiet := &OutputFormatter{Writer: &out}
	quiet.VerboseLog("hidden")
	assert.Empty(t, out.String())
}
