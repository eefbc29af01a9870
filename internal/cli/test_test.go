package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumScenario = `name: sum
description: "Carry into a new digit"
run_id: run-sum
steps:
  - op: add
    args: [99999999999999999999, 1]
    expect:
      result: "100000000000000000000"
  - op: div
    args: [1, 0]
    expect:
      error: divide_by_zero
properties:
  - type: commutative
    op: add
    operands: ["-7", "0", "123456789012345678901234567890"]
`

const wrongScenario = `name: wrong
description: "Expects the wrong sum"
steps:
  - op: add
    args: [2, 2]
    expect:
      result: "5"
`

func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	return dir
}

func TestTestCommandPassing(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"sum.yaml": sumScenario})

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sum")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandFailing(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"sum.yaml":   sumScenario,
		"wrong.yaml": wrongScenario,
	})

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "steps[0] add(2, 2): expected 5, got 4")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommandJSON(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"sum.yaml": sumScenario})

	out, _, err := execute(t, "--format", "json", "test", dir)
	require.NoError(t, err)

	resp := decode(t, out)
	assert.Equal(t, "ok", resp["status"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(1), data["passed"])
	scenarios := data["scenarios"].([]any)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "run-sum", scenarios[0].(map[string]any)["run_id"])
}

func TestTestCommandFilter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"sum.yaml":   sumScenario,
		"wrong.yaml": wrongScenario,
	})

	out, _, err := execute(t, "test", dir, "--filter", "su*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "wrong")

	_, _, err = execute(t, "test", dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandGolden(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"sum.yaml": sumScenario})
	goldenPath := filepath.Join(dir, "golden", "sum.golden")

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err, out)

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"sum"`)
	assert.Contains(t, string(golden), `"error":"divide_by_zero"`)
	assert.NotContains(t, string(golden), "run-sum")

	// Same trace on a second run.
	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"sum","trace":[]}`), 0644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"bad.yaml": "name: bad\nunknown_field: 1\n"})

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ bad.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandNoScenarios(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommandMissingDirectory(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "carry.golden"), goldenFilePath(filepath.Join("scenarios", "carry.yaml")))
}
