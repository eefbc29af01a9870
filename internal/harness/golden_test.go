package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"carry_chain", "strict"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestMarshalTrace(t *testing.T) {
	result := NewResult("ignored")
	result.AddTrace(TraceEvent{Seq: 1, Op: "add", Args: []string{"1", "2"}, Result: "3"})
	result.AddTrace(TraceEvent{Seq: 2, Op: "div", Args: []string{"1", "0"}, Error: "divide_by_zero"})

	got, err := MarshalTrace("x", result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario_name":"x","trace":[{"args":["1","2"],"op":"add","result":"3","seq":1},{"args":["1","0"],"error":"divide_by_zero","op":"div","seq":2}]}`,
		string(got))
}

func TestMarshalTraceEmpty(t *testing.T) {
	got, err := MarshalTrace("empty", NewResult(""))
	require.NoError(t, err)
	assert.Equal(t, `{"scenario_name":"empty","trace":[]}`, string(got))
}
