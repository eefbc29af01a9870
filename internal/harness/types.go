package harness

// TraceEvent records one evaluated step.
// Exactly one of Result and Error is set.
type TraceEvent struct {
	Seq    int64    `json:"seq"`
	Op     string   `json:"op"`
	Args   []string `json:"args"`
	Result string   `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario or suite run.
type Result struct {
	// Pass indicates overall success: every expectation matched and
	// every property held.
	Pass bool `json:"pass"`

	// RunID identifies this run in logs and CLI output.
	// It is left out of golden traces.
	RunID string `json:"run_id"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
