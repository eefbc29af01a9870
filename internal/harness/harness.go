package harness

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/ir"
	"github.com/roach88/tally/internal/testutil"
)

// Harness is the test execution engine.
// It evaluates steps against an engine with a deterministic clock.
type Harness struct {
	engine *engine.Engine
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// Option configures a run.
type Option func(*options)

type options struct {
	engine *engine.Engine
	runIDs RunIDGenerator
	logger *slog.Logger
}

// WithEngine runs against eng instead of a fresh engine. The scenario's
// max_depth and strict_exponent settings are then ignored.
func WithEngine(eng *engine.Engine) Option {
	return func(o *options) {
		o.engine = eng
	}
}

// WithRunIDGenerator sets the run ID source.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(o *options) {
		o.runIDs = g
	}
}

// WithLogger sets the harness logger. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newHarness(o options, maxDepth *int, strict bool) *Harness {
	eng := o.engine
	if eng == nil {
		engOpts := []engine.EngineOption{engine.WithLogger(o.logger)}
		if maxDepth != nil {
			engOpts = append(engOpts, engine.WithMaxDepth(*maxDepth))
		}
		if strict {
			engOpts = append(engOpts, engine.WithStrictExponent())
		}
		eng = engine.New(engOpts...)
	}
	return &Harness{
		engine: eng,
		clock:  testutil.NewDeterministicClock(),
		logger: o.logger,
	}
}

func buildOptions(fixedRunID string, opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs by default
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runIDs == nil {
		if fixedRunID != "" {
			o.runIDs = testutil.NewFixedRunID(fixedRunID)
		} else {
			o.runIDs = UUIDv7Generator{}
		}
	}
	return o
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs on a fresh engine and clock, so the trace is the
// same on every run. Execution flow:
//  1. Evaluate steps in order, tracing each and checking its expect clause
//  2. Check properties
//  3. Return result with pass/fail, trace, and errors
//
// The error return is reserved for scenarios that cannot run at all.
// Wrong results and failed properties are reported in Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	o := buildOptions(scenario.RunID, opts)
	h := newHarness(o, scenario.MaxDepth, scenario.StrictExponent)
	result := NewResult(o.runIDs.Generate())

	for i, step := range scenario.Steps {
		h.executeStep(i, step, result)
	}
	for i, p := range scenario.Properties {
		if err := CheckProperty(h.engine, p); err != nil {
			result.AddError(fmt.Sprintf("properties[%d]: %v", i, err))
		}
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"run_id", result.RunID,
		"steps", len(scenario.Steps),
		"properties", len(scenario.Properties),
		"pass", result.Pass,
	)
	return result, nil
}

// RunSuite executes a compiled CUE suite. Each case is one traced step
// whose expectation is the case's want or error.
//
// The suite should already have passed compiler.Validate.
func RunSuite(suite *ir.Suite, opts ...Option) (*Result, error) {
	if suite == nil {
		return nil, fmt.Errorf("suite is nil")
	}

	o := buildOptions("", opts)
	h := newHarness(o, nil, false)
	result := NewResult(o.runIDs.Generate())

	for i, c := range suite.Cases {
		h.executeStep(i, Step{
			Op:     string(c.Op),
			Args:   c.Args,
			Expect: &Expect{Result: c.Want, Error: c.WantError},
		}, result)
	}

	h.logger.Info("suite completed",
		"suite", suite.Name,
		"run_id", result.RunID,
		"cases", len(suite.Cases),
		"pass", result.Pass,
	)
	return result, nil
}

// executeStep evaluates one step, traces it and checks its expect clause.
// Unknown operations are evaluated too; the engine reports unknown_op.
func (h *Harness) executeStep(i int, step Step, result *Result) {
	op, err := ir.ParseOp(step.Op)
	if err != nil {
		op = ir.Op(step.Op)
	}
	args := step.Args
	if args == nil {
		args = []string{}
	}

	ev := TraceEvent{
		Seq:  h.clock.Next(),
		Op:   string(op),
		Args: args,
	}
	v, err := h.engine.Eval(op, args...)
	if err != nil {
		ev.Error = engine.CodeOf(err).Name()
	} else {
		ev.Result = v.String()
	}
	result.AddTrace(ev)

	call := fmt.Sprintf("steps[%d] %s(%s)", i, op, strings.Join(args, ", "))
	switch {
	case step.Expect == nil:
		if err != nil {
			result.AddError(fmt.Sprintf("%s: unexpected error: %v", call, err))
		}
	case step.Expect.Error != "":
		if ev.Error != step.Expect.Error {
			result.AddError(fmt.Sprintf("%s: expected error %s, got %s", call, step.Expect.Error, describe(ev)))
		}
	default:
		if ev.Error != "" || ev.Result != step.Expect.Result {
			result.AddError(fmt.Sprintf("%s: expected %s, got %s", call, step.Expect.Result, describe(ev)))
		}
	}

	h.logger.Info("step completed",
		"step", i,
		"op", op,
		"seq", ev.Seq,
		"result", ev.Result,
		"error", ev.Error,
	)
}

func describe(ev TraceEvent) string {
	if ev.Error != "" {
		return "error " + ev.Error
	}
	return ev.Result
}
