package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tally/internal/ir"
)

// Scenario defines a conformance test scenario: a sequence of evaluations
// with expected results, followed by algebraic properties checked over a
// set of operands.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MaxDepth overrides the engine depth limit; 0 means unbounded.
	MaxDepth *int `yaml:"max_depth,omitempty"`

	// StrictExponent makes negative exponents an error.
	StrictExponent bool `yaml:"strict_exponent,omitempty"`

	// RunID fixes the run ID. If empty, a UUIDv7 is generated per run.
	RunID string `yaml:"run_id,omitempty"`

	// Steps are evaluated in order; each adds one trace event.
	Steps []Step `yaml:"steps"`

	// Properties are checked after the steps and are not traced.
	Properties []Property `yaml:"properties,omitempty"`
}

// Step is one evaluation.
type Step struct {
	// Op is a short or long operation name ("le", "LessThanOrEqual").
	Op string `yaml:"op"`

	// Args are literal operands. YAML integers are taken verbatim, so
	// `args: [123456789012345678901234567890, -5]` keeps every digit.
	Args []string `yaml:"args"`

	// Expect is optional; without it the step is traced but not checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect holds exactly one of Result or Error.
type Expect struct {
	// Result is the expected value as text: a canonical literal,
	// "-1"/"0"/"1" for cmp, "true"/"false" for predicates.
	Result string `yaml:"result,omitempty"`

	// Error is the expected error code name, e.g. "divide_by_zero".
	Error string `yaml:"error,omitempty"`
}

// Property is an algebraic law checked over operands.
type Property struct {
	// Type is one of the Prop* constants.
	Type string `yaml:"type"`

	// Op selects the operation the law is checked for. Each type has a
	// default; see propertyOps.
	Op string `yaml:"op,omitempty"`

	// Operands are literals the law is checked over.
	Operands []string `yaml:"operands,omitempty"`

	// Samples adds that many pseudo-random operands drawn from Seed.
	Samples int `yaml:"samples,omitempty"`

	// Seed seeds the sample generator.
	Seed uint64 `yaml:"seed,omitempty"`

	// Digits bounds the length of sampled operands. Defaults to 20.
	Digits int `yaml:"digits,omitempty"`
}

// Property type constants.
const (
	PropCommutative = "commutative"
	PropAssociative = "associative"
	PropIdentity    = "identity"
	PropInverse     = "inverse"
	PropDivMod      = "divmod"
	PropTrichotomy  = "trichotomy"
	PropPowerLaws   = "power_laws"
	PropRoundTrip   = "round_trip"
	PropOracle      = "oracle"
)

// propertyOps lists, per property type, the operations the law holds for.
// The first entry is the default when Property.Op is empty, except for
// the oracle, which checks every listed operation.
var propertyOps = map[string][]ir.Op{
	PropCommutative: {ir.OpAdd, ir.OpMul, ir.OpEq, ir.OpNe, ir.OpMin, ir.OpMax},
	PropAssociative: {ir.OpAdd, ir.OpMul, ir.OpMin, ir.OpMax},
	PropIdentity:    {ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpPow},
	PropInverse:     {ir.OpAdd, ir.OpSub},
	PropDivMod:      {ir.OpDiv},
	PropTrichotomy:  {ir.OpCmp},
	PropPowerLaws:   {ir.OpPow},
	PropRoundTrip:   {ir.OpNeg, ir.OpAbs},
	PropOracle: {
		ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod, ir.OpPow,
		ir.OpCmp, ir.OpMin, ir.OpMax,
	},
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Literal operands are not checked here: a step may expect invalid_literal.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 && len(s.Properties) == 0 {
		return fmt.Errorf("at least one step or property is required")
	}
	if s.MaxDepth != nil && *s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if step.Expect == nil {
			continue
		}
		if (step.Expect.Result == "") == (step.Expect.Error == "") {
			return fmt.Errorf("steps[%d].expect: exactly one of result or error is required", i)
		}
	}

	for i, p := range s.Properties {
		if err := validateProperty(i, &p); err != nil {
			return err
		}
	}
	return nil
}

// validateProperty validates a single property based on its type.
func validateProperty(index int, p *Property) error {
	if p.Type == "" {
		return fmt.Errorf("properties[%d]: type is required", index)
	}
	ops, ok := propertyOps[p.Type]
	if !ok {
		return fmt.Errorf("properties[%d]: unknown property type %q", index, p.Type)
	}
	if p.Op != "" {
		op, err := ir.ParseOp(p.Op)
		if err != nil {
			return fmt.Errorf("properties[%d]: %w", index, err)
		}
		// The oracle cross-checks any operation.
		if p.Type != PropOracle && !slices.Contains(ops, op) {
			return fmt.Errorf("properties[%d]: %s does not apply to %s", index, p.Type, op)
		}
	}
	if len(p.Operands) == 0 && p.Samples == 0 {
		return fmt.Errorf("properties[%d]: operands or samples is required", index)
	}
	if p.Samples < 0 || p.Digits < 0 {
		return fmt.Errorf("properties[%d]: samples and digits must be non-negative", index)
	}
	for j, s := range p.Operands {
		if _, err := ir.Parse(s); err != nil {
			return fmt.Errorf("properties[%d].operands[%d]: %w", index, j, err)
		}
	}
	return nil
}
