package ir

// Suite is a compiled set of conformance vectors.
// Suites are authored in CUE and compiled by the compiler package.
type Suite struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cases       []Case `json:"cases"`
}

// Case is one vector: an operation, its literal operands and either the
// expected result or the expected error code.
type Case struct {
	Name string   `json:"name,omitempty"`
	Op   Op       `json:"op"`
	Args []string `json:"args"`

	// Want is the expected result rendered as text: a decimal literal,
	// "-1"/"0"/"1" for orderings, "true"/"false" for predicates.
	Want string `json:"want,omitempty"`

	// WantError is the expected error code name, e.g. "divide_by_zero".
	WantError string `json:"error,omitempty"`
}

// Error code names used by suites and scenarios.
const (
	ErrorNameInvalidLiteral   = "invalid_literal"
	ErrorNameDivideByZero     = "divide_by_zero"
	ErrorNameRecursionLimit   = "recursion_limit_exceeded"
	ErrorNameNegativeExponent = "negative_exponent"
)

// ErrorNames lists every error code name a case may expect.
var ErrorNames = []string{
	ErrorNameInvalidLiteral,
	ErrorNameDivideByZero,
	ErrorNameRecursionLimit,
	ErrorNameNegativeExponent,
}
