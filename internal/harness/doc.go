// Package harness provides conformance testing for the arithmetic engine.
//
// The harness evaluates test scenarios step by step against a fresh
// engine, records a deterministic trace, and checks algebraic properties
// over fixed and sampled operands.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: carry_chain
//	description: "What this scenario validates"
//	max_depth: 1000          # optional, 0 means unbounded
//	strict_exponent: false   # optional
//	steps:
//	  - op: add
//	    args: [999999999999999999999999, 1]
//	    expect:
//	      result: "1000000000000000000000000"
//	  - op: div
//	    args: [1, 0]
//	    expect:
//	      error: divide_by_zero
//	properties:
//	  - type: commutative
//	    op: mul
//	    operands: ["-12", "0", "99999999999"]
//	    samples: 20
//	    seed: 7
//
// # Property Types
//
//   - commutative: a op b = b op a (add, mul, eq, ne, min, max)
//   - associative: (a op b) op c = a op (b op c) (add, mul, min, max)
//   - identity: a+0, a-0, a*1, a/1 and a^1 equal a
//   - inverse: a+(-a) = 0 and a-a = 0
//   - divmod: (a/b)*b + a%b = a, |a%b| < |b|, a%b takes the sign of a
//   - trichotomy: exactly one of a<b, a=b, a>b, and cmp/le/ge/ne agree
//   - power_laws: a^0 = 1, a^m * a^n = a^(m+n), (a^2)^3 = a^6, (-a)^2 = a^2
//   - round_trip: text and int64 round trips, -(-a) = a, ||a|| = |a|
//   - oracle: results match an independent apd.BigInt computation
//
// # Deterministic Testing
//
// Every trace event carries a seq from testutil.DeterministicClock, and
// golden snapshots leave out the run ID, so the same scenario always
// produces byte-identical canonical JSON.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/carry.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
