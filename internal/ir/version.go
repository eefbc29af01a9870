package ir

// Version constants for the suite format and the engine.
const (
	// SuiteVersion is the conformance suite schema version.
	SuiteVersion = "1"

	// EngineVersion is the tally engine version.
	EngineVersion = "0.1.0"
)
