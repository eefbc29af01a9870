package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/compiler"
	"github.com/roach88/tally/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Suites int                        `json:"suites"`
	Cases  int                        `json:"cases"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <suites-dir>",
		Short: "Validate CUE suites without running them",
		Long: `Load, compile and validate the CUE conformance suites in a directory.

Suites live under a top-level suite: field. Every case names an
operation, its operands, and either want or error:

  suite: carry: cases: [
    {op: "add", args: [999999999999, 1], want: 999999999999 + 1},
    {op: "div", args: [1, 0], error: "divide_by_zero"},
  ]

Errors from every suite and case are reported, not only the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, suitesDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	suites, validationErrors, err := loadAndValidate(suitesDir, formatter)
	if err != nil {
		return err
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	result := ValidationResult{Valid: true, Suites: len(suites), Cases: countCases(suites)}
	return formatter.Success(result,
		fmt.Sprintf("✓ All suites valid (%d suite(s), %d case(s))", result.Suites, result.Cases))
}

// loadAndValidate loads every suite in dir and validates it.
// A non-nil error means the directory could not be loaded at all; it has
// already been reported through formatter.
func loadAndValidate(dir string, formatter *OutputFormatter) ([]*ir.Suite, []compiler.ValidationError, error) {
	loadResult, loadErrors := LoadSuites(dir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		code, message := ErrCodeGeneric, loadErrors[0].Error()
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			code, message = loadErr.Code, loadErr.Message
		}
		_ = formatter.Error(code, message, nil)
		return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, dir)

	var all []compiler.ValidationError
	for _, err := range loadErrors {
		ve := compiler.ValidationError{Field: "load", Message: err.Error(), Code: ErrCodeGeneric}
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			ve.Message = loadErr.Message
			ve.Code = loadErr.Code
			ve.Line = loadErr.Line()
		}
		all = append(all, ve)
	}

	for _, s := range loadResult.Suites {
		formatter.VerboseLog("Validating suite: %s (%d case(s))", s.Name, len(s.Cases))
		for _, ve := range compiler.Validate(s) {
			ve.Field = "suite." + s.Name + "." + ve.Field
			all = append(all, ve)
		}
	}

	return loadResult.Suites, all, nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.IsJSON() {
		result := ValidationResult{Valid: false, Errors: errs}
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(w, "line %d\n", err.Line)
		}
		fmt.Fprintf(w, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

func countCases(suites []*ir.Suite) int {
	n := 0
	for _, s := range suites {
		n += len(s.Cases)
	}
	return n
}
