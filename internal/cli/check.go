package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/harness"
)

// SuiteResult holds the outcome of one suite.
type SuiteResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Cases  int      `json:"cases"`
	Errors []string `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Suites []SuiteResult `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <suites-dir>",
		Short: "Run CUE suites against the engine",
		Long: `Validate the CUE suites in a directory, then evaluate every case.

Unlike test, all suites share one engine configured from TALLY_*
environment variables and the global flags, so --max-depth and
--strict-exponent apply to every case.

Exit codes:
  0 - All suites passed
  1 - Invalid suites, or one or more cases failed
  2 - Command error (invalid paths, etc.)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, suitesDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	suites, validationErrors, err := loadAndValidate(suitesDir, formatter)
	if err != nil {
		return err
	}
	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	eng, err := opts.newEngine(cmd)
	if err != nil {
		return err
	}

	result := CheckResult{
		Suites: make([]SuiteResult, 0, len(suites)),
		Total:  len(suites),
	}
	w := formatter.Writer
	for _, s := range suites {
		run, err := harness.RunSuite(s, harness.WithEngine(eng), harness.WithLogger(opts.log()))
		if err != nil {
			return WrapExitError(ExitFailure, "suite "+s.Name, err)
		}

		sr := SuiteResult{Name: s.Name, Pass: run.Pass, Cases: len(s.Cases), Errors: run.Errors}
		result.Suites = append(result.Suites, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}

		if !formatter.IsJSON() {
			if sr.Pass {
				fmt.Fprintf(w, "✓ %s (%d cases)\n", sr.Name, sr.Cases)
			} else {
				fmt.Fprintf(w, "✗ %s (%d cases)\n", sr.Name, sr.Cases)
				for _, e := range sr.Errors {
					fmt.Fprintf(w, "  %s\n", e)
				}
			}
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
	if result.Failed > 0 {
		if formatter.IsJSON() {
			_ = formatter.Failure("CHECK_FAILED", summary, result)
		} else {
			fmt.Fprintln(w)
			fmt.Fprintln(w, summary)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}

	if formatter.IsJSON() {
		return formatter.Success(result, "")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, summary)
	return nil
}
