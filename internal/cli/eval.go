package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/ir"
)

// EvalResult is the JSON payload of a successful eval.
type EvalResult struct {
	Op     string   `json:"op"`
	Args   []string `json:"args"`
	Result any      `json:"result"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <op> <literal>...",
		Short: "Evaluate one operation",
		Long: `Evaluate one operation on decimal integer literals.

Operations accept short or long names, case-insensitively:
add, sub, mul, div, mod, pow, neg, abs, cmp, eq, ne, lt, le, gt, ge,
min, max, or Add, Subtract, Multiply, LessThanOrEqual and so on.
Run "tally ops" for the full list.

Flags must come before <op>; everything after it is an operand, so
negative literals need no quoting.

Exit codes:
  0 - Success
  1 - Arithmetic error (invalid literal, divide by zero, recursion limit)
  2 - Command error (unknown operation, wrong operand count)

Examples:
  tally eval add 999999999999999999999 1
  tally eval div -17 5
  tally --format json eval pow 2 128`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], args[1:], cmd)
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runEval(opts *RootOptions, name string, literals []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	op, err := ir.ParseOp(name)
	if err != nil {
		_ = formatter.Error(string(engine.ErrCodeUnknownOp), err.Error(), nil)
		return WrapExitError(ExitCommandError, "eval", err)
	}

	eng, err := opts.newEngine(cmd)
	if err != nil {
		return err
	}

	v, err := eng.Eval(op, literals...)
	if err != nil {
		code := engine.CodeOf(err)
		_ = formatter.Error(string(code), err.Error(), nil)
		if code == engine.ErrCodeArity || code == engine.ErrCodeUnknownOp {
			return WrapExitError(ExitCommandError, "eval", err)
		}
		return WrapExitError(ExitFailure, "eval", err)
	}

	opts.log().Debug("evaluated",
		"op", op,
		"args", strings.Join(literals, " "),
		"result", v.String(),
	)

	data := EvalResult{Op: string(op), Args: literals, Result: v.Canonical()}
	if data.Args == nil {
		data.Args = []string{}
	}
	return formatter.Success(data, v.String())
}

