package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/ir"
)

// OpEntry describes one operation in ops output.
type OpEntry struct {
	Op     string `json:"op"`
	Name   string `json:"name"`
	Arity  int    `json:"arity"`
	Result string `json:"result"`
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(rootOpts, cmd)
		},
	}
}

func runOps(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var entries []OpEntry
	for _, info := range ir.Ops() {
		entries = append(entries, OpEntry{
			Op:     string(info.Op),
			Name:   info.Name,
			Arity:  info.Arity,
			Result: resultKindName(info.Result),
		})
	}

	if formatter.IsJSON() {
		return formatter.Success(entries, "")
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OP\tNAME\tARITY\tRESULT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Op, e.Name, e.Arity, e.Result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return formatter.Success(nil, strings.TrimSuffix(b.String(), "\n"))
}

func resultKindName(k ir.ResultKind) string {
	switch k {
	case ir.ResultOrdering:
		return "ordering"
	case ir.ResultBool:
		return "bool"
	default:
		return "int"
	}
}
