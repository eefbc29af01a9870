package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/ir"
)

// VersionInfo is the JSON payload of the version command.
type VersionInfo struct {
	Engine string `json:"engine"`
	Suite  string `json:"suite"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine and suite format versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{Engine: ir.EngineVersion, Suite: ir.SuiteVersion}
			return rootOpts.formatter(cmd).Success(info,
				fmt.Sprintf("tally %s (suite format v%s)", info.Engine, info.Suite))
		},
	}
}
