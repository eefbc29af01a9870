// Command tally evaluates arbitrary-precision decimal integer arithmetic and
// runs conformance scenarios and suites against the engine.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tally/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
