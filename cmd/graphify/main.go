// Command graphify transforms detector error models with hyper-edges into
// graphlike models suitable for matching-based decoders.
package main

import (
	"fmt"
	"os"

	"github.com/qecdev/graphify/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
