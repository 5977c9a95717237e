// kmpbench runs instrumented Knuth-Morris-Pratt searches over JSON datasets
// and reports matches and algorithmic work per dataset.
package main

import (
	"os"

	"github.com/coregx/kmp/cmd/kmpbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
