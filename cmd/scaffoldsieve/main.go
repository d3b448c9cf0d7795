// Command scaffoldsieve screens candidate molecule tables by scaffold and
// exclusion substructure patterns.
package main

import (
	"os"

	"github.com/turtacn/ScaffoldSieve/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	// Inject build-time variables into the cli package.
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// Execute prints the error to stderr itself.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
