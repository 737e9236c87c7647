package main

import (
	"github.com/tacogips/rptnew/internal/cli"
)

// Version information (set via ldflags during build)
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.GitCommit = gitCommit
	cli.BuildDate = buildDate

	// Execute the root command
	cli.Execute()
}
