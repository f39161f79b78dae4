package main

import (
	"os"

	"github.com/XanaduBarchetta/swe681-spades/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands render their own errors; only the exit code is left.
		os.Exit(cli.GetExitCode(err))
	}
}
