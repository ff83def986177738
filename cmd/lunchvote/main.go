// Command lunchvote runs the lunch venue voting service.
package main

import (
	"os"

	"github.com/roach88/lunchvote/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		cli.ReportError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
