// Package main is the entry point for the repoview CLI.
package main

import (
	"context"
	"os"

	"github.com/kstenerud/repoview/internal/cli"
)

// version, commit, date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := cli.NotifyInterrupt(context.Background())
	defer stop()

	return cli.Execute(ctx, version, commit, date)
}
