// Package main provides the entry point for the image-science CLI and MCP
// server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ironsheep/image-science/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cli.Version = Version
	cli.BuildDate = BuildTime
	cli.GitCommit = GitCommit

	if err := cli.New().Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
