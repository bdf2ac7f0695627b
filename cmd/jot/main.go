// Package main is the entry point for the jot CLI tool.
package main

import (
	"os"

	"github.com/calidris/jot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
