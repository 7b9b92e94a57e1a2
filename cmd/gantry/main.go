// Package main provides the entry point for the gantry CLI.
package main

import (
	"os"

	"github.com/rmalloy/gantry/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
