// Package main is the entry point for the dmaic CLI.
package main

import (
	"os"

	"github.com/greenbelt-labs/dmaic/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
