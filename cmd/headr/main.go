// Package main provides the headr command, which prints the first part of files.
package main

import (
	"os"

	"github.com/leapstack-labs/headr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
