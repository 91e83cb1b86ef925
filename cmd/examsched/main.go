// Package main is the examsched command.
package main

import (
	"os"

	"github.com/leapstack-labs/examsched/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
