// Package main is the entry point for the pkmt CLI tool.
package main

import (
	"os"

	"github.com/TobiasForner/pkmt-sub000/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
