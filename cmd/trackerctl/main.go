// Package main is the entry point for the trackerctl CLI binary.
package main

import (
	"os"

	"research-tracker/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
