// Package main provides the qmod command line tool.
package main

import (
	"os"

	"github.com/qmod-labs/qmod/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
