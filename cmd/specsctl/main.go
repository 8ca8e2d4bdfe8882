// Package main provides the entry point for the specsctl CLI.
package main

import (
	"os"

	"github.com/kailas-cloud/autospecs/cmd/specsctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
