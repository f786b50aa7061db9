// Package main provides the entry point for the airport CLI.
package main

import (
	"os"

	"github.com/couchcryptid/airport-control/cmd/airport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
