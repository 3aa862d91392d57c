// Package main is the entry point for the arcanum CLI.
package main

import (
	"os"

	"github.com/arcanum-sdk/client-go/cmd/arcanum/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
