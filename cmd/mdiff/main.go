// Package main is the entry point for the mdiff CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mdiff-dev/mdiff/cmd/mdiff/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
