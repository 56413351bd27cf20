package main

import (
	"os"

	"github.com/ats/lynchboard/cmd/lynch/commands"
)

// main is the entry point for the lynch CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
