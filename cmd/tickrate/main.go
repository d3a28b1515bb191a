package main

import (
	"os"

	"github.com/jask/tickrate/cmd/tickrate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
