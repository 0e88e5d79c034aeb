package main

import (
	"os"

	"SignalScanner/cmd/scanner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
