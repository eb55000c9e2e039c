package main

import (
	"os"

	"securedata/cmd/securedata/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
