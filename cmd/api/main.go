package main

import (
	"os"

	"github.com/xxz807/bookkeeping/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
