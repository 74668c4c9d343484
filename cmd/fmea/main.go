package main

import (
	"os"

	"github.com/moolen/fmea/cmd/fmea/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
