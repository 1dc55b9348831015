package main

import (
	"os"

	"github.com/trknhr/diachronic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
