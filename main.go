package main

import (
	"os"

	"github.com/trknhr/namesake/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
