package main

import (
	"os"

	"github.com/udns-tools/udnscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
