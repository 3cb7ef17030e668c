package main

import (
	"os"

	"github.com/rustyeddy/tradegym/cmd/tradegym/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
