package main

import (
	"os"

	"github.com/metaphox/rowlang/cmd/rowc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
