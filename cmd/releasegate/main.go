package main

import (
	"os"

	"github.com/grokify/releasegate/cmd/releasegate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
