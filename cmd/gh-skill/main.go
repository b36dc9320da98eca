package main

import (
	"os"

	"github.com/assistkit/gh-skill/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
