package main

import (
	"os"

	"github.com/lacquerai/archetype/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
