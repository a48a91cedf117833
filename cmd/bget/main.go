package main

import (
	"os"

	"github.com/datallboy/bget/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
