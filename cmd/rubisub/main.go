package main

import (
	"os"

	"github.com/rubisub/rubisub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
