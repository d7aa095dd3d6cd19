// Package main is the entry point for the formeval CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/formeval/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
