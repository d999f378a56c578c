// Package main is the entry point for the riskctl CLI binary.
package main

import (
	"os"

	cli "heartrisk/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
