package main

import (
	"os"

	"bennypowers.dev/cpsort/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
