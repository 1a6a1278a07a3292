package main

import (
	"os"

	"sitefleet.dev/cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewContainer()))
}
