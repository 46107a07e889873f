// Package main provides the rut command-line tool: cleaning, validating,
// formatting and generating Chilean RUTs from the shell.
package main

import (
	"os"

	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rut"),
		kong.Description("Clean, validate, format and generate Chilean RUTs."),
		kong.UsageOnError(),
	)
	err := ctx.Run(newGlobals(&cli, os.Stdout, os.Stderr))
	ctx.FatalIfErrorf(err)
}
