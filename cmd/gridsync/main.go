package main

import (
	"os"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬─┐┬┌┬┐┌─┐┬ ┬┌┐┌┌─┐
  │ ┬├┬┘│ ││└─┐└┬┘││││
  └─┘┴└─┴─┴┘└─┘ ┴ ┘└┘└─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}
