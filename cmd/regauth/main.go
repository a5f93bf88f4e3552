// Package main is the entry point for the regauth CLI.
package main

import (
	"os"

	"github.com/reglet-dev/regauth/cmd/regauth/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
