package main

import (
	"fmt"
	"os"

	"github.com/coperacha/coperacha-cli/internal/cli"
	"github.com/coperacha/coperacha-cli/internal/cli/render"
	"github.com/coperacha/coperacha-cli/internal/config"
)

// Set by -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}
