package main

import (
	"os"

	"github.com/mlorenz/asciigram/internal/cli"
	"github.com/mlorenz/asciigram/pkg/buildinfo"
)

func main() {
	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
