package main

import (
	"context"
	"os"

	"github.com/anrid/covid-plots/pkg/cli"
)

func main() {
	if err := cli.RunGlobal(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
