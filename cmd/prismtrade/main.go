package main

import (
	"os"

	"github.com/Slidrive/prismtrade/cmd/prismtrade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
