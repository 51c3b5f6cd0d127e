package main

import (
	"os"

	"github.com/evalund/glosor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
