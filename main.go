package main

import (
	"os"

	"github.com/ratneshs230/prepdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
