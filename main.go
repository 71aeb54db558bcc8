package main

import (
	"os"

	"github.com/samuelfneumann/warehouse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
