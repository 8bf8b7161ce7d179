package main

import (
	"os"

	"timerdash/cmd/timerdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
