package main

import (
	"os"

	"github.com/spigell/scout-profile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
