package main

import (
	"os"

	"github.com/abhisek/stratiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
