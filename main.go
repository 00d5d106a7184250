package main

import (
	"os"

	"github.com/tkha/tierquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
