package main

import (
	"os"

	"github.com/lugondev/go-brewstake/cmd/brewstake/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
