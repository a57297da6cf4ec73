package main

import (
	"os"

	"github.com/yeahyeah/yeahyeah/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
