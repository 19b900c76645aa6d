package main

import (
	"os"

	"github.com/familiarcat/candid-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
