package main

import (
	"fmt"
	"os"

	"github.com/mithrel/mdserve/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mdserve:", err)
		os.Exit(1)
	}
}
