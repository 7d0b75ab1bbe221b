package main

import (
	"fmt"
	"os"

	cli "finchat/cmd/finchat"
	"finchat/internal/config"
)

func main() {
	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cli.SetupRootCmd(&c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
