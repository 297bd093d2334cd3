package main

import (
	"fmt"
	"os"

	"scenario-parser/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd(&cli.App{})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
