package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/entrypoint/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error,", err)
		os.Exit(1)
	}
}
