package main

import (
	"fmt"
	"os"

	"github.com/TokeNest/TokeNest-SmartContract/cmd/tokenestd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
