// Package main is the entry point for the todo-journal application.
package main

import (
	"fmt"
	"os"

	"github.com/hy4ri/todo-journal/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
