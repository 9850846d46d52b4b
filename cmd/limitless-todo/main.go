// Package main provides the entry point for the limitless-todo CLI.
package main

import (
	"github.com/kazu0914/limitless-todo-extractor/internal/cli"
)

func main() {
	cli.Execute()
}
