// Package main provides the gcue CLI.
package main

import "github.com/mesh-intelligence/gcue/internal/cli"

func main() {
	cli.Execute()
}
