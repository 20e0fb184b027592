// Package main is the entry point for arpscout.
package main

import "arpscout/internal/cli"

func main() {
	cli.Execute()
}
