// Package main is the entry point for the tps CLI.
package main

import "tps.dev/pkg/tps/cmd"

func main() {
	cmd.Execute()
}
