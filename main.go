// Package main is the entry point for the morph CLI.
package main

import "gooze.dev/pkg/morph/cmd"

func main() {
	cmd.Execute()
}
