// Package main is the entry point for the dateperiod CLI.
package main

import "github.com/basecamp/dateperiod/internal/cli"

func main() {
	cli.Execute()
}
