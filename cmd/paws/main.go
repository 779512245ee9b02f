// Package main is the single-binary entrypoint for Paws.
// Paws is the local progression engine — quests, streaks, badges, and levels
// behind one binary with a REST API and CLI.
package main

import "github.com/pocketpaws/paws/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
