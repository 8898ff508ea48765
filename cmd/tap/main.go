// Package main implements tap, a fuzzy finder and reader for Obsidian vaults.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}
