package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/docsift-labs/docsift-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load .env if present; environment variables already set win.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
