// Package main provides the entry point for the lead prospector CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prospector",
	Short: "AI-grounded local business lead prospector",
	Long:  "Prospector finds local business contacts for a niche and location using grounded generative search, with optional deep cross-referencing of websites and social platforms.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
