// Package main is the career navigator CLI: it serves the HTTP API and runs
// one-off analyses from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_navigator",
	Short: "AI career guidance: skills, career paths and learning plans",
	Long: `Career Navigator extracts skills from a professional profile, proposes career
paths toward a target industry and builds a learning plan for a target role.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
