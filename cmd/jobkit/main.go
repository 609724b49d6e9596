// Package main provides the jobkit command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jobkit",
	Short: "LinkedIn job search and application toolkit",
	Long:  "jobkit scrapes LinkedIn job listings into local JSON files and generates tailored résumés and cover letters through an LLM backend.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the data directory and loads the stored configuration,
// creating the directory layout on first use.
func loadConfig() (*config.Config, error) {
	dataDir := os.Getenv("JOBKIT_DATA_DIR")
	if dataDir == "" {
		var err error
		dataDir, err = config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}
	if err := config.EnsureDirs(dataDir); err != nil {
		return nil, err
	}
	return config.Load(dataDir)
}
