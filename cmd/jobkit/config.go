package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the stored configuration",
	Long: `Print the active configuration and data directory. With --init, write a
default configuration file if none exists.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config file if none exists")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if configInit {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println("Wrote default configuration.")
	}

	fmt.Printf("Data directory: %s\n\n", cfg.DataDir)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
