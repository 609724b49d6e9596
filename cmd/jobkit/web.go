package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/web"
)

var (
	webPort int
	webHost string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the local dashboard",
	Long:  `Start the dashboard server for browsing jobs, running searches, and generating application documents.`,
	RunE:  runWeb,
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 8080, "Port to listen on")
	webCmd.Flags().StringVar(&webHost, "host", "127.0.0.1", "Host to bind; the dashboard has no authentication")
	rootCmd.AddCommand(webCmd)
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := web.New(cfg, fmt.Sprintf("%s:%d", webHost, webPort))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
