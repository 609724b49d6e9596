package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/linkedin"
	"github.com/jonathan/jobkit/internal/store"
)

var jobHeadless bool

var jobCmd = &cobra.Command{
	Use:   "job <id-or-url>",
	Short: "Fetch a single job listing by ID or URL",
	Long: `Fetch one LinkedIn job listing and store it locally. Accepts either the
numeric job ID or a full listing URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runJob,
}

func init() {
	jobCmd.Flags().BoolVar(&jobHeadless, "headless", false, "Run the browser headless (logins will fail)")
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id := args[0]
	if fromURL := linkedin.JobIDFromURL(id); fromURL != "" {
		id = fromURL
	}

	session := linkedin.NewSession(cfg.CookiesPath(), jobHeadless)
	if err := session.Start(cmd.Context()); err != nil {
		return err
	}
	defer session.Stop()

	job, err := session.FetchJob(cmd.Context(), id)
	if err != nil {
		return err
	}

	jobStore, err := store.NewJobStore(cfg.JobsDir())
	if err != nil {
		return err
	}
	path, err := jobStore.Save(job)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s - %s\n  %s\n", job.Company, job.Title, path)
	return nil
}
