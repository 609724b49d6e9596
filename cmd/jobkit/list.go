package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored job listings",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobStore, err := store.NewJobStore(cfg.JobsDir())
	if err != nil {
		return err
	}
	jobs, err := jobStore.List()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs stored. Run jobkit search first.")
		return nil
	}

	apps, err := store.NewApplicationStore(cfg.ApplicationsDir())
	if err != nil {
		return err
	}
	applied, err := apps.AppliedIDs()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tSCRAPED\t")
	for _, job := range jobs {
		mark := ""
		if applied[job.ID] {
			mark = "applied"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID, job.Title, job.Company, job.Location, job.ScrapedAt, mark)
	}
	return w.Flush()
}
