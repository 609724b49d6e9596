package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/config"
	"github.com/jonathan/jobkit/internal/linkedin"
	"github.com/jonathan/jobkit/internal/store"
)

var (
	searchKeywords   string
	searchLocation   string
	searchRemote     []string
	searchExperience []string
	searchDate       string
	searchMax        int
	searchHeadless   bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Scrape LinkedIn job listings",
	Long: `Open a browser, run a LinkedIn job search, and store each listing as a
JSON file under the data directory. If LinkedIn asks for a login, complete it
in the browser window; the session is saved for later runs.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "Search keywords (defaults to configured keywords)")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Location filter")
	searchCmd.Flags().StringSliceVar(&searchRemote, "remote", nil, "Workplace filter: on-site, remote, hybrid")
	searchCmd.Flags().StringSliceVar(&searchExperience, "experience", nil, "Experience levels: internship, entry, associate, mid-senior, director, executive")
	searchCmd.Flags().StringVar(&searchDate, "date", "", "Posted within: day, week, month")
	searchCmd.Flags().IntVar(&searchMax, "max", 0, "Maximum listings to scrape")
	searchCmd.Flags().BoolVar(&searchHeadless, "headless", false, "Run the browser headless (logins will fail)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := linkedin.SearchOptions{
		Keywords: searchKeywords,
		Location: searchLocation,
		Filters: linkedin.SearchFilters{
			RemoteOptions:    searchRemote,
			ExperienceLevels: searchExperience,
			DatePosted:       searchDate,
		},
		MaxJobs: searchMax,
	}
	applySearchDefaults(&opts, cfg)
	if opts.Keywords == "" {
		return fmt.Errorf("no keywords given and none configured; pass --keywords or run jobkit config")
	}

	session := linkedin.NewSession(cfg.CookiesPath(), searchHeadless)
	if err := session.Start(cmd.Context()); err != nil {
		return err
	}
	defer session.Stop()

	jobs, err := session.Search(cmd.Context(), opts, nil)
	if err != nil {
		return err
	}

	saved, err := saveJobs(cfg, jobs)
	if err != nil {
		return err
	}
	fmt.Printf("Scraped %d listings, %d new\n", len(jobs), saved)
	return nil
}

// applySearchDefaults fills unset options from the stored configuration.
func applySearchDefaults(opts *linkedin.SearchOptions, cfg *config.Config) {
	if opts.Keywords == "" {
		opts.Keywords = cfg.Search.Keywords
	}
	if opts.Location == "" {
		opts.Location = cfg.Search.Location
	}
	if len(opts.Filters.RemoteOptions) == 0 {
		opts.Filters.RemoteOptions = cfg.Search.RemoteOptions
	}
	if len(opts.Filters.ExperienceLevels) == 0 {
		opts.Filters.ExperienceLevels = cfg.Search.ExperienceLevel
	}
	if opts.Filters.DatePosted == "" {
		opts.Filters.DatePosted = cfg.Search.DatePosted
	}
	if opts.MaxJobs <= 0 {
		opts.MaxJobs = cfg.Search.MaxJobs
	}
}

// saveJobs persists scraped listings, skipping IDs already on disk, and
// returns how many were new.
func saveJobs(cfg *config.Config, jobs []*store.Job) (int, error) {
	jobStore, err := store.NewJobStore(cfg.JobsDir())
	if err != nil {
		return 0, err
	}
	seen, err := jobStore.SeenIDs()
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, job := range jobs {
		if seen[job.ID] {
			continue
		}
		if _, err := jobStore.Save(job); err != nil {
			return saved, err
		}
		saved++
		fmt.Printf("  + %s - %s (%s)\n", job.Company, job.Title, job.Location)
	}
	return saved, nil
}
