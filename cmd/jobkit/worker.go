package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/config"
	"github.com/jonathan/jobkit/internal/importers"
	"github.com/jonathan/jobkit/internal/linkedin"
	"github.com/jonathan/jobkit/internal/store"
	"github.com/jonathan/jobkit/internal/task"
)

var (
	workerTaskID     string
	workerKeywords   string
	workerLocation   string
	workerRemote     string
	workerExperience string
	workerDate       string
	workerMax        int
	workerHeadless   bool
	workerSource     string
	workerURL        string
	workerReplace    bool
)

// workerCmd is the detached process behind asynchronous dashboard actions.
// It is launched by task.Launch, never by hand, and reports exclusively
// through its status file.
var workerCmd = &cobra.Command{
	Use:    "worker <kind>",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE:   runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerTaskID, "task-id", "", "Task identifier")
	workerCmd.Flags().StringVar(&workerKeywords, "keywords", "", "")
	workerCmd.Flags().StringVar(&workerLocation, "location", "", "")
	workerCmd.Flags().StringVar(&workerRemote, "remote", "", "")
	workerCmd.Flags().StringVar(&workerExperience, "experience", "", "")
	workerCmd.Flags().StringVar(&workerDate, "date", "", "")
	workerCmd.Flags().IntVar(&workerMax, "max", 0, "")
	workerCmd.Flags().BoolVar(&workerHeadless, "headless", false, "")
	workerCmd.Flags().StringVar(&workerSource, "source", "", "")
	workerCmd.Flags().StringVar(&workerURL, "url", "", "")
	workerCmd.Flags().BoolVar(&workerReplace, "replace", false, "")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	if workerTaskID == "" {
		return fmt.Errorf("worker requires --task-id")
	}
	kind := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reporter, err := task.NewReporter(cfg.DataDir, kind, workerTaskID)
	if err != nil {
		return err
	}
	// A panic anywhere in the work must still leave a terminal status, or
	// the dashboard polls a dead task forever.
	defer reportPanic(reporter)

	var workErr error
	switch kind {
	case task.KindSearch:
		workErr = workerSearch(cmd.Context(), cfg, reporter)
	case task.KindImport:
		workErr = workerImport(cmd.Context(), cfg, reporter)
	default:
		workErr = fmt.Errorf("unknown worker kind %q", kind)
	}

	if workErr != nil {
		log.Printf("[worker] %s %s failed: %v", kind, workerTaskID, workErr)
		return reporter.Fail(workErr)
	}
	return nil
}

// reportPanic converts a panic into a terminal error status.
func reportPanic(reporter *task.Reporter) {
	r := recover()
	if r == nil {
		return
	}
	log.Printf("[worker] panic: %v", r)
	if err := reporter.Fail(fmt.Errorf("worker panic: %v", r)); err != nil {
		log.Printf("[worker] could not record panic: %v", err)
	}
}

func workerSearch(ctx context.Context, cfg *config.Config, reporter *task.Reporter) error {
	opts := linkedin.SearchOptions{
		Keywords: workerKeywords,
		Location: workerLocation,
		Filters: linkedin.SearchFilters{
			DatePosted: workerDate,
		},
		MaxJobs: workerMax,
	}
	if workerRemote != "" {
		opts.Filters.RemoteOptions = strings.Split(workerRemote, ",")
	}
	if workerExperience != "" {
		opts.Filters.ExperienceLevels = strings.Split(workerExperience, ",")
	}
	applySearchDefaults(&opts, cfg)
	if opts.Keywords == "" {
		return fmt.Errorf("no keywords given and none configured")
	}

	if err := reporter.Running("starting browser", 0, 0); err != nil {
		return err
	}

	session := linkedin.NewSession(cfg.CookiesPath(), workerHeadless)
	if err := session.Start(ctx); err != nil {
		return err
	}
	defer session.Stop()

	progress := func(done, total int) {
		// Progress failures must not abort the scrape.
		if err := reporter.Running("processing listings", done, total); err != nil {
			log.Printf("[worker] progress update failed: %v", err)
		}
	}

	jobs, err := session.Search(ctx, opts, progress)
	if err != nil {
		return err
	}

	saved, err := saveJobs(cfg, jobs)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("found %d listings, %d new", len(jobs), saved)
	return reporter.Complete(msg, jobs)
}

func workerImport(ctx context.Context, cfg *config.Config, reporter *task.Reporter) error {
	if workerSource != "linkedin" {
		return fmt.Errorf("unknown import source %q", workerSource)
	}

	if err := reporter.Running("starting browser", 0, 0); err != nil {
		return err
	}

	session := linkedin.NewSession(cfg.CookiesPath(), workerHeadless)
	if err := session.Start(ctx); err != nil {
		return err
	}
	defer session.Stop()

	imp := &importers.LinkedInImporter{Session: session}
	text, err := imp.Fetch(ctx, workerURL)
	if err != nil {
		return err
	}

	profileStore := store.NewProfileStore(cfg.ProfilePath())
	profile, err := profileStore.Load()
	if err != nil {
		return err
	}
	profile.MergeBackground("LinkedIn profile", text, workerReplace)
	if err := profileStore.Save(profile); err != nil {
		return err
	}

	return reporter.CompleteProfile("profile imported", profile)
}
