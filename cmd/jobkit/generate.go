package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/generate"
	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/store"
)

var generateInstructions string

var generateCmd = &cobra.Command{
	Use:   "generate <job-id>",
	Short: "Generate a tailored résumé and cover letter for a stored job",
	Long: `Generate application documents for a stored job using the configured LLM
backend and the profile background, writing them to an application folder.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateInstructions, "instructions", "", "Extra instructions passed to the LLM")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobStore, err := store.NewJobStore(cfg.JobsDir())
	if err != nil {
		return err
	}
	job, err := jobStore.Get(args[0])
	if err != nil {
		return err
	}

	profile, err := store.NewProfileStore(cfg.ProfilePath()).Load()
	if err != nil {
		return err
	}
	if strings.TrimSpace(profile.Background) == "" {
		return fmt.Errorf("profile background is empty; import a résumé or edit the profile first")
	}

	if err := llm.CheckReady(cmd.Context(), cfg); err != nil {
		return err
	}
	client, err := llm.NewClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	gen := generate.New(client)

	fmt.Printf("Generating résumé for %s - %s...\n", job.Company, job.Title)
	resume, err := gen.Resume(cmd.Context(), job, profile.Background, generateInstructions)
	if err != nil {
		return fmt.Errorf("resume generation failed: %w", err)
	}

	fmt.Println("Generating cover letter...")
	coverLetter, err := gen.CoverLetter(cmd.Context(), job, profile.Background, generateInstructions)
	if err != nil {
		return fmt.Errorf("cover letter generation failed: %w", err)
	}

	apps, err := store.NewApplicationStore(cfg.ApplicationsDir())
	if err != nil {
		return err
	}
	folder, err := apps.SaveGenerated(job, resume, coverLetter)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote application documents to %s\n", folder)
	return nil
}
