package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobkit/internal/pdf"
	"github.com/jonathan/jobkit/internal/store"
)

var exportDoc string

var exportCmd = &cobra.Command{
	Use:   "export <application-name>",
	Short: "Render application documents to PDF",
	Long: `Render the markdown documents of a generated application folder to PDF.
Use jobkit list and the applications folder names to find the argument.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDoc, "doc", "", "Only render one document: resume or cover_letter")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	apps, err := store.NewApplicationStore(cfg.ApplicationsDir())
	if err != nil {
		return err
	}

	docs := []string{"resume", "cover_letter"}
	if exportDoc != "" {
		docs = []string{exportDoc}
	}

	for _, doc := range docs {
		markdown, err := apps.ReadDocument(args[0], doc)
		if err != nil {
			return err
		}
		data, err := pdf.Render(markdown)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", doc, err)
		}
		path, err := apps.WritePDF(args[0], doc, data)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
