// Package generate renders prompt templates for a job and candidate
// background, submits them to the LLM backend, and cleans the response of
// conversational artifacts.
package generate

import (
	"context"
	"fmt"

	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/prompts"
	"github.com/jonathan/jobkit/internal/store"
)

// Generator produces tailored application documents for a job.
type Generator struct {
	client llm.Client
}

// New returns a Generator backed by the given LLM client.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Resume generates a tailored resume in markdown. LLM failures propagate to
// the caller; there is no retry.
func (g *Generator) Resume(ctx context.Context, job *store.Job, background, instructions string) (string, error) {
	return g.generate(ctx, "resume_user", "resume_system", job, background, instructions)
}

// CoverLetter generates a tailored cover letter in markdown.
func (g *Generator) CoverLetter(ctx context.Context, job *store.Job, background, instructions string) (string, error) {
	return g.generate(ctx, "cover_letter_user", "cover_letter_system", job, background, instructions)
}

func (g *Generator) generate(ctx context.Context, userKey, systemKey string, job *store.Job, background, instructions string) (string, error) {
	userTemplate, err := prompts.Get(userKey)
	if err != nil {
		return "", err
	}
	systemPrompt, err := prompts.Get(systemKey)
	if err != nil {
		return "", err
	}

	prompt := prompts.Format(userTemplate, map[string]string{
		"JobTitle":       job.Title,
		"Company":        job.Company,
		"JobDescription": job.Description,
		"Background":     background,
	})
	if instructions != "" {
		prompt += "\n\n## Additional Instructions\n" + instructions
	}

	raw, err := g.client.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	return CleanResponse(raw), nil
}
