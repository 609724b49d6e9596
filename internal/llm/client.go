// Package llm provides a provider-agnostic text-generation client used for
// resume and cover letter generation. Three interchangeable backends are
// supported: a local Ollama service and the Gemini and OpenAI cloud APIs.
package llm

import (
	"context"
	"fmt"

	"github.com/jonathan/jobkit/internal/config"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// Generate produces text for the prompt. systemPrompt may be empty.
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider. Missing API keys
// are reported here, before any generation work is attempted.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		key := cfg.ResolveAPIKey()
		if key == "" {
			return nil, fmt.Errorf("gemini provider requires an API key (set GEMINI_API_KEY or llm.api_key)")
		}
		return NewGeminiClient(ctx, cfg.LLM.Model, key)
	case "openai":
		key := cfg.ResolveAPIKey()
		if key == "" {
			return nil, fmt.Errorf("openai provider requires an API key (set OPENAI_API_KEY or llm.api_key)")
		}
		return NewOpenAIClient(cfg.LLM.Model, key), nil
	case "ollama", "":
		return NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}

// CheckReady verifies the configured backend is usable without generating
// anything: key presence for cloud providers, reachability for Ollama.
func CheckReady(ctx context.Context, cfg *config.Config) error {
	switch cfg.LLM.Provider {
	case "gemini", "openai":
		if cfg.ResolveAPIKey() == "" {
			return fmt.Errorf("%s provider requires an API key", cfg.LLM.Provider)
		}
		return nil
	case "ollama", "":
		return NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model).Ping(ctx)
	default:
		return fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
