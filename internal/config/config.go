// Package config provides configuration loading and persistence for jobkit.
// Configuration lives as a JSON file inside the data directory alongside the
// job, profile, and application stores.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// SearchConfig holds the default job search parameters.
type SearchConfig struct {
	Keywords        string   `json:"keywords"`
	Location        string   `json:"location"`
	RemoteOptions   []string `json:"remote_options"`
	ExperienceLevel []string `json:"experience_level"`
	DatePosted      string   `json:"date_posted" validate:"omitempty,oneof=day week month any"`
	MaxJobs         int      `json:"max_jobs" validate:"gte=0,lte=200"`
}

// LLMConfig holds the text-generation backend settings.
type LLMConfig struct {
	Provider string `json:"provider" validate:"oneof=ollama gemini openai"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty" validate:"omitempty,url"`
}

// Config is the top-level jobkit configuration.
type Config struct {
	DataDir string       `json:"-"`
	Search  SearchConfig `json:"search"`
	LLM     LLMConfig    `json:"llm"`
}

var validate = validator.New()

// DefaultDataDir returns the data directory, honoring JOBKIT_DATA_DIR.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv("JOBKIT_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".jobkit"), nil
}

// Default returns a Config with default values rooted at dataDir.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Search: SearchConfig{
			Keywords:        "software engineer",
			Location:        "Remote",
			RemoteOptions:   []string{"remote", "hybrid"},
			ExperienceLevel: []string{"mid-senior", "director"},
			DatePosted:      "week",
			MaxJobs:         50,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3",
			BaseURL:  "http://localhost:11434",
		},
	}
}

// Load reads config.json from dataDir, falling back to defaults when the file
// does not exist. The data directory tree is created as a side effect.
func Load(dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	if err := EnsureDirs(dataDir); err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to config.json.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(c.DataDir, "config.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ResolveAPIKey returns the configured API key, falling back to the
// provider's conventional environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	switch c.LLM.Provider {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// JobsDir returns the job record directory.
func (c *Config) JobsDir() string { return filepath.Join(c.DataDir, "jobs") }

// ApplicationsDir returns the generated application directory.
func (c *Config) ApplicationsDir() string { return filepath.Join(c.DataDir, "applications") }

// ProfilePath returns the candidate profile file path.
func (c *Config) ProfilePath() string { return filepath.Join(c.DataDir, "profile.json") }

// CookiesPath returns the persisted LinkedIn session cookie file path.
func (c *Config) CookiesPath() string { return filepath.Join(c.DataDir, "linkedin_cookies.json") }

// EnsureDirs creates the data directory tree if missing.
func EnsureDirs(dataDir string) error {
	for _, dir := range []string{dataDir, filepath.Join(dataDir, "jobs"), filepath.Join(dataDir, "applications")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
