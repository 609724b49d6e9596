package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/jobkit/internal/schemas"
)

// Profile is the candidate profile used as LLM input context. Background is a
// free-text blob that may concatenate multiple imported sources, each
// delimited by a labeled section marker.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Background string `json:"background"`
}

// ProfileStore persists the single candidate profile file.
type ProfileStore struct {
	path string
}

// NewProfileStore returns a store for the profile at path.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// Load reads the profile, returning an empty profile when none exists yet.
func (s *ProfileStore) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &p, nil
}

// Save writes the profile to disk.
func (s *ProfileStore) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := schemas.Validate(schemas.ProfileSchema, data); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// MergeBackground merges an imported source into the background blob. Unless
// replace is set, the new text is appended under a labeled section header so
// prior content is never silently dropped.
func (p *Profile) MergeBackground(label, text string, replace bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if replace || strings.TrimSpace(p.Background) == "" {
		p.Background = text
		return
	}
	p.Background = strings.TrimRight(p.Background, "\n") +
		"\n\n--- " + label + " ---\n" + text
}

// FillContact sets contact fields that are currently empty. Imports never
// overwrite values the user already entered.
func (p *Profile) FillContact(name, email, phone string) {
	if p.Name == "" {
		p.Name = name
	}
	if p.Email == "" {
		p.Email = email
	}
	if p.Phone == "" {
		p.Phone = phone
	}
}
