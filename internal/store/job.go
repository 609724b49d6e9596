// Package store implements the flat-file persistence layer: one JSON file per
// job posting, a single profile file, and one folder per generated
// application. The on-disk layout is the external contract of the tool, so
// the store never renames or restructures files it finds.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonathan/jobkit/internal/schemas"
)

// ErrNotFound is returned when a record does not exist on disk.
var ErrNotFound = errors.New("record not found")

// Job is a scraped job posting. ID is the site-assigned listing identifier
// and serves as the deduplication key; a record is written once per unique ID
// and never mutated afterwards.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Salary      string `json:"salary,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"`
	ScrapedAt   string `json:"scraped_at"`
}

// JobStore persists job records under a single directory.
type JobStore struct {
	dir string
}

// NewJobStore returns a store rooted at dir, creating it if needed.
func NewJobStore(dir string) (*JobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create jobs directory: %w", err)
	}
	return &JobStore{dir: dir}, nil
}

// Save writes the job to "<Company> - <Title>.json" (sanitized). The scrape
// timestamp is filled in when empty.
func (s *JobStore) Save(job *Job) (string, error) {
	if job.ScrapedAt == "" {
		job.ScrapedAt = time.Now().Format(time.RFC3339)
	}

	name := SanitizeFilename(fmt.Sprintf("%s - %s", job.Company, job.Title), 100)
	path := filepath.Join(s.dir, name+".json")

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}
	if err := schemas.Validate(schemas.JobSchema, data); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write job file %s: %w", path, err)
	}
	return path, nil
}

// Get returns the job with the given listing ID.
func (s *JobStore) Get(id string) (*Job, error) {
	jobs, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
}

// List returns all saved jobs, newest scrape first. Unreadable or malformed
// files are skipped rather than failing the listing.
func (s *JobStore) List() ([]Job, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs directory: %w", err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var job Job
		if err := json.Unmarshal(data, &job); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].ScrapedAt > jobs[j].ScrapedAt
	})
	return jobs, nil
}

// SeenIDs returns the set of listing IDs already on disk. Callers use this
// for deduplication; the scraper itself never consults the store.
func (s *JobStore) SeenIDs() (map[string]bool, error) {
	jobs, err := s.List()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		if job.ID != "" {
			seen[job.ID] = true
		}
	}
	return seen, nil
}
