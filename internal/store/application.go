package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Application describes one generated application folder.
type Application struct {
	Name           string `json:"name"`
	JobID          string `json:"job_id"`
	GeneratedAt    string `json:"generated_at"`
	HasResume      bool   `json:"has_resume"`
	HasCoverLetter bool   `json:"has_cover_letter"`
}

// ApplicationStore manages generated application folders, one per job, keyed
// by the sanitized "<Company> - <Title>" name.
type ApplicationStore struct {
	dir string
}

// NewApplicationStore returns a store rooted at dir, creating it if needed.
func NewApplicationStore(dir string) (*ApplicationStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create applications directory: %w", err)
	}
	return &ApplicationStore{dir: dir}, nil
}

// FolderName returns the application folder name for a job.
func FolderName(job *Job) string {
	return SanitizeFilename(fmt.Sprintf("%s - %s", job.Company, job.Title), 60)
}

// SaveGenerated writes resume.md, cover_letter.md, the job snapshot, and
// metadata into the job's application folder. Regeneration overwrites prior
// content for the same folder.
func (s *ApplicationStore) SaveGenerated(job *Job, resume, coverLetter string) (string, error) {
	name := FolderName(job)
	folder := filepath.Join(s.dir, name)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create application folder: %w", err)
	}

	if err := os.WriteFile(filepath.Join(folder, "resume.md"), []byte(resume), 0o644); err != nil {
		return "", fmt.Errorf("failed to write resume: %w", err)
	}
	if err := os.WriteFile(filepath.Join(folder, "cover_letter.md"), []byte(coverLetter), 0o644); err != nil {
		return "", fmt.Errorf("failed to write cover letter: %w", err)
	}

	snapshot, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode job snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(folder, "job.json"), snapshot, 0o644); err != nil {
		return "", fmt.Errorf("failed to write job snapshot: %w", err)
	}

	meta := map[string]string{
		"job_id":       job.ID,
		"generated_at": time.Now().Format(time.RFC3339),
	}
	metaData, _ := json.MarshalIndent(meta, "", "  ")
	if err := os.WriteFile(filepath.Join(folder, "meta.json"), metaData, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return folder, nil
}

// List returns all application folders.
func (s *ApplicationStore) List() ([]Application, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read applications directory: %w", err)
	}

	var apps []Application
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(s.dir, entry.Name())
		app := Application{
			Name:           entry.Name(),
			HasResume:      fileExists(filepath.Join(folder, "resume.md")),
			HasCoverLetter: fileExists(filepath.Join(folder, "cover_letter.md")),
		}
		if data, err := os.ReadFile(filepath.Join(folder, "meta.json")); err == nil {
			var meta map[string]string
			if json.Unmarshal(data, &meta) == nil {
				app.JobID = meta["job_id"]
				app.GeneratedAt = meta["generated_at"]
			}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// AppliedIDs returns the job IDs that already have a generated application.
func (s *ApplicationStore) AppliedIDs() (map[string]bool, error) {
	apps, err := s.List()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(apps))
	for _, app := range apps {
		if app.JobID != "" {
			ids[app.JobID] = true
		}
	}
	return ids, nil
}

// ReadDocument returns the named markdown document from an application
// folder. doc must be "resume" or "cover_letter".
func (s *ApplicationStore) ReadDocument(name, doc string) (string, error) {
	switch doc {
	case "resume", "cover_letter":
	default:
		return "", fmt.Errorf("unknown document %q", doc)
	}
	path := filepath.Join(s.dir, filepath.Base(name), doc+".md")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s for %s: %w", doc, name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WritePDF stores rendered PDF bytes alongside the markdown documents.
func (s *ApplicationStore) WritePDF(name, doc string, pdf []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name), doc+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return path, nil
}

// Dir returns the store's root directory.
func (s *ApplicationStore) Dir() string { return s.dir }

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
