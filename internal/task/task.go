// Package task runs long scraping work as detached worker processes that
// report through status files. The status file is the only channel between
// the launcher and the worker: the web layer polls it, and deletes it once a
// terminal state has been consumed.
package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobkit/internal/schemas"
	"github.com/jonathan/jobkit/internal/store"
)

// Task kinds. The kind prefixes the status file name.
const (
	KindSearch = "search"
	KindImport = "import"
)

// States a task moves through. A task writes exactly one terminal state
// (complete or error) and never transitions out of it.
const (
	StateStarting = "starting"
	StateRunning  = "running"
	StateComplete = "complete"
	StateError    = "error"
)

// Status is one snapshot of a running task, persisted as JSON. A search
// task completes with Jobs, an import task with Profile.
type Status struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	State     string         `json:"state"`
	Message   string         `json:"message,omitempty"`
	Done      int            `json:"done,omitempty"`
	Total     int            `json:"total,omitempty"`
	Jobs      []*store.Job   `json:"jobs,omitempty"`
	Profile   *store.Profile `json:"profile,omitempty"`
	Error     string         `json:"error,omitempty"`
	StartedAt string         `json:"started_at"`
	UpdatedAt string         `json:"updated_at"`
}

// Terminal reports whether the task has finished, successfully or not.
func (s *Status) Terminal() bool {
	return s.State == StateComplete || s.State == StateError
}

// NewID returns a fresh task identifier.
func NewID() string { return uuid.New().String() }

// StatusPath returns the status file location for a task. The leading dot
// keeps status files out of directory listings shown to the user.
func StatusPath(dataDir, kind, id string) string {
	return filepath.Join(dataDir, fmt.Sprintf(".%s_%s.json", kind, id))
}

// Reporter writes status snapshots for one task. It enforces the terminal
// write contract: after a terminal state is written, further writes are
// ignored.
type Reporter struct {
	path     string
	status   Status
	finished bool
}

// NewReporter creates a reporter and writes the initial starting snapshot.
func NewReporter(dataDir, kind, id string) (*Reporter, error) {
	r := &Reporter{
		path: StatusPath(dataDir, kind, id),
		status: Status{
			ID:        id,
			Kind:      kind,
			State:     StateStarting,
			StartedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := r.write(); err != nil {
		return nil, err
	}
	return r, nil
}

// Running records a progress update.
func (r *Reporter) Running(message string, done, total int) error {
	if r.finished {
		return nil
	}
	r.status.State = StateRunning
	r.status.Message = message
	r.status.Done = done
	r.status.Total = total
	return r.write()
}

// Complete writes the terminal success snapshot carrying the results.
func (r *Reporter) Complete(message string, jobs []*store.Job) error {
	if r.finished {
		return nil
	}
	r.finished = true
	r.status.State = StateComplete
	r.status.Message = message
	r.status.Jobs = jobs
	r.status.Error = ""
	return r.write()
}

// CompleteProfile writes the terminal success snapshot for an import task,
// carrying the merged profile fields.
func (r *Reporter) CompleteProfile(message string, p *store.Profile) error {
	if r.finished {
		return nil
	}
	r.finished = true
	r.status.State = StateComplete
	r.status.Message = message
	r.status.Profile = p
	r.status.Error = ""
	return r.write()
}

// Fail writes the terminal error snapshot.
func (r *Reporter) Fail(err error) error {
	if r.finished {
		return nil
	}
	r.finished = true
	r.status.State = StateError
	r.status.Error = err.Error()
	return r.write()
}

// write persists the snapshot atomically: full write to a temp file, then
// rename, so a poller never observes a half-written status.
func (r *Reporter) write() error {
	r.status.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(&r.status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	if err := schemas.Validate(schemas.StatusSchema, data); err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to publish status file: %w", err)
	}
	return nil
}

// ReadStatus loads the current snapshot for a task. os.ErrNotExist is
// returned unwrapped-compatible when no worker has written yet or the task
// was already consumed.
func ReadStatus(dataDir, kind, id string) (*Status, error) {
	data, err := os.ReadFile(StatusPath(dataDir, kind, id))
	if err != nil {
		return nil, err
	}
	var st Status
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse status file: %w", err)
	}
	return &st, nil
}

// Consume reads a snapshot and, when it is terminal, deletes the status
// file so the task ID cannot be polled again.
func Consume(dataDir, kind, id string) (*Status, error) {
	st, err := ReadStatus(dataDir, kind, id)
	if err != nil {
		return nil, err
	}
	if st.Terminal() {
		if err := os.Remove(StatusPath(dataDir, kind, id)); err != nil && !os.IsNotExist(err) {
			return st, fmt.Errorf("failed to remove status file: %w", err)
		}
	}
	return st, nil
}
