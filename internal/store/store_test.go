package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob() *Job {
	return &Job{
		ID:          "4012345678",
		Title:       "Senior Go Engineer",
		Company:     "Acme Corp",
		Location:    "Remote",
		Description: "Build distributed systems in Go.",
		URL:         "https://www.linkedin.com/jobs/view/4012345678",
		Source:      "linkedin",
		PostedDate:  "1 week ago",
	}
}

func TestJobStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := NewJobStore(t.TempDir())
	require.NoError(t, err)

	job := testJob()
	path, err := s.Save(job)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.NotEmpty(t, job.ScrapedAt, "save fills the scrape timestamp")

	got, err := s.Get(job.ID)
	require.NoError(t, err)

	// Every field survives the round trip byte-for-byte.
	assert.Equal(t, *job, *got)
}

func TestJobStore_SanitizedFilename(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJobStore(dir)
	require.NoError(t, err)

	job := testJob()
	job.Company = "Foo/Bar GmbH"
	job.Title = `Engineer "Platform"`
	path, err := s.Save(job)
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.NotContains(t, base, "/")
	assert.NotContains(t, base, `"`)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestJobStore_GetMissing(t *testing.T) {
	s, err := NewJobStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobStore_ListSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJobStore(dir)
	require.NoError(t, err)

	_, err = s.Save(testJob())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{broken"), 0o644))

	jobs, err := s.List()
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobStore_ListSortsNewestFirst(t *testing.T) {
	s, err := NewJobStore(t.TempDir())
	require.NoError(t, err)

	old := testJob()
	old.ID = "1"
	old.Title = "Old"
	old.ScrapedAt = "2025-01-01T00:00:00Z"
	_, err = s.Save(old)
	require.NoError(t, err)

	recent := testJob()
	recent.ID = "2"
	recent.Title = "Recent"
	recent.ScrapedAt = "2025-06-01T00:00:00Z"
	_, err = s.Save(recent)
	require.NoError(t, err)

	jobs, err := s.List()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "2", jobs[0].ID)
}

func TestJobStore_SeenIDs(t *testing.T) {
	s, err := NewJobStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.Save(testJob())
	require.NoError(t, err)

	seen, err := s.SeenIDs()
	require.NoError(t, err)
	assert.True(t, seen["4012345678"])
	assert.False(t, seen["other"])
}

func TestProfile_MergeBackgroundAppendsSection(t *testing.T) {
	p := &Profile{Background: "10 years of backend development."}
	p.MergeBackground("GitHub Profile", "Maintainer of several Go projects.", false)

	assert.Contains(t, p.Background, "10 years of backend development.")
	assert.Contains(t, p.Background, "--- GitHub Profile ---")
	assert.Contains(t, p.Background, "Maintainer of several Go projects.")
}

func TestProfile_MergeBackgroundReplace(t *testing.T) {
	p := &Profile{Background: "old content"}
	p.MergeBackground("Resume Upload", "new content", true)

	assert.Equal(t, "new content", p.Background)
}

func TestProfile_MergeBackgroundEmptyTargetNoHeader(t *testing.T) {
	p := &Profile{}
	p.MergeBackground("Resume Upload", "first source", false)
	assert.Equal(t, "first source", p.Background)
}

func TestProfile_FillContactKeepsExisting(t *testing.T) {
	p := &Profile{Name: "Jane Doe"}
	p.FillContact("Imported Name", "jane@example.com", "555-0100")

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, "555-0100", p.Phone)
}

func TestProfileStore_LoadMissingReturnsEmpty(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))
	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)
}

func TestProfileStore_SaveLoad(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "profile.json"))
	require.NoError(t, s.Save(&Profile{Name: "Jane Doe", Email: "jane@example.com", Background: "blob"}))

	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "blob", p.Background)
}

func TestApplicationStore_SaveGeneratedAndList(t *testing.T) {
	s, err := NewApplicationStore(t.TempDir())
	require.NoError(t, err)

	job := testJob()
	folder, err := s.SaveGenerated(job, "# Jane Doe\nResume body", "Dear Hiring Team,\n...")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(folder, "resume.md"))
	assert.FileExists(t, filepath.Join(folder, "cover_letter.md"))
	assert.FileExists(t, filepath.Join(folder, "job.json"))
	assert.FileExists(t, filepath.Join(folder, "meta.json"))

	apps, err := s.List()
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, job.ID, apps[0].JobID)
	assert.True(t, apps[0].HasResume)
	assert.True(t, apps[0].HasCoverLetter)

	applied, err := s.AppliedIDs()
	require.NoError(t, err)
	assert.True(t, applied[job.ID])
}

func TestApplicationStore_RegenerateOverwrites(t *testing.T) {
	s, err := NewApplicationStore(t.TempDir())
	require.NoError(t, err)

	job := testJob()
	_, err = s.SaveGenerated(job, "v1", "v1")
	require.NoError(t, err)
	_, err = s.SaveGenerated(job, "v2", "v2")
	require.NoError(t, err)

	doc, err := s.ReadDocument(FolderName(job), "resume")
	require.NoError(t, err)
	assert.Equal(t, "v2", doc)

	apps, err := s.List()
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplicationStore_ReadDocumentRejectsUnknown(t *testing.T) {
	s, err := NewApplicationStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.ReadDocument("anything", "secrets")
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "plain", input: "Acme - Engineer", maxLen: 100, expected: "Acme - Engineer"},
		{name: "slash replaced", input: "a/b", maxLen: 100, expected: "a_b"},
		{name: "truncated", input: "abcdefghij", maxLen: 4, expected: "abcd"},
		{name: "unicode replaced", input: "héllo", maxLen: 100, expected: "h_llo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input, tt.maxLen))
		})
	}
}
