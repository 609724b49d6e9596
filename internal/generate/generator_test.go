package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/jobkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records the last prompt pair and returns canned output.
type fakeClient struct {
	prompt   string
	system   string
	response string
	err      error
}

func (f *fakeClient) Generate(_ context.Context, prompt, systemPrompt string) (string, error) {
	f.prompt = prompt
	f.system = systemPrompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func testJob() *store.Job {
	return &store.Job{
		ID:          "4012345678",
		Title:       "Senior Go Engineer",
		Company:     "Acme Corp",
		Description: "Design and operate Go services.",
	}
}

func TestResume_PromptEmbedsJobAndBackground(t *testing.T) {
	fake := &fakeClient{response: "# Jane Doe"}
	g := New(fake)

	out, err := g.Resume(context.Background(), testJob(), "15 years of Go.", "")
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe", out)

	assert.Contains(t, fake.prompt, "Senior Go Engineer")
	assert.Contains(t, fake.prompt, "Acme Corp")
	assert.Contains(t, fake.prompt, "Design and operate Go services.")
	assert.Contains(t, fake.prompt, "15 years of Go.")
	assert.Contains(t, fake.system, "resume writer")
}

func TestResume_AdditionalInstructionsAppended(t *testing.T) {
	fake := &fakeClient{response: "# Jane Doe"}
	g := New(fake)

	_, err := g.Resume(context.Background(), testJob(), "bg", "Emphasize leadership.")
	require.NoError(t, err)
	assert.Contains(t, fake.prompt, "## Additional Instructions\nEmphasize leadership.")
}

func TestCoverLetter_UsesCoverLetterPrompts(t *testing.T) {
	fake := &fakeClient{response: "Dear Hiring Team at Acme Corp,"}
	g := New(fake)

	out, err := g.CoverLetter(context.Background(), testJob(), "bg", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Dear Hiring Team")
	assert.Contains(t, fake.system, "cover letter writer")
}

func TestGenerate_CleansResponse(t *testing.T) {
	fake := &fakeClient{response: "Here's a resume for you:\n\n# Jane Doe\n..."}
	g := New(fake)

	out, err := g.Resume(context.Background(), testJob(), "bg", "")
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n...", out)
}

func TestGenerate_PropagatesBackendError(t *testing.T) {
	fake := &fakeClient{err: errors.New("backend down")}
	g := New(fake)

	_, err := g.Resume(context.Background(), testJob(), "bg", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}
