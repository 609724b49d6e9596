package task

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobkit/internal/store"
)

func TestReporter_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	id := NewID()

	r, err := NewReporter(dir, KindSearch, id)
	require.NoError(t, err)

	st, err := ReadStatus(dir, KindSearch, id)
	require.NoError(t, err)
	assert.Equal(t, StateStarting, st.State)
	assert.Equal(t, id, st.ID)
	assert.Equal(t, KindSearch, st.Kind)
	assert.NotEmpty(t, st.StartedAt)

	require.NoError(t, r.Running("processing cards", 3, 10))
	st, err = ReadStatus(dir, KindSearch, id)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, 3, st.Done)
	assert.Equal(t, 10, st.Total)
	assert.False(t, st.Terminal())

	jobs := []*store.Job{{ID: "1", Title: "Engineer", Company: "Acme"}}
	require.NoError(t, r.Complete("found 1 job", jobs))
	st, err = ReadStatus(dir, KindSearch, id)
	require.NoError(t, err)
	assert.Equal(t, StateComplete, st.State)
	assert.True(t, st.Terminal())
	require.Len(t, st.Jobs, 1)
	assert.Equal(t, "Engineer", st.Jobs[0].Title)
}

func TestReporter_CompleteWithProfile(t *testing.T) {
	dir := t.TempDir()
	id := NewID()

	r, err := NewReporter(dir, KindImport, id)
	require.NoError(t, err)

	p := &store.Profile{Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, r.CompleteProfile("profile imported", p))

	st, err := ReadStatus(dir, KindImport, id)
	require.NoError(t, err)
	assert.Equal(t, StateComplete, st.State)
	assert.True(t, st.Terminal())
	require.NotNil(t, st.Profile)
	assert.Equal(t, "Ada Lovelace", st.Profile.Name)
	assert.Equal(t, "ada@example.com", st.Profile.Email)
}

func TestReporter_TerminalWriteIsFinal(t *testing.T) {
	dir := t.TempDir()
	id := NewID()

	r, err := NewReporter(dir, KindImport, id)
	require.NoError(t, err)
	require.NoError(t, r.Fail(assert.AnError))

	// Further writes after the terminal snapshot are dropped.
	require.NoError(t, r.Running("should not appear", 1, 2))
	require.NoError(t, r.Complete("should not appear either", nil))

	st, err := ReadStatus(dir, KindImport, id)
	require.NoError(t, err)
	assert.Equal(t, StateError, st.State)
	assert.Equal(t, assert.AnError.Error(), st.Error)
}

func TestConsume_DeletesTerminalStatus(t *testing.T) {
	dir := t.TempDir()
	id := NewID()

	r, err := NewReporter(dir, KindSearch, id)
	require.NoError(t, err)
	require.NoError(t, r.Complete("done", nil))

	st, err := Consume(dir, KindSearch, id)
	require.NoError(t, err)
	assert.True(t, st.Terminal())

	_, err = ReadStatus(dir, KindSearch, id)
	assert.True(t, os.IsNotExist(err))
}

func TestConsume_KeepsNonTerminalStatus(t *testing.T) {
	dir := t.TempDir()
	id := NewID()

	r, err := NewReporter(dir, KindSearch, id)
	require.NoError(t, err)
	require.NoError(t, r.Running("still going", 1, 5))

	st, err := Consume(dir, KindSearch, id)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, st.State)

	// Non-terminal snapshots stay on disk for the next poll.
	st, err = ReadStatus(dir, KindSearch, id)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, st.State)
}

func TestReadStatus_MissingFile(t *testing.T) {
	_, err := ReadStatus(t.TempDir(), KindSearch, "nope")
	assert.True(t, os.IsNotExist(err))
}

func TestStatusPath(t *testing.T) {
	p := StatusPath("/data", KindSearch, "abc")
	assert.Equal(t, "/data/.search_abc.json", p)
}
