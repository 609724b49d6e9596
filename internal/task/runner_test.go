package task

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunch_StatusIsPollableImmediately(t *testing.T) {
	dir := t.TempDir()

	// Stand in for the real binary so no actual worker runs.
	script := filepath.Join(dir, "fakeworker.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	orig := execPath
	execPath = func() (string, error) { return script, nil }
	defer func() { execPath = orig }()

	id, err := Launch(dir, KindSearch, []string{"--keywords", "go"})
	require.NoError(t, err)

	// The starting snapshot exists as soon as Launch returns, even if the
	// worker never gets to write.
	st, err := ReadStatus(dir, KindSearch, id)
	require.NoError(t, err)
	assert.Equal(t, StateStarting, st.State)
	assert.Equal(t, KindSearch, st.Kind)
	assert.Equal(t, id, st.ID)
}

func TestLaunch_FailsWhenStatusDirMissing(t *testing.T) {
	orig := execPath
	execPath = func() (string, error) { return "/bin/true", nil }
	defer func() { execPath = orig }()

	_, err := Launch(filepath.Join(t.TempDir(), "missing"), KindSearch, nil)
	assert.Error(t, err)
}
