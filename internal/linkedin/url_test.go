package linkedin

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchURL(t *testing.T) {
	got := BuildSearchURL("golang developer", "Berlin", SearchFilters{
		RemoteOptions:    []string{"remote", "hybrid"},
		ExperienceLevels: []string{"mid-senior", "director"},
		DatePosted:       "week",
	})

	u, err := url.Parse(got)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "golang developer", q.Get("keywords"))
	assert.Equal(t, "Berlin", q.Get("location"))
	assert.Equal(t, "2,3", q.Get("f_WT"))
	assert.Equal(t, "4,5", q.Get("f_E"))
	assert.Equal(t, "r604800", q.Get("f_TPR"))
}

func TestBuildSearchURL_Deterministic(t *testing.T) {
	filters := SearchFilters{RemoteOptions: []string{"on-site", "remote"}, DatePosted: "day"}
	first := BuildSearchURL("sre", "Remote", filters)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildSearchURL("sre", "Remote", filters))
	}
}

func TestBuildSearchURL_DropsUnknownValues(t *testing.T) {
	got := BuildSearchURL("go", "", SearchFilters{
		RemoteOptions:    []string{"remote", "moonbase"},
		ExperienceLevels: []string{"wizard"},
		DatePosted:       "fortnight",
	})

	u, err := url.Parse(got)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "2", q.Get("f_WT"))
	assert.Empty(t, q.Get("f_E"))
	assert.Empty(t, q.Get("f_TPR"))
	assert.Empty(t, q.Get("location"))
}

func TestBuildSearchURL_AnyDateAddsNoFilter(t *testing.T) {
	u, err := url.Parse(BuildSearchURL("go", "", SearchFilters{DatePosted: "any"}))
	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("f_TPR"))
}

func TestBuildSearchURL_CaseInsensitiveFilters(t *testing.T) {
	u, err := url.Parse(BuildSearchURL("go", "", SearchFilters{
		RemoteOptions:    []string{"Remote"},
		ExperienceLevels: []string{"Entry"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "2", u.Query().Get("f_WT"))
	assert.Equal(t, "2", u.Query().Get("f_E"))
}
