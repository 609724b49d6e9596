package linkedin

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPageHTML = `<html><body>
<nav class="global-nav__content"></nav>
<div class="jobs-search__job-details">
  <h1 class="job-details-jobs-unified-top-card__job-title">Senior Go Engineer</h1>
  <div class="job-details-jobs-unified-top-card__company-name"><a href="/company/acme">Acme Corp</a></div>
  <div class="job-details-jobs-unified-top-card__primary-description-container">
    <span class="tvm__text">Berlin, Germany</span>
  </div>
  <div class="jobs-description__content">
    <p>We build   distribution infrastructure.</p>


    <p>You will own services end to end.</p>
  </div>
</div>
</body></html>`

const legacyPageHTML = `<html><body>
<h1 class="top-card-layout__title">Platform Engineer</h1>
<a class="topcard__org-name-link" href="/company/x">Initech</a>
<span class="topcard__flavor--bullet">Remote</span>
<div class="description__text">Keep the lights on.</div>
</body></html>`

func TestExtractJobDetails(t *testing.T) {
	job, err := ExtractJobDetails(detailPageHTML, "https://www.linkedin.com/jobs/view/4012345678/")
	require.NoError(t, err)

	assert.Equal(t, "4012345678", job.ID)
	assert.Equal(t, "Senior Go Engineer", job.Title)
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "Berlin, Germany", job.Location)
	assert.Contains(t, job.Description, "We build distribution infrastructure.")
	assert.Contains(t, job.Description, "You will own services end to end.")
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4012345678/", job.URL)
	assert.Equal(t, "linkedin", job.Source)
}

func TestExtractJobDetails_LegacyMarkupFallback(t *testing.T) {
	job, err := ExtractJobDetails(legacyPageHTML, "https://www.linkedin.com/jobs/view/99/")
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "Initech", job.Company)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "Keep the lights on.", job.Description)
}

func TestExtractJobDetails_MissingFieldsDegrade(t *testing.T) {
	job, err := ExtractJobDetails("<html><body><p class=\"x\">nothing useful</p></body></html>",
		"https://www.linkedin.com/jobs/search/?currentJobId=777")
	require.NoError(t, err)

	assert.Equal(t, "777", job.ID)
	assert.Equal(t, "Unknown", job.Title)
	assert.Equal(t, "Unknown", job.Company)
	assert.Equal(t, "Unknown", job.Location)
	assert.Empty(t, job.Description)
}

func TestExtractJobDetails_NoIDFails(t *testing.T) {
	_, err := ExtractJobDetails(detailPageHTML, "https://www.linkedin.com/jobs/search/")
	assert.Error(t, err)
}

func TestExtractJobDetails_DescriptionCapped(t *testing.T) {
	longDesc := strings.Repeat("a", maxDescriptionLen+500)
	html := `<html><body><div class="jobs-description__content">` + longDesc + `</div></body></html>`

	job, err := ExtractJobDetails(html, "https://www.linkedin.com/jobs/view/1/")
	require.NoError(t, err)
	assert.Len(t, job.Description, maxDescriptionLen)
}

func TestExtractJobDetails_DescriptionCapOnRuneBoundary(t *testing.T) {
	// A multi-byte character straddling the cap must be dropped whole, not
	// cut mid-sequence.
	longDesc := strings.Repeat("a", maxDescriptionLen-1) + "é" + strings.Repeat("b", 100)
	html := `<html><body><div class="jobs-description__content">` + longDesc + `</div></body></html>`

	job, err := ExtractJobDetails(html, "https://www.linkedin.com/jobs/view/1/")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(job.Description))
	assert.Len(t, job.Description, maxDescriptionLen-1)
	assert.True(t, strings.HasSuffix(job.Description, "a"))
}

func TestJobIDFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.linkedin.com/jobs/view/4012345678/", "4012345678"},
		{"https://www.linkedin.com/jobs/view/123", "123"},
		{"https://www.linkedin.com/jobs/search/?currentJobId=456&keywords=go", "456"},
		{"https://www.linkedin.com/jobs/search/", ""},
		{"https://example.com/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, JobIDFromURL(tt.url), tt.url)
	}
}

func TestJobIDFromURL_ViewPathWinsOverQuery(t *testing.T) {
	id := JobIDFromURL("https://www.linkedin.com/jobs/view/111/?currentJobId=222")
	assert.Equal(t, "111", id)
}

func TestCollapseWhitespace(t *testing.T) {
	in := "  line  one \n\n\n\n line\ttwo  "
	assert.Equal(t, "line one\n\nline two", collapseWhitespace(in))
}
