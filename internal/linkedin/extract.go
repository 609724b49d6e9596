package linkedin

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/jobkit/internal/store"
)

const maxDescriptionLen = 5000

// Selector fallback tables. The site ships several markups depending on
// rollout bucket; each list is ordered newest-first and the first selector
// with a non-empty match wins.
var (
	cardSelectors = []string{
		"div.job-card-container",
		"li.jobs-search-results__list-item",
		"li.scaffold-layout__list-item",
		"div[data-job-id]",
	}

	navSelectors = []string{
		".global-nav__content",
		"#global-nav",
		"nav.global-nav",
		".scaffold-layout__nav",
	}

	titleSelectors = []string{
		"h1.job-details-jobs-unified-top-card__job-title",
		".job-details-jobs-unified-top-card__job-title h1",
		"h1.top-card-layout__title",
		"h2.jobs-details-top-card__job-title",
		"h1",
	}

	companySelectors = []string{
		".job-details-jobs-unified-top-card__company-name a",
		".job-details-jobs-unified-top-card__company-name",
		"a.topcard__org-name-link",
		".jobs-details-top-card__company-url",
	}

	locationSelectors = []string{
		".job-details-jobs-unified-top-card__primary-description-container span.tvm__text",
		".job-details-jobs-unified-top-card__bullet",
		"span.topcard__flavor--bullet",
		".jobs-details-top-card__bullet",
	}

	descriptionSelectors = []string{
		"div.jobs-description__content",
		"article.jobs-description__container",
		"div.jobs-box__html-content",
		"div.description__text",
		"#job-details",
	}

	jobViewRe     = regexp.MustCompile(`/jobs/view/(\d+)`)
	currentJobRe  = regexp.MustCompile(`currentJobId=(\d+)`)
	whitespaceRe  = regexp.MustCompile(`[ \t]+`)
	blankRunsRe   = regexp.MustCompile(`\n{3,}`)
)

// JobIDFromURL extracts the numeric job ID from a detail or search URL.
// Returns "" when no ID is present.
func JobIDFromURL(u string) string {
	if m := jobViewRe.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	if m := currentJobRe.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	return ""
}

// JobViewURL returns the canonical detail page URL for a job ID.
func JobViewURL(id string) string {
	return fmt.Sprintf("%s/jobs/view/%s/", baseURL, id)
}

// extractField returns the first non-empty trimmed text among the selectors,
// or the fallback when nothing matches.
func extractField(doc *goquery.Document, selectors []string, fallback string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return collapseWhitespace(text)
		}
	}
	return fallback
}

// collapseWhitespace normalizes scraped text: runs of spaces become one
// space and runs of blank lines become one blank line.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	out = blankRunsRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// ExtractJobDetails parses a rendered detail page (or search page with an
// open detail panel) into a Job. Missing fields degrade to placeholders
// rather than failing the whole listing; only a missing ID is fatal.
func ExtractJobDetails(html, pageURL string) (*store.Job, error) {
	id := JobIDFromURL(pageURL)
	if id == "" {
		return nil, fmt.Errorf("no job ID in URL %s", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	description := extractField(doc, descriptionSelectors, "")
	if len(description) > maxDescriptionLen {
		// Back off to a rune boundary so the cut never splits a character.
		cut := maxDescriptionLen
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut]
	}

	return &store.Job{
		ID:          id,
		Title:       extractField(doc, titleSelectors, "Unknown"),
		Company:     extractField(doc, companySelectors, "Unknown"),
		Location:    extractField(doc, locationSelectors, "Unknown"),
		Description: description,
		URL:         JobViewURL(id),
		Source:      "linkedin",
	}, nil
}
