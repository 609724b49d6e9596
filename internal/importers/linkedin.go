package importers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/jobkit/internal/linkedin"
)

// Selector fallbacks for the public profile page, newest markup first.
var (
	profileNameSelectors = []string{
		"h1.text-heading-xlarge",
		".pv-text-details__left-panel h1",
		"h1.top-card-layout__title",
	}
	profileHeadlineSelectors = []string{
		".text-body-medium.break-words",
		".pv-text-details__left-panel .text-body-medium",
		"h2.top-card-layout__headline",
	}
	profileAboutSelectors = []string{
		"#about ~ .display-flex .inline-show-more-text",
		"section.summary .core-section-container__content",
		".pv-about__summary-text",
	}
	profileExperienceSelectors = []string{
		"#experience ~ .pvs-list__outer-container",
		"section.experience .experience__list",
		"#experience-section",
	}
)

// LinkedInImporter scrapes the user's own profile page through the shared
// browser session.
type LinkedInImporter struct {
	Session *linkedin.Session
}

// Fetch navigates to the profile, waiting out a login page if one appears,
// and returns the extracted sections as a labeled text block.
func (l *LinkedInImporter) Fetch(ctx context.Context, profileURL string) (string, error) {
	if !l.Session.Started() {
		return "", fmt.Errorf("browser session not started")
	}
	if !strings.Contains(profileURL, "linkedin.com/in/") {
		return "", fmt.Errorf("not a linkedin profile URL: %s", profileURL)
	}

	if err := l.Session.Navigate(profileURL); err != nil {
		return "", err
	}
	l.Session.Sleep(3 * time.Second)

	url, err := l.Session.CurrentURL(l.Session.Context())
	if err != nil {
		return "", err
	}
	if linkedin.IsLoginURL(url) {
		if err := l.Session.EnsureLoggedIn(ctx); err != nil {
			return "", err
		}
		if err := l.Session.Navigate(profileURL); err != nil {
			return "", err
		}
		l.Session.Sleep(3 * time.Second)
	}

	html, err := l.Session.HTML()
	if err != nil {
		return "", err
	}

	text, err := ExtractLinkedInProfile(html)
	if err != nil {
		return "", err
	}
	log.Printf("[import] linkedin profile extracted (%d chars)", len(text))
	return text, nil
}

// ExtractLinkedInProfile pulls name, headline, about, and experience from a
// rendered profile page. At least the name must be present.
func ExtractLinkedInProfile(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse profile HTML: %w", err)
	}

	name := firstText(doc, profileNameSelectors)
	if name == "" {
		return "", fmt.Errorf("could not find profile name; page may not have loaded")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "LinkedIn profile: %s\n", name)
	if headline := firstText(doc, profileHeadlineSelectors); headline != "" {
		fmt.Fprintf(&b, "Headline: %s\n", headline)
	}
	if about := firstText(doc, profileAboutSelectors); about != "" {
		fmt.Fprintf(&b, "\nAbout:\n%s\n", about)
	}
	if exp := firstText(doc, profileExperienceSelectors); exp != "" {
		fmt.Fprintf(&b, "\nExperience:\n%s\n", exp)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return normalizeSpace(text)
		}
	}
	return ""
}

// normalizeSpace collapses the deeply nested whitespace goquery extracts
// from the profile markup.
func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(strings.Join(strings.Fields(line), " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
