package linkedin

import (
	"net/url"
	"strings"
)

// Filter enumerations. Unknown values are dropped silently so a stale config
// never breaks a search; the site treats a missing parameter as "any".
var (
	remoteFilterValues = map[string]string{
		"on-site": "1",
		"remote":  "2",
		"hybrid":  "3",
	}
	experienceFilterValues = map[string]string{
		"internship": "1",
		"entry":      "2",
		"associate":  "3",
		"mid-senior": "4",
		"director":   "5",
		"executive":  "6",
	}
	datePostedFilterValues = map[string]string{
		"day":   "r86400",
		"week":  "r604800",
		"month": "r2592000",
	}
)

// SearchFilters are the optional narrowing parameters of a job search.
type SearchFilters struct {
	// RemoteOptions holds zero or more of on-site, remote, hybrid.
	RemoteOptions []string
	// ExperienceLevels holds zero or more of internship, entry, associate,
	// mid-senior, director, executive.
	ExperienceLevels []string
	// DatePosted is one of day, week, month. "any" and "" add no filter.
	DatePosted string
}

// BuildSearchURL builds a deterministic job search URL from keywords,
// location, and filters. The same inputs always produce the same URL.
func BuildSearchURL(keywords, location string, filters SearchFilters) string {
	params := url.Values{}
	params.Set("keywords", keywords)
	if location != "" {
		params.Set("location", location)
	}

	var remote []string
	for _, opt := range filters.RemoteOptions {
		if code, ok := remoteFilterValues[strings.ToLower(strings.TrimSpace(opt))]; ok {
			remote = append(remote, code)
		}
	}
	if len(remote) > 0 {
		params.Set("f_WT", strings.Join(remote, ","))
	}

	var experience []string
	for _, lvl := range filters.ExperienceLevels {
		if code, ok := experienceFilterValues[strings.ToLower(strings.TrimSpace(lvl))]; ok {
			experience = append(experience, code)
		}
	}
	if len(experience) > 0 {
		params.Set("f_E", strings.Join(experience, ","))
	}

	if code, ok := datePostedFilterValues[strings.ToLower(filters.DatePosted)]; ok {
		params.Set("f_TPR", code)
	}

	return jobsURL + "?" + params.Encode()
}
