// Package importers builds profile background text from external sources: a
// GitHub account, an uploaded résumé file, or a LinkedIn profile page.
package importers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	githubAPI       = "https://api.github.com"
	maxGithubRepos  = 10
	githubUserAgent = "jobkit"
)

// GithubImporter fetches public profile data through the unauthenticated
// GitHub API.
type GithubImporter struct {
	BaseURL string
	Client  *http.Client
}

// NewGithubImporter returns an importer against the public API.
func NewGithubImporter() *GithubImporter {
	return &GithubImporter{
		BaseURL: githubAPI,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type githubUser struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Bio      string `json:"bio"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Blog     string `json:"blog"`
	Repos    int    `json:"public_repos"`
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Fork        bool   `json:"fork"`
	Archived    bool   `json:"archived"`
}

// Fetch pulls the user and their repositories concurrently and formats the
// result as a labeled text block suitable for merging into the background.
func (g *GithubImporter) Fetch(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(username), "@"))
	if username == "" {
		return "", fmt.Errorf("github username is required")
	}

	var user githubUser
	var repos []githubRepo

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.getJSON(ctx, fmt.Sprintf("/users/%s", username), &user)
	})
	eg.Go(func() error {
		return g.getJSON(ctx, fmt.Sprintf("/users/%s/repos?sort=updated&per_page=100", username), &repos)
	})
	if err := eg.Wait(); err != nil {
		return "", err
	}

	log.Printf("[import] github: %s, %d repos", username, len(repos))
	return formatGithubProfile(username, user, repos), nil
}

func (g *GithubImporter) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", githubUserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("github user not found")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

// formatGithubProfile renders the fetched data as readable text. Forked and
// archived repos are dropped; the rest are ranked by stars.
func formatGithubProfile(username string, user githubUser, repos []githubRepo) string {
	var b strings.Builder

	name := user.Name
	if name == "" {
		name = user.Login
	}
	fmt.Fprintf(&b, "GitHub profile: %s (github.com/%s)\n", name, username)
	if user.Bio != "" {
		fmt.Fprintf(&b, "Bio: %s\n", user.Bio)
	}
	if user.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", user.Company)
	}
	if user.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", user.Location)
	}

	kept := repos[:0]
	for _, r := range repos {
		if !r.Fork && !r.Archived {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Stars > kept[j].Stars })
	if len(kept) > maxGithubRepos {
		kept = kept[:maxGithubRepos]
	}

	if len(kept) > 0 {
		b.WriteString("\nNotable repositories:\n")
		for _, r := range kept {
			fmt.Fprintf(&b, "- %s", r.Name)
			if r.Language != "" {
				fmt.Fprintf(&b, " (%s)", r.Language)
			}
			if r.Stars > 0 {
				fmt.Fprintf(&b, " [%d stars]", r.Stars)
			}
			if r.Description != "" {
				fmt.Fprintf(&b, ": %s", r.Description)
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
