package linkedin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/jobkit/internal/store"
)

// SearchOptions describe one search run.
type SearchOptions struct {
	Keywords string
	Location string
	Filters  SearchFilters
	// MaxJobs caps how many cards are opened. Zero means the default of 25.
	MaxJobs int
}

const defaultMaxJobs = 25

// Progress is called after each card is processed so long runs can report
// incrementally. done is how many cards have been handled, total is the
// number that will be attempted.
type Progress func(done, total int)

// Search runs a job search end to end: navigate, verify login, load the
// result list, and click through each card collecting details. Cards that
// fail to extract are skipped, not fatal.
func (s *Session) Search(ctx context.Context, opts SearchOptions, progress Progress) ([]*store.Job, error) {
	if !s.Started() {
		return nil, fmt.Errorf("browser session not started")
	}

	max := opts.MaxJobs
	if max <= 0 {
		max = defaultMaxJobs
	}

	searchURL := BuildSearchURL(opts.Keywords, opts.Location, opts.Filters)
	log.Printf("[search] %s", searchURL)

	if err := s.Navigate(searchURL); err != nil {
		return nil, err
	}
	s.Sleep(3 * time.Second)

	url, err := s.CurrentURL(s.ctx)
	if err != nil {
		return nil, err
	}
	if IsLoginURL(url) {
		if err := s.EnsureLoggedIn(ctx); err != nil {
			return nil, err
		}
		// Back to the results now that the session is authenticated.
		if err := s.Navigate(searchURL); err != nil {
			return nil, err
		}
		s.Sleep(3 * time.Second)
	}

	if err := s.ScrollHalfway(); err != nil {
		log.Printf("[search] scroll failed: %v", err)
	}
	s.Sleep(2 * time.Second)

	// Pick one card selector and stick with it: mixing selectors across
	// iterations can double-count cards that match more than one.
	cardSel, count := "", 0
	for _, sel := range cardSelectors {
		n, err := s.CountNodes(sel)
		if err != nil {
			return nil, fmt.Errorf("failed to query result cards: %w", err)
		}
		if n > 0 {
			cardSel, count = sel, n
			break
		}
	}
	if cardSel == "" {
		log.Printf("[search] no result cards found")
		return nil, nil
	}
	if count > max {
		count = max
	}
	log.Printf("[search] processing %d cards (selector %q)", count, cardSel)

	var jobs []*store.Job
	seen := make(map[string]bool)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}

		if err := s.ClickNth(cardSel, i); err != nil {
			log.Printf("[search] card %d: %v", i, err)
			if progress != nil {
				progress(i+1, count)
			}
			continue
		}
		s.Sleep(1500 * time.Millisecond)

		pageURL, err := s.CurrentURL(s.ctx)
		if err != nil {
			log.Printf("[search] card %d: %v", i, err)
			continue
		}
		html, err := s.HTML()
		if err != nil {
			log.Printf("[search] card %d: %v", i, err)
			continue
		}

		job, err := ExtractJobDetails(html, pageURL)
		if err != nil {
			log.Printf("[search] card %d: %v", i, err)
		} else if !seen[job.ID] {
			seen[job.ID] = true
			jobs = append(jobs, job)
			log.Printf("[search] card %d: %s at %s", i, job.Title, job.Company)
		}

		if progress != nil {
			progress(i+1, count)
		}
	}

	return jobs, nil
}

// FetchJob loads a single job detail page by ID and extracts it.
func (s *Session) FetchJob(ctx context.Context, id string) (*store.Job, error) {
	if !s.Started() {
		return nil, fmt.Errorf("browser session not started")
	}

	viewURL := JobViewURL(id)
	if err := s.Navigate(viewURL); err != nil {
		return nil, err
	}
	s.Sleep(3 * time.Second)

	url, err := s.CurrentURL(s.ctx)
	if err != nil {
		return nil, err
	}
	if IsLoginURL(url) {
		if err := s.EnsureLoggedIn(ctx); err != nil {
			return nil, err
		}
		if err := s.Navigate(viewURL); err != nil {
			return nil, err
		}
		s.Sleep(3 * time.Second)
	}

	html, err := s.HTML()
	if err != nil {
		return nil, err
	}

	// The detail page may keep the ID in a query parameter instead of the
	// path, so extract from the requested URL rather than the live one.
	return ExtractJobDetails(html, viewURL)
}
