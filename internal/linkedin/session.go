// Package linkedin implements the LinkedIn scraper: a chromedp browser
// session with cookie persistence, a login-wait state machine, and
// selector-fallback extraction of job listings.
package linkedin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

const (
	baseURL = "https://www.linkedin.com"
	jobsURL = "https://www.linkedin.com/jobs/search/"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	navigationTimeout = 30 * time.Second
)

// Session owns one browser automation session. It is used strictly
// sequentially; there is no concurrent navigation within a session.
type Session struct {
	cookiesPath string
	headless    bool

	ctx         context.Context
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
}

// NewSession returns an unstarted session. cookiesPath is where LinkedIn
// session cookies are persisted between runs. Login flows need a headed
// browser so the user can complete the form.
func NewSession(cookiesPath string, headless bool) *Session {
	return &Session{cookiesPath: cookiesPath, headless: headless}
}

// Start launches the browser with a fixed viewport and a realistic
// user-agent, loading previously persisted cookies when available.
func (s *Session) Start(ctx context.Context) error {
	log.Printf("[browser] launching chrome (headless=%v)", s.headless)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1280, 800),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so failures surface here
	// rather than on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		allocCancel()
		ctxCancel()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	s.ctx = browserCtx
	s.allocCancel = allocCancel
	s.ctxCancel = ctxCancel

	if err := s.loadCookies(); err != nil {
		// Missing or stale cookies just mean a fresh login.
		log.Printf("[browser] could not load cookies: %v", err)
	}

	log.Printf("[browser] ready")
	return nil
}

// Stop tears the browser down unconditionally. Teardown never fails: errors
// are swallowed so cleanup paths cannot mask the original failure.
func (s *Session) Stop() {
	if s.ctxCancel != nil {
		s.ctxCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	s.ctx = nil
}

// Started reports whether the browser is running.
func (s *Session) Started() bool { return s.ctx != nil }

// Navigate loads a URL and waits for the DOM to be ready.
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, navigationTimeout)
	defer cancel()

	if err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL returns the browser's current location.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := chromedp.Run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return url, nil
}

// HasNavElement reports whether a known logged-in navigation element is
// present, trying each selector in order.
func (s *Session) HasNavElement(ctx context.Context) (bool, error) {
	for _, sel := range navSelectors {
		var nodes []*cdp.Node
		err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
		if err != nil {
			return false, err
		}
		if len(nodes) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// HTML returns the full rendered page HTML.
func (s *Session) HTML() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, navigationTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// ScrollHalfway scrolls partway down the page once to trigger lazy-loaded
// content.
func (s *Session) ScrollHalfway() error {
	ctx, cancel := context.WithTimeout(s.ctx, navigationTimeout)
	defer cancel()
	return chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
	)
}

// CountNodes returns how many elements the selector currently matches.
func (s *Session) CountNodes(sel string) (int, error) {
	ctx, cancel := context.WithTimeout(s.ctx, navigationTimeout)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// ClickNth scrolls the i-th match of sel into view and clicks it, falling
// back to a script-based click when the direct click fails.
func (s *Session) ClickNth(sel string, i int) error {
	ctx, cancel := context.WithTimeout(s.ctx, navigationTimeout)
	defer cancel()

	scroll := fmt.Sprintf(`document.querySelectorAll(%q)[%d]?.scrollIntoView({block: "center"})`, sel, i)
	if err := chromedp.Run(ctx, chromedp.Evaluate(scroll, nil)); err != nil {
		return fmt.Errorf("failed to scroll card into view: %w", err)
	}
	time.Sleep(500 * time.Millisecond)

	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err == nil && i < len(nodes) {
		if err := chromedp.Run(ctx, chromedp.MouseClickNode(nodes[i])); err == nil {
			return nil
		}
	}

	// Fallback: script click.
	click := fmt.Sprintf(`document.querySelectorAll(%q)[%d]?.click()`, sel, i)
	if err := chromedp.Run(ctx, chromedp.Evaluate(click, nil)); err != nil {
		return fmt.Errorf("failed to click card %d: %w", i, err)
	}
	return nil
}

// Sleep pauses the caller. Fixed sleeps are how the scraper lets the page
// settle; the site offers no reliable load event for its panels.
func (s *Session) Sleep(d time.Duration) { time.Sleep(d) }

// Context returns the session's browser context for login polling.
func (s *Session) Context() context.Context { return s.ctx }
