package linkedin

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// ErrLoginTimeout is returned when the user does not complete the login form
// within the wait window.
var ErrLoginTimeout = errors.New("timed out waiting for login")

// Login page markers. A URL containing any of these means the session is not
// authenticated and the user must act.
var loginIndicators = []string{"login", "authwall", "checkpoint", "uas/login", "signin"}

// Authenticated-area path prefixes. Landing on one of these after the login
// page means the user got through.
var successIndicators = []string{"/feed", "/jobs", "/mynetwork", "/messaging", "/notifications"}

// Prober is the minimal browser surface the login waiter needs. Session
// implements it; tests substitute a scripted prober.
type Prober interface {
	CurrentURL(ctx context.Context) (string, error)
	HasNavElement(ctx context.Context) (bool, error)
}

// LoginState tracks where the session is in the login flow.
type LoginState int

const (
	StateUnauthenticated LoginState = iota
	StateAwaitingLogin
	StateAuthenticated
	StateTimedOut
)

func (s LoginState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAwaitingLogin:
		return "awaiting-login"
	case StateAuthenticated:
		return "authenticated"
	case StateTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// IsLoginURL reports whether a URL is a login or verification page.
func IsLoginURL(url string) bool {
	lower := strings.ToLower(url)
	for _, ind := range loginIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// isSuccessURL reports whether a URL points into the authenticated area.
func isSuccessURL(url string) bool {
	lower := strings.ToLower(url)
	for _, ind := range successIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// LoginWaiter polls the browser until the user finishes logging in by hand.
// The poll interval and timeout are fixed in normal use; tests shorten them
// and stub the sleep.
type LoginWaiter struct {
	Prober   Prober
	Interval time.Duration
	Timeout  time.Duration

	// sleep and now are injection points for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewLoginWaiter returns a waiter with the standard 3s poll and 5 minute
// window.
func NewLoginWaiter(p Prober) *LoginWaiter {
	return &LoginWaiter{
		Prober:   p,
		Interval: 3 * time.Second,
		Timeout:  5 * time.Minute,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Wait blocks until the session leaves the login page and lands in the
// authenticated area, or the window expires. The state transitions are
// strictly forward: awaiting-login, then authenticated or timed-out.
func (w *LoginWaiter) Wait(ctx context.Context) (LoginState, error) {
	if w.sleep == nil {
		w.sleep = time.Sleep
	}
	if w.now == nil {
		w.now = time.Now
	}

	log.Printf("[login] waiting for manual login (up to %s)", w.Timeout)
	deadline := w.now().Add(w.Timeout)

	for w.now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return StateTimedOut, err
		}

		url, err := w.Prober.CurrentURL(ctx)
		if err != nil {
			return StateTimedOut, err
		}

		if !IsLoginURL(url) {
			// Off the login page. The URL alone is not proof: checkpoint
			// redirects can pass through feed-like paths, so the logged-in
			// nav bar has to confirm before success is declared.
			ok, err := w.Prober.HasNavElement(ctx)
			if err != nil {
				return StateTimedOut, err
			}
			if ok {
				if isSuccessURL(url) {
					log.Printf("[login] authenticated at %s", url)
				} else {
					log.Printf("[login] authenticated (nav element present at %s)", url)
				}
				return StateAuthenticated, nil
			}
		}

		w.sleep(w.Interval)
	}

	return StateTimedOut, ErrLoginTimeout
}

// EnsureLoggedIn navigates to the feed and, if redirected to a login page,
// waits for the user to complete the form, persisting cookies on success.
func (s *Session) EnsureLoggedIn(ctx context.Context) error {
	if err := s.Navigate(baseURL + "/feed/"); err != nil {
		return err
	}
	s.Sleep(3 * time.Second)

	url, err := s.CurrentURL(s.ctx)
	if err != nil {
		return err
	}
	if !IsLoginURL(url) {
		return nil
	}

	log.Printf("[login] login required, complete the form in the browser window")
	state, err := NewLoginWaiter(s).Wait(s.ctx)
	if err != nil {
		return err
	}
	if state != StateAuthenticated {
		return ErrLoginTimeout
	}

	if err := s.SaveCookies(); err != nil {
		// Cookies failing to persist does not invalidate the live session.
		log.Printf("[login] could not save cookies: %v", err)
	}
	return nil
}
