// Package web serves the local dashboard: browse scraped jobs, manage the
// profile, kick off searches, and generate application documents.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/jobkit/internal/config"
	"github.com/jonathan/jobkit/internal/importers"
	"github.com/jonathan/jobkit/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the dashboard HTTP server. It is local-only tooling: no
// authentication, bound to localhost by default.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	jobs       *store.JobStore
	profile    *store.ProfileStore
	apps       *store.ApplicationStore
	github     *importers.GithubImporter
	templates  *template.Template
}

// New creates a server over the given config and data directory.
func New(cfg *config.Config, addr string) (*Server, error) {
	if err := config.EnsureDirs(cfg.DataDir); err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"experienceLevels": func() []string {
			return []string{"internship", "entry", "associate", "mid-senior", "director", "executive"}
		},
		"dateOptions": func() []string {
			return []string{"any", "day", "week", "month"}
		},
		"inList": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	jobs, err := store.NewJobStore(cfg.JobsDir())
	if err != nil {
		return nil, err
	}
	apps, err := store.NewApplicationStore(cfg.ApplicationsDir())
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		jobs:      jobs,
		profile:   store.NewProfileStore(cfg.ProfilePath()),
		apps:      apps,
		github:    importers.NewGithubImporter(),
		templates: tmpl,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleDashboard)
	mux.HandleFunc("GET /jobs", s.handleJobList)
	mux.HandleFunc("GET /jobs/{id}", s.handleJobDetail)
	mux.HandleFunc("GET /profile", s.handleProfile)
	mux.HandleFunc("POST /profile", s.handleProfileSave)
	mux.HandleFunc("POST /profile/upload", s.handleProfileUpload)
	mux.HandleFunc("POST /profile/github", s.handleProfileGithub)
	mux.HandleFunc("POST /profile/linkedin", s.handleProfileLinkedIn)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("GET /tasks/{id}", s.handleTaskStatus)
	mux.HandleFunc("POST /generate/{id}", s.handleGenerate)
	mux.HandleFunc("GET /applications", s.handleApplications)
	mux.HandleFunc("GET /applications/{name}", s.handleApplicationDetail)
	mux.HandleFunc("GET /applications/{name}/pdf/{doc}", s.handleApplicationPDF)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("POST /settings", s.handleSettingsSave)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Generation calls block on the LLM
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the routing stack for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Dashboard on http://%s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// render writes an HTML page; template failures become a 500 rather than a
// panic.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
