package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/jobkit/internal/generate"
	"github.com/jonathan/jobkit/internal/importers"
	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/pdf"
	"github.com/jonathan/jobkit/internal/store"
	"github.com/jonathan/jobkit/internal/task"
)

const maxUploadBytes = 2 << 20

// dashboardData feeds the landing page.
type dashboardData struct {
	JobCount         int
	ApplicationCount int
	RecentJobs       []store.Job
	Search           searchDefaults
}

type searchDefaults struct {
	Keywords   string
	Location   string
	Experience []string
	DatePosted string
	MaxJobs    int
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// "GET /" also matches every unrouted path; anything but the root is a
	// plain 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	jobs, err := s.jobs.List()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	apps, err := s.apps.List()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	recent := jobs
	if len(recent) > 5 {
		recent = recent[:5]
	}

	s.render(w, "dashboard.html", dashboardData{
		JobCount:         len(jobs),
		ApplicationCount: len(apps),
		RecentJobs:       recent,
		Search: searchDefaults{
			Keywords:   s.cfg.Search.Keywords,
			Location:   s.cfg.Search.Location,
			Experience: s.cfg.Search.ExperienceLevel,
			DatePosted: s.cfg.Search.DatePosted,
			MaxJobs:    s.cfg.Search.MaxJobs,
		},
	})
}

type jobListData struct {
	Jobs    []store.Job
	Applied map[string]bool
}

func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.List()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	applied, err := s.apps.AppliedIDs()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.render(w, "jobs.html", jobListData{Jobs: jobs, Applied: applied})
}

type jobDetailData struct {
	Job     *store.Job
	Applied bool
}

func (s *Server) handleJobDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := s.jobs.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "job not found: "+id)
		return
	}
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	applied, err := s.apps.AppliedIDs()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.render(w, "job.html", jobDetailData{Job: job, Applied: applied[id]})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profile.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.render(w, "profile.html", profile)
}

func (s *Server) handleProfileSave(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profile.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile.Name = strings.TrimSpace(r.FormValue("name"))
	profile.Email = strings.TrimSpace(r.FormValue("email"))
	profile.Phone = strings.TrimSpace(r.FormValue("phone"))
	profile.Background = strings.TrimSpace(r.FormValue("background"))

	if err := s.profile.Save(profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (s *Server) handleProfileUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	parsed, err := importers.ParseResumeFile(header.Filename, data)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.profile.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	profile.MergeBackground("Résumé: "+header.Filename, parsed.Text, r.FormValue("replace") == "on")
	profile.FillContact(parsed.Name, parsed.Email, parsed.Phone)

	if err := s.profile.Save(profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (s *Server) handleProfileGithub(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		s.errorResponse(w, http.StatusBadRequest, "github username is required")
		return
	}

	text, err := s.github.Fetch(r.Context(), username)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	profile, err := s.profile.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	profile.MergeBackground("GitHub: "+username, text, r.FormValue("replace") == "on")
	if err := s.profile.Save(profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleProfileLinkedIn starts an import worker: scraping the profile needs
// a browser and can sit at a login page for minutes.
func (s *Server) handleProfileLinkedIn(w http.ResponseWriter, r *http.Request) {
	profileURL := strings.TrimSpace(r.FormValue("url"))
	if !strings.Contains(profileURL, "linkedin.com/in/") {
		s.errorResponse(w, http.StatusBadRequest, "a linkedin.com/in/ profile URL is required")
		return
	}

	args := []string{"--source", "linkedin", "--url", profileURL}
	if r.FormValue("replace") == "on" {
		args = append(args, "--replace")
	}

	id, err := task.Launch(s.cfg.DataDir, task.KindImport, args)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"task_id": id, "kind": task.KindImport})
}

// handleSearch starts a search worker and returns its task ID for polling.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keywords := strings.TrimSpace(r.FormValue("keywords"))
	if keywords == "" {
		keywords = s.cfg.Search.Keywords
	}
	if keywords == "" {
		s.errorResponse(w, http.StatusBadRequest, "keywords are required")
		return
	}

	args := []string{"--keywords", keywords}
	if loc := formOrDefault(r, "location", s.cfg.Search.Location); loc != "" {
		args = append(args, "--location", loc)
	}
	experience := r.Form["experience"]
	if len(experience) == 0 {
		experience = s.cfg.Search.ExperienceLevel
	}
	if len(experience) > 0 {
		args = append(args, "--experience", strings.Join(experience, ","))
	}
	if date := formOrDefault(r, "date", s.cfg.Search.DatePosted); date != "" {
		args = append(args, "--date", date)
	}
	remote := r.Form["remote"]
	if len(remote) == 0 {
		remote = s.cfg.Search.RemoteOptions
	}
	if len(remote) > 0 {
		args = append(args, "--remote", strings.Join(remote, ","))
	}
	max := s.cfg.Search.MaxJobs
	if v := r.FormValue("max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			max = n
		}
	}
	if max > 0 {
		args = append(args, "--max", strconv.Itoa(max))
	}

	id, err := task.Launch(s.cfg.DataDir, task.KindSearch, args)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"task_id": id, "kind": task.KindSearch})
}

func formOrDefault(r *http.Request, field, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(field)); v != "" {
		return v
	}
	return fallback
}

// handleTaskStatus polls a task by ID. Terminal snapshots are consumed:
// the first poll that sees completion also deletes the status file, so a
// task ID reports its result exactly once.
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	for _, kind := range []string{task.KindSearch, task.KindImport} {
		st, err := task.Consume(s.cfg.DataDir, kind, id)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, st)
		return
	}

	s.errorResponse(w, http.StatusNotFound, "no such task: "+id)
}

// handleGenerate produces the résumé and cover letter for a job and stores
// them as an application folder. Blocks on the LLM; the long server write
// timeout covers it.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := s.jobs.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "job not found: "+id)
		return
	}
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile, err := s.profile.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if strings.TrimSpace(profile.Background) == "" {
		s.errorResponse(w, http.StatusBadRequest, "profile background is empty; fill in your profile first")
		return
	}

	client, err := llm.NewClient(r.Context(), s.cfg)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	defer client.Close()

	gen := generate.New(client)
	instructions := strings.TrimSpace(r.FormValue("instructions"))

	resume, err := gen.Resume(r.Context(), job, profile.Background, instructions)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "resume generation failed: "+err.Error())
		return
	}
	coverLetter, err := gen.CoverLetter(r.Context(), job, profile.Background, instructions)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "cover letter generation failed: "+err.Error())
		return
	}

	if _, err := s.apps.SaveGenerated(job, resume, coverLetter); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/applications/"+store.FolderName(job), http.StatusSeeOther)
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.apps.List()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.render(w, "applications.html", apps)
}

type applicationDetailData struct {
	Name        string
	Resume      string
	CoverLetter string
}

func (s *Server) handleApplicationDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	resume, err := s.apps.ReadDocument(name, "resume")
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	coverLetter, err := s.apps.ReadDocument(name, "cover_letter")
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.render(w, "application.html", applicationDetailData{
		Name:        name,
		Resume:      resume,
		CoverLetter: coverLetter,
	})
}

// handleApplicationPDF renders a stored markdown document to PDF on demand
// and persists the result next to the markdown.
func (s *Server) handleApplicationPDF(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	doc := r.PathValue("doc")

	markdown, err := s.apps.ReadDocument(name, doc)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	data, err := pdf.Render(markdown)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := s.apps.WritePDF(name, doc, data); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type settingsData struct {
	Search   searchDefaults
	Remote   []string
	Provider string
	Model    string
	BaseURL  string
	Saved    bool
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.render(w, "settings.html", settingsData{
		Search: searchDefaults{
			Keywords:   s.cfg.Search.Keywords,
			Location:   s.cfg.Search.Location,
			Experience: s.cfg.Search.ExperienceLevel,
			DatePosted: s.cfg.Search.DatePosted,
			MaxJobs:    s.cfg.Search.MaxJobs,
		},
		Remote:   s.cfg.Search.RemoteOptions,
		Provider: s.cfg.LLM.Provider,
		Model:    s.cfg.LLM.Model,
		BaseURL:  s.cfg.LLM.BaseURL,
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

func (s *Server) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.cfg.Search.Keywords = strings.TrimSpace(r.FormValue("keywords"))
	s.cfg.Search.Location = strings.TrimSpace(r.FormValue("location"))
	s.cfg.Search.ExperienceLevel = r.Form["experience"]
	if date := strings.TrimSpace(r.FormValue("date")); date != "" {
		s.cfg.Search.DatePosted = date
	}
	s.cfg.Search.RemoteOptions = r.Form["remote"]
	if v := r.FormValue("max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.cfg.Search.MaxJobs = n
		}
	}
	if provider := strings.TrimSpace(r.FormValue("provider")); provider != "" {
		s.cfg.LLM.Provider = provider
	}
	s.cfg.LLM.Model = strings.TrimSpace(r.FormValue("model"))
	s.cfg.LLM.BaseURL = strings.TrimSpace(r.FormValue("base_url"))

	if err := s.cfg.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.cfg.Save(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
