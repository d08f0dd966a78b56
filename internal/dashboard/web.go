package dashboard

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// MaxUploadBytes bounds a multipart lead upload.
const MaxUploadBytes = 10 << 20

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	View       View
	Report     *Report
	FileName   string
	Emails     string
	Industries string
}

// Server is the web front end for a single shared session.
type Server struct {
	ctrl    *Controller
	metrics *Metrics

	mu      sync.Mutex
	session *Session
	report  *Report
}

// NewServer returns a web dashboard over ctrl. industries seeds the
// session's selection.
func NewServer(ctrl *Controller, metrics *Metrics, industries []string) *Server {
	s := NewSession()
	s.Industries = append([]string(nil), industries...)
	return &Server{ctrl: ctrl, metrics: metrics, session: s}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleSearch)
	r.Post("/send", s.handleSend)
	r.Get("/healthz", handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.ctrl.Render(r.Context(), s.session)
	s.writePage(w, http.StatusOK, view)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readInput(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.report = nil
	view := s.ctrl.RunSearch(r.Context(), s.session)
	s.writePage(w, http.StatusOK, view)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readInput(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, view := s.ctrl.RefreshAndSend(r.Context(), s.session)
	s.report = &report
	s.writePage(w, http.StatusOK, view)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// readInput copies the multipart form into the session. A request without a
// file keeps the previously uploaded one unless clear_file is set.
func (s *Server) readInput(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return eris.Wrap(err, "dashboard: parse form")
	}

	in := s.session.Input
	in.Emails = strings.TrimSpace(r.FormValue("emails"))
	if r.FormValue("clear_file") != "" {
		in.FileName, in.File = "", nil
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return eris.Wrap(err, "dashboard: read upload")
		}
		in.FileName, in.File = header.Filename, data
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return eris.Wrap(err, "dashboard: read upload")
	}

	s.session.Input = in
	if _, ok := r.Form["industries"]; ok {
		s.session.Industries = ParseIndustries(r.FormValue("industries"))
	}
	return nil
}

func (s *Server) writePage(w http.ResponseWriter, status int, view View) {
	data := pageData{
		View:       view,
		Report:     s.report,
		FileName:   s.session.Input.FileName,
		Emails:     s.session.Input.Emails,
		Industries: strings.Join(view.Industries, ", "),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		zap.L().Error("dashboard: render page", zap.String("component", "dashboard"), zap.Error(err))
	}
}
