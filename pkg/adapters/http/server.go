package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/termuxdev"
	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/aretw0/termuxdev/pkg/catalog"
	"github.com/aretw0/termuxdev/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// maxFormBytes bounds request bodies; the query limit itself is enforced by the service.
const maxFormBytes = 64 << 10

// Server serves the HTML page and the JSON API on top of a ports.Service.
type Server struct {
	Service  ports.Service
	logger   *slog.Logger
	metrics  http.Handler
	validate bool
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithRequestValidation toggles OpenAPI request validation (on by default).
func WithRequestValidation(enabled bool) Option {
	return func(s *Server) {
		s.validate = enabled
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc ports.Service, opts ...Option) http.Handler {
	s := &Server{
		Service:  svc,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if s.validate {
		validator, err := newRequestValidator(s.logger)
		if err != nil {
			s.logger.Error("OpenAPI validation disabled", "error", err)
		} else {
			r.Use(validator)
		}
	}

	r.Get("/", s.GetPage)
	r.Post("/ask", s.PostAsk)
	r.Post("/generate", s.PostGenerate)

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.ServeSpec)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.GetCatalog)
		r.Get("/setup", s.ListSetupSteps)
		r.Get("/sources", s.ListPackageSources)
		r.Get("/workflows", s.ListWorkflows)
		r.Post("/workflows/generate", s.GenerateWorkflow)
		r.Get("/workflows/{name}", s.GetWorkflow)
		r.Get("/resources", s.ListResources)
		r.Post("/advice", s.AskAdvice)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
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

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// -- HTML page --

type tabLink struct {
	ID     catalog.Tab
	Label  string
	Active bool
}

type pageData struct {
	Version   string
	Tab       catalog.Tab
	Label     string
	Tabs      []tabLink
	Catalog   *catalog.Catalog
	Workflow  catalog.WorkflowTemplate
	Query     string
	Answer    string
	Details   string
	Generated string
	Error     string
}

func (s *Server) newPage(tab catalog.Tab, workflow string) *pageData {
	c := s.Service.Catalog()
	p := &pageData{
		Version: termuxdev.Version,
		Tab:     tab,
		Label:   c.TabLabel(tab),
		Catalog: c,
	}
	for _, info := range c.Tabs {
		p.Tabs = append(p.Tabs, tabLink{ID: info.ID, Label: info.Label, Active: info.ID == tab})
	}
	if w, ok := c.Workflow(workflow); ok {
		p.Workflow = w
	} else if w, ok := c.DefaultWorkflow(); ok {
		p.Workflow = w
	}
	return p
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		s.logger.Error("Page render failed", "tab", p.Tab, "error", err)
	}
}

// GetPage handles GET /?tab=<id>&workflow=<name>.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderPage(w, http.StatusOK, s.newPage(catalog.ParseTab(q.Get("tab")), q.Get("workflow")))
}

// PostAsk handles the advice form.
func (s *Server) PostAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	p := s.newPage(catalog.TabAI, "")
	if err := r.ParseForm(); err != nil {
		p.Error = "Could not read the form."
		s.renderPage(w, http.StatusBadRequest, p)
		return
	}

	p.Query = r.PostForm.Get("query")
	answer, err := s.Service.Ask(r.Context(), p.Query)
	if err != nil {
		p.Error = inputMessage(err)
		s.renderPage(w, http.StatusBadRequest, p)
		return
	}
	p.Answer = answer
	s.renderPage(w, http.StatusOK, p)
}

// PostGenerate handles the "Generate with AI" form on the actions tab.
func (s *Server) PostGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	p := s.newPage(catalog.TabActions, "")
	if err := r.ParseForm(); err != nil {
		p.Error = "Could not read the form."
		s.renderPage(w, http.StatusBadRequest, p)
		return
	}

	p.Details = r.PostForm.Get("details")
	generated, err := s.Service.GenerateWorkflow(r.Context(), p.Details)
	if err != nil {
		p.Error = inputMessage(err)
		s.renderPage(w, http.StatusBadRequest, p)
		return
	}
	p.Generated = generated
	s.renderPage(w, http.StatusOK, p)
}

// -- JSON API --

type adviceRequest struct {
	Query string `json:"query"`
}

type adviceResponse struct {
	Response string `json:"response"`
}

type workflowRequest struct {
	Details string `json:"details"`
}

type workflowResponse struct {
	Workflow string `json:"workflow"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": termuxdev.Version})
}

// GetCatalog handles GET /api/catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Catalog())
}

// ListSetupSteps handles GET /api/setup.
func (s *Server) ListSetupSteps(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Catalog().SetupSteps)
}

// ListPackageSources handles GET /api/sources.
func (s *Server) ListPackageSources(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Catalog().PackageSources)
}

// ListWorkflows handles GET /api/workflows.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Catalog().Workflows)
}

// GetWorkflow handles GET /api/workflows/{name}.
func (s *Server) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	wf, ok := s.Service.Catalog().Workflow(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "workflow not found: "+name)
		return
	}
	s.writeJSON(w, http.StatusOK, wf)
}

// ListResources handles GET /api/resources.
func (s *Server) ListResources(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Service.Catalog().Resources)
}

// AskAdvice handles POST /api/advice.
func (s *Server) AskAdvice(w http.ResponseWriter, r *http.Request) {
	var body adviceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("AskAdvice: Invalid request body", "error", err)
		return
	}

	answer, err := s.Service.Ask(r.Context(), body.Query)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		s.logger.Warn("AskAdvice: Query rejected", "error", err, "size", len(body.Query))
		return
	}
	s.writeJSON(w, http.StatusOK, adviceResponse{Response: answer})
}

// GenerateWorkflow handles POST /api/workflows/generate.
func (s *Server) GenerateWorkflow(w http.ResponseWriter, r *http.Request) {
	var body workflowRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("GenerateWorkflow: Invalid request body", "error", err)
		return
	}

	out, err := s.Service.GenerateWorkflow(r.Context(), body.Details)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		s.logger.Warn("GenerateWorkflow: Details rejected", "error", err, "size", len(body.Details))
		return
	}
	s.writeJSON(w, http.StatusOK, workflowResponse{Workflow: out})
}

// -- Helpers --

// ServeSpec serves the embedded OpenAPI document.
func (s *Server) ServeSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	if _, err := w.Write(RawSpec()); err != nil {
		s.logger.Error("Spec write failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	encodeJSON(w, s.logger, status, v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	encodeJSON(w, s.logger, status, errorResponse{Error: msg})
}

func encodeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

func inputMessage(err error) string {
	switch {
	case errors.Is(err, advice.ErrEmptyQuery):
		return "Please enter a question first."
	case advice.IsInputError(err):
		return "That input cannot be sent: " + err.Error()
	default:
		return err.Error()
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
