// Package web serves the interactive listings table over HTTP.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/KaramelBytes/dockfinder-cli/internal/logging"
	"github.com/KaramelBytes/dockfinder-cli/internal/pipeline"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Config holds server settings.
type Config struct {
	Addr     string
	Source   string
	Pipeline pipeline.Options
	MaxViews int
	// LoadTimeout bounds one page-view fetch.
	LoadTimeout time.Duration
}

// Server renders the listings page and its grid fragments.
type Server struct {
	cfg       Config
	fetcher   pipeline.Fetcher
	views     *ViewStore
	templates *template.Template
	router    *chi.Mux
	log       zerolog.Logger
}

// New builds a Server that loads cfg.Source through f on every page view.
func New(cfg Config, f pipeline.Fetcher, log zerolog.Logger) (*Server, error) {
	tmpl, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:       cfg,
		fetcher:   f,
		views:     NewViewStore(cfg.MaxViews),
		templates: tmpl,
		router:    chi.NewRouter(),
		log:       log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(logging.AccessLog(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/views/{id}/grid", s.handleGrid)
	s.router.Get("/views/{id}/rows", s.handleRows)
	s.router.Get("/api/summary", s.handleSummary)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/static/*", http.FileServer(http.FS(embeddedFiles)))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps s in an http.Server with conservative timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.cfg.LoadTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// render executes a template into a buffer first so failures never leave a
// half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Str("request_id", middleware.GetReqID(r.Context())).Msg("template error")
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}
