package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/netdoc/internal/config"
	"github.com/dgallion1/netdoc/internal/importer"
	"github.com/dgallion1/netdoc/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for netdoc.
type Server struct {
	router chi.Router
	store  *store.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: st,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/stats", s.handleStats)

		r.Route("/api/targets/{targetID}", func(r chi.Router) {
			r.Get("/document", s.handleGetDocument)
			r.Put("/document", s.handlePutDocument)
			r.Delete("/document", s.handleDeleteDocument)
			r.Post("/save", s.handleSave)
			r.Post("/import", s.handleImport)

			r.Get("/parts", s.handleListParts)
			r.Get("/parts/{name}", s.handleGetPart)
			r.Put("/parts/{name}", s.handlePutPart)
			r.Delete("/parts/{name}", s.handleDeletePart)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) importOptions() importer.Options {
	return importer.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext}
}
