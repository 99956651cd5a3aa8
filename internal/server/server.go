package server

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/claude/fitclub/internal/catalog"
	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/similar"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the part of the storage layer the handlers read from.
type Store interface {
	Ping(ctx context.Context) error
	GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	SearchExercises(ctx context.Context, q models.ExerciseQuery) (*models.ExercisePage, error)
	ListBodyParts(ctx context.Context) ([]string, error)
	ListTargets(ctx context.Context) ([]string, error)
	ListEquipment(ctx context.Context) ([]string, error)
}

// CatalogImporter loads an uploaded catalog.
type CatalogImporter interface {
	ImportReader(ctx context.Context, r io.Reader, format catalog.Format) (*catalog.Stats, error)
}

// Options are the tunables of a Server.
type Options struct {
	// APIKey protects the catalog upload endpoint.
	APIKey string
	// PageSize is the number of exercises per home page.
	PageSize int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	finder   *similar.Finder
	importer CatalogImporter
	log      *slog.Logger
	apiKey   string
	pageSize int
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, finder *similar.Finder, importer CatalogImporter, opts Options, log *slog.Logger) *Server {
	s := &Server{
		store:    store,
		finder:   finder,
		importer: importer,
		log:      log,
		apiKey:   opts.APIKey,
		pageSize: opts.PageSize,
		router:   chi.NewRouter(),
	}
	if s.pageSize <= 0 {
		s.pageSize = models.DefaultPageSize
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Pages
	s.router.Get("/", s.handleHome)
	s.router.Get("/exercises/{id}", s.handleExercisePage)
	s.router.Get("/exercises/{id}/similar/{kind}", s.handleSimilarFragment)

	// Catalog upload (API key required)
	s.router.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleCatalogUpload)
	})

	// Read API
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Get("/api/v1/exercises/{id}/similar", s.handleSimilarExercises)
	s.router.Get("/api/v1/bodyparts", s.handleBodyParts)
	s.router.Get("/api/v1/targets", s.handleTargets)
	s.router.Get("/api/v1/equipment", s.handleEquipment)

	s.router.Get("/healthz", s.handleHealth)

	s.router.NotFound(s.handleNotFound)
}

// SetStatic serves the embedded stylesheet, script and images under /static/.
func (s *Server) SetStatic(static fs.FS) {
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
}

// Mount attaches another handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.renderError(w, http.StatusNotFound, "We could not find that page.")
}
