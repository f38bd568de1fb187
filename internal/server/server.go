package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/liftcalc/internal/config"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	alpha    *alpha.Provider
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	plates   plates.LoadRequest
	strategy plates.Strategy
	e1rm     rpe.Request
}

// New creates a new Server with all routes configured. The plate and e1RM
// defaults come from cfg and fill any form field left empty.
func New(cfg *config.Config, alphaProvider *alpha.Provider, log *slog.Logger) *Server {
	s := &Server{
		alpha:    alphaProvider,
		log:      log,
		apiKey:   cfg.Auth.APIKey,
		router:   chi.NewRouter(),
		plates:   cfg.Plates.LoadRequest(),
		strategy: cfg.Plates.SolverStrategy(),
		e1rm:     cfg.E1RM.Request(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// HTML pages
	s.router.Group(func(r chi.Router) {
		r.Use(Localize)
		r.Get("/", s.handleHome)
		r.Get("/plate", s.handlePlatePage)
		r.Post("/plate", s.handlePlateSubmit)
		r.Get("/e1rm", s.handleE1RMPage)
		r.Post("/e1rm", s.handleE1RMSubmit)
	})

	// Calculator API (no auth, pure computation)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/plates/solve", s.handleSolvePlates)
		r.Get("/plates/catalog", s.handlePlateCatalog)
		r.Post("/e1rm", s.handleEstimate)
		r.Get("/rpe/{bias}", s.handleRPETable)

		// Import endpoints (API key required when configured)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/import/alpha", s.handleAlphaImport)
		})
	})
}

// SetStatic mounts the embedded static assets under /static/.
func (s *Server) SetStatic(staticFS fs.FS) {
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
}

// Mount attaches another handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}
