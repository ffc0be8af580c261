// Package api provides the HTTP API server and handlers for BookCircle.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookcircle/bookcircle-server/internal/http/response"
	"github.com/bookcircle/bookcircle-server/internal/ratelimit"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// Options configures transport concerns of the server.
type Options struct {
	CORSOrigins []string
	WriteRPS    float64
	WriteBurst  int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	services     *Services
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		logger:   logger,
	}
	if opts.WriteRPS > 0 && opts.WriteBurst > 0 {
		s.writeLimiter = ratelimit.New(opts.WriteRPS, opts.WriteBurst)
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig("BookCircle API", "1.0.0")
	humaConfig.Info.Description = "Community book sharing: entries, shares, likes, comments, follows and a public-domain catalogue."
	// Bodies are plain JSON without a $schema link.
	humaConfig.CreateHooks = nil

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	router.NotFound(response.RouteNotFound(logger))
	router.MethodNotAllowed(response.MethodNotAllowed(logger))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.writeLimiter != nil {
		s.writeLimiter.Stop()
	}
}

func (s *Server) setupMiddleware(opts Options) {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         300,
	}))
	if s.writeLimiter != nil {
		s.router.Use(writeRateLimit(s.writeLimiter, s.logger))
	}
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerMemberRoutes()
	s.registerEntryRoutes()
	s.registerShareRoutes()
	s.registerInteractionRoutes()
	s.registerFollowRoutes()
	s.registerFeedRoutes()
	s.registerBookRoutes()
}
