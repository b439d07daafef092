// Package api provides the HTTP API server and handlers for the productivite application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/productivite/productivite-server/internal/config"
	"github.com/productivite/productivite-server/internal/ratelimit"
	"github.com/productivite/productivite-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	cfg      *config.Config
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	apiLimiter    *ratelimit.KeyedRateLimiter
	authLimiter   *ratelimit.KeyedRateLimiter
	searchLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store store.Store, services *Services, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:    store,
		services: services,
		cfg:      cfg,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	if cfg.RateLimit.Enabled {
		s.apiLimiter = ratelimit.PerMinute(cfg.RateLimit.APIPerMinute)
		s.authLimiter = ratelimit.PerMinute(cfg.RateLimit.AuthPerMinute)
		s.searchLimiter = ratelimit.PerMinute(cfg.RateLimit.SearchPerMinute)
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	if cfg.Server.PublicURL != "" {
		humaConfig.Servers = []*huma.Server{{URL: cfg.Server.PublicURL}}
	}
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources. The store and search index are
// owned by the caller and closed separately.
func (s *Server) Close() {
	if s.apiLimiter != nil {
		s.apiLimiter.Stop()
	}
	if s.authLimiter != nil {
		s.authLimiter.Stop()
	}
	if s.searchLimiter != nil {
		s.searchLimiter.Stop()
	}
}

// setupMiddleware configures the middleware stack. Auth runs before the
// rate limiter so authenticated callers are keyed by user, not IP.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))
	s.router.Use(authMiddleware(s.services.Auth))
	if s.apiLimiter != nil {
		s.router.Use(s.rateLimitMiddleware)
	}
}

// registerRoutes registers all huma operations.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerToolRoutes()
	s.registerCategoryRoutes()
	s.registerVoteRoutes()
	s.registerReviewRoutes()
	s.registerSearchRoutes()
	s.registerAdminRoutes()
}
