// Package api provides the HTTP API server and handlers for the Inkwell
// catalog.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/ratelimit"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	authService     *service.AuthService
	bookService     *service.BookService
	relationService *service.RelationService
	loginLimiter    *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *logger.Logger
	startedAt       time.Time
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store store.Store,
	authService *service.AuthService,
	bookService *service.BookService,
	relationService *service.RelationService,
	loginLimiter *ratelimit.KeyedRateLimiter,
	log *logger.Logger,
) *Server {
	s := &Server{
		store:           store,
		authService:     authService,
		bookService:     bookService,
		relationService: relationService,
		loginLimiter:    loginLimiter,
		router:          chi.NewRouter(),
		logger:          log,
		startedAt:       time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	// Clients may call /books or /books/; treat them the same.
	s.router.Use(middleware.StripSlashes)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Demo login page. Shows the signed-in account when a token is sent.
	s.router.With(s.withAuth).Get("/auth-page", s.handleAuthPage)

	// API v1. Reads are public; identity is attached when a token is sent
	// and each handler decides what it requires.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.withAuth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", s.handleGetCurrentUser)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleCreateBook)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetBook)
				r.Put("/", s.handleUpdateBook)
				r.Patch("/", s.handlePatchBook)
				r.Delete("/", s.handleDeleteBook)
			})
		})

		r.Route("/relations", func(r chi.Router) {
			r.Get("/{book_id}", s.handleGetRelation)
			r.Patch("/{book_id}", s.handlePatchRelation)
		})
	})
}
