// Package api provides the HTTP API server and handlers.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
	"github.com/inkshelf/inkshelf-server/internal/ratelimit"
	"github.com/inkshelf/inkshelf-server/internal/repository"
	"github.com/inkshelf/inkshelf-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService  *service.AuthService
	users        repository.UserRepository
	books        repository.BookRepository
	favourites   repository.FavouriteRepository
	collections  repository.CollectionRepository
	quotes       repository.QuoteRepository
	loginLimiter *ratelimit.KeyedLimiter
	router       *chi.Mux
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	authService *service.AuthService,
	users repository.UserRepository,
	books repository.BookRepository,
	favourites repository.FavouriteRepository,
	collections repository.CollectionRepository,
	quotes repository.QuoteRepository,
	loginLimiter *ratelimit.KeyedLimiter,
	logger *slog.Logger,
) *Server {
	s := &Server{
		authService:  authService,
		users:        users,
		books:        books,
		favourites:   favourites,
		collections:  collections,
		quotes:       quotes,
		loginLimiter: loginLimiter,
		router:       chi.NewRouter(),
		logger:       logger,
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
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         86400,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, throttled).
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimitByIP(s.loginLimiter))
			r.Post("/signup", s.handleSignup)
			r.Post("/login", s.handleLogin)
		})

		// Account endpoints.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
			r.Patch("/me", s.handleUpdateCurrentUser)
			r.Delete("/me", s.handleDeleteCurrentUser)
		})

		// Books, with nested quote routes.
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleAddBook)
			r.Get("/{id}", s.handleGetBook)
			r.Patch("/{id}", s.handleUpdateBook)
			r.Delete("/{id}", s.handleDeleteBook)
			r.Patch("/{id}/description", s.handleUpdateBookDescription)
			r.Get("/{id}/quotes", s.handleListBookQuotes)
			r.Post("/{id}/quotes", s.handleAddQuote)
		})

		// Favourites.
		r.Route("/favourites", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/{bookID}", s.handleAddFavourite)
			r.Delete("/{bookID}", s.handleRemoveFavourite)
		})

		// Collections.
		r.Route("/collections", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateCollection)
			r.Patch("/{id}", s.handleRenameCollection)
			r.Delete("/{id}", s.handleDeleteCollection)
			r.Post("/{id}/books", s.handleAddBookToCollection)
			r.Delete("/{id}/books/{bookID}", s.handleRemoveBookFromCollection)
		})

		// Quotes addressed directly.
		r.Route("/quotes", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Patch("/{id}", s.handleUpdateQuote)
			r.Delete("/{id}", s.handleDeleteQuote)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
