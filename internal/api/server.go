package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mindly-app/duel-engine/internal/config"
	"github.com/mindly-app/duel-engine/internal/duel"
	"github.com/mindly-app/duel-engine/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	duelManager    duel.Manager
	repo           storage.Repository
	authMiddleware *AuthMiddleware
	hub            *Hub
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	manager duel.Manager,
	repo storage.Repository,
) *Server {
	s := &Server{
		config:         cfg,
		duelManager:    manager,
		repo:           repo,
		authMiddleware: NewAuthMiddleware(repo),
		hub:            NewHub(),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware.Authenticate)

		r.With(s.authMiddleware.RequirePermission("duels:read")).Get("/subjects", s.handleListSubjects)
		r.With(s.authMiddleware.RequirePermission("duels:read")).Get("/opponents", s.handleListOpponents)

		// Duels
		r.Route("/duels", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("duels:read")).Get("/", s.handleListDuels)
			r.With(s.authMiddleware.RequirePermission("duels:write")).Post("/", s.handleCreateDuel)

			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("duels:read")).Get("/", s.handleGetDuel)
				r.With(s.authMiddleware.RequirePermission("duels:write")).Delete("/", s.handleAbandonDuel)
				r.With(s.authMiddleware.RequirePermission("duels:write")).Post("/answers", s.handleAnswer)
				r.With(s.authMiddleware.RequirePermission("duels:read")).Get("/ws", s.handleDuelWS)
			})
		})

		// Results
		r.With(s.authMiddleware.RequirePermission("results:read")).Get("/results", s.handleListResults)
		r.With(s.authMiddleware.RequirePermission("results:read")).Get("/results/{id}", s.handleGetResult)
		r.With(s.authMiddleware.RequirePermission("results:read")).Get("/leaderboard", s.handleLeaderboard)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
