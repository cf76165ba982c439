// Package server exposes the planning dashboard over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/planboard/internal/auth"
	"github.com/mmynk/planboard/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	Logger *slog.Logger
	Auth   *service.AuthService
	Plan   *service.PlanService
	JWT    *auth.JWTManager
}

// Server is the HTTP front of the dashboard.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	logger  *slog.Logger
	authSvc *service.AuthService
	planSvc *service.PlanService
	jwt     *auth.JWTManager
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		logger:  cfg.Logger.With("component", "server"),
		authSvc: cfg.Auth,
		planSvc: cfg.Plan,
		jwt:     cfg.JWT,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(metricsMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		// Everything else requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/me", s.handleCurrentUser)
			r.Post("/auth/password", s.handleChangePassword)

			r.Get("/plan", s.handleGetPlan)
			r.Put("/plan/allocation", s.handleUpdateAllocation)
			r.Post("/plan/allocation/reset", s.handleResetAllocation)
			r.Get("/plan/breakeven", s.handleRecompute)
			r.Get("/plan/summary", s.handleSummary)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)

				r.Get("/users", s.handleListUsers)
				r.Post("/users", s.handleAddUser)
				r.Put("/plan/divisions", s.handleUpdateDivisions)
			})
		})
	})
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
