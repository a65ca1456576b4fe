package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/gosuda/daygrid/internal/api/ws"
	"github.com/gosuda/daygrid/internal/config"
	"github.com/gosuda/daygrid/internal/holiday"
	"github.com/gosuda/daygrid/internal/server/middleware"
	"github.com/gosuda/daygrid/internal/store"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *store.Store
	hub        *ws.Hub
	cfg        *config.Config
}

// New creates a Server with all routes wired.
func New(ctx context.Context, cfg *config.Config, taskStore *store.Store, holidays *holiday.Client) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)

	hub := ws.NewHub(taskStore)

	s := &Server{
		router: router,
		store:  taskStore,
		hub:    hub,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1.
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(ctx, 50, 100))

		apiConfig := huma.DefaultConfig("Daygrid API", "1.0.0")
		apiConfig.Servers = []*huma.Server{
			{URL: "/api/v1"},
		}
		api := humachi.New(r, apiConfig)
		registerAPIRoutes(api, taskStore, holidays)
	})

	// WebSocket routes.
	router.Route("/ws", func(r chi.Router) {
		registerWSRoutes(r, hub)
	})

	// Health check.
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
