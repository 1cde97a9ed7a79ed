// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New opens the database, builds the
// services on top of its stores, hands each service to its handler and maps
// handlers to routes. Nothing else in the module constructs a dependency
// graph, so main stays a thin command layer and tests can build a complete
// server against a temporary database.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/sakif/game-store/docs" // registers the OpenAPI document with swag
	"github.com/sakif/game-store/internal/auth"
	"github.com/sakif/game-store/internal/config"
	"github.com/sakif/game-store/internal/handler"
	"github.com/sakif/game-store/internal/metrics"
	"github.com/sakif/game-store/internal/middleware"
	sqliteRepo "github.com/sakif/game-store/internal/repository/sqlite"
	"github.com/sakif/game-store/internal/service"
)

// Server represents the HTTP server and all its dependencies. It owns the
// database connection; Start closes it on shutdown, Close for servers that
// were never started.
type Server struct {
	router   *chi.Mux
	config   config.Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	registry *prometheus.Registry
}

// New opens the database (applying migrations) and wires every route.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	services, err := NewServices(db, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	if err := s.setupRoutes(services); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// OpenDB opens the database at cfg.DBPath with the configured pool settings.
func OpenDB(ctx context.Context, cfg config.Config) (*sqliteRepo.DB, error) {
	opts := sqliteRepo.DefaultOptions()
	opts.MaxOpenConns = cfg.DBMaxOpenConns
	opts.MaxIdleConns = cfg.DBMaxIdleConns
	opts.ConnMaxLifetime = cfg.DBConnMaxLifetime

	db, err := sqliteRepo.New(ctx, cfg.DBPath, opts)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// NewServices builds the service layer on db's stores. The seed command
// uses it too, so seeding goes through the same validation as the API.
func NewServices(db *sqliteRepo.DB, cfg config.Config, logger *slog.Logger) (*service.Services, error) {
	passwords, err := auth.NewPasswordService(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("creating password service: %w", err)
	}

	return service.New(service.Stores{
		Categories: db.Categories(),
		Developers: db.Developers(),
		Games:      db.Games(),
		Users:      db.Users(),
		Purchases:  db.Purchases(),
	}, passwords, logger), nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTES:
// GET /                      → resource overview page (HTML)
// GET /docs                  → Swagger UI; /docs?type=json → OpenAPI document
// GET /health                → liveness plus database ping
// GET /metrics               → Prometheus metrics
// GET|POST|PUT|DELETE /categories, /games, /users, /purchases
// GET|POST /developers
//
// PUT and DELETE take the id in the JSON body, not the path.
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID runs first so every later log line carries the id.
// 2. RealIP rewrites RemoteAddr from proxy headers.
// 3. metrics and Logger wrap everything below, so they also see the 500
//    Recoverer writes and the 504 Timeout writes.
// 4. Recoverer turns a panic into a 500.
// 5. Timeout cancels the request context after REQUEST_TIMEOUT.
func (s *Server) setupRoutes(services *service.Services) error {
	collector := metrics.NewCollector(s.registry)
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(s.db.SQL(), "store"),
	)

	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(collector.Middleware)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(s.config.RequestTimeout))

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	// === Pages ===
	homeHandler, err := handler.NewHomeHandler(s.logger)
	if err != nil {
		return fmt.Errorf("creating home handler: %w", err)
	}
	docsHandler, err := handler.NewDocsHandler(s.logger)
	if err != nil {
		return fmt.Errorf("creating docs handler: %w", err)
	}
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.Get("/", homeHandler.HandleHome)
	s.router.Get("/docs", docsHandler.HandleDocs)
	s.router.Get("/health", healthHandler.HandleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler(s.registry))

	// === Resources ===
	categories := handler.NewCategoryHandler(services.Categories, s.logger)
	s.router.Get("/categories", categories.HandleList)
	s.router.Post("/categories", categories.HandleCreate)
	s.router.Put("/categories", categories.HandleUpdate)
	s.router.Delete("/categories", categories.HandleDelete)

	games := handler.NewGameHandler(services.Games, s.logger)
	s.router.Get("/games", games.HandleList)
	s.router.Post("/games", games.HandleCreate)
	s.router.Put("/games", games.HandleUpdate)
	s.router.Delete("/games", games.HandleDelete)

	users := handler.NewUserHandler(services.Users, s.logger)
	s.router.Get("/users", users.HandleList)
	s.router.Post("/users", users.HandleCreate)
	s.router.Put("/users", users.HandleUpdate)
	s.router.Delete("/users", users.HandleDelete)

	purchases := handler.NewPurchaseHandler(services.Purchases, s.logger)
	s.router.Get("/purchases", purchases.HandleList)
	s.router.Post("/purchases", purchases.HandleCreate)
	s.router.Put("/purchases", purchases.HandleUpdate)
	s.router.Delete("/purchases", purchases.HandleDelete)

	developers := handler.NewDeveloperHandler(services.Developers, s.logger)
	s.router.Get("/developers", developers.HandleList)
	s.router.Post("/developers", developers.HandleCreate)

	return nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully:
//  1. stop accepting connections
//  2. wait up to SHUTDOWN_TIMEOUT for in-flight requests
//  3. close the database (flushes the WAL, releases the file lock)
func (s *Server) Start(ctx context.Context) error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.db.Path()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	case <-ctx.Done():
		s.logger.Info("shutdown requested", slog.String("reason", context.Cause(ctx).Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
