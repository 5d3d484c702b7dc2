// Package server wires the application together: database, services,
// handlers, middleware, and routes. It is the composition root; main.go
// only reads configuration and calls New/Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/forgemycode/forgemycode/internal/auth"
	"github.com/forgemycode/forgemycode/internal/github"
	"github.com/forgemycode/forgemycode/internal/handler"
	"github.com/forgemycode/forgemycode/internal/middleware"
	sqliteRepo "github.com/forgemycode/forgemycode/internal/repository/sqlite"
	"github.com/forgemycode/forgemycode/internal/service"
)

// Config holds everything the server needs, read from the environment by
// main.go and passed in explicitly.
type Config struct {
	Port   int
	DBPath string

	// GitHubToken authenticates issue-search calls. Optional, but without
	// it the search rate limit drops from 30 to 10 requests per minute.
	GitHubToken string

	JWTSecret string

	// GitHub OAuth app credentials. Optional; when unset only password
	// login is available.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	// FrontendURL is where OAuth callbacks redirect after login.
	FrontendURL string
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer receives only the interfaces it needs; handlers never touch
// the database and services never touch HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("server: JWT secret is required")
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the services, and binds every
// route.
//
// Route map:
//
//	GET    /healthz                      → liveness probe
//	POST   /api/auth/register            → create account + login
//	POST   /api/auth/login               → password login
//	POST   /api/auth/logout              → clear auth cookie
//	GET    /api/auth/me                  → current user          [auth]
//	GET    /auth/github/login            → redirect to GitHub
//	GET    /auth/github/callback         → OAuth callback
//	GET    /api/issues                   → discover issues       [optional auth]
//	POST   /api/tasks                    → save an issue         [auth]
//	DELETE /api/tasks/{issueID}          → unsave                [auth]
//	POST   /api/tasks/{issueID}/complete → mark completed        [auth]
//	PATCH  /api/tasks/{issueID}/summary  → edit summary          [auth]
//	GET    /api/tasks/saved              → saved list            [auth]
//	GET    /api/tasks/completed          → completed list        [auth]
//	GET    /api/resume                   → read resume           [auth]
//	PUT    /api/resume                   → upsert resume         [auth]
//	GET    /api/resources                → learning resources
//	POST   /api/resources                → add a resource        [auth]
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	githubOAuth := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	githubClient := github.NewClient(github.Config{Token: s.config.GitHubToken}, s.logger)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	issueService := service.NewIssueService(githubClient, s.logger)
	contributionService := service.NewContributionService(s.db, s.logger)
	resumeService := service.NewResumeService(s.db, s.logger)
	resourceService := service.NewResourceService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, githubOAuth, s.config.FrontendURL, s.logger)
	issueHandler := handler.NewIssueHandler(issueService, s.logger)
	contributionHandler := handler.NewContributionHandler(contributionService, s.logger)
	resumeHandler := handler.NewResumeHandler(resumeService, s.logger)
	resourceHandler := handler.NewResourceHandler(resourceService, s.logger)

	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/auth/github", func(r chi.Router) {
		r.Get("/login", authHandler.HandleGitHubLogin)
		r.Get("/callback", authHandler.HandleGitHubCallback)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.With(requireAuth).Get("/auth/me", authHandler.HandleMe)

		// Discovery works anonymously; a valid cookie still attaches the
		// caller's identity.
		r.With(optionalAuth).Get("/issues", issueHandler.HandleList)

		r.Get("/resources", resourceHandler.HandleList)
		r.With(requireAuth).Post("/resources", resourceHandler.HandleCreate)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/tasks", contributionHandler.HandleSave)
			r.Get("/tasks/saved", contributionHandler.HandleListSaved)
			r.Get("/tasks/completed", contributionHandler.HandleListCompleted)
			r.Delete("/tasks/{issueID}", contributionHandler.HandleUnsave)
			r.Post("/tasks/{issueID}/complete", contributionHandler.HandleComplete)
			r.Patch("/tasks/{issueID}/summary", contributionHandler.HandleUpdateSummary)

			r.Get("/resume", resumeHandler.HandleGet)
			r.Put("/resume", resumeHandler.HandlePut)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database (flushes the WAL and releases the file
// lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
