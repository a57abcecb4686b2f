// Package server exposes the coach, the demonstrator, the lesson catalog
// and the rage chat as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/demo"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/store"
)

// Options configures the HTTP server.
type Options struct {
	Addr            string
	AllowedOrigins  []string
	SessionTTL      time.Duration
	LeaderboardSize int
	Logger          *slog.Logger
}

// Deps are the services behind the API. Results may be nil, in which case
// rage-quit results are not persisted and the leaderboard is empty.
type Deps struct {
	Coach      *coach.Service
	Demo       *demo.Demonstrator
	Catalog    *lessons.Catalog
	Results    store.ResultRepo
	NewManager func() *rage.Manager
}

// Server is the HTTP API.
type Server struct {
	opts     Options
	deps     Deps
	log      *slog.Logger
	sessions *registry
	router   chi.Router
}

// New builds the server and its routes.
func New(opts Options, deps Deps) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = 10
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if deps.Coach == nil {
		deps.Coach = coach.NewService(nil, "", nil)
	}
	if deps.Demo == nil {
		deps.Demo = demo.New(nil)
	}
	if deps.Catalog == nil {
		deps.Catalog = lessons.MustDefault()
	}

	s := &Server{
		opts:     opts,
		deps:     deps,
		log:      opts.Logger,
		sessions: newRegistry(deps.NewManager),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/demo", s.handleDemo)

		r.Route("/lessons", func(r chi.Router) {
			r.Get("/", s.handleListLessons)
			r.Post("/next", s.handleNextLesson)
			r.Get("/{id}", s.handleGetLesson)
		})

		r.Route("/rage/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleSessionSummary)
				r.Delete("/", s.handleResetSession)
				r.Post("/prompts", s.handlePrompt)
				r.Post("/quit", s.handleQuit)
			})
		})

		r.Get("/leaderboard", s.handleLeaderboard)
	})
	return r
}

// Run serves until ctx is cancelled, expiring idle rage sessions in the
// background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) sweepLoop(ctx context.Context) {
	interval := min(s.opts.SessionTTL, time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.sweep(s.opts.SessionTTL); n > 0 {
				s.log.Info("expired rage sessions", "count", n)
			}
		}
	}
}
