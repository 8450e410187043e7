package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/db"
	"github.com/ziadkadry99/cheatsheet/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Port int
	// AllowedOrigins may call the JSON API with credentials.
	AllowedOrigins []string
	AllowAll       bool // allow all CORS origins (dev mode)
	// Middleware runs after the standard stack and before every route.
	Middleware []func(http.Handler) http.Handler
	// RequestTimeout bounds page and API requests. Streams are not bounded.
	RequestTimeout time.Duration
}

// Server is the cheatsheet HTTP server.
type Server struct {
	cfg        Config
	db         *db.DB
	logger     *zap.Logger
	router     chi.Router
	timed      chi.Router
	httpServer *http.Server
}

// New creates a server. database may be nil when no feature needs it.
func New(cfg Config, database *db.DB, logger *zap.Logger) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		db:     database,
		logger: logging.OrNop(logger),
	}

	s.router = s.buildRouter()
	s.timed = s.router.With(middleware.Timeout(cfg.RequestTimeout))
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with the shared middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  zap.NewStdLog(s.logger),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(s.cfg.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = append(corsOpts.AllowedOrigins, s.cfg.AllowedOrigins...)
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	for _, mw := range s.cfg.Middleware {
		r.Use(mw)
	}

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Feature packages register their routes through Router and Streams.
	return r
}

// Router returns the router for page and API routes. Requests on it are
// bounded by the request timeout.
func (s *Server) Router() chi.Router { return s.timed }

// Streams returns the router for long-lived connections such as WebSockets.
func (s *Server) Streams() chi.Router { return s.router }

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start listens on the configured port and serves until Shutdown. It
// returns nil after a clean shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("cheatsheet server listening", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
