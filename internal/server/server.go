// Package server is the Skybound scoring service: the HTTP API that game
// clients submit to and read the shared leaderboard from.
//
// Routes:
//
//	GET    /leaderboard  ranked entries
//	POST   /score        {"name": ..., "score": ...}
//	GET    /winner       rank 1 entry or null
//	DELETE /reset        clear the board
//	GET    /health       liveness
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server serves the leaderboard API over one Source.
type Server struct {
	cfg    config.ServerConfig
	engine *gin.Engine
	logger *log.Logger
}

// New builds the server and its routes. source is the authoritative board,
// normally a leaderboard.LocalSource over the configured backend.
func New(cfg config.ServerConfig, source leaderboard.Source, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := &handler{source: source, logger: logger}

	r := gin.New()
	r.Use(requestID(), recovery(logger), requestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(corsMiddleware(cfg.CORSOrigins))
	}

	r.GET("/health", h.health)

	api := r.Group("/")
	if cfg.RateLimit.RPS > 0 {
		api.Use(rateLimit(newIPLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
	}
	api.GET("/leaderboard", h.list)
	api.POST("/score", h.submit)
	api.GET("/winner", h.winner)
	api.DELETE("/reset", h.reset)

	return &Server{cfg: cfg, engine: r, logger: logger}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on cfg.Address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("scoring server listening", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down scoring server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
