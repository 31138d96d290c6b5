// Package dashboard serves list pages as JSON for a browser front-end. Each
// request opens its own view against the remote API with the caller's
// bearer token, so the gateway holds no per-user state.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/session"
)

// ClientFactory returns a client that calls the remote API as sess.
type ClientFactory func(sess *session.Session) client.CafeClient

// Options configures a Server.
type Options struct {
	PageSize    int
	MaxPages    int
	CORSOrigins []string
	Logger      *slog.Logger
}

// Server is the JSON gateway.
type Server struct {
	clients ClientFactory
	opts    Options
	logger  *slog.Logger
	hub     *sseHub
}

// NewServer creates a gateway that builds per-request clients with clients.
func NewServer(clients ClientFactory, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	return &Server{clients: clients, opts: opts, logger: logger, hub: newSSEHub()}
}

// Handler returns the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), recovery(s.logger), corsMiddleware(s.opts.CORSOrigins))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/pages", s.handleListPages)
	api.GET("/pages/:name", s.handleGetPage)
	api.GET("/events/stream", s.handleEventStream)
	return r
}

// ListenAndServe serves the gateway on addr until ctx is cancelled, then
// shuts down with a grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gateway listening", "addr", addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("gateway shutting down")
	return srv.Shutdown(shutdownCtx)
}
