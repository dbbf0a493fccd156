// Package devserver is a local notification backend serving the same HTTP
// surface the transport client consumes.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianoliveira/portal-notify/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Repository *Repository
	// JWTSecret enables bearer validation when non-empty.
	JWTSecret string
	Logger    logging.Logger
}

// Server exposes a Repository over HTTP.
type Server struct {
	repo   *Repository
	log    logging.Logger
	engine *gin.Engine
}

// New builds the router. Routes live under /api/notifications.
func New(opts Options) (*Server, error) {
	if opts.Repository == nil {
		return nil, errors.New("devserver: repository is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	s := &Server{
		repo:   opts.Repository,
		log:    opts.Logger,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())

	api := s.engine.Group("/api/notifications")
	if opts.JWTSecret != "" {
		api.Use(BearerAuth(opts.JWTSecret))
	}
	api.GET("", s.list)
	api.GET("/", s.list)
	api.POST("", s.create)
	api.GET("/unread-count", s.unreadCount)
	api.PATCH("/read-all", s.markAllRead)
	api.GET("/department/:department", s.listByDepartment)
	api.PATCH("/:id/read", s.markRead)
	api.DELETE("/:id", s.delete)

	return s, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("devserver listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("devserver stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
