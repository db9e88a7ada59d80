package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/manifestgen/internal/api/http"
	"github.com/GriffinCanCode/manifestgen/internal/api/middleware"
	"github.com/GriffinCanCode/manifestgen/internal/api/ws"
	"github.com/GriffinCanCode/manifestgen/internal/app"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and the session it exposes
type Server struct {
	router *gin.Engine
	app    *app.App
	http   *nethttp.Server
}

// NewServer builds the router for a wired session
func NewServer(a *app.App) *Server {
	cfg := a.Config
	logger := a.Logger

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(monitoring.Middleware(a.Metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	handlers := http.NewHandlers(a.Generator, a.Catalog, a.Metrics, logger)
	handlers.Register(router)

	wsHandler := ws.NewHandler(a.Store, a.Metrics, logger)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(a.Metrics.Handler()))

	return &Server{
		router: router,
		app:    a,
		http: &nethttp.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() nethttp.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.app.Logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", s.http.Addr, err)
	case <-ctx.Done():
	}
	return s.Close()
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.app.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		s.app.Logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	_ = s.app.Logger.Sync()
	s.app.Logger.Info("Server shutdown complete")
	return nil
}
