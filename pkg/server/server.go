package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/handlers"
	"storewatch/pkg/logger"
	"storewatch/pkg/metrics"
	"storewatch/pkg/middleware"
	"storewatch/pkg/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server constants
const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second
	DefaultVersion      = "1.0.0"
	ServiceName         = "storewatch"
)

// HTTPServer represents the HTTP server component
type HTTPServer struct {
	server     *http.Server
	engine     *gin.Engine
	config     *config.Config
	ctx        context.Context
	handlerSvc *handlers.HandlerService
}

// NewHTTPServer creates a new HTTP server instance
func NewHTTPServer(ctx context.Context, cfg *config.Config) (*HTTPServer, error) {
	logger.Info("Initializing HTTP server",
		zap.String("address", cfg.Server.Address),
		zap.Int("port", cfg.Server.Port))

	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	handlerSvc, err := handlers.NewHandlerService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler service: %w", err)
	}

	server := &HTTPServer{
		engine:     engine,
		config:     cfg,
		ctx:        ctx,
		handlerSvc: handlerSvc,
	}

	server.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	server.server = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}

	logger.Info("HTTP server initialized", zap.String("listen_addr", addr))
	return server, nil
}

// SetScheduler sets the scheduler reference in the handler service
func (s *HTTPServer) SetScheduler(scheduler *scheduler.CheckScheduler) {
	s.handlerSvc.SetScheduler(scheduler)
}

// setupRoutes configures all HTTP routes
func (s *HTTPServer) setupRoutes() {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.GinZapLogger())
	s.engine.Use(middleware.ErrorHandler())
	s.engine.Use(cors.Default())

	s.engine.GET("/health", s.handlerSvc.HealthCheck)
	s.engine.GET("/ping", s.handlePing)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.setupAPIRoutes()

	logger.Info("HTTP routes configured")
}

// setupAPIRoutes configures API v1 routes
func (s *HTTPServer) setupAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/status", s.handlerSvc.GetStatus)
	api.GET("/config", s.handlerSvc.GetAppConfig)

	api.POST("/check", s.handlerSvc.TriggerCheck)
	api.GET("/check/last", s.handlerSvc.GetLastRun)

	api.GET("/scheduler/status", s.handlerSvc.GetSchedulerStatus)
	api.GET("/scheduler/jobs", s.handlerSvc.GetScheduledJobs)
	api.POST("/scheduler/jobs", s.handlerSvc.CreateScheduledJob)
	api.DELETE("/scheduler/jobs/:id", s.handlerSvc.DeleteScheduledJob)
}

// handlePing answers liveness probes
func (s *HTTPServer) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   ServiceName,
		"version":   DefaultVersion,
		"timestamp": time.Now().UTC(),
	})
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	return nil
}
