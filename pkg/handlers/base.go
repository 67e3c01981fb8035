package handlers

import (
	"context"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/scheduler"
)

// HandlerService provides HTTP handlers for the API
type HandlerService struct {
	config    *config.Config
	ctx       context.Context
	scheduler *scheduler.CheckScheduler
	startTime time.Time
}

// NewHandlerService creates a new handler service
func NewHandlerService(ctx context.Context, cfg *config.Config) (*HandlerService, error) {
	logger.Info("Initializing handler service")

	return &HandlerService{
		config:    cfg,
		ctx:       ctx,
		startTime: time.Now(),
	}, nil
}

// SetScheduler sets the scheduler reference (called after scheduler is created)
func (h *HandlerService) SetScheduler(s *scheduler.CheckScheduler) {
	h.scheduler = s
}

// GetConfig returns the handler service configuration
func (h *HandlerService) GetConfig() *config.Config {
	return h.config
}

// GetScheduler returns the scheduler instance
func (h *HandlerService) GetScheduler() *scheduler.CheckScheduler {
	return h.scheduler
}

// IsSchedulerAvailable checks if scheduler is available
func (h *HandlerService) IsSchedulerAvailable() bool {
	return h.scheduler != nil
}
