package handlers

import (
	"errors"
	"net/http"

	"storewatch/pkg/logger"
	"storewatch/pkg/stock"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TriggerCheck starts an immediate stock check outside the cron schedule.
// The check runs in the background; poll GET /check/last for the result.
func (h *HandlerService) TriggerCheck(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c.Writer, NewServiceUnavailableError("Scheduler not available", nil))
		c.Abort()
		return
	}

	go func() {
		result, err := h.scheduler.RunNow(h.ctx)
		if err != nil {
			if errors.Is(err, stock.ErrNoDevices) {
				logger.Warn("Triggered check matched no devices")
				return
			}
			logger.Error("Triggered check failed", zap.Error(err))
			return
		}
		logger.Info("Triggered check completed",
			zap.String("run_id", result.RunID),
			zap.Int("events_produced", result.EventsProduced))
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"status":    "accepted",
		"message":   "Stock check started",
		"timestamp": getCurrentTimestamp(),
	})
}

// GetLastRun returns the result of the most recent stock check
func (h *HandlerService) GetLastRun(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c.Writer, NewServiceUnavailableError("Scheduler not available", nil))
		c.Abort()
		return
	}

	last := h.scheduler.LastResult()
	if last == nil {
		HandleError(c.Writer, NewNotFoundError("No check has completed yet", nil))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run":       last,
		"timestamp": getCurrentTimestamp(),
	})
}
