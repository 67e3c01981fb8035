package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStatus returns the overall system status
func (h *HandlerService) GetStatus(c *gin.Context) {
	status := map[string]interface{}{
		"service":   "storewatch",
		"version":   "1.0.0",
		"status":    "running",
		"timestamp": getCurrentTimestamp(),
		"uptime":    time.Since(h.startTime).String(),
	}

	if h.scheduler != nil {
		status["scheduler"] = h.scheduler.GetStatus()
		if last := h.scheduler.LastResult(); last != nil {
			status["last_run"] = last
		}
	}

	c.JSON(http.StatusOK, status)
}

// GetAppConfig returns the current configuration (sensitive data masked)
func (h *HandlerService) GetAppConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.sanitizeConfig())
}

// HealthCheck performs a comprehensive health check
func (h *HandlerService) HealthCheck(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": getCurrentTimestamp(),
		"checks": map[string]interface{}{
			"scheduler": h.checkSchedulerHealth(),
			"config":    h.checkConfigHealth(),
		},
	}

	allHealthy := true
	checks := health["checks"].(map[string]interface{})
	for _, check := range checks {
		if checkMap, ok := check.(map[string]interface{}); ok {
			if status, exists := checkMap["status"]; exists && status == "unhealthy" {
				allHealthy = false
				break
			}
		}
	}

	if !allHealthy {
		health["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// checkSchedulerHealth checks scheduler health status
func (h *HandlerService) checkSchedulerHealth() map[string]interface{} {
	if h.scheduler == nil {
		return map[string]interface{}{
			"status": "unavailable",
			"error":  "scheduler not initialized",
		}
	}

	return map[string]interface{}{
		"status":  "healthy",
		"details": h.scheduler.GetStatus(),
	}
}

// checkConfigHealth checks configuration health status
func (h *HandlerService) checkConfigHealth() map[string]interface{} {
	if h.config == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "configuration not loaded",
		}
	}

	issues := []string{}

	if h.config.Retailer == nil || h.config.Retailer.CountryCode == "" {
		issues = append(issues, "retailer country code not configured")
	}
	if h.config.Retailer != nil && h.config.Retailer.ZipCode == "" {
		issues = append(issues, "retailer zip code not configured")
	}

	if len(issues) > 0 {
		return map[string]interface{}{
			"status": "unhealthy",
			"issues": issues,
		}
	}

	return map[string]interface{}{
		"status":        "healthy",
		"config_loaded": true,
	}
}
