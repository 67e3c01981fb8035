package handlers

import (
	"errors"
	"net/http"

	"storewatch/pkg/scheduler"

	"github.com/gin-gonic/gin"
)

// GetSchedulerStatus returns scheduler status
func (h *HandlerService) GetSchedulerStatus(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c.Writer, NewServiceUnavailableError("Scheduler not available", nil))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, h.scheduler.GetStatus())
}

// GetScheduledJobs returns all scheduled jobs
func (h *HandlerService) GetScheduledJobs(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c.Writer, NewServiceUnavailableError("Scheduler not available", nil))
		c.Abort()
		return
	}

	jobs := h.scheduler.GetJobs()
	c.JSON(http.StatusOK, gin.H{
		"jobs":      jobs,
		"count":     len(jobs),
		"timestamp": getCurrentTimestamp(),
	})
}

// CreateScheduledJob creates a new scheduled job
func (h *HandlerService) CreateScheduledJob(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c.Writer, NewServiceUnavailableError("Scheduler not available", nil))
		c.Abort()
		return
	}

	var job scheduler.ScheduledJob
	if err := c.ShouldBindJSON(&job); err != nil {
		HandleError(c.Writer, NewBadRequestError("Invalid request body", err))
		c.Abort()
		return
	}

	if err := h.validateScheduledJob(&job); err != nil {
		HandleError(c.Writer, NewBadRequestError("Job validation failed", err))
		c.Abort()
		return
	}

	if err := h.scheduler.AddJob(&job); err != nil {
		HandleError(c.Writer, NewBadRequestError("Failed to create scheduled job", err))
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"job_id":    job.ID,
		"status":    "created",
		"message":   "Scheduled job created successfully",
		"name":      job.Name,
		"cron":      job.Cron,
		"timestamp": getCurrentTimestamp(),
	})
}

// DeleteScheduledJob removes a scheduled job
func (h *HandlerService) DeleteScheduledJob(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		HandleError(c.Writer, NewServiceUnavailableError("Scheduler not available", nil))
		c.Abort()
		return
	}

	jobID := c.Param("id")
	if err := h.scheduler.RemoveJob(jobID); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			HandleError(c.Writer, NewNotFoundError("Scheduled job not found", err))
		} else {
			HandleError(c.Writer, NewInternalServerError("Failed to remove scheduled job", err))
		}
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":    jobID,
		"status":    "deleted",
		"timestamp": getCurrentTimestamp(),
	})
}

// validateScheduledJob validates scheduled job parameters
func (h *HandlerService) validateScheduledJob(job *scheduler.ScheduledJob) error {
	if err := ValidateRequired(job.Name, "name"); err != nil {
		return err
	}
	if err := ValidateRequired(job.Cron, "cron"); err != nil {
		return err
	}
	return nil
}
