package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storewatch/pkg/logger"
)

// ErrorHandler handles errors in Gin requests
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			logger.Error("request error",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err.Err),
				zap.String("request_id", c.GetString("RequestID")),
				zap.Int("status", c.Writer.Status()),
			)

			// Don't override response if already written
			if !c.Writer.Written() {
				status := c.Writer.Status()
				if status == 0 || status == 200 {
					status = 500
				}

				c.JSON(status, gin.H{
					"error":      true,
					"message":    "Internal Server Error",
					"request_id": c.GetString("RequestID"),
				})
			}
		}
	}
}

// Recovery handles panics and recovers gracefully
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", c.GetString("RequestID")),
			zap.Stack("stack"),
		)

		c.AbortWithStatusJSON(500, gin.H{
			"error":      true,
			"message":    "Internal Server Error",
			"request_id": c.GetString("RequestID"),
		})
	})
}
