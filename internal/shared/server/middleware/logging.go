package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/telemetry"
)

// SetJobPostingID tags the request so the completion log carries the posting id.
func SetJobPostingID(c *gin.Context, postingID int64) {
	c.Set("jobPostingId", postingID)
}

// SetApplicationID tags the request so the completion log carries the application id.
func SetApplicationID(c *gin.Context, applicationID int64) {
	c.Set("applicationId", applicationID)
}

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
		}
		if postingID, ok := c.Get("jobPostingId"); ok {
			fields["job_posting_id"] = postingID
		}
		if applicationID, ok := c.Get("applicationId"); ok {
			fields["application_id"] = applicationID
		}
		telemetry.Info("request.complete", fields)
	}
}
