package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"supportdesk/internal/shared/constants"
	"supportdesk/internal/shared/logger"
)

// CustomLogger writes one access log line per request. Conditional polls
// answered with 304 are the bulk of the traffic and log at debug.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if id := c.Param("id"); id != "" {
			args = append(args, "ticket_id", id)
		}
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if userID, exists := c.Get(constants.ContextKeyUserID); exists {
			args = append(args, "user_id", userID)
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Errorw("request failed", args...)
		case status >= http.StatusBadRequest:
			log.Warnw("request rejected", args...)
		case status == http.StatusNotModified:
			log.Debugw("poll not modified", args...)
		default:
			log.Debugw("request completed", append(args, "body_size", c.Writer.Size())...)
		}
	}
}
