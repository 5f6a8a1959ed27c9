package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

const slowRequestThreshold = 2 * time.Second

// LoggingMiddleware logs one line per request, at a level that follows the
// response status.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := ctxutil.GetStartTime(c.Request.Context())
		if start.IsZero() {
			start = time.Now()
		}
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		ctx := c.Request.Context()

		logger.LogRequest(c.Request.Method, path, status, latency.Milliseconds(), c.ClientIP(), c.Request.UserAgent())

		var entry *logger.Entry
		switch {
		case status >= http.StatusInternalServerError:
			entry = logger.ErrorWithContext(ctx, "Server error")
		case latency > slowRequestThreshold:
			entry = logger.WarnWithContext(ctx, "Slow request")
		case status >= http.StatusBadRequest:
			entry = logger.DebugWithContext(ctx, "Client error")
		default:
			return
		}

		entry.String("method", c.Request.Method).
			String("path", path).
			String("query", rawQuery).
			StatusCode(status).
			Int("response_size", c.Writer.Size()).
			Duration(latency)
		if len(c.Errors) > 0 {
			entry.String("errors", c.Errors.String())
		}
		entry.Log()
	}
}

// RecoveryMiddleware turns a panic into a logged 500.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogPanic(recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalError, nil))
	})
}
