package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/playea/beach-api/internal/constants"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

const maxRequestIDLength = 128

// RequestContext tags every request with a request ID, the caller's
// address and a start time. An incoming X-Request-ID is kept.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Header(constants.HeaderXRequestID, requestID)

		ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
		ctx = ctxutil.WithRequestInfo(ctx, c.ClientIP(), c.Request.UserAgent())
		ctx = context.WithValue(ctx, ctxutil.StartTimeKey, time.Now())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequestTimeout bounds the context every handler and query runs under.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		if err := ctx.Err(); err != nil {
			logger.WarnWithContext(ctx, "Request cancelled before processing").
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, constants.BuildErrorResponse(constants.MsgInternalError, nil))
			return
		}

		c.Next()
	}
}
