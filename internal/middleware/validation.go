package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/validation"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{validate: validation.New()}
}

// ValidateRequestBody decodes the JSON body into factory() and validates it.
// The decoded pointer is stored under constants.GinKeyValidatedBody.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
		if err != nil || len(bodyBytes) > maxBodyBytes {
			logger.GetLogger().Warn("Middleware: Failed to read request body",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.GetLogger().Debug("Middleware: JSON unmarshaling failed",
				zap.String("path", c.Request.URL.Path),
				zap.Int("body_size", len(bodyBytes)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidJSON, nil))
			return
		}

		if err := m.validate.Struct(request); err != nil {
			details := validation.Messages(err)
			logger.GetLogger().Debug("Middleware: Request validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Strings("validation_errors", details),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgValidationFailed, details))
			return
		}

		c.Set(constants.GinKeyValidatedBody, request)
		c.Next()
	}
}

// Body returns the request validated by ValidateRequestBody.
func Body[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(constants.GinKeyValidatedBody)
	if !ok {
		return nil, false
	}
	req, ok := v.(*T)
	return req, ok
}
