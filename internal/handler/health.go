package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/pkg/health"
	"github.com/playea/beach-api/pkg/logger"
	"go.uber.org/zap"
)

type HealthHandler struct {
	monitor *health.Monitor
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Message   string `json:"message,omitempty"`
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// HealthCheck reports the latest dependency checks. It answers 503 only
// when a critical dependency is down.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.monitor.Overall() == health.StatusUnknown {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		h.monitor.CheckAll(ctx)
		cancel()
	}

	overall := h.monitor.Overall()
	response := HealthCheckResponse{
		Status:    overall.String(),
		Version:   constants.AppVersion,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]HealthCheck),
	}
	for _, result := range h.monitor.Results() {
		check := HealthCheck{
			Status:    result.Status.String(),
			LatencyMs: result.Latency.Milliseconds(),
		}
		if result.LastError != nil {
			check.Message = result.LastError.Error()
		}
		response.Checks[result.Name] = check
	}

	statusCode := http.StatusOK
	if overall == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}
