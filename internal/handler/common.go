package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/middleware"
	"github.com/playea/beach-api/pkg/logger"
)

// respondError logs err and writes the mapped status with a client-safe
// message.
func respondError(c *gin.Context, ctx context.Context, msg string, err error) {
	status := apperrors.ToHTTPStatus(err)
	entry := logger.WarnWithContext(ctx, msg)
	if status >= http.StatusInternalServerError {
		entry = logger.ErrorWithContext(ctx, msg)
	}
	entry.StatusCode(status).Err(err).Log()

	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

func respondList[T any](c *gin.Context, result *dto.ListResult[T]) {
	c.JSON(http.StatusOK, constants.BuildListResponse(http.StatusOK, result.Data, result.Pagination))
}

// listRequest carries the query string and the absolute URL of this
// endpoint, which nextPage links are built from.
func listRequest(c *gin.Context, baseURL string) dto.ListRequest {
	return dto.ListRequest{
		Query:   c.Request.URL.Query(),
		BaseURL: requestOrigin(c, baseURL) + c.Request.URL.Path,
	}
}

// requestOrigin is the configured public URL, or scheme and host of the
// request when none is configured.
func requestOrigin(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	// Only the two web schemes are taken from the proxy header.
	proto, _, _ := strings.Cut(c.GetHeader(constants.HeaderXForwardedProto), ",")
	switch proto = strings.ToLower(strings.TrimSpace(proto)); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("invalid "+name, nil))
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	}
	return id, ok
}

func body[T any](c *gin.Context) (*T, bool) {
	req, ok := middleware.Body[T](c)
	if !ok {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
	}
	return req, ok
}

func loginMeta(c *gin.Context) dto.LoginMeta {
	return dto.LoginMeta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
