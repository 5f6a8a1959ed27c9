package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/validation"
)

type BeachService interface {
	List(ctx context.Context, req dto.ListRequest) (*dto.ListResult[model.Beach], error)
	Search(ctx context.Context, q string, req dto.ListRequest) (*dto.ListResult[model.Beach], error)
	Get(ctx context.Context, idOrSlug string) (*model.Beach, error)
}

type BeachHandler struct {
	beachService BeachService
	baseURL      string
}

func NewBeachHandler(beachService BeachService, baseURL string) *BeachHandler {
	return &BeachHandler{beachService: beachService, baseURL: baseURL}
}

// List handles GET /beaches.
func (h *BeachHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListBeaches")

	result, err := h.beachService.List(ctx, listRequest(c, h.baseURL))
	if err != nil {
		respondError(c, ctx, "Failed to list beaches", err)
		return
	}

	logger.DebugWithContext(ctx, "Beaches listed").
		Int("page", result.Pagination.CurrentPage).
		Int64("total", result.Pagination.TotalCount).
		Int("returned_count", len(result.Data)).
		Log()

	respondList(c, result)
}

// Search handles GET /beaches/search?q=.
func (h *BeachHandler) Search(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SearchBeaches")

	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgValidationFailed, validation.Messages(err)))
		return
	}

	result, err := h.beachService.Search(ctx, q.Q, listRequest(c, h.baseURL))
	if err != nil {
		respondError(c, ctx, "Failed to search beaches", err)
		return
	}

	logger.DebugWithContext(ctx, "Beaches searched").
		String("q", q.Q).
		Int64("total", result.Pagination.TotalCount).
		Log()

	respondList(c, result)
}

// Get handles GET /beaches/:slug; a numeric slug is read as the id.
func (h *BeachHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetBeach")

	slug := strings.TrimSpace(c.Param("slug"))
	beach, err := h.beachService.Get(ctx, slug)
	if err != nil {
		respondError(c, ctx, "Failed to get beach", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, beach))
}
