package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	"github.com/playea/beach-api/internal/middleware"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

type ReviewService interface {
	Create(ctx context.Context, userID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByBeach(ctx context.Context, beachID uint, req dto.ListRequest) (*dto.ListResult[dto.ReviewResponse], error)
	Update(ctx context.Context, userID, reviewID uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, userID, reviewID uint, isAdmin bool) error
}

type ReviewHandler struct {
	reviewService ReviewService
	baseURL       string
}

func NewReviewHandler(reviewService ReviewService, baseURL string) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, baseURL: baseURL}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateReview")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := body[dto.CreateReviewRequest](c)
	if !ok {
		return
	}

	review, err := h.reviewService.Create(ctx, userID, *req)
	if err != nil {
		respondError(c, ctx, "Failed to create review", err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse(http.StatusCreated, review))
}

// ListByBeach handles GET /beaches/:slug/reviews. The segment must be the
// beach id.
func (h *ReviewHandler) ListByBeach(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListReviews")

	beachID, ok := paramID(c, "slug")
	if !ok {
		return
	}

	result, err := h.reviewService.ListByBeach(ctx, beachID, listRequest(c, h.baseURL))
	if err != nil {
		respondError(c, ctx, "Failed to list reviews", err)
		return
	}

	logger.DebugWithContext(ctx, "Reviews listed").
		Uint("beach_id", beachID).
		Int64("total", result.Pagination.TotalCount).
		Log()

	respondList(c, result)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateReview")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := paramID(c, "id")
	if !ok {
		return
	}
	req, ok := body[dto.UpdateReviewRequest](c)
	if !ok {
		return
	}

	review, err := h.reviewService.Update(ctx, userID, reviewID, *req)
	if err != nil {
		respondError(c, ctx, "Failed to update review", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteReview")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(ctx, userID, reviewID, middleware.IsAdmin(c)); err != nil {
		respondError(c, ctx, "Failed to delete review", err)
		return
	}

	c.Status(http.StatusNoContent)
}
