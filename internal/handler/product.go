package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
)

type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	RefreshCache(ctx context.Context) error
}

type ProductHandler struct {
	productService ProductService
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListProducts")

	products, err := h.productService.List(ctx)
	if err != nil {
		respondError(c, ctx, "Failed to list products", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, products))
}

// RefreshCache handles POST /products/refresh (admin only).
func (h *ProductHandler) RefreshCache(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshProductCache")

	if err := h.productService.RefreshCache(ctx); err != nil {
		respondError(c, ctx, "Failed to refresh product cache", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUpdated))
}
