package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	ctxutil "github.com/playea/beach-api/pkg/context"
)

type FavouriteService interface {
	Add(ctx context.Context, userID, beachID uint) error
	Remove(ctx context.Context, userID, beachID uint) error
	List(ctx context.Context, userID uint, req dto.ListRequest) (*dto.ListResult[dto.FavouriteResponse], error)
}

type FavouriteHandler struct {
	favouriteService FavouriteService
	baseURL          string
}

func NewFavouriteHandler(favouriteService FavouriteService, baseURL string) *FavouriteHandler {
	return &FavouriteHandler{favouriteService: favouriteService, baseURL: baseURL}
}

func (h *FavouriteHandler) Add(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddFavourite")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	beachID, ok := paramID(c, "beachId")
	if !ok {
		return
	}

	if err := h.favouriteService.Add(ctx, userID, beachID); err != nil {
		respondError(c, ctx, "Failed to add favourite", err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(constants.MsgCreated))
}

func (h *FavouriteHandler) Remove(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RemoveFavourite")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	beachID, ok := paramID(c, "beachId")
	if !ok {
		return
	}

	if err := h.favouriteService.Remove(ctx, userID, beachID); err != nil {
		respondError(c, ctx, "Failed to remove favourite", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FavouriteHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListFavourites")

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.favouriteService.List(ctx, userID, listRequest(c, h.baseURL))
	if err != nil {
		respondError(c, ctx, "Failed to list favourites", err)
		return
	}

	respondList(c, result)
}
