package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

type UserService interface {
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID uint, req dto.UpdateMeRequest) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, userID uint, req dto.UpdatePasswordRequest) error
	DeleteMe(ctx context.Context, userID uint) error
}

type UserHandler struct {
	userService UserService
	cookie      config.CookieConfig
}

func NewUserHandler(userService UserService, cookie config.CookieConfig) *UserHandler {
	return &UserHandler{userService: userService, cookie: cookie}
}

func (h *UserHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.Me(ctx, userID)
	if err != nil {
		respondError(c, ctx, "Failed to fetch profile", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, user))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateMe")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := body[dto.UpdateMeRequest](c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateMe(ctx, userID, *req)
	if err != nil {
		respondError(c, ctx, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, user))
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePassword")

	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := body[dto.UpdatePasswordRequest](c)
	if !ok {
		return
	}

	if err := h.userService.UpdatePassword(ctx, userID, *req); err != nil {
		respondError(c, ctx, "Failed to update password", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUpdated))
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteMe")

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteMe(ctx, userID); err != nil {
		respondError(c, ctx, "Failed to delete account", err)
		return
	}

	logger.InfoWithContext(ctx, "Account deleted by owner").
		Uint("user_id", userID).
		Log()

	if h.cookie.Name != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	}
	c.Status(http.StatusNoContent)
}
