package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest, meta dto.LoginMeta) (*dto.UserLoginResponse, error)
	Login(ctx context.Context, req dto.UserLoginRequest, meta dto.LoginMeta) (*dto.UserLoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.UserLoginResponse, error)
	Logout(ctx context.Context, userID uint) error
}

type GoogleAuthService interface {
	NewState() (string, error)
	AuthCodeURL(state string) string
	Login(ctx context.Context, code string, meta dto.LoginMeta) (*dto.UserLoginResponse, error)
}

type AuthHandler struct {
	authService   AuthService
	googleService GoogleAuthService
	cookie        config.CookieConfig
	clientURL     string
}

func NewAuthHandler(authService AuthService, googleService GoogleAuthService, cookie config.CookieConfig, clientURL string) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		googleService: googleService,
		cookie:        cookie,
		clientURL:     strings.TrimRight(clientURL, "/"),
	}
}

// Register handles password sign-up.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	req, ok := body[dto.RegisterRequest](c)
	if !ok {
		return
	}

	response, err := h.authService.Register(ctx, *req, loginMeta(c))
	if err != nil {
		respondError(c, ctx, "Registration failed", err)
		return
	}

	logger.InfoWithContext(ctx, "User registered").
		Uint("user_id", response.User.ID).
		Log()

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusCreated, constants.BuildDataResponse(http.StatusCreated, response))
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	req, ok := body[dto.UserLoginRequest](c)
	if !ok {
		return
	}

	response, err := h.authService.Login(ctx, *req, loginMeta(c))
	if err != nil {
		respondError(c, ctx, "Login failed", err)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, response))
}

// RefreshToken rotates the refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshToken")

	req, ok := body[dto.RefreshTokenRequest](c)
	if !ok {
		return
	}

	response, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(c, ctx, "Token refresh failed", err)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, response))
}

// Logout revokes every token of the caller and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(ctx, userID); err != nil {
		respondError(c, ctx, "Logout failed", err)
		return
	}

	h.clearCookie(c, h.cookie.Name)
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedOut))
}

// GoogleRedirect sends the browser to Google's consent screen. The state
// travels in a short-lived cookie and is checked on the callback.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GoogleRedirect")

	state, err := h.googleService.NewState()
	if err != nil {
		respondError(c, ctx, "Failed to create oauth state", apperrors.WrapError(apperrors.ErrInternal, err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.OAuthStateCookie, state, constants.OAuthStateMaxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.Redirect(http.StatusFound, h.googleService.AuthCodeURL(state))
}

// GoogleCallback completes Google sign-in, sets the token cookie and sends
// the browser back to the client. Failures go back to the client with an
// error code in the query.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GoogleCallback")

	expected, _ := c.Cookie(constants.OAuthStateCookie)
	h.clearCookie(c, constants.OAuthStateCookie)

	if c.Query("error") != "" {
		logger.InfoWithContext(ctx, "Google consent declined").
			String("error", c.Query("error")).
			Log()
		h.redirectToClient(c, "google_denied")
		return
	}

	if expected == "" || c.Query("state") != expected {
		logger.WarnWithContext(ctx, "OAuth state mismatch").Log()
		h.redirectToClient(c, strings.ToLower(apperrors.ErrInvalidOAuthState.Code))
		return
	}

	response, err := h.googleService.Login(ctx, c.Query("code"), loginMeta(c))
	if err != nil {
		code := "internal_error"
		if de := apperrors.GetDomainError(err); de != nil {
			code = strings.ToLower(de.Code)
		}
		logger.WarnWithContext(ctx, "Google sign-in failed").
			Err(err).
			Log()
		h.redirectToClient(c, code)
		return
	}

	h.setTokenCookie(c, response.Token)
	c.Redirect(http.StatusFound, h.clientURL)
}

func (h *AuthHandler) redirectToClient(c *gin.Context, errorCode string) {
	c.Redirect(http.StatusFound, h.clientURL+"/login?"+url.Values{"error": {errorCode}}.Encode())
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	if name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}
