package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
)

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type JWTMiddleware struct {
	auth       Authenticator
	cookieName string
}

func NewJWTMiddleware(auth Authenticator, cookieName string) *JWTMiddleware {
	return &JWTMiddleware{auth: auth, cookieName: cookieName}
}

// RequireAuth accepts a Bearer token or the token cookie and rejects the
// request otherwise.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.tokenFrom(c)
		if token == "" {
			logger.WarnWithContext(c.Request.Context(), "Missing access token").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Log()
			c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.WarnWithContext(c.Request.Context(), "Access token rejected").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Err(err).
				Log()
			c.AbortWithStatusJSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
			return
		}

		m.setUser(c, user)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and carries on
// anonymously otherwise.
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := m.tokenFrom(c); token != "" {
			if user, err := m.auth.Authenticate(c.Request.Context(), token); err == nil {
				m.setUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(constants.GinKeyRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, constants.BuildErrorResponse(constants.MsgForbidden, nil))
			return
		}
		c.Next()
	}
}

// UserID is the authenticated user's id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.GinKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(constants.GinKeyRole) == constants.RoleAdmin
}

func (m *JWTMiddleware) tokenFrom(c *gin.Context) string {
	if header := c.GetHeader(constants.HeaderAuthorization); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if m.cookieName != "" {
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			return cookie
		}
	}
	return ""
}

func (m *JWTMiddleware) setUser(c *gin.Context, user *model.User) {
	c.Set(constants.GinKeyUserID, user.ID)
	c.Set(constants.GinKeyRole, user.Role)
	c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), user.ID))
}
