package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuthService issues and revokes credentials for both sign-in methods.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	jwt        *JWTService
	mailer     WelcomeMailer
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(users UserStore, sessions SessionStore, jwt *JWTService, mailer WelcomeMailer, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwt:        jwt,
		mailer:     mailer,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Register creates a password account and signs it in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, meta dto.LoginMeta) (*dto.UserLoginResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Register")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	if err := checkUnique(ctx, s.users, email, username, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").Err(err).Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	hash := string(hashed)

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		Email:        email,
		PasswordHash: &hash,
		Role:         constants.RoleUser,
		IsActive:     true,
		TokenVersion: 1,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, user.Email, user.Name, user.Username); err != nil {
			logger.WarnWithContext(ctx, "Welcome mail not sent").
				Uint("user_id", user.ID).
				Err(err).
				Log()
		}
	}

	return s.StartSession(ctx, user, model.SessionProviderPassword, meta)
}

// Login checks email and password.
func (s *AuthService) Login(ctx context.Context, req dto.UserLoginRequest, meta dto.LoginMeta) (*dto.UserLoginResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Login")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.LogAuth(0, "login", false, zap.String("reason", "unknown email"))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !user.IsActive {
		logger.LogAuth(user.ID, "login", false, zap.String("reason", "inactive"))
		return nil, apperrors.ErrUserInactive
	}
	if !user.HasPassword() {
		logger.LogAuth(user.ID, "login", false, zap.String("reason", "no password"))
		return nil, apperrors.ErrNoPasswordSet
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		logger.LogAuth(user.ID, "login", false, zap.String("reason", "wrong password"))
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.LogAuth(user.ID, "login", true, zap.String("provider", model.SessionProviderPassword))
	return s.StartSession(ctx, user, model.SessionProviderPassword, meta)
}

// StartSession issues an access and a refresh token for user and records
// the login.
func (s *AuthService) StartSession(ctx context.Context, user *model.User, provider string, meta dto.LoginMeta) (*dto.UserLoginResponse, error) {
	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.WarnWithContext(ctx, "Failed to update last login timestamp").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	}

	session := &model.Session{
		UserID:   user.ID,
		Provider: provider,
		LoginAt:  s.now().UTC(),
		Metadata: datatypes.JSONMap{
			"client_ip":  meta.ClientIP,
			"user_agent": meta.UserAgent,
		},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		logger.WarnWithContext(ctx, "Failed to record session").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "User signed in").
		Uint("user_id", user.ID).
		String("provider", provider).
		Log()

	return resp, nil
}

// Refresh rotates a refresh token. The presented token stops working and
// every access token issued before is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.UserLoginResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Refresh")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	userID, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.jwt.VerifyRefreshToken(refreshToken, user.RefreshTokenHash) {
		logger.WarnWithContext(ctx, "Refresh token does not match").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if user.RefreshTokenExpires != nil && user.RefreshTokenExpires.Before(s.now()) {
		logger.WarnWithContext(ctx, "Refresh token expired").
			Uint("user_id", user.ID).
			Log()
		_ = s.users.UpdateRefreshToken(ctx, user.ID, "", nil)
		return nil, apperrors.ErrTokenExpired
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	user.TokenVersion++
	if err := s.users.UpdateTokenVersion(ctx, user.ID, user.TokenVersion); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Token refreshed").
		Uint("user_id", user.ID).
		Int("token_version", user.TokenVersion).
		Log()

	return resp, nil
}

// Logout revokes every token of the user.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Logout")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdateTokenVersion(ctx, userID, user.TokenVersion+1); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		logger.WarnWithContext(ctx, "Failed to clear refresh token on logout").
			Uint("user_id", userID).
			Err(err).
			Log()
	}

	logger.LogAuth(userID, "logout", true)
	return nil
}

// Authenticate resolves a verified access token to an active user whose
// token version still matches.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.UserLoginResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate access token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	refreshHash, err := s.jwt.HashRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expires := s.now().Add(s.refreshTTL).UTC()
	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshHash, &expires); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	user.RefreshTokenHash = refreshHash
	user.RefreshTokenExpires = &expires

	return &dto.UserLoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwt.TTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// checkUnique rejects an email or username already used by another user.
// Empty values are not checked.
func checkUnique(ctx context.Context, users UserStore, email, username string, excludeID uint) error {
	if email != "" {
		taken, err := users.ExistsByField(ctx, "email", email, excludeID)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if taken {
			return apperrors.ErrEmailExists
		}
	}
	if username != "" {
		taken, err := users.ExistsByField(ctx, "username", username, excludeID)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if taken {
			return apperrors.ErrUsernameExists
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
