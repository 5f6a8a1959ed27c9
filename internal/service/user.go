package service

import (
	"context"
	"errors"
	"strings"

	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages the signed-in user's own account.
type UserService struct {
	repoUser UserStore
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{repoUser: repo}
}

func (s *UserService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Me")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateMe changes name, username, email and avatar. Only non-empty fields
// are written.
func (s *UserService) UpdateMe(ctx context.Context, userID uint, req dto.UpdateMeRequest) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateMe")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if req.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}

	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if err := checkUnique(ctx, s.repoUser, email, username, userID); err != nil {
		logger.InfoWithContext(ctx, "Profile update rejected").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, err
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if username != "" {
		updates["username"] = username
	}
	if email != "" {
		updates["email"] = email
	}
	if avatar := strings.TrimSpace(req.AvatarURL); avatar != "" {
		updates["avatar_url"] = avatar
	}

	if err := s.repoUser.UpdateProfile(ctx, userID, updates); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrEmailExists
		default:
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("user_id", userID).
		Int("fields", len(updates)).
		Log()

	return s.Me(ctx, userID)
}

// UpdatePassword changes the password and revokes existing tokens. Accounts
// created through Google may set a first password without a current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, req dto.UpdatePasswordRequest) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdatePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.get(ctx, userID)
	if err != nil {
		return err
	}

	if user.HasPassword() {
		if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			logger.WarnWithContext(ctx, "Password change with wrong current password").
				Uint("user_id", userID).
				Log()
			return apperrors.ErrIncorrectPassword
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := s.repoUser.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := s.repoUser.UpdateTokenVersion(ctx, userID, user.TokenVersion+1); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := s.repoUser.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		logger.WarnWithContext(ctx, "Failed to clear refresh token after password change").
			Uint("user_id", userID).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "Password updated").
		Uint("user_id", userID).
		Log()
	return nil
}

// DeleteMe removes the account with its favourites and sessions.
func (s *UserService) DeleteMe(ctx context.Context, userID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteMe")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.repoUser.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Account deleted").
		Uint("user_id", userID).
		Log()
	return nil
}

func (s *UserService) get(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get user").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return user, nil
}
