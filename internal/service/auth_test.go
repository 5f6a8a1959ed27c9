package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testMeta = dto.LoginMeta{ClientIP: "10.0.0.1", UserAgent: "go-test"}

type authFixture struct {
	svc      *AuthService
	users    *fakeUsers
	sessions *fakeSessions
	mailer   *recordingMailer
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUsers(),
		sessions: &fakeSessions{},
		mailer:   &recordingMailer{},
	}
	f.svc = NewAuthService(f.users, f.sessions, NewJWTService("test-secret", time.Minute), f.mailer, 7*24*time.Hour)
	return f
}

func registerAna(t *testing.T, f *authFixture) *dto.UserLoginResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Name:     " Ana Pérez ",
		Username: "anap",
		Email:    "Ana@Playea.EU",
		Password: "supersecret",
	}, testMeta)
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	resp := registerAna(t, f)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 60, resp.ExpiresIn)
	assert.Equal(t, "ana@playea.eu", resp.User.Email)
	assert.Equal(t, "Ana Pérez", resp.User.Name)
	assert.Equal(t, constants.RoleUser, resp.User.Role)

	assert.Equal(t, []string{"ana@playea.eu"}, f.mailer.sent)
	require.Len(t, f.sessions.sessions, 1)
	session := f.sessions.sessions[0]
	assert.Equal(t, model.SessionProviderPassword, session.Provider)
	assert.Equal(t, "10.0.0.1", session.Metadata["client_ip"])

	stored, err := f.users.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	require.True(t, stored.HasPassword())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("supersecret")))
	assert.NotNil(t, stored.LastLogin)
	assert.NotEmpty(t, stored.RefreshTokenHash)
}

func TestRegisterDuplicates(t *testing.T) {
	f := newAuthFixture()
	registerAna(t, f)

	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Other", Username: "other", Email: "ANA@playea.eu", Password: "supersecret",
	}, testMeta)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	_, err = f.svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Other", Username: "ANAP", Email: "other@playea.eu", Password: "supersecret",
	}, testMeta)
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	f := newAuthFixture()
	f.mailer.err = errors.New("smtp down")

	resp := registerAna(t, f)
	assert.NotZero(t, resp.User.ID)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	registerAna(t, f)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, dto.UserLoginRequest{Email: " ana@playea.eu", Password: "supersecret"}, testMeta)
	require.NoError(t, err)
	assert.Equal(t, "anap", resp.User.Username)
	assert.Len(t, f.sessions.sessions, 2)

	_, err = f.svc.Login(ctx, dto.UserLoginRequest{Email: "ana@playea.eu", Password: "wrong-password"}, testMeta)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, dto.UserLoginRequest{Email: "nobody@playea.eu", Password: "supersecret"}, testMeta)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsGoogleOnlyAndInactive(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	googleID := "g-1"
	require.NoError(t, f.users.Create(ctx, &model.User{
		Name: "G", Username: "guser", Email: "g@playea.eu", GoogleID: &googleID, IsActive: true, TokenVersion: 1,
	}))
	_, err := f.svc.Login(ctx, dto.UserLoginRequest{Email: "g@playea.eu", Password: "whatever1"}, testMeta)
	assert.ErrorIs(t, err, apperrors.ErrNoPasswordSet)

	resp := registerAna(t, f)
	require.NoError(t, f.users.mutate(resp.User.ID, func(u *model.User) { u.IsActive = false }))
	_, err = f.svc.Login(ctx, dto.UserLoginRequest{Email: "ana@playea.eu", Password: "supersecret"}, testMeta)
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}

func TestRefreshRotates(t *testing.T) {
	f := newAuthFixture()
	first := registerAna(t, f)
	ctx := context.Background()

	user, err := f.svc.Authenticate(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, user.ID)

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	_, err = f.svc.Authenticate(ctx, first.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = f.svc.Authenticate(ctx, second.Token)
	assert.NoError(t, err)
}

func TestRefreshRejects(t *testing.T) {
	f := newAuthFixture()
	resp := registerAna(t, f)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "999.abc"} {
		_, err := f.svc.Refresh(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken, token)
	}

	f.svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err := f.svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	stored, err := f.users.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshTokenHash)
}

func TestLogoutRevokesTokens(t *testing.T) {
	f := newAuthFixture()
	resp := registerAna(t, f)
	ctx := context.Background()

	require.NoError(t, f.svc.Logout(ctx, resp.User.ID))

	_, err := f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = f.svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	assert.ErrorIs(t, f.svc.Logout(ctx, 404), apperrors.ErrUserNotFound)
}

func TestAuthenticateInvalid(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	orphan, err := f.svc.jwt.GenerateToken(77, "x@y.z", constants.RoleUser, 1)
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
