package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T, profile dto.GoogleUser, userInfoStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"google-access","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer google-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(userInfoStatus)
		_ = json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGoogleFixture(t *testing.T, profile dto.GoogleUser, status int) (*GoogleOAuthService, *authFixture) {
	t.Helper()
	f := newAuthFixture()
	srv := fakeGoogle(t, profile, status)

	svc := NewGoogleOAuthService(config.GoogleConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://api.test/api/v1/auth/google/callback",
		UserInfoURL:  srv.URL + "/userinfo",
	}, f.users, f.svc)
	svc.oauth.Endpoint.TokenURL = srv.URL + "/token"
	svc.oauth.Endpoint.AuthURL = srv.URL + "/auth"
	svc.httpClient = &http.Client{Timeout: 5 * time.Second}
	return svc, f
}

var anaProfile = dto.GoogleUser{
	ID:            "g-123",
	Email:         "Ana.Perez@gmail.com",
	VerifiedEmail: true,
	Name:          "Ana Pérez",
	Picture:       "https://lh3.googleusercontent.com/a.png",
}

func TestGoogleLoginCreatesUser(t *testing.T) {
	svc, f := newGoogleFixture(t, anaProfile, http.StatusOK)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "good-code", testMeta)
	require.NoError(t, err)
	assert.Equal(t, "ana.perez@gmail.com", resp.User.Email)
	assert.Equal(t, "anaperez", resp.User.Username)
	assert.Equal(t, anaProfile.Picture, resp.User.AvatarURL)

	stored, err := f.users.GetByGoogleID(ctx, "g-123")
	require.NoError(t, err)
	assert.False(t, stored.HasPassword())

	require.Len(t, f.sessions.sessions, 1)
	assert.Equal(t, model.SessionProviderGoogle, f.sessions.sessions[0].Provider)

	again, err := svc.Login(ctx, "good-code", testMeta)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
}

func TestGoogleLoginLinksExistingEmail(t *testing.T) {
	profile := anaProfile
	profile.Email = "ana@playea.eu"
	svc, f := newGoogleFixture(t, profile, http.StatusOK)
	registered := registerAna(t, f)

	resp, err := svc.Login(context.Background(), "good-code", testMeta)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	stored, err := f.users.GetByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "g-123", *stored.GoogleID)
	assert.True(t, stored.HasPassword())
}

func TestGoogleLoginUnverifiedEmail(t *testing.T) {
	t.Run("does not link an existing account", func(t *testing.T) {
		profile := anaProfile
		profile.Email = "ana@playea.eu"
		profile.VerifiedEmail = false
		svc, f := newGoogleFixture(t, profile, http.StatusOK)
		registered := registerAna(t, f)

		_, err := svc.Login(context.Background(), "good-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

		stored, err := f.users.GetByID(context.Background(), registered.User.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.GoogleID)
		assert.Len(t, f.sessions.sessions, 1)
	})

	t.Run("does not create an account", func(t *testing.T) {
		profile := anaProfile
		profile.VerifiedEmail = false
		svc, f := newGoogleFixture(t, profile, http.StatusOK)

		_, err := svc.Login(context.Background(), "good-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

		_, err = f.users.GetByGoogleID(context.Background(), "g-123")
		assert.Error(t, err)
		assert.Empty(t, f.sessions.sessions)
	})
}

func TestGoogleLoginUsernameCollision(t *testing.T) {
	profile := anaProfile
	profile.Email = "anap@gmail.com"
	svc, f := newGoogleFixture(t, profile, http.StatusOK)
	registerAna(t, f)

	resp, err := svc.Login(context.Background(), "good-code", testMeta)
	require.NoError(t, err)
	assert.Equal(t, "anap1", resp.User.Username)
}

func TestGoogleLoginFailures(t *testing.T) {
	t.Run("empty code", func(t *testing.T) {
		svc, _ := newGoogleFixture(t, anaProfile, http.StatusOK)
		_, err := svc.Login(context.Background(), "  ", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejected code", func(t *testing.T) {
		svc, _ := newGoogleFixture(t, anaProfile, http.StatusOK)
		_, err := svc.Login(context.Background(), "bad-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrOAuthExchange)
	})

	t.Run("userinfo error", func(t *testing.T) {
		svc, _ := newGoogleFixture(t, anaProfile, http.StatusInternalServerError)
		_, err := svc.Login(context.Background(), "good-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrOAuthExchange)
	})

	t.Run("breaker open", func(t *testing.T) {
		svc, _ := newGoogleFixture(t, anaProfile, http.StatusOK)
		svc.breaker = circuit.NewBreaker("google-test", circuit.Config{Threshold: 1, Timeout: time.Minute, MaxHalfOpen: 1}, nil)

		_, err := svc.Login(context.Background(), "bad-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrOAuthExchange)

		_, err = svc.Login(context.Background(), "good-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	})

	t.Run("profile without email", func(t *testing.T) {
		profile := anaProfile
		profile.Email = ""
		svc, _ := newGoogleFixture(t, profile, http.StatusOK)
		_, err := svc.Login(context.Background(), "good-code", testMeta)
		assert.ErrorIs(t, err, apperrors.ErrOAuthExchange)
	})
}

func TestGoogleAuthCodeURL(t *testing.T) {
	svc, _ := newGoogleFixture(t, anaProfile, http.StatusOK)

	state, err := svc.NewState()
	require.NoError(t, err)
	assert.Len(t, state, 32)

	u := svc.AuthCodeURL(state)
	assert.Contains(t, u, "state="+state)
	assert.Contains(t, u, "client_id=client")
	assert.True(t, strings.Contains(u, "userinfo.email"))
}

func TestUsernameBase(t *testing.T) {
	tests := map[string]string{
		"ana.perez":   "anaperez",
		"A-B":         "userab",
		"josé":        "jos",
		"":            "user",
		"abcdefghijklmnopqrstuvwxyz0123456789": "abcdefghijklmnopqrstuvwx",
	}
	for in, want := range tests {
		assert.Equal(t, want, usernameBase(in), in)
	}
}
