package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/circuit"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"gorm.io/gorm"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// GoogleOAuthService implements "Sign in with Google". Calls to Google go
// through one circuit breaker.
type GoogleOAuthService struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	breaker     *circuit.Breaker
	users       UserStore
	auth        *AuthService
}

func NewGoogleOAuthService(cfg config.GoogleConfig, users UserStore, auth *AuthService) *GoogleOAuthService {
	return &GoogleOAuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       googleScopes,
			Endpoint:     endpoints.Google,
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		breaker:     circuit.NewBreaker("google-oauth", circuit.DefaultConfig(), logger.GetLogger()),
		users:       users,
		auth:        auth,
	}
}

// NewState returns a random value for the OAuth state parameter.
func (s *GoogleOAuthService) NewState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// AuthCodeURL is where the browser is sent to give consent.
func (s *GoogleOAuthService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Login exchanges the authorization code, reads the Google profile and
// signs in the matching user, creating it on first login.
func (s *GoogleOAuthService) Login(ctx context.Context, code string, meta dto.LoginMeta) (*dto.UserLoginResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GoogleLogin")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if strings.TrimSpace(code) == "" {
		return nil, apperrors.ErrInvalidInput
	}

	start := time.Now()
	profile, err := s.fetchProfile(ctx, code)
	if err != nil {
		logger.ErrorWithContext(ctx, "Google sign-in failed").
			Duration(time.Since(start)).
			Err(err).
			Log()
		if errors.Is(err, circuit.ErrCircuitOpen) || errors.Is(err, circuit.ErrTooManyRequests) {
			return nil, apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrOAuthExchange, err)
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, apperrors.WrapError(apperrors.ErrOAuthExchange, errors.New("google profile without id or email"))
	}

	user, err := s.findOrCreate(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		logger.LogAuth(user.ID, "google_login", false)
		return nil, apperrors.ErrUserInactive
	}

	logger.LogAuth(user.ID, "google_login", true)
	return s.auth.StartSession(ctx, user, model.SessionProviderGoogle, meta)
}

func (s *GoogleOAuthService) fetchProfile(ctx context.Context, code string) (*dto.GoogleUser, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	var profile dto.GoogleUser
	err := s.breaker.Execute(func() error {
		token, err := s.oauth.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("exchange code: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
		if err != nil {
			return err
		}
		resp, err := s.oauth.Client(ctx, token).Do(req)
		if err != nil {
			return fmt.Errorf("fetch userinfo: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return json.NewDecoder(resp.Body).Decode(&profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// findOrCreate matches on Google ID first, then links an existing account
// with the same email, then creates a new account. Linking and creating
// both require an email address Google has verified.
func (s *GoogleOAuthService) findOrCreate(ctx context.Context, profile *dto.GoogleUser) (*model.User, error) {
	user, err := s.users.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	email := normalizeEmail(profile.Email)
	if !profile.VerifiedEmail {
		logger.WarnWithContext(ctx, "Google profile email not verified").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailNotVerified
	}
	user, err = s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.UpdateProfile(ctx, user.ID, map[string]interface{}{"google_id": profile.ID}); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		user.GoogleID = &profile.ID
		logger.InfoWithContext(ctx, "Google account linked").
			Uint("user_id", user.ID).
			Log()
		return user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	username, err := s.uniqueUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	googleID := profile.ID
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = username
	}
	user = &model.User{
		Name:         name,
		Username:     username,
		Email:        email,
		GoogleID:     &googleID,
		AvatarURL:    profile.Picture,
		Role:         constants.RoleUser,
		IsActive:     true,
		TokenVersion: 1,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User created from Google profile").
		Uint("user_id", user.ID).
		String("username", username).
		Log()
	return user, nil
}

// uniqueUsername derives a username from the local part of email and adds
// a numeric suffix until it is free.
func (s *GoogleOAuthService) uniqueUsername(ctx context.Context, email string) (string, error) {
	local, _, _ := strings.Cut(email, "@")
	base := usernameBase(local)

	for i := 0; i < 20; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		taken, err := s.users.ExistsByField(ctx, "username", candidate, 0)
		if err != nil {
			return "", apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return base + hex.EncodeToString(suffix), nil
}

// usernameBase keeps letters and digits, lowercased and bounded in length.
func usernameBase(local string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) < constants.MinUsernameLength {
		base = "user" + base
	}
	if len(base) > constants.MaxUsernameLength-6 {
		base = base[:constants.MaxUsernameLength-6]
	}
	return base
}
