package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/middleware"
	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/health"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.ReplaceLogger(zap.NewNop())
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// asUser stands in for the auth middleware.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.GinKeyUserID, id)
		c.Set(constants.GinKeyRole, role)
		c.Next()
	}
}

func validated(factory func() interface{}) gin.HandlerFunc {
	return middleware.NewValidationMiddleware().ValidateRequestBody(factory)
}

type stubBeaches struct {
	lastReq dto.ListRequest
	lastQ   string
	err     error
}

func (s *stubBeaches) List(_ context.Context, req dto.ListRequest) (*dto.ListResult[model.Beach], error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	next := req.BaseURL + "?page=2"
	return &dto.ListResult[model.Beach]{
		Data:       []model.Beach{{ID: 1, Name: "Las Teresitas", Slug: "las-teresitas"}},
		Pagination: query.Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 11, NextPage: &next, Limit: 10},
	}, nil
}

func (s *stubBeaches) Search(_ context.Context, q string, req dto.ListRequest) (*dto.ListResult[model.Beach], error) {
	s.lastQ = q
	s.lastReq = req
	return &dto.ListResult[model.Beach]{Data: []model.Beach{}, Pagination: query.Pagination{CurrentPage: 1, Limit: 10}}, nil
}

func (s *stubBeaches) Get(_ context.Context, idOrSlug string) (*model.Beach, error) {
	if idOrSlug == "las-teresitas" {
		return &model.Beach{ID: 1, Name: "Las Teresitas", Slug: idOrSlug}, nil
	}
	return nil, apperrors.ErrBeachNotFound
}

func TestBeachHandlerList(t *testing.T) {
	svc := &stubBeaches{}
	h := NewBeachHandler(svc, "")
	r := gin.New()
	r.GET("/api/v1/beaches", h.List)

	w := perform(r, http.MethodGet, "/api/v1/beaches?island=tenerife&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "http://example.com/api/v1/beaches", svc.lastReq.BaseURL)
	assert.Equal(t, "tenerife", svc.lastReq.Query.Get("island"))

	body := decode(t, w)
	assert.Equal(t, float64(200), body["status"])
	assert.Len(t, body["data"], 1)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(11), pagination["totalCount"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, "http://example.com/api/v1/beaches?page=2", pagination["nextPage"])
}

func TestRequestOriginForwardedProto(t *testing.T) {
	svc := &stubBeaches{}
	h := NewBeachHandler(svc, "")
	r := gin.New()
	r.GET("/api/v1/beaches", h.List)

	tests := []struct {
		proto string
		want  string
	}{
		{"https", "https://example.com/api/v1/beaches"},
		{"HTTPS, http", "https://example.com/api/v1/beaches"},
		{"http", "http://example.com/api/v1/beaches"},
		{"javascript", "http://example.com/api/v1/beaches"},
		{"https://evil.example/x?", "http://example.com/api/v1/beaches"},
	}

	for _, tt := range tests {
		t.Run(tt.proto, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches", nil)
			req.Header.Set(constants.HeaderXForwardedProto, tt.proto)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, svc.lastReq.BaseURL)
		})
	}
}

func TestBeachHandlerConfiguredBaseURL(t *testing.T) {
	svc := &stubBeaches{}
	h := NewBeachHandler(svc, "https://api.playea.eu/")
	r := gin.New()
	r.GET("/api/v1/beaches/search", h.Search)

	w := perform(r, http.MethodGet, "/api/v1/beaches/search?q=playa", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "playa", svc.lastQ)
	assert.Equal(t, "https://api.playea.eu/api/v1/beaches/search", svc.lastReq.BaseURL)
	assert.Equal(t, []any{}, decode(t, w)["data"])

	w = perform(r, http.MethodGet, "/api/v1/beaches/search?q="+strings.Repeat("a", 101), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBeachHandlerErrors(t *testing.T) {
	svc := &stubBeaches{err: apperrors.WrapError(apperrors.ErrInternal, errors.New("pq: connection refused"))}
	h := NewBeachHandler(svc, "")
	r := gin.New()
	r.GET("/beaches", h.List)
	r.GET("/beaches/:slug", h.Get)

	w := perform(r, http.MethodGet, "/beaches", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.ErrInternal.Message, decode(t, w)["message"])
	assert.NotContains(t, w.Body.String(), "pq:")

	w = perform(r, http.MethodGet, "/beaches/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/beaches/las-teresitas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "las-teresitas", decode(t, w)["data"].(map[string]any)["slug"])
}

type stubReviews struct {
	created  dto.CreateReviewRequest
	deleteBy struct {
		user    uint
		isAdmin bool
	}
}

func (s *stubReviews) Create(_ context.Context, userID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	s.created = req
	return &dto.ReviewResponse{ID: 1, BeachID: req.BeachID, Rating: req.Rating}, nil
}

func (s *stubReviews) ListByBeach(_ context.Context, beachID uint, _ dto.ListRequest) (*dto.ListResult[dto.ReviewResponse], error) {
	if beachID != 3 {
		return nil, apperrors.ErrBeachNotFound
	}
	return &dto.ListResult[dto.ReviewResponse]{Data: []dto.ReviewResponse{}}, nil
}

func (s *stubReviews) Update(_ context.Context, userID, reviewID uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if userID != 7 {
		return nil, apperrors.ErrReviewForbidden
	}
	return &dto.ReviewResponse{ID: reviewID, Rating: req.Rating}, nil
}

func (s *stubReviews) Delete(_ context.Context, userID, _ uint, isAdmin bool) error {
	s.deleteBy.user = userID
	s.deleteBy.isAdmin = isAdmin
	return nil
}

func TestReviewHandler(t *testing.T) {
	svc := &stubReviews{}
	h := NewReviewHandler(svc, "")

	r := gin.New()
	r.GET("/beaches/:slug/reviews", h.ListByBeach)
	r.POST("/reviews", h.Create)
	user := r.Group("/u", asUser(7, constants.RoleUser))
	user.POST("/reviews", validated(func() interface{} { return &dto.CreateReviewRequest{} }), h.Create)
	user.PUT("/reviews/:id", validated(func() interface{} { return &dto.UpdateReviewRequest{} }), h.Update)
	admin := r.Group("/a", asUser(1, constants.RoleAdmin))
	admin.DELETE("/reviews/:id", h.Delete)
	admin.PUT("/reviews/:id", validated(func() interface{} { return &dto.UpdateReviewRequest{} }), h.Update)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/beaches/3/reviews", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/beaches/4/reviews", "").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/beaches/las-teresitas/reviews", "").Code)

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/reviews", `{"beachId":3,"rating":4}`).Code)

	w := perform(r, http.MethodPost, "/u/reviews", `{"beachId":3,"rating":4,"comment":"nice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "nice", svc.created.Comment)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/u/reviews", `{"beachId":3,"rating":0}`).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodPut, "/u/reviews/5", `{"rating":2}`).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodPut, "/a/reviews/5", `{"rating":2}`).Code)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/a/reviews/5", "").Code)
	assert.True(t, svc.deleteBy.isAdmin)
	assert.Equal(t, uint(1), svc.deleteBy.user)
}

type stubFavourites struct{ added map[uint]bool }

func (s *stubFavourites) Add(_ context.Context, _, beachID uint) error {
	if s.added[beachID] {
		return apperrors.ErrFavouriteExists
	}
	s.added[beachID] = true
	return nil
}

func (s *stubFavourites) Remove(_ context.Context, _, beachID uint) error {
	if !s.added[beachID] {
		return apperrors.ErrFavouriteNotFound
	}
	delete(s.added, beachID)
	return nil
}

func (s *stubFavourites) List(context.Context, uint, dto.ListRequest) (*dto.ListResult[dto.FavouriteResponse], error) {
	return &dto.ListResult[dto.FavouriteResponse]{Data: []dto.FavouriteResponse{}}, nil
}

func TestFavouriteHandler(t *testing.T) {
	h := NewFavouriteHandler(&stubFavourites{added: map[uint]bool{}}, "")
	r := gin.New()
	g := r.Group("/favourites", asUser(7, constants.RoleUser))
	g.GET("", h.List)
	g.POST("/:beachId", h.Add)
	g.DELETE("/:beachId", h.Remove)

	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/favourites/3", "").Code)
	assert.Equal(t, http.StatusConflict, perform(r, http.MethodPost, "/favourites/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/favourites/zero", "").Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/favourites", "").Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/favourites/3", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/favourites/3", "").Code)
}

type stubRanking struct{ island string }

func (s *stubRanking) List(_ context.Context, island string, _ dto.ListRequest) (*dto.ListResult[model.BeachGrade], error) {
	s.island = island
	return &dto.ListResult[model.BeachGrade]{Data: []model.BeachGrade{}}, nil
}

func TestRankingHandler(t *testing.T) {
	svc := &stubRanking{}
	h := NewRankingHandler(svc, "")
	r := gin.New()
	r.GET("/ranking", h.List)
	r.GET("/ranking/:island", h.List)

	require.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ranking", "").Code)
	assert.Empty(t, svc.island)

	require.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ranking/Gran%20Canaria", "").Code)
	assert.Equal(t, "Gran Canaria", svc.island)
}

type stubProducts struct{ err error }

func (s stubProducts) List(context.Context) ([]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.Product{{ID: 1, Name: "Towel"}}, nil
}

func (s stubProducts) RefreshCache(context.Context) error { return s.err }

func TestProductHandler(t *testing.T) {
	r := gin.New()
	r.GET("/products", NewProductHandler(stubProducts{}).List)
	r.GET("/empty", NewProductHandler(stubProducts{err: apperrors.ErrNoProducts}).List)

	w := perform(r, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/empty", "").Code)

	r.POST("/products/refresh", NewProductHandler(stubProducts{}).RefreshCache)
	r.POST("/empty/refresh", NewProductHandler(stubProducts{err: apperrors.ErrNoProducts}).RefreshCache)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/products/refresh", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodPost, "/empty/refresh", "").Code)
}

func TestHealthHandler(t *testing.T) {
	var dbErr error
	monitor := health.NewMonitor(time.Minute, nil)
	monitor.Register("database", health.CheckerFunc(func(context.Context) error { return dbErr }), true)
	monitor.Register("redis", health.CheckerFunc(func(context.Context) error { return errors.New("refused") }), false)

	r := gin.New()
	r.GET("/health", NewHealthHandler(monitor).HealthCheck)

	w := perform(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "refused", checks["redis"].(map[string]any)["message"])

	dbErr = errors.New("down")
	monitor.CheckAll(context.Background())
	assert.Equal(t, http.StatusServiceUnavailable, perform(r, http.MethodGet, "/health", "").Code)
}

type stubAuth struct{ loggedOut uint }

func (s *stubAuth) Register(_ context.Context, req dto.RegisterRequest, _ dto.LoginMeta) (*dto.UserLoginResponse, error) {
	if req.Email == "taken@playea.eu" {
		return nil, apperrors.ErrEmailExists
	}
	return &dto.UserLoginResponse{Token: "access", RefreshToken: "1.r", User: dto.UserResponse{ID: 1, Email: req.Email}}, nil
}

func (s *stubAuth) Login(_ context.Context, req dto.UserLoginRequest, _ dto.LoginMeta) (*dto.UserLoginResponse, error) {
	if req.Password != "supersecret" {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &dto.UserLoginResponse{Token: "access", User: dto.UserResponse{ID: 1}}, nil
}

func (s *stubAuth) Refresh(_ context.Context, token string) (*dto.UserLoginResponse, error) {
	if token != "1.good" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	return &dto.UserLoginResponse{Token: "access-2", RefreshToken: "1.next"}, nil
}

func (s *stubAuth) Logout(_ context.Context, userID uint) error {
	s.loggedOut = userID
	return nil
}

type stubGoogle struct{ err error }

func (s stubGoogle) NewState() (string, error) { return "state-123", nil }

func (s stubGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (s stubGoogle) Login(_ context.Context, code string, _ dto.LoginMeta) (*dto.UserLoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserLoginResponse{Token: "google-access-" + code}, nil
}

var testCookie = config.CookieConfig{Name: "token", MaxAge: time.Hour}

func authRouter(auth *stubAuth, google stubGoogle) *gin.Engine {
	h := NewAuthHandler(auth, google, testCookie, "http://client.test/")
	r := gin.New()
	r.POST("/register", validated(func() interface{} { return &dto.RegisterRequest{} }), h.Register)
	r.POST("/login", validated(func() interface{} { return &dto.UserLoginRequest{} }), h.Login)
	r.POST("/refresh", validated(func() interface{} { return &dto.RefreshTokenRequest{} }), h.RefreshToken)
	r.POST("/logout", asUser(9, constants.RoleUser), h.Logout)
	r.GET("/google", h.GoogleRedirect)
	r.GET("/google/callback", h.GoogleCallback)
	return r
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlerPasswordFlow(t *testing.T) {
	auth := &stubAuth{}
	r := authRouter(auth, stubGoogle{})

	w := perform(r, http.MethodPost, "/register", `{"name":"Ana","username":"anap","email":"ana@playea.eu","password":"supersecret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	cookie := cookieNamed(w, "token")
	require.NotNil(t, cookie)
	assert.Equal(t, "access", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	w = perform(r, http.MethodPost, "/register", `{"name":"Ana","username":"anap","email":"taken@playea.eu","password":"supersecret"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(r, http.MethodPost, "/register", `{"name":"Ana","username":"a","email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, decode(t, w)["details"], 3)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/login", `{"email":"ana@playea.eu","password":"supersecret"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/login", `{"email":"ana@playea.eu","password":"nope"}`).Code)

	w = perform(r, http.MethodPost, "/refresh", `{"refreshToken":"1.good"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.next", decode(t, w)["data"].(map[string]any)["refreshToken"])
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/refresh", `{"refreshToken":"1.bad"}`).Code)

	w = perform(r, http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), auth.loggedOut)
	cleared := cookieNamed(w, "token")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAuthHandlerGoogleFlow(t *testing.T) {
	r := authRouter(&stubAuth{}, stubGoogle{})

	w := perform(r, http.MethodGet, "/google", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "state=state-123")
	state := cookieNamed(w, constants.OAuthStateCookie)
	require.NotNil(t, state)
	assert.Equal(t, "state-123", state.Value)

	callback := func(target string, withState bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if withState {
			req.AddCookie(&http.Cookie{Name: constants.OAuthStateCookie, Value: "state-123"})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w = callback("/google/callback?code=abc&state=state-123", true)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://client.test", w.Header().Get("Location"))
	assert.Equal(t, "google-access-abc", cookieNamed(w, "token").Value)

	w = callback("/google/callback?code=abc&state=forged", true)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "invalid_oauth_state", loc.Query().Get("error"))

	w = callback("/google/callback?code=abc&state=state-123", false)
	assert.Contains(t, w.Header().Get("Location"), "error=invalid_oauth_state")

	w = callback("/google/callback?error=access_denied&state=state-123", true)
	assert.Contains(t, w.Header().Get("Location"), "error=google_denied")
}

func TestAuthHandlerGoogleFailure(t *testing.T) {
	r := authRouter(&stubAuth{}, stubGoogle{err: apperrors.ErrOAuthExchange})

	req := httptest.NewRequest(http.MethodGet, "/google/callback?code=abc&state=state-123", nil)
	req.AddCookie(&http.Cookie{Name: constants.OAuthStateCookie, Value: "state-123"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=oauth_exchange_failed")
	assert.Nil(t, cookieNamed(w, "token"))
}

type stubUsers struct{}

func (stubUsers) Me(_ context.Context, userID uint) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID, Username: "anap"}, nil
}

func (stubUsers) UpdateMe(_ context.Context, userID uint, req dto.UpdateMeRequest) (*dto.UserResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	return &dto.UserResponse{ID: userID, Name: req.Name}, nil
}

func (stubUsers) UpdatePassword(_ context.Context, _ uint, req dto.UpdatePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	return nil
}

func (stubUsers) DeleteMe(context.Context, uint) error { return nil }

func TestUserHandler(t *testing.T) {
	h := NewUserHandler(stubUsers{}, testCookie)
	r := gin.New()
	r.GET("/anon/me", h.Me)
	me := r.Group("/me", asUser(7, constants.RoleUser))
	me.GET("", h.Me)
	me.PATCH("", validated(func() interface{} { return &dto.UpdateMeRequest{} }), h.UpdateMe)
	me.PUT("/password", validated(func() interface{} { return &dto.UpdatePasswordRequest{} }), h.UpdatePassword)
	me.DELETE("", h.DeleteMe)

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/anon/me", "").Code)

	w := perform(r, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), decode(t, w)["data"].(map[string]any)["id"])

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPatch, "/me", `{"name":"Ana P."}`).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPatch, "/me", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPatch, "/me", `{"avatarUrl":"not a url"}`).Code)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPut, "/me/password", `{"newPassword":"newsecret1","confirmPassword":"newsecret1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPut, "/me/password", `{"newPassword":"newsecret1","confirmPassword":"other"}`).Code)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/me", "").Code)
}
