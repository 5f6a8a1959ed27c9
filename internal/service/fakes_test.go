package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.ReplaceLogger(zap.NewNop())
}

// fakeBeaches serves a fixed slice and records what it was asked.
type fakeBeaches struct {
	beaches    []model.Beach
	countPreds []query.Predicate
	findPreds  []query.Predicate
	order      string
	page       query.PageRequest
	findCalls  int
	err        error
}

func (f *fakeBeaches) Count(_ context.Context, preds []query.Predicate) (int64, error) {
	f.countPreds = preds
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.beaches)), nil
}

func (f *fakeBeaches) Find(_ context.Context, preds []query.Predicate, order string, page query.PageRequest) ([]model.Beach, error) {
	f.findCalls++
	f.findPreds = preds
	f.order = order
	f.page = page
	if f.err != nil {
		return nil, f.err
	}
	return window(f.beaches, page), nil
}

func (f *fakeBeaches) GetByID(_ context.Context, id uint) (*model.Beach, error) {
	for i := range f.beaches {
		if f.beaches[i].ID == id {
			return &f.beaches[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBeaches) GetBySlug(_ context.Context, slug string) (*model.Beach, error) {
	for i := range f.beaches {
		if f.beaches[i].Slug == slug {
			return &f.beaches[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBeaches) Exists(ctx context.Context, id uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

func window[T any](rows []T, page query.PageRequest) []T {
	start := page.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

type fakeReviews struct {
	reviews []model.Review
	preds   []query.Predicate
	nextID  uint
}

func (f *fakeReviews) Create(_ context.Context, r *model.Review) error {
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.reviews = append(f.reviews, *r)
	return nil
}

func (f *fakeReviews) GetByID(_ context.Context, id uint) (*model.Review, error) {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			r := f.reviews[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviews) Update(_ context.Context, id uint, rating int, comment string) error {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews[i].Rating = rating
			f.reviews[i].Comment = comment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviews) Delete(_ context.Context, id uint) error {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviews) ofBeach(beachID uint) []model.ReviewWithAuthor {
	var out []model.ReviewWithAuthor
	for _, r := range f.reviews {
		if r.BeachID == beachID {
			out = append(out, model.ReviewWithAuthor{
				ID: r.ID, UserID: r.UserID, BeachID: r.BeachID, Rating: r.Rating,
				Comment: r.Comment, CreatedAt: r.CreatedAt, AuthorName: "user",
			})
		}
	}
	return out
}

func (f *fakeReviews) CountByBeach(_ context.Context, beachID uint, preds []query.Predicate) (int64, error) {
	f.preds = preds
	return int64(len(f.ofBeach(beachID))), nil
}

func (f *fakeReviews) ListByBeach(_ context.Context, beachID uint, _ []query.Predicate, page query.PageRequest) ([]model.ReviewWithAuthor, error) {
	return window(f.ofBeach(beachID), page), nil
}

type favKey struct{ user, beach uint }

type fakeFavourites struct {
	rows  map[favKey]time.Time
	preds []query.Predicate
}

func newFakeFavourites() *fakeFavourites {
	return &fakeFavourites{rows: map[favKey]time.Time{}}
}

func (f *fakeFavourites) Create(_ context.Context, fav *model.Favourite) error {
	k := favKey{fav.UserID, fav.BeachID}
	if _, ok := f.rows[k]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.rows[k] = time.Now()
	return nil
}

func (f *fakeFavourites) Delete(_ context.Context, userID, beachID uint) error {
	k := favKey{userID, beachID}
	if _, ok := f.rows[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *fakeFavourites) ofUser(userID uint) []model.Favourite {
	var out []model.Favourite
	for k, at := range f.rows {
		if k.user == userID {
			out = append(out, model.Favourite{UserID: k.user, BeachID: k.beach, CreatedAt: at, Beach: model.Beach{ID: k.beach}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BeachID < out[j].BeachID })
	return out
}

func (f *fakeFavourites) CountByUser(_ context.Context, userID uint, preds []query.Predicate) (int64, error) {
	f.preds = preds
	return int64(len(f.ofUser(userID))), nil
}

func (f *fakeFavourites) ListByUser(_ context.Context, userID uint, _ []query.Predicate, page query.PageRequest) ([]model.Favourite, error) {
	return window(f.ofUser(userID), page), nil
}

type fakeRanking struct {
	rows       []model.BeachGrade
	countPreds []query.Predicate
	listPreds  []query.Predicate
}

func (f *fakeRanking) Count(_ context.Context, preds []query.Predicate) (int64, error) {
	f.countPreds = preds
	return int64(len(f.rows)), nil
}

func (f *fakeRanking) List(_ context.Context, preds []query.Predicate, page query.PageRequest) ([]model.BeachGrade, error) {
	f.listPreds = preds
	return window(f.rows, page), nil
}

// fakeUsers is a tiny users table keyed by id.
type fakeUsers struct {
	mu     sync.Mutex
	rows   map[uint]*model.User
	nextID uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[uint]*model.User{}}
}

func (f *fakeUsers) copyOf(u *model.User) *model.User {
	c := *u
	return &c
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.rows[id]; ok {
		return f.copyOf(u), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) find(match func(*model.User) bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if match(u) {
			return f.copyOf(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsers) GetByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (f *fakeUsers) ExistsByField(_ context.Context, column, value string, excludeID uint) (bool, error) {
	_, err := f.find(func(u *model.User) bool {
		if u.ID == excludeID {
			return false
		}
		switch column {
		case "email":
			return strings.EqualFold(u.Email, value)
		case "username":
			return strings.EqualFold(u.Username, value)
		}
		return false
	})
	return err == nil, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.rows[user.ID] = f.copyOf(user)
	return nil
}

func (f *fakeUsers) mutate(id uint, fn func(u *model.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(u)
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uint, updates map[string]interface{}) error {
	return f.mutate(id, func(u *model.User) {
		for k, v := range updates {
			s, _ := v.(string)
			switch k {
			case "name":
				u.Name = s
			case "username":
				u.Username = s
			case "email":
				u.Email = s
			case "avatar_url":
				u.AvatarURL = s
			case "google_id":
				u.GoogleID = &s
			}
		}
	})
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uint, hashed string) error {
	return f.mutate(id, func(u *model.User) { u.PasswordHash = &hashed })
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id uint) error {
	return f.mutate(id, func(u *model.User) {
		now := time.Now()
		u.LastLogin = &now
	})
}

func (f *fakeUsers) UpdateRefreshToken(_ context.Context, id uint, hash string, expiresAt *time.Time) error {
	return f.mutate(id, func(u *model.User) {
		u.RefreshTokenHash = hash
		u.RefreshTokenExpires = expiresAt
	})
}

func (f *fakeUsers) UpdateTokenVersion(_ context.Context, id uint, v int) error {
	return f.mutate(id, func(u *model.User) { u.TokenVersion = v })
}

func (f *fakeUsers) CleanupExpiredRefreshTokens(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.rows {
		if u.RefreshTokenExpires != nil && u.RefreshTokenExpires.Before(time.Now()) {
			u.RefreshTokenHash = ""
			u.RefreshTokenExpires = nil
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions []model.Session
}

func (f *fakeSessions) Create(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, *s)
	return nil
}

func (f *fakeSessions) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.sessions[:0]
	var n int64
	for _, s := range f.sessions {
		if s.LoginAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	f.sessions = kept
	return n, nil
}

type fakeProducts struct {
	products []model.Product
	calls    int
	err      error
}

func (f *fakeProducts) ListAll(_ context.Context) ([]model.Product, error) {
	f.calls++
	return f.products, f.err
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendWelcome(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

var errDB = errors.New("connection refused")
