package service

import (
	"context"
	"testing"

	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture() (*ReviewService, *fakeReviews) {
	reviews := &fakeReviews{}
	svc := NewReviewService(reviews, &fakeBeaches{beaches: beaches(2)}, testPagination)
	return svc, reviews
}

func TestReviewCreate(t *testing.T) {
	svc, reviews := newReviewFixture()

	resp, err := svc.Create(context.Background(), 7, dto.CreateReviewRequest{BeachID: 1, Rating: 4, Comment: "  nice sand  "})
	require.NoError(t, err)
	assert.Equal(t, "nice sand", resp.Comment)
	require.Len(t, reviews.reviews, 1)
	assert.Equal(t, uint(7), reviews.reviews[0].UserID)

	_, err = svc.Create(context.Background(), 7, dto.CreateReviewRequest{BeachID: 42, Rating: 4})
	assert.ErrorIs(t, err, apperrors.ErrBeachNotFound)
}

func TestReviewListEmptyIsNotAnError(t *testing.T) {
	svc, _ := newReviewFixture()

	res, err := svc.ListByBeach(context.Background(), 2, listRequest(""))
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Pagination.TotalPages)
	assert.Nil(t, res.Pagination.NextPage)

	_, err = svc.ListByBeach(context.Background(), 99, listRequest(""))
	assert.ErrorIs(t, err, apperrors.ErrBeachNotFound)
}

func TestReviewListFiltersAndAuthor(t *testing.T) {
	svc, reviews := newReviewFixture()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), 5, dto.CreateReviewRequest{BeachID: 1, Rating: 5})
		require.NoError(t, err)
	}

	res, err := svc.ListByBeach(context.Background(), 1, listRequest("rating=5&comment=wind&limit=2"))
	require.NoError(t, err)

	assert.Equal(t, []query.Predicate{
		{Column: "reviews.rating", Kind: query.MatchExact, Value: "5"},
		{Column: "reviews.comment", Kind: query.MatchContains, Value: "wind"},
	}, reviews.preds)
	assert.Len(t, res.Data, 2)
	require.NotNil(t, res.Data[0].Author)
	assert.Equal(t, uint(5), res.Data[0].Author.ID)
	assert.NotNil(t, res.Pagination.NextPage)
}

func TestReviewListRejectsNonIntegerRating(t *testing.T) {
	svc, reviews := newReviewFixture()

	for _, raw := range []string{"rating=abc", "rating=4.5", "rating=5%20OR%201=1"} {
		_, err := svc.ListByBeach(context.Background(), 1, listRequest(raw))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, raw)
	}
	assert.Nil(t, reviews.preds)

	_, err := svc.ListByBeach(context.Background(), 1, listRequest("rating="))
	assert.NoError(t, err)
}

func TestReviewOwnership(t *testing.T) {
	svc, reviews := newReviewFixture()
	reviews.reviews = []model.Review{{ID: 1, UserID: 10, BeachID: 1, Rating: 2}}
	reviews.nextID = 1
	ctx := context.Background()

	_, err := svc.Update(ctx, 11, 1, dto.UpdateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrReviewForbidden)

	_, err = svc.Update(ctx, 10, 2, dto.UpdateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)

	resp, err := svc.Update(ctx, 10, 1, dto.UpdateReviewRequest{Rating: 5, Comment: "better"})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, 5, reviews.reviews[0].Rating)

	assert.ErrorIs(t, svc.Delete(ctx, 11, 1, false), apperrors.ErrReviewForbidden)
	assert.NoError(t, svc.Delete(ctx, 11, 1, true))
	assert.ErrorIs(t, svc.Delete(ctx, 10, 1, false), apperrors.ErrReviewNotFound)
}
