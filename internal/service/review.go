package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"gorm.io/gorm"
)

// ReviewFields filter the reviews of a beach. Columns are qualified because
// the list query joins users.
var ReviewFields = query.FieldTable{
	{Param: "rating", Column: "reviews.rating", Kind: query.MatchExact},
	{Param: "comment", Column: "reviews.comment", Kind: query.MatchContains},
}

type ReviewService struct {
	reviews    ReviewStore
	beaches    BeachStore
	pagination query.PaginationConfig
}

func NewReviewService(reviews ReviewStore, beaches BeachStore, pagination query.PaginationConfig) *ReviewService {
	return &ReviewService{reviews: reviews, beaches: beaches, pagination: pagination}
}

func (s *ReviewService) Create(ctx context.Context, userID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := ensureBeach(ctx, s.beaches, req.BeachID); err != nil {
		logger.WarnWithContext(ctx, "Review rejected").
			Uint("beach_id", req.BeachID).
			Err(err).
			Log()
		return nil, err
	}

	review := &model.Review{
		UserID:  userID,
		BeachID: req.BeachID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return toReviewResponse(review), nil
}

// ListByBeach returns a page of a beach's reviews, newest first. An unknown
// beach is a 404; a beach without reviews is an empty page.
func (s *ReviewService) ListByBeach(ctx context.Context, beachID uint, req dto.ListRequest) (*dto.ListResult[dto.ReviewResponse], error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListByBeach")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := ensureBeach(ctx, s.beaches, beachID); err != nil {
		return nil, err
	}
	// rating is an integer column; anything else is rejected before it
	// reaches the database.
	if raw := req.Query.Get("rating"); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			logger.WarnWithContext(ctx, "Invalid rating filter").
				String("rating", raw).
				Log()
			return nil, apperrors.ErrInvalidInput
		}
	}

	result, err := paginatedList(ctx, req, s.pagination, ReviewFields, nil,
		func(ctx context.Context, preds []query.Predicate) (int64, error) {
			return s.reviews.CountByBeach(ctx, beachID, preds)
		},
		func(ctx context.Context, preds []query.Predicate, page query.PageRequest) ([]model.ReviewWithAuthor, error) {
			return s.reviews.ListByBeach(ctx, beachID, preds, page)
		},
	)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list reviews").
			Uint("beach_id", beachID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	data := make([]dto.ReviewResponse, 0, len(result.Data))
	for _, r := range result.Data {
		data = append(data, dto.ReviewResponse{
			ID:        r.ID,
			BeachID:   r.BeachID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Author: &dto.ReviewAuthor{
				ID:        r.UserID,
				Name:      r.AuthorName,
				AvatarURL: r.AvatarURL,
			},
		})
	}

	return &dto.ListResult[dto.ReviewResponse]{Data: data, Pagination: result.Pagination}, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	review, err := s.owned(ctx, userID, reviewID, false)
	if err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(req.Comment)
	if err := s.reviews.Update(ctx, reviewID, req.Rating, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	review.Rating = req.Rating
	review.Comment = comment
	return toReviewResponse(review), nil
}

// Delete removes a review. Admins may delete any review.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint, isAdmin bool) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.owned(ctx, userID, reviewID, isAdmin); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (s *ReviewService) owned(ctx context.Context, userID, reviewID uint, isAdmin bool) (*model.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get review").
			Uint("review_id", reviewID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if review.UserID != userID && !isAdmin {
		logger.WarnWithContext(ctx, "Review belongs to another user").
			Uint("review_id", reviewID).
			Uint("owner_id", review.UserID).
			Log()
		return nil, apperrors.ErrReviewForbidden
	}
	return review, nil
}

func toReviewResponse(r *model.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        r.ID,
		BeachID:   r.BeachID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
