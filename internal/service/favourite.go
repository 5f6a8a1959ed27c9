package service

import (
	"context"
	"errors"

	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
	"gorm.io/gorm"
)

var FavouriteFields = query.FieldTable{
	{Param: "island", Column: "beaches.island", Kind: query.MatchContains},
	{Param: "name", Column: "beaches.name", Kind: query.MatchContains},
}

type FavouriteService struct {
	favourites FavouriteStore
	beaches    BeachStore
	pagination query.PaginationConfig
}

func NewFavouriteService(favourites FavouriteStore, beaches BeachStore, pagination query.PaginationConfig) *FavouriteService {
	return &FavouriteService{favourites: favourites, beaches: beaches, pagination: pagination}
}

func (s *FavouriteService) Add(ctx context.Context, userID, beachID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Add")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := ensureBeach(ctx, s.beaches, beachID); err != nil {
		return err
	}

	err := s.favourites.Create(ctx, &model.Favourite{UserID: userID, BeachID: beachID})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		logger.InfoWithContext(ctx, "Beach already in favourites").
			Uint("beach_id", beachID).
			Log()
		return apperrors.ErrFavouriteExists
	default:
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}

func (s *FavouriteService) Remove(ctx context.Context, userID, beachID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Remove")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.favourites.Delete(ctx, userID, beachID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFavouriteNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (s *FavouriteService) List(ctx context.Context, userID uint, req dto.ListRequest) (*dto.ListResult[dto.FavouriteResponse], error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	result, err := paginatedList(ctx, req, s.pagination, FavouriteFields, nil,
		func(ctx context.Context, preds []query.Predicate) (int64, error) {
			return s.favourites.CountByUser(ctx, userID, preds)
		},
		func(ctx context.Context, preds []query.Predicate, page query.PageRequest) ([]model.Favourite, error) {
			return s.favourites.ListByUser(ctx, userID, preds, page)
		},
	)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list favourites").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	data := make([]dto.FavouriteResponse, 0, len(result.Data))
	for _, f := range result.Data {
		data = append(data, dto.FavouriteResponse{
			BeachID:   f.BeachID,
			CreatedAt: f.CreatedAt,
			Beach:     f.Beach,
		})
	}

	return &dto.ListResult[dto.FavouriteResponse]{Data: data, Pagination: result.Pagination}, nil
}
