package service

import (
	"context"
	"strings"

	"github.com/playea/beach-api/internal/dto"
	apperrors "github.com/playea/beach-api/internal/errors"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
)

var RankingFields = query.FieldTable{
	{Param: "municipality", Column: "municipality", Kind: query.MatchContains},
	{Param: "name", Column: "name", Kind: query.MatchContains},
}

type RankingService struct {
	repo       RankingStore
	pagination query.PaginationConfig
}

func NewRankingService(repo RankingStore, pagination query.PaginationConfig) *RankingService {
	return &RankingService{repo: repo, pagination: pagination}
}

// List returns graded beaches, best first. A non-empty island restricts the
// ranking to that island (exact match).
func (s *RankingService) List(ctx context.Context, island string, req dto.ListRequest) (*dto.ListResult[model.BeachGrade], error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	var extra []query.Predicate
	if island = strings.TrimSpace(island); island != "" {
		extra = append(extra, query.Predicate{Column: "island", Kind: query.MatchExact, Value: island})
	}

	result, err := paginatedList(ctx, req, s.pagination, RankingFields, extra, s.repo.Count, s.repo.List)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to load ranking").
			String("island", island).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return result, nil
}
