package service

import (
	"context"

	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/dto"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/query"
)

type countFunc func(ctx context.Context, preds []query.Predicate) (int64, error)

type fetchFunc[T any] func(ctx context.Context, preds []query.Predicate, page query.PageRequest) ([]T, error)

// paginatedList runs the common list flow: predicates from the query
// string, a count and a page fetch with the same predicates, then the
// pagination block. extra predicates are ANDed after the table ones.
func paginatedList[T any](
	ctx context.Context,
	req dto.ListRequest,
	cfg query.PaginationConfig,
	table query.FieldTable,
	extra []query.Predicate,
	count countFunc,
	fetch fetchFunc[T],
) (*dto.ListResult[T], error) {
	preds := append(query.BuildPredicates(query.ParamsFromValues(req.Query), table), extra...)
	page := query.NormalizePage(req.Query.Get(constants.QueryParamPage), req.Query.Get(constants.QueryParamLimit), cfg)

	total, err := count(ctx, preds)
	if err != nil {
		return nil, err
	}

	rows := []T{}
	if int64(page.Offset()) < total {
		rows, err = fetch(ctx, preds, page)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []T{}
		}
	}

	logger.DebugWithContext(ctx, "List page assembled").
		Int("predicates", len(preds)).
		Int("page", page.Page).
		Int("limit", page.Limit).
		Int64("total_count", total).
		Int("returned_count", len(rows)).
		Log()

	return &dto.ListResult[T]{
		Data:       rows,
		Pagination: query.Paginate(page, total, req.BaseURL, req.Query),
	}, nil
}
