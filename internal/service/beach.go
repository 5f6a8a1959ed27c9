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

// BeachFields are the filters accepted by the beach list and search
// endpoints.
var BeachFields = query.FieldTable{
	{Param: "name", Column: "name", Kind: query.MatchContains},
	{Param: "island", Column: "island", Kind: query.MatchContains},
	{Param: "municipality", Column: "municipality", Kind: query.MatchContains},
	{Param: "province", Column: "province", Kind: query.MatchContains},
	{Param: "classification", Column: "classification", Kind: query.MatchExact},
	{Param: "sandColor", Column: "sand_color", Kind: query.MatchExact},
	{Param: "riskLevel", Column: "risk_level", Kind: query.MatchExact},
	{Param: "protectionLevel", Column: "protection_level", Kind: query.MatchExact},
	{Param: "bathingConditions", Column: "bathing_conditions", Kind: query.MatchExact},
	{Param: "environmentCondition", Column: "environment_condition", Kind: query.MatchExact},
	{Param: "lifeguardService", Column: "lifeguard_service", Kind: query.MatchExact},
	{Param: "blueFlag", Column: "blue_flag", Kind: query.MatchBoolean},
	{Param: "accessByCar", Column: "access_by_car", Kind: query.MatchBoolean},
	{Param: "accessByShip", Column: "access_by_ship", Kind: query.MatchBoolean},
	{Param: "adaptedShower", Column: "adapted_shower", Kind: query.MatchBoolean},
	{Param: "assistedBathing", Column: "assisted_bathing", Kind: query.MatchBoolean},
	{Param: "hasAdaptedShowers", Column: "has_adapted_showers", Kind: query.MatchBoolean},
	{Param: "hasCobbles", Column: "has_cobbles", Kind: query.MatchBoolean},
	{Param: "hasConcrete", Column: "has_concrete", Kind: query.MatchBoolean},
	{Param: "hasFootShowers", Column: "has_foot_showers", Kind: query.MatchBoolean},
	{Param: "hasGravel", Column: "has_gravel", Kind: query.MatchBoolean},
	{Param: "hasMixedComposition", Column: "has_mixed_composition", Kind: query.MatchBoolean},
	{Param: "hasPebbles", Column: "has_pebbles", Kind: query.MatchBoolean},
	{Param: "hasRock", Column: "has_rock", Kind: query.MatchBoolean},
	{Param: "hasSand", Column: "has_sand", Kind: query.MatchBoolean},
	{Param: "hasShowers", Column: "has_showers", Kind: query.MatchBoolean},
	{Param: "hasToilets", Column: "has_toilets", Kind: query.MatchBoolean},
	{Param: "isBeach", Column: "is_beach", Kind: query.MatchBoolean},
	{Param: "isWindy", Column: "is_windy", Kind: query.MatchBoolean},
	{Param: "isZbm", Column: "is_zbm", Kind: query.MatchBoolean},
	{Param: "kidsArea", Column: "kids_area", Kind: query.MatchBoolean},
	{Param: "pmrShade", Column: "pmr_shade", Kind: query.MatchBoolean},
	{Param: "sportsArea", Column: "sports_area", Kind: query.MatchBoolean},
	{Param: "sunbedRentals", Column: "sunbed_rentals", Kind: query.MatchBoolean},
	{Param: "umbrellaRentals", Column: "umbrella_rentals", Kind: query.MatchBoolean},
	{Param: "waterSportsRentals", Column: "water_sports_rentals", Kind: query.MatchBoolean},
	{Param: "wheelchairAccess", Column: "wheelchair_access", Kind: query.MatchBoolean},
}

type BeachService struct {
	repo       BeachStore
	pagination query.PaginationConfig
}

func NewBeachService(repo BeachStore, pagination query.PaginationConfig) *BeachService {
	return &BeachService{repo: repo, pagination: pagination}
}

// List returns a page of beaches matching the filters, ordered by id.
func (s *BeachService) List(ctx context.Context, req dto.ListRequest) (*dto.ListResult[model.Beach], error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	return s.list(ctx, req, nil, "id ASC")
}

// Search is List with a free-text match on the name, ordered by name. An
// empty q matches every beach.
func (s *BeachService) Search(ctx context.Context, q string, req dto.ListRequest) (*dto.ListResult[model.Beach], error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Search")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	var extra []query.Predicate
	if q = strings.TrimSpace(q); q != "" {
		extra = append(extra, query.Predicate{Column: "name", Kind: query.MatchContains, Value: q})
	}

	logger.DebugWithContext(ctx, "Searching beaches").
		String("q", q).
		Log()

	return s.list(ctx, req, extra, "name ASC, id ASC")
}

func (s *BeachService) list(ctx context.Context, req dto.ListRequest, extra []query.Predicate, order string) (*dto.ListResult[model.Beach], error) {
	result, err := paginatedList(ctx, req, s.pagination, BeachFields, extra,
		s.repo.Count,
		func(ctx context.Context, preds []query.Predicate, page query.PageRequest) ([]model.Beach, error) {
			return s.repo.Find(ctx, preds, order, page)
		},
	)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list beaches").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return result, nil
}

// Get looks a beach up by numeric id or, failing that, by slug.
func (s *BeachService) Get(ctx context.Context, idOrSlug string) (*model.Beach, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Get")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	var (
		beach *model.Beach
		err   error
	)
	if id, convErr := strconv.ParseUint(idOrSlug, 10, 64); convErr == nil {
		beach, err = s.repo.GetByID(ctx, uint(id))
	} else {
		beach, err = s.repo.GetBySlug(ctx, idOrSlug)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Beach not found").
				String("beach", idOrSlug).
				Log()
			return nil, apperrors.ErrBeachNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get beach").
			String("beach", idOrSlug).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return beach, nil
}

// ensureBeach maps a missing beach to ErrBeachNotFound.
func ensureBeach(ctx context.Context, repo BeachStore, id uint) error {
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		return apperrors.ErrBeachNotFound
	}
	return nil
}
