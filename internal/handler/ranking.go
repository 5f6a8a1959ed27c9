package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/dto"
	"github.com/playea/beach-api/internal/model"
	ctxutil "github.com/playea/beach-api/pkg/context"
)

type RankingService interface {
	List(ctx context.Context, island string, req dto.ListRequest) (*dto.ListResult[model.BeachGrade], error)
}

type RankingHandler struct {
	rankingService RankingService
	baseURL        string
}

func NewRankingHandler(rankingService RankingService, baseURL string) *RankingHandler {
	return &RankingHandler{rankingService: rankingService, baseURL: baseURL}
}

// List handles GET /ranking and GET /ranking/:island.
func (h *RankingHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListRanking")

	result, err := h.rankingService.List(ctx, c.Param("island"), listRequest(c, h.baseURL))
	if err != nil {
		respondError(c, ctx, "Failed to list ranking", err)
		return
	}

	respondList(c, result)
}
