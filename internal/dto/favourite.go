package dto

import (
	"time"

	"github.com/playea/beach-api/internal/model"
)

type FavouriteResponse struct {
	BeachID   uint        `json:"beachId"`
	CreatedAt time.Time   `json:"createdAt"`
	Beach     model.Beach `json:"beach"`
}
