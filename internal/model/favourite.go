package model

import "time"

type Favourite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favourites_user_beach,priority:1"`
	BeachID   uint      `gorm:"not null;uniqueIndex:idx_favourites_user_beach,priority:2;index:idx_favourites_beach_id"`
	CreatedAt time.Time `gorm:"not null"`

	User  User  `gorm:"constraint:OnDelete:CASCADE"`
	Beach Beach `gorm:"constraint:OnDelete:CASCADE"`
}
