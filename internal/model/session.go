package model

import (
	"time"

	"gorm.io/datatypes"
)

// Session records one successful login.
type Session struct {
	ID       uint              `gorm:"primaryKey"`
	UserID   uint              `gorm:"not null;index:idx_sessions_user_login,priority:1"`
	Provider string            `gorm:"type:varchar(20);not null;default:'password'"`
	LoginAt  time.Time         `gorm:"not null;autoCreateTime;index:idx_sessions_user_login,priority:2,sort:desc"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

const (
	SessionProviderPassword = "password"
	SessionProviderGoogle   = "google"
)
