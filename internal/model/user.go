package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string     `gorm:"type:varchar(100);not null"`
	Username            string     `gorm:"type:varchar(50);uniqueIndex:idx_users_username,where:deleted_at IS NULL;not null"`
	Email               string     `gorm:"type:varchar(255);uniqueIndex:idx_users_email,where:deleted_at IS NULL;not null"`
	PasswordHash        *string    `gorm:"column:password_hash;type:text"`
	GoogleID            *string    `gorm:"column:google_id;type:varchar(64);uniqueIndex:idx_users_google_id,where:google_id IS NOT NULL"`
	AvatarURL           string     `gorm:"column:avatar_url;type:varchar(2048)"`
	Role                string     `gorm:"type:varchar(20);default:'user';not null"`
	IsActive            bool       `gorm:"default:true;not null"`
	LastLogin           *time.Time `gorm:"column:last_login"`
	TokenVersion        int        `gorm:"column:token_version;default:1;not null"`
	RefreshTokenHash    string     `gorm:"column:refresh_token_hash;default:null;index:idx_users_refresh_token_hash,where:refresh_token_hash IS NOT NULL"`
	RefreshTokenExpires *time.Time `gorm:"column:refresh_token_expires_at;default:null"`
}

// HasPassword is false for accounts created through Google sign-in.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
