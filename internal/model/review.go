package model

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_reviews_user_id"`
	BeachID   uint      `gorm:"not null;index:idx_reviews_beach_created,priority:1"`
	Rating    int       `gorm:"not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5"`
	Comment   string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"not null;index:idx_reviews_beach_created,priority:2,sort:desc"`
	UpdatedAt time.Time

	User  User  `gorm:"constraint:OnDelete:CASCADE"`
	Beach Beach `gorm:"constraint:OnDelete:CASCADE"`
}

// ReviewWithAuthor is a review joined with the name of who wrote it.
type ReviewWithAuthor struct {
	ID         uint
	UserID     uint
	BeachID    uint
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	AuthorName string
	AvatarURL  string
}
