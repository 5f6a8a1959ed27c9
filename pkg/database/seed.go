package database

import (
	"errors"
	"strings"

	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/model"
	"github.com/playea/beach-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates initial data for the database
func Seed(db *gorm.DB, cfg config.AdminConfig) error {
	return SeedAdmin(db, cfg)
}

// SeedAdmin creates the administrator account if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.Password == "" {
		logger.GetLogger().Info("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	var existing model.User
	err := db.Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)

	username, _, _ := strings.Cut(email, "@")
	admin := model.User{
		Name:         cfg.Name,
		Username:     username,
		Email:        email,
		PasswordHash: &hash,
		Role:         constants.RoleAdmin,
		IsActive:     true,
		TokenVersion: 1,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("Admin user seeded", zap.Uint("user_id", admin.ID), zap.String("email", email))
	return nil
}
