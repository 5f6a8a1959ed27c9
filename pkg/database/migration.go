package database

import (
	"github.com/playea/beach-api/internal/model"
	"gorm.io/gorm"
)

// Models lists every table owned by the API, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Beach{},
		&model.Review{},
		&model.Favourite{},
		&model.Session{},
		&model.Category{},
		&model.Product{},
		&model.ProductCategory{},
	}
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
