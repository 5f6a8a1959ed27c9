package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Description    *string         `gorm:"type:text" json:"description"`
	SKU            *string         `gorm:"column:sku;type:varchar(100);uniqueIndex" json:"sku"`
	WholesalePrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"wholesalePrice"`
	RetailPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"retailPrice"`
	TaxPercentage  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"taxPercentage"`
	IsActive       bool            `gorm:"default:true" json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"deletedAt"`

	Categories []Category `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

// ProductCategory is the join row of product_categories.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}

// PriceWithTax is the retail price including tax, rounded to cents.
func (p Product) PriceWithTax() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.TaxPercentage.Div(decimal.NewFromInt(100)))
	return p.RetailPrice.Mul(factor).Round(2)
}
