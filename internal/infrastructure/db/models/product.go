package models

import "time"

type Product struct {
	ID int64 `gorm:"primaryKey"`
	// Uniqueness lives in a migration-managed expression index on
	// LOWER(sku); gorm tags cannot express it.
	SKU         string `gorm:"size:100;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string {
	return "products"
}
