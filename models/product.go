package models

import "time"

type Product struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string `gorm:"uniqueIndex;not null" json:"code"`
	Name          string `gorm:"not null" json:"name"`
	Description   string `json:"description"`
	Price         int64  `gorm:"not null" json:"price"` // minor currency units
	SalePercent   int    `json:"sale_percent"`
	Stock         int    `json:"stock"`
	CategoryID    uint   `json:"category_id"`
	ProductTypeID uint   `json:"product_type_id"`
	Image         string `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
}
