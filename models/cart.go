package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem rows are keyed by (cart, product); quantity stays > 0,
// anything driven to zero or below is deleted instead of stored.
type CartItem struct {
	CartID    uint      `gorm:"primaryKey;autoIncrement:false" json:"cart_id"`
	ProductID uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
