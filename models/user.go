package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      string    `gorm:"default:user" json:"role"`
	Wallet    int64     `json:"wallet"` // minor currency units
	Cart      Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	CreatedAt time.Time `json:"created_at"`
}
