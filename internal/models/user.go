package models

import (
	"time"
)

type User struct {
	ID        uint    `gorm:"primarykey"`
	FullName  string  `gorm:"not null"`
	Email     string  `gorm:"uniqueIndex;not null"`
	Password  string  `gorm:"not null"` // bcrypt hash
	Role      string  `gorm:"default:'user'"`
	Wallet    *Wallet `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
