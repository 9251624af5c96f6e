package models

import (
	"time"
)

// Wallet holds a balance in kobo (integer minor units). Exactly one system
// wallet exists per currency; it is the clearing counterparty for deposits
// and withdrawals and is the only wallet allowed to go negative.
type Wallet struct {
	ID        uint   `gorm:"primarykey"`
	UserID    *uint  `gorm:"uniqueIndex"` // nil for the system wallet
	Balance   int64  `gorm:"not null;default:0"`
	Currency  string `gorm:"not null;default:'NGN'"`
	IsSystem  bool   `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
