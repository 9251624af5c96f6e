package models

import (
	"time"
)

// KYC statuses
const (
	KYCStatusPending  = "PENDING"
	KYCStatusVerified = "VERIFIED"
	KYCStatusRejected = "REJECTED"
)

// KYCRecord tracks identity verification. The ledger only ever consumes the
// VERIFIED/not-VERIFIED result; how a record reaches VERIFIED is external.
type KYCRecord struct {
	ID         uint   `gorm:"primarykey"`
	UserID     uint   `gorm:"uniqueIndex;not null"`
	Status     string `gorm:"not null;default:'PENDING'"`
	DocumentID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
