package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeTransfer   = "TRANSFER"
)

// Transaction statuses. PENDING is the only non-terminal state; a record
// never leaves SUCCESS or FAILED once it gets there.
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// Transaction is a money-movement record. Its ledger entry pair and terminal
// status are always written in the same database transaction, so a SUCCESS
// row with missing or unbalanced entries is unobservable.
type Transaction struct {
	ID             uint   `gorm:"primarykey"`
	UserID         uint   `gorm:"not null;index;uniqueIndex:idx_transactions_user_idem"`
	RecipientID    *uint  // set for transfers only
	Type           string `gorm:"not null"`
	Amount         int64  `gorm:"not null"` // kobo
	Status         string `gorm:"not null;default:'PENDING'"`
	Reference      string `gorm:"uniqueIndex;not null"`
	IdempotencyKey *string `gorm:"uniqueIndex:idx_transactions_user_idem"`
	Entries        []LedgerEntry `gorm:"foreignKey:TransactionID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
