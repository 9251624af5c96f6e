package models

import (
	"time"
)

// Ledger entry types
const (
	EntryTypeDebit  = "DEBIT"
	EntryTypeCredit = "CREDIT"
)

// LedgerEntry is one leg of a double-entry pair. Entries are only ever
// created in matched CREDIT/DEBIT pairs of equal amount.
type LedgerEntry struct {
	ID            uint   `gorm:"primarykey"`
	TransactionID uint   `gorm:"not null;index"`
	WalletID      uint   `gorm:"not null;index"`
	EntryType     string `gorm:"not null"`
	Amount        int64  `gorm:"not null"` // kobo, always positive
	CreatedAt     time.Time
}
