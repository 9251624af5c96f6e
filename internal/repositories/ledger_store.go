package repositories

import (
	"context"
	"errors"

	"kobopay/internal/models"

	"gorm.io/gorm"
)

var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrClearingWalletMissing = errors.New("clearing wallet missing; run bootstrap")
)

// LedgerStore is the persistence surface for money movement. WithinTransaction
// hands back a store bound to one database transaction; every multi-step
// mutation in the ledger runs through it so partial writes never survive.
type LedgerStore interface {
	WithinTransaction(ctx context.Context, fn func(tx LedgerStore) error) error

	GetWalletByUserID(userID uint) (*models.Wallet, error)
	GetClearingWallet(currency string) (*models.Wallet, error)
	// ConditionalDecrement subtracts amount only where the current balance
	// covers it, reporting whether exactly one row changed. The predicate is
	// evaluated by the database, never by a read-then-compare in Go.
	ConditionalDecrement(walletID uint, amount int64) (bool, error)
	IncrementBalance(walletID uint, amount int64) error
	DecrementBalance(walletID uint, amount int64) error

	CreateTransaction(txn *models.Transaction) error
	GetTransactionByReference(reference string) (*models.Transaction, error)
	FindTransactionByIdempotencyKey(userID uint, key string) (*models.Transaction, error)
	MarkTransactionStatus(txnID uint, status string) error
	// CompleteIfPending flips PENDING to SUCCESS and reports whether this
	// caller won the transition. Terminal states never move again.
	CompleteIfPending(txnID uint) (bool, error)
	// FailIfPending is the FAILED twin; a transaction that already reached a
	// terminal state is left untouched.
	FailIfPending(txnID uint) (bool, error)

	CreateEntryPair(credit, debit models.LedgerEntry) error
	LoadEntries(txn *models.Transaction) error

	CreateWebhookEvent(event *models.WebhookEvent) error
	MarkEventProcessed(eventID uint) error
	AnnotateEventError(eventID uint, note string) error
}

type gormLedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore wraps a gorm handle in the LedgerStore interface.
func NewLedgerStore(db *gorm.DB) LedgerStore {
	if db == nil {
		panic("db is required")
	}
	return &gormLedgerStore{db: db}
}

func (s *gormLedgerStore) WithinTransaction(ctx context.Context, fn func(tx LedgerStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerStore{db: tx})
	})
}

func (s *gormLedgerStore) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *gormLedgerStore) GetClearingWallet(currency string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Where("is_system = ? AND currency = ?", true, currency).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClearingWalletMissing
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *gormLedgerStore) ConditionalDecrement(walletID uint, amount int64) (bool, error) {
	res := s.db.Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *gormLedgerStore) IncrementBalance(walletID uint, amount int64) error {
	return s.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

func (s *gormLedgerStore) DecrementBalance(walletID uint, amount int64) error {
	return s.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", gorm.Expr("balance - ?", amount)).Error
}

func (s *gormLedgerStore) CreateTransaction(txn *models.Transaction) error {
	return s.db.Create(txn).Error
}

func (s *gormLedgerStore) GetTransactionByReference(reference string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Where("reference = ?", reference).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *gormLedgerStore) FindTransactionByIdempotencyKey(userID uint, key string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Where("user_id = ? AND idempotency_key = ?", userID, key).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *gormLedgerStore) MarkTransactionStatus(txnID uint, status string) error {
	return s.db.Model(&models.Transaction{}).
		Where("id = ?", txnID).
		Update("status", status).Error
}

func (s *gormLedgerStore) CompleteIfPending(txnID uint) (bool, error) {
	res := s.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", txnID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusSuccess)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *gormLedgerStore) FailIfPending(txnID uint) (bool, error) {
	res := s.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", txnID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusFailed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *gormLedgerStore) CreateEntryPair(credit, debit models.LedgerEntry) error {
	return s.db.Create(&[]models.LedgerEntry{credit, debit}).Error
}

func (s *gormLedgerStore) LoadEntries(txn *models.Transaction) error {
	return s.db.Where("transaction_id = ?", txn.ID).
		Order("id").
		Find(&txn.Entries).Error
}

func (s *gormLedgerStore) CreateWebhookEvent(event *models.WebhookEvent) error {
	return s.db.Create(event).Error
}

func (s *gormLedgerStore) MarkEventProcessed(eventID uint) error {
	return s.db.Model(&models.WebhookEvent{}).
		Where("id = ?", eventID).
		Update("processed", true).Error
}

func (s *gormLedgerStore) AnnotateEventError(eventID uint, note string) error {
	return s.db.Model(&models.WebhookEvent{}).
		Where("id = ?", eventID).
		Update("error_note", note).Error
}
