package ledger

import (
	"context"
	"errors"
	"fmt"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/utils"

	"gorm.io/gorm"
)

// Service moves money between wallets. Every operation runs as one database
// transaction: the PENDING record, the one or two balance updates, the entry
// pair and the terminal status commit together or not at all. The single
// deliberate exception is the FAILED marker on an insufficient-balance
// attempt, which is committed so the failed intent stays visible.
type Service interface {
	Credit(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error)
	Debit(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error)
	Transfer(ctx context.Context, senderID uint, recipientEmail string, amount int64) (*models.Transaction, error)

	// CreditSettled writes the balance updates and entry pair for an
	// already-completed deposit inside the caller's transaction. The webhook
	// reconciler calls this after winning the PENDING to SUCCESS transition.
	CreditSettled(tx repositories.LedgerStore, txn *models.Transaction, currency string) error
}

type service struct {
	store     repositories.LedgerStore
	users     repositories.UserRepository
	kyc       repositories.KYCRepository
	maxAmount int64
}

// Config holds ledger service configuration.
type Config struct {
	MaxAmountKobo int64
}

// NewService creates a new ledger service.
func NewService(store repositories.LedgerStore, users repositories.UserRepository, kyc repositories.KYCRepository, cfg Config) Service {
	if store == nil {
		panic("store is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if kyc == nil {
		panic("kyc repository is required")
	}
	if cfg.MaxAmountKobo == 0 {
		cfg.MaxAmountKobo = DefaultMaxAmountKobo
	}
	return &service{
		store:     store,
		users:     users,
		kyc:       kyc,
		maxAmount: cfg.MaxAmountKobo,
	}
}

func (s *service) Credit(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error) {
	if err := ValidateAmount(amount, s.maxAmount); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	var txn *models.Transaction
	err := s.store.WithinTransaction(ctx, func(tx repositories.LedgerStore) error {
		wallet, err := tx.GetWalletByUserID(userID)
		if err != nil {
			return err
		}
		clearing, err := tx.GetClearingWallet(currency)
		if err != nil {
			return err
		}

		txn = &models.Transaction{
			UserID:    userID,
			Type:      models.TransactionTypeDeposit,
			Amount:    amount,
			Status:    models.TransactionStatusPending,
			Reference: utils.NewReference(),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		if err := tx.IncrementBalance(wallet.ID, amount); err != nil {
			return err
		}
		// The clearing wallet models the external funding source; it is
		// allowed to go negative.
		if err := tx.DecrementBalance(clearing.ID, amount); err != nil {
			return err
		}

		if err := tx.CreateEntryPair(
			models.LedgerEntry{TransactionID: txn.ID, WalletID: wallet.ID, EntryType: models.EntryTypeCredit, Amount: amount},
			models.LedgerEntry{TransactionID: txn.ID, WalletID: clearing.ID, EntryType: models.EntryTypeDebit, Amount: amount},
		); err != nil {
			return err
		}

		if err := tx.MarkTransactionStatus(txn.ID, models.TransactionStatusSuccess); err != nil {
			return err
		}
		txn.Status = models.TransactionStatusSuccess
		return tx.LoadEntries(txn)
	})
	if err != nil {
		return nil, mapStoreError(err, "credit")
	}
	return txn, nil
}

func (s *service) Debit(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error) {
	if err := ValidateAmount(amount, s.maxAmount); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	var txn *models.Transaction
	var insufficient bool
	err := s.store.WithinTransaction(ctx, func(tx repositories.LedgerStore) error {
		wallet, err := tx.GetWalletByUserID(userID)
		if err != nil {
			return err
		}
		clearing, err := tx.GetClearingWallet(currency)
		if err != nil {
			return err
		}

		txn = &models.Transaction{
			UserID:    userID,
			Type:      models.TransactionTypeWithdrawal,
			Amount:    amount,
			Status:    models.TransactionStatusPending,
			Reference: utils.NewReference(),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		ok, err := tx.ConditionalDecrement(wallet.ID, amount)
		if err != nil {
			return err
		}
		if !ok {
			// Commit the unit with only the FAILED marker: no balance was
			// touched and no entries exist, so there is nothing to roll back.
			insufficient = true
			txn.Status = models.TransactionStatusFailed
			return tx.MarkTransactionStatus(txn.ID, models.TransactionStatusFailed)
		}

		if err := tx.IncrementBalance(clearing.ID, amount); err != nil {
			return err
		}

		if err := tx.CreateEntryPair(
			models.LedgerEntry{TransactionID: txn.ID, WalletID: clearing.ID, EntryType: models.EntryTypeCredit, Amount: amount},
			models.LedgerEntry{TransactionID: txn.ID, WalletID: wallet.ID, EntryType: models.EntryTypeDebit, Amount: amount},
		); err != nil {
			return err
		}

		if err := tx.MarkTransactionStatus(txn.ID, models.TransactionStatusSuccess); err != nil {
			return err
		}
		txn.Status = models.TransactionStatusSuccess
		return tx.LoadEntries(txn)
	})
	if err != nil {
		return nil, mapStoreError(err, "debit")
	}
	if insufficient {
		return txn, ErrInsufficientBalance
	}
	return txn, nil
}

func (s *service) Transfer(ctx context.Context, senderID uint, recipientEmail string, amount int64) (*models.Transaction, error) {
	if err := ValidateAmount(amount, s.maxAmount); err != nil {
		return nil, err
	}

	// Preconditions are checked before the atomic unit opens; none of them
	// depend on balance state.
	recipient, err := s.users.GetByEmail(recipientEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	if senderID == recipient.ID {
		return nil, ErrSelfTransfer
	}

	record, err := s.kyc.GetByUserID(senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKYCRequired
		}
		return nil, fmt.Errorf("failed to check kyc status: %w", err)
	}
	if record.Status != models.KYCStatusVerified {
		return nil, ErrKYCRequired
	}

	var txn *models.Transaction
	var insufficient bool
	err = s.store.WithinTransaction(ctx, func(tx repositories.LedgerStore) error {
		senderWallet, err := tx.GetWalletByUserID(senderID)
		if err != nil {
			return err
		}
		recipientWallet, err := tx.GetWalletByUserID(recipient.ID)
		if err != nil {
			return err
		}

		recipientID := recipient.ID
		txn = &models.Transaction{
			UserID:      senderID,
			RecipientID: &recipientID,
			Type:        models.TransactionTypeTransfer,
			Amount:      amount,
			Status:      models.TransactionStatusPending,
			Reference:   utils.NewReference(),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		ok, err := tx.ConditionalDecrement(senderWallet.ID, amount)
		if err != nil {
			return err
		}
		if !ok {
			insufficient = true
			txn.Status = models.TransactionStatusFailed
			return tx.MarkTransactionStatus(txn.ID, models.TransactionStatusFailed)
		}

		if err := tx.IncrementBalance(recipientWallet.ID, amount); err != nil {
			return err
		}

		if err := tx.CreateEntryPair(
			models.LedgerEntry{TransactionID: txn.ID, WalletID: recipientWallet.ID, EntryType: models.EntryTypeCredit, Amount: amount},
			models.LedgerEntry{TransactionID: txn.ID, WalletID: senderWallet.ID, EntryType: models.EntryTypeDebit, Amount: amount},
		); err != nil {
			return err
		}

		if err := tx.MarkTransactionStatus(txn.ID, models.TransactionStatusSuccess); err != nil {
			return err
		}
		txn.Status = models.TransactionStatusSuccess
		return tx.LoadEntries(txn)
	})
	if err != nil {
		return nil, mapStoreError(err, "transfer")
	}
	if insufficient {
		return txn, ErrInsufficientBalance
	}
	return txn, nil
}

func (s *service) CreditSettled(tx repositories.LedgerStore, txn *models.Transaction, currency string) error {
	wallet, err := tx.GetWalletByUserID(txn.UserID)
	if err != nil {
		return err
	}
	clearing, err := tx.GetClearingWallet(currency)
	if err != nil {
		return err
	}

	if err := tx.IncrementBalance(wallet.ID, txn.Amount); err != nil {
		return err
	}
	if err := tx.DecrementBalance(clearing.ID, txn.Amount); err != nil {
		return err
	}

	return tx.CreateEntryPair(
		models.LedgerEntry{TransactionID: txn.ID, WalletID: wallet.ID, EntryType: models.EntryTypeCredit, Amount: txn.Amount},
		models.LedgerEntry{TransactionID: txn.ID, WalletID: clearing.ID, EntryType: models.EntryTypeDebit, Amount: txn.Amount},
	)
}

// mapStoreError translates repository sentinels into service errors and
// wraps everything else.
func mapStoreError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrWalletNotFound):
		return ErrWalletNotFound
	case errors.Is(err, repositories.ErrClearingWalletMissing):
		// Misconfiguration, not a user error; propagate as-is so the
		// handler can report a server fault.
		return err
	default:
		return fmt.Errorf("%s failed: %w", op, err)
	}
}
