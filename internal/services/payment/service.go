package payment

import (
	"context"
	"errors"
	"fmt"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/services/ledger"
	"kobopay/internal/utils"
)

type service struct {
	store     repositories.LedgerStore
	users     repositories.UserRepository
	provider  ProviderClient
	maxAmount int64
}

// Config holds payment service configuration.
type Config struct {
	MaxAmountKobo int64
}

// NewService creates a new payment service.
func NewService(store repositories.LedgerStore, users repositories.UserRepository, provider ProviderClient, cfg Config) Service {
	if store == nil {
		panic("store is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if provider == nil {
		panic("provider client is required")
	}
	if cfg.MaxAmountKobo == 0 {
		cfg.MaxAmountKobo = ledger.DefaultMaxAmountKobo
	}
	return &service{
		store:     store,
		users:     users,
		provider:  provider,
		maxAmount: cfg.MaxAmountKobo,
	}
}

// InitializeDeposit converts the naira amount, deduplicates on the caller's
// idempotency key, records a PENDING deposit and opens a provider checkout
// session. The wallet is only credited later, when the provider's webhook
// confirms payment.
func (s *service) InitializeDeposit(ctx context.Context, userID uint, amountNaira float64, idempotencyKey string) (*DepositIntent, error) {
	amountKobo, err := ledger.NairaToKobo(amountNaira)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(amountKobo, s.maxAmount); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Idempotency guard: a repeated submission returns the original
	// transaction untouched. Pure lookup, nothing is retried or mutated.
	if idempotencyKey != "" {
		existing, err := s.store.FindTransactionByIdempotencyKey(userID, idempotencyKey)
		if err == nil {
			return &DepositIntent{Transaction: existing, AlreadyExists: true}, nil
		}
		if !errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, fmt.Errorf("idempotency lookup failed: %w", err)
		}
	}

	txn := &models.Transaction{
		UserID:    userID,
		Type:      models.TransactionTypeDeposit,
		Amount:    amountKobo,
		Status:    models.TransactionStatusPending,
		Reference: utils.NewReference(),
	}
	if idempotencyKey != "" {
		txn.IdempotencyKey = &idempotencyKey
	}
	if err := s.store.CreateTransaction(txn); err != nil {
		return nil, fmt.Errorf("failed to create deposit transaction: %w", err)
	}

	result, err := s.provider.InitializeTransaction(ctx, user.Email, amountKobo, txn.Reference)
	if err != nil {
		// The PENDING record stays; the webhook will never arrive for it and
		// the client may retry with the same idempotency key.
		return nil, fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}

	return &DepositIntent{
		Transaction:      txn,
		AuthorizationURL: result.AuthorizationURL,
	}, nil
}
