package payment

import (
	"context"

	"kobopay/internal/models"
)

// Service initiates deposits with the external payment provider.
type Service interface {
	InitializeDeposit(ctx context.Context, userID uint, amountNaira float64, idempotencyKey string) (*DepositIntent, error)
}

// ProviderClient is the payment provider's initialize-transaction call.
// Kept behind an interface so tests never touch the network.
type ProviderClient interface {
	InitializeTransaction(ctx context.Context, email string, amountKobo int64, reference string) (*InitializeResult, error)
}

// InitializeResult is what the provider returns for a new checkout session.
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// DepositIntent is the outcome of deposit initiation. AlreadyExists is true
// when the idempotency key matched a previous submission; in that case the
// original transaction is returned unchanged and the provider is not called.
type DepositIntent struct {
	Transaction      *models.Transaction
	AuthorizationURL string
	AlreadyExists    bool
}
