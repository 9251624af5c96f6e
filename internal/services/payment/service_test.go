package payment

import (
	"context"
	"math"
	"testing"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/services/ledger"
	"kobopay/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) InitializeTransaction(ctx context.Context, email string, amountKobo int64, reference string) (*InitializeResult, error) {
	args := m.Called(ctx, email, amountKobo, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InitializeResult), args.Error(1)
}

func TestInitializeDeposit(t *testing.T) {
	user := &models.User{ID: 10, Email: "obi@example.com"}

	t.Run("creates a pending deposit and opens a checkout session", func(t *testing.T) {
		store := new(testutil.MockLedgerStore)
		users := new(testutil.MockUserRepository)
		provider := new(mockProvider)

		users.On("GetByID", uint(10)).Return(user, nil)
		store.On("FindTransactionByIdempotencyKey", uint(10), "key-1").
			Return(nil, repositories.ErrTransactionNotFound)
		store.On("CreateTransaction", mock.MatchedBy(func(txn *models.Transaction) bool {
			return txn.Type == models.TransactionTypeDeposit &&
				txn.Status == models.TransactionStatusPending &&
				txn.Amount == 200000 &&
				txn.IdempotencyKey != nil && *txn.IdempotencyKey == "key-1"
		})).Return(nil)
		provider.On("InitializeTransaction", mock.Anything, "obi@example.com", int64(200000), mock.AnythingOfType("string")).
			Return(&InitializeResult{AuthorizationURL: "https://checkout.example/abc"}, nil)

		svc := NewService(store, users, provider, Config{})
		intent, err := svc.InitializeDeposit(context.Background(), 10, 2000, "key-1")

		require.NoError(t, err)
		assert.False(t, intent.AlreadyExists)
		assert.Equal(t, "https://checkout.example/abc", intent.AuthorizationURL)
		assert.Equal(t, int64(200000), intent.Transaction.Amount)
		store.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("repeated idempotency key returns the original without calling the provider", func(t *testing.T) {
		store := new(testutil.MockLedgerStore)
		users := new(testutil.MockUserRepository)
		provider := new(mockProvider)

		existing := &models.Transaction{
			ID:        7,
			UserID:    10,
			Type:      models.TransactionTypeDeposit,
			Amount:    200000,
			Status:    models.TransactionStatusPending,
			Reference: "TX-1",
		}
		users.On("GetByID", uint(10)).Return(user, nil)
		store.On("FindTransactionByIdempotencyKey", uint(10), "key-1").Return(existing, nil)

		svc := NewService(store, users, provider, Config{})
		intent, err := svc.InitializeDeposit(context.Background(), 10, 2000, "key-1")

		require.NoError(t, err)
		assert.True(t, intent.AlreadyExists)
		assert.Equal(t, existing, intent.Transaction)
		store.AssertNotCalled(t, "CreateTransaction", mock.Anything)
		provider.AssertNotCalled(t, "InitializeTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid naira amount", func(t *testing.T) {
		svc := NewService(new(testutil.MockLedgerStore), new(testutil.MockUserRepository), new(mockProvider), Config{})

		_, err := svc.InitializeDeposit(context.Background(), 10, -5, "")
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		_, err = svc.InitializeDeposit(context.Background(), 10, 10.005, "")
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	})

	t.Run("amount above the cap never reaches the store or the provider", func(t *testing.T) {
		store := new(testutil.MockLedgerStore)
		provider := new(mockProvider)
		svc := NewService(store, new(testutil.MockUserRepository), provider, Config{})

		// One kobo past the default cap of ₦100m.
		_, err := svc.InitializeDeposit(context.Background(), 10, 100_000_000.01, "")
		assert.ErrorIs(t, err, ledger.ErrAmountTooLarge)

		// Naira values whose kobo equivalent overflows int64 are rejected
		// outright rather than wrapping negative.
		_, err = svc.InitializeDeposit(context.Background(), 10, math.MaxInt64/100, "")
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

		store.AssertNotCalled(t, "CreateTransaction", mock.Anything)
		provider.AssertNotCalled(t, "InitializeTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := new(testutil.MockLedgerStore)
		users := new(testutil.MockUserRepository)
		users.On("GetByID", uint(99)).Return(nil, repositories.ErrUserNotFound)

		svc := NewService(store, users, new(mockProvider), Config{})
		_, err := svc.InitializeDeposit(context.Background(), 99, 2000, "")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("provider rejection keeps the pending record", func(t *testing.T) {
		store := new(testutil.MockLedgerStore)
		users := new(testutil.MockUserRepository)
		provider := new(mockProvider)

		users.On("GetByID", uint(10)).Return(user, nil)
		store.On("CreateTransaction", mock.AnythingOfType("*models.Transaction")).Return(nil)
		provider.On("InitializeTransaction", mock.Anything, "obi@example.com", int64(200000), mock.AnythingOfType("string")).
			Return(nil, assert.AnError)

		svc := NewService(store, users, provider, Config{})
		_, err := svc.InitializeDeposit(context.Background(), 10, 2000, "")

		assert.ErrorIs(t, err, ErrProviderRejected)
		store.AssertCalled(t, "CreateTransaction", mock.Anything)
	})
}
