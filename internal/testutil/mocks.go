// Package testutil holds shared test doubles for the repository interfaces.
package testutil

import (
	"context"

	"kobopay/internal/models"
	"kobopay/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockLedgerStore is a testify mock of repositories.LedgerStore.
// WithinTransaction is a passthrough: the callback runs against the same
// mock, mirroring how the real store binds a transaction handle.
type MockLedgerStore struct {
	mock.Mock
}

var _ repositories.LedgerStore = (*MockLedgerStore)(nil)

func (m *MockLedgerStore) WithinTransaction(ctx context.Context, fn func(tx repositories.LedgerStore) error) error {
	return fn(m)
}

func (m *MockLedgerStore) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockLedgerStore) GetClearingWallet(currency string) (*models.Wallet, error) {
	args := m.Called(currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockLedgerStore) ConditionalDecrement(walletID uint, amount int64) (bool, error) {
	args := m.Called(walletID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerStore) IncrementBalance(walletID uint, amount int64) error {
	return m.Called(walletID, amount).Error(0)
}

func (m *MockLedgerStore) DecrementBalance(walletID uint, amount int64) error {
	return m.Called(walletID, amount).Error(0)
}

func (m *MockLedgerStore) CreateTransaction(txn *models.Transaction) error {
	return m.Called(txn).Error(0)
}

func (m *MockLedgerStore) GetTransactionByReference(reference string) (*models.Transaction, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerStore) FindTransactionByIdempotencyKey(userID uint, key string) (*models.Transaction, error) {
	args := m.Called(userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerStore) MarkTransactionStatus(txnID uint, status string) error {
	return m.Called(txnID, status).Error(0)
}

func (m *MockLedgerStore) CompleteIfPending(txnID uint) (bool, error) {
	args := m.Called(txnID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerStore) FailIfPending(txnID uint) (bool, error) {
	args := m.Called(txnID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerStore) CreateEntryPair(credit, debit models.LedgerEntry) error {
	return m.Called(credit, debit).Error(0)
}

func (m *MockLedgerStore) LoadEntries(txn *models.Transaction) error {
	return m.Called(txn).Error(0)
}

func (m *MockLedgerStore) CreateWebhookEvent(event *models.WebhookEvent) error {
	return m.Called(event).Error(0)
}

func (m *MockLedgerStore) MarkEventProcessed(eventID uint) error {
	return m.Called(eventID).Error(0)
}

func (m *MockLedgerStore) AnnotateEventError(eventID uint, note string) error {
	return m.Called(eventID, note).Error(0)
}

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

var _ repositories.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

// MockKYCRepository is a testify mock of repositories.KYCRepository.
type MockKYCRepository struct {
	mock.Mock
}

var _ repositories.KYCRepository = (*MockKYCRepository)(nil)

func (m *MockKYCRepository) GetByUserID(userID uint) (*models.KYCRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KYCRecord), args.Error(1)
}

func (m *MockKYCRepository) Create(record *models.KYCRecord) error {
	return m.Called(record).Error(0)
}

func (m *MockKYCRepository) UpdateStatus(userID uint, status string) error {
	return m.Called(userID, status).Error(0)
}
