package settlement

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "sk_test_secret"

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Credit(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error) {
	args := m.Called(ctx, userID, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockLedger) Debit(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error) {
	args := m.Called(ctx, userID, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockLedger) Transfer(ctx context.Context, senderID uint, recipientEmail string, amount int64) (*models.Transaction, error) {
	args := m.Called(ctx, senderID, recipientEmail, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockLedger) CreditSettled(tx repositories.LedgerStore, txn *models.Transaction, currency string) error {
	return m.Called(tx, txn, currency).Error(0)
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func expectEvidence(store *testutil.MockLedgerStore) {
	store.On("CreateWebhookEvent", mock.AnythingOfType("*models.WebhookEvent")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.WebhookEvent).ID = 1
		}).
		Return(nil)
}

func newTestService(store *testutil.MockLedgerStore, ledgerSvc *mockLedger) Service {
	return NewService(store, ledgerSvc, Config{Provider: "paystack", SecretKey: testSecret})
}

func TestProcessEvent_InvalidSignature(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("AnnotateEventError", uint(1), "invalid signature").Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, "deadbeef")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	// The forensic record is written even though processing stopped.
	store.AssertCalled(t, "CreateWebhookEvent", mock.Anything)
	store.AssertNotCalled(t, "MarkEventProcessed", mock.Anything)
	store.AssertNotCalled(t, "GetTransactionByReference", mock.Anything)
}

func TestProcessEvent_MissingSignature(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("AnnotateEventError", uint(1), "invalid signature").Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, "")

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestProcessEvent_IgnoredEventType(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.failed","data":{"reference":"TX-1","amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	store.AssertNotCalled(t, "GetTransactionByReference", mock.Anything)
}

func TestProcessEvent_MalformedPayload(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("AnnotateEventError", uint(1), mock.MatchedBy(func(note string) bool {
		return strings.HasPrefix(note, "malformed payload")
	})).Return(nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{not json`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
}

func TestProcessEvent_UnknownReference(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-NOPE").Return(nil, repositories.ErrTransactionNotFound)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-NOPE","amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	ledgerSvc.AssertNotCalled(t, "CreditSettled", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessEvent_DuplicateDeliveryIsNoOp(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-1").Return(&models.Transaction{
		ID:     7,
		UserID: 10,
		Type:   models.TransactionTypeDeposit,
		Amount: 5000,
		Status: models.TransactionStatusSuccess,
	}, nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":5000,"currency":"NGN"}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	ledgerSvc.AssertNotCalled(t, "CreditSettled", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CompleteIfPending", mock.Anything)
}

func TestProcessEvent_NonDepositIsNoOp(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-1").Return(&models.Transaction{
		ID:     7,
		Type:   models.TransactionTypeTransfer,
		Amount: 5000,
		Status: models.TransactionStatusPending,
	}, nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	ledgerSvc.AssertNotCalled(t, "CreditSettled", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessEvent_AmountMismatchFailsTransaction(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-1").Return(&models.Transaction{
		ID:     7,
		UserID: 10,
		Type:   models.TransactionTypeDeposit,
		Amount: 5000,
		Status: models.TransactionStatusPending,
	}, nil)
	store.On("FailIfPending", uint(7)).Return(true, nil)
	store.On("AnnotateEventError", uint(1), mock.MatchedBy(func(note string) bool {
		return strings.Contains(note, "amount mismatch")
	})).Return(nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":9999}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	ledgerSvc.AssertNotCalled(t, "CreditSettled", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CompleteIfPending", mock.Anything)
	store.AssertExpectations(t)
}

func TestProcessEvent_MismatchLeavesConcurrentlyCompletedAlone(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-1").Return(&models.Transaction{
		ID:     7,
		UserID: 10,
		Type:   models.TransactionTypeDeposit,
		Amount: 5000,
		Status: models.TransactionStatusPending,
	}, nil)
	// A concurrent path finished the transaction between the read and the
	// conditional fail; the FAILED flip loses and the event is still acked.
	store.On("FailIfPending", uint(7)).Return(false, nil)
	store.On("AnnotateEventError", uint(1), mock.AnythingOfType("string")).Return(nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":9999}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	store.AssertNotCalled(t, "MarkTransactionStatus", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestProcessEvent_MissingAmountLeavesDepositPending(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("AnnotateEventError", uint(1), "missing reference or amount").Return(nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	// A success event with no amount cannot be reconciled; the deposit must
	// stay PENDING so a complete redelivery can still settle it.
	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1"}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	store.AssertNotCalled(t, "GetTransactionByReference", mock.Anything)
	store.AssertNotCalled(t, "FailIfPending", mock.Anything)
	store.AssertNotCalled(t, "MarkTransactionStatus", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestProcessEvent_MissingReferenceLeavesDepositPending(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("AnnotateEventError", uint(1), "missing reference or amount").Return(nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	store.AssertNotCalled(t, "GetTransactionByReference", mock.Anything)
	ledgerSvc.AssertNotCalled(t, "CreditSettled", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessEvent_CreditsExactlyOnce(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	txn := &models.Transaction{
		ID:     7,
		UserID: 10,
		Type:   models.TransactionTypeDeposit,
		Amount: 5000,
		Status: models.TransactionStatusPending,
	}
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-1").Return(txn, nil)
	store.On("CompleteIfPending", uint(7)).Return(true, nil)
	ledgerSvc.On("CreditSettled", mock.Anything, txn, "NGN").Return(nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":5000,"currency":"NGN"}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	ledgerSvc.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestProcessEvent_LostRaceSkipsCredit(t *testing.T) {
	store := new(testutil.MockLedgerStore)
	ledgerSvc := new(mockLedger)
	expectEvidence(store)
	store.On("GetTransactionByReference", "TX-1").Return(&models.Transaction{
		ID:     7,
		UserID: 10,
		Type:   models.TransactionTypeDeposit,
		Amount: 5000,
		Status: models.TransactionStatusPending,
	}, nil)
	store.On("CompleteIfPending", uint(7)).Return(false, nil)
	store.On("MarkEventProcessed", uint(1)).Return(nil)

	body := []byte(`{"event":"charge.success","data":{"reference":"TX-1","amount":5000}}`)
	err := newTestService(store, ledgerSvc).ProcessEvent(context.Background(), body, sign(body))

	require.NoError(t, err)
	ledgerSvc.AssertNotCalled(t, "CreditSettled", mock.Anything, mock.Anything, mock.Anything)
}
