// Package settlement reconciles provider payment confirmations with pending
// deposits, crediting each at most once whatever the delivery order or count.
package settlement

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/services/ledger"

	"github.com/google/uuid"
)

// EventSucceeded is the only provider event that moves money.
const EventSucceeded = "charge.success"

// Service processes inbound provider webhooks.
type Service interface {
	// ProcessEvent runs the full reconciliation sequence over the exact raw
	// request bytes. A non-nil error means the provider should retry;
	// redelivery is always safe because completed references become no-ops.
	ProcessEvent(ctx context.Context, rawBody []byte, signature string) error
}

type service struct {
	store     repositories.LedgerStore
	ledger    ledger.Service
	provider  string
	secretKey string
}

// Config holds settlement configuration.
type Config struct {
	Provider  string // e.g. "paystack"
	SecretKey string // shared HMAC secret, same key used for API calls
}

// NewService creates a new settlement service.
func NewService(store repositories.LedgerStore, ledgerSvc ledger.Service, cfg Config) Service {
	if store == nil {
		panic("store is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if cfg.Provider == "" {
		cfg.Provider = "paystack"
	}
	return &service{
		store:     store,
		ledger:    ledgerSvc,
		provider:  cfg.Provider,
		secretKey: cfg.SecretKey,
	}
}

type providerEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // kobo
		Currency  string `json:"currency"`
	} `json:"data"`
}

func (s *service) ProcessEvent(ctx context.Context, rawBody []byte, signature string) error {
	// Parse leniently; a payload we cannot decode still gets an evidence row.
	var payload providerEvent
	parseErr := json.Unmarshal(rawBody, &payload)

	// Step 1: forensic record, written before any trust decision.
	event := &models.WebhookEvent{
		EventID:   uuid.NewString(),
		Provider:  s.provider,
		EventType: payload.Event,
		Reference: payload.Data.Reference,
		Signature: signature,
		Payload:   string(rawBody),
	}
	if err := s.store.CreateWebhookEvent(event); err != nil {
		return fmt.Errorf("failed to record webhook event: %w", err)
	}

	// Step 2: authenticate the exact raw bytes.
	if !s.verifySignature(rawBody, signature) {
		s.annotate(event.ID, "invalid signature")
		return ErrInvalidSignature
	}

	if parseErr != nil {
		s.annotate(event.ID, "malformed payload: "+parseErr.Error())
		return s.store.MarkEventProcessed(event.ID)
	}

	// Step 3: only successful charges move money.
	if payload.Event != EventSucceeded {
		return s.store.MarkEventProcessed(event.ID)
	}

	// A success event without a reference or amount cannot be reconciled.
	// Acknowledge and leave the deposit PENDING so a complete redelivery
	// can still settle it.
	if payload.Data.Reference == "" || payload.Data.Amount <= 0 {
		s.annotate(event.ID, "missing reference or amount")
		return s.store.MarkEventProcessed(event.ID)
	}

	currency := payload.Data.Currency
	if currency == "" {
		currency = ledger.DefaultCurrency
	}

	// Steps 4-7 share one database transaction with the status transition,
	// so the credit and the SUCCESS flip commit together.
	err := s.store.WithinTransaction(ctx, func(tx repositories.LedgerStore) error {
		txn, err := tx.GetTransactionByReference(payload.Data.Reference)
		if err != nil {
			if errors.Is(err, repositories.ErrTransactionNotFound) {
				return tx.MarkEventProcessed(event.ID)
			}
			return err
		}

		// Idempotent replay protection: unknown kinds and finished
		// transactions are acknowledged without action.
		if txn.Type != models.TransactionTypeDeposit ||
			txn.Status == models.TransactionStatusSuccess {
			return tx.MarkEventProcessed(event.ID)
		}

		if txn.Amount != payload.Data.Amount {
			// Integrity violation: never partially credit. The FAILED marker
			// commits with the annotation. The transition is conditional so
			// a completion racing in since the read above is not clobbered.
			if _, err := tx.FailIfPending(txn.ID); err != nil {
				return err
			}
			if err := tx.AnnotateEventError(event.ID, fmt.Sprintf(
				"amount mismatch: webhook=%d transaction=%d", payload.Data.Amount, txn.Amount)); err != nil {
				return err
			}
			return tx.MarkEventProcessed(event.ID)
		}

		won, err := tx.CompleteIfPending(txn.ID)
		if err != nil {
			return err
		}
		if !won {
			// A concurrent path finished this transaction first.
			return tx.MarkEventProcessed(event.ID)
		}

		if err := s.ledger.CreditSettled(tx, txn, currency); err != nil {
			return err
		}
		return tx.MarkEventProcessed(event.ID)
	})
	if err != nil {
		// Leave the failure on the evidence row for manual follow-up; the
		// provider gets an error response and will retry.
		s.annotate(event.ID, err.Error())
		return err
	}
	return nil
}

func (s *service) verifySignature(rawBody []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// annotate is best-effort; evidence notes must not mask the primary outcome.
func (s *service) annotate(eventID uint, note string) {
	if err := s.store.AnnotateEventError(eventID, note); err != nil {
		log.Printf("failed to annotate webhook event %d: %v", eventID, err)
	}
}
