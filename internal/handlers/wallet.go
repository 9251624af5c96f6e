package handlers

import (
	"context"
	"errors"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/services/ledger"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	store  repositories.LedgerStore
	ledger ledger.Service
}

func NewWalletHandler(store repositories.LedgerStore, ledgerSvc ledger.Service) *WalletHandler {
	return &WalletHandler{
		store:  store,
		ledger: ledgerSvc,
	}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallet, err := h.store.GetWalletByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return utils.NotFound(c, "wallet not found")
		}
		return utils.InternalError(c, "failed to get wallet")
	}

	return utils.Success(c, fiber.Map{
		"wallet": fiber.Map{
			"id":          wallet.ID,
			"balance":     wallet.Balance,
			"balance_ngn": ledger.KoboToNaira(wallet.Balance),
			"currency":    wallet.Currency,
		},
	})
}

func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		RecipientEmail string `json:"recipient_email"`
		Amount         int64  `json:"amount"` // kobo
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.ledger.Transfer(c.Context(), claims.UserID, input.RecipientEmail, input.Amount)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{"transaction": txn})
}

// TestCredit and TestDebit exercise the ledger directly. Admin-only; real
// deposits go through payment initiation plus the settlement webhook.
func (h *WalletHandler) TestCredit(c *fiber.Ctx) error {
	return h.directMove(c, h.ledger.Credit)
}

func (h *WalletHandler) TestDebit(c *fiber.Ctx) error {
	return h.directMove(c, h.ledger.Debit)
}

func (h *WalletHandler) directMove(c *fiber.Ctx, op func(ctx context.Context, userID uint, amount int64, currency string) (*models.Transaction, error)) error {
	var input struct {
		UserID   uint   `json:"user_id"`
		Amount   int64  `json:"amount"` // kobo
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := op(c.Context(), input.UserID, input.Amount, input.Currency)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Success(c, fiber.Map{"transaction": txn})
}
