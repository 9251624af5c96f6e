package handlers

import (
	"errors"

	"kobopay/internal/repositories"
	"kobopay/internal/services/transaction"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	txnService transaction.Service
}

func NewTransactionHandler(txnService transaction.Service) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

func (h *TransactionHandler) History(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := h.txnService.History(claims.UserID, page, limit)
	if err != nil {
		return utils.InternalError(c, "failed to fetch transactions")
	}
	return utils.Success(c, result)
}

func (h *TransactionHandler) ByReference(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	txn, err := h.txnService.ByReference(claims.UserID, c.Params("reference"))
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return utils.NotFound(c, "transaction not found")
		}
		return utils.InternalError(c, "failed to fetch transaction")
	}
	return utils.Success(c, fiber.Map{"transaction": txn})
}
