package handlers

import (
	"errors"
	"log"

	"kobopay/internal/repositories"
	"kobopay/internal/services/ledger"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ledgerError maps ledger sentinels onto HTTP responses. A missing clearing
// wallet is a deployment defect and is reported as a server fault, loudly.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrAmountTooLarge),
		errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, ledger.ErrInsufficientBalance):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrWalletNotFound),
		errors.Is(err, ledger.ErrRecipientNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, ledger.ErrKYCRequired):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, repositories.ErrClearingWalletMissing):
		log.Printf("FATAL misconfiguration: %v", err)
		return utils.InternalError(c, "service misconfigured")
	default:
		log.Printf("ledger operation failed: %v", err)
		return utils.InternalError(c, "operation failed")
	}
}
