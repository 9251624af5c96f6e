package handlers

import (
	"errors"
	"log"

	"kobopay/internal/services/ledger"
	"kobopay/internal/services/payment"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitializeDeposit starts a provider checkout for the authenticated user.
// The Idempotency-Key header (or body field) makes client retries safe.
func (h *PaymentHandler) InitializeDeposit(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		AmountNaira    float64 `json:"amount"`
		IdempotencyKey string  `json:"idempotency_key"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	key := input.IdempotencyKey
	if headerKey := c.Get("Idempotency-Key"); headerKey != "" {
		key = headerKey
	}

	intent, err := h.paymentService.InitializeDeposit(c.Context(), claims.UserID, input.AmountNaira, key)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return utils.BadRequest(c, "amount must be a valid naira value")
		case errors.Is(err, ledger.ErrAmountTooLarge):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, payment.ErrUserNotFound):
			return utils.NotFound(c, err.Error())
		case errors.Is(err, payment.ErrProviderRejected):
			return utils.BadRequest(c, err.Error())
		default:
			log.Printf("deposit initialization failed: %v", err)
			return utils.InternalError(c, "failed to initialize deposit")
		}
	}

	resp := fiber.Map{
		"transaction":    intent.Transaction,
		"already_exists": intent.AlreadyExists,
	}
	if intent.AuthorizationURL != "" {
		resp["authorization_url"] = intent.AuthorizationURL
	}
	return utils.Success(c, resp)
}
