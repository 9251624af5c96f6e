package handlers

import (
	"errors"
	"log"

	"kobopay/internal/services/settlement"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the provider's HMAC over the raw request body.
const SignatureHeader = "x-paystack-signature"

type WebhookHandler struct {
	settlementService settlement.Service
}

func NewWebhookHandler(settlementService settlement.Service) *WebhookHandler {
	return &WebhookHandler{settlementService: settlementService}
}

// Paystack receives provider callbacks. The raw bytes are passed through
// untouched; re-serializing a parsed body would break signature verification.
// Responses follow the provider's retry contract: 401 tells it the call was
// unauthenticated, 200 acknowledges, 500 asks for a redelivery.
func (h *WebhookHandler) Paystack(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Get(SignatureHeader)

	err := h.settlementService.ProcessEvent(c.Context(), rawBody, signature)
	if err != nil {
		if errors.Is(err, settlement.ErrInvalidSignature) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "invalid signature",
			})
		}
		log.Printf("webhook processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "webhook error",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
