package handlers

import (
	"errors"

	"kobopay/internal/models"
	"kobopay/internal/services/kyc"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type KYCHandler struct {
	kycService kyc.Service
}

func NewKYCHandler(kycService kyc.Service) *KYCHandler {
	return &KYCHandler{kycService: kycService}
}

func (h *KYCHandler) Submit(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		DocumentID string `json:"document_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.DocumentID == "" {
		return utils.BadRequest(c, "document_id is required")
	}

	record, err := h.kycService.Submit(claims.UserID, input.DocumentID)
	if err != nil {
		return utils.InternalError(c, "failed to submit kyc")
	}
	return utils.Success(c, fiber.Map{"kyc": record})
}

func (h *KYCHandler) Status(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	record, err := h.kycService.GetStatus(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "no kyc record")
		}
		return utils.InternalError(c, "failed to fetch kyc status")
	}
	return utils.Success(c, fiber.Map{"kyc": record})
}

// SetStatus lets an admin move a record to VERIFIED or REJECTED.
func (h *KYCHandler) SetStatus(c *fiber.Ctx) error {
	var input struct {
		UserID uint   `json:"user_id"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Status != models.KYCStatusVerified && input.Status != models.KYCStatusRejected {
		return utils.BadRequest(c, "status must be VERIFIED or REJECTED")
	}

	if err := h.kycService.SetStatus(input.UserID, input.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "no kyc record for user")
		}
		return utils.InternalError(c, "failed to update kyc status")
	}
	return utils.Success(c, fiber.Map{"updated": true})
}
