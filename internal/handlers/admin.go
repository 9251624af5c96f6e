package handlers

import (
	"kobopay/internal/services/admin"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	result, err := h.adminService.ListUsers(c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return utils.InternalError(c, "failed to list users")
	}
	return utils.Success(c, result)
}

func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	result, err := h.adminService.ListTransactions(
		c.Query("status"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", 20),
	)
	if err != nil {
		return utils.InternalError(c, "failed to list transactions")
	}
	return utils.Success(c, result)
}
