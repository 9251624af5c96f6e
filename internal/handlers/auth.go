package handlers

import (
	"errors"

	"kobopay/internal/services/auth"
	"kobopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.FullName == "" || input.Email == "" || len(input.Password) < 8 {
		return utils.BadRequest(c, "full_name, email and a password of 8+ characters are required")
	}

	user, err := h.authService.Register(input.FullName, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "registration failed")
	}

	return utils.Success(c, fiber.Map{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	user, token, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, err.Error())
		}
		return utils.InternalError(c, "login failed")
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}
