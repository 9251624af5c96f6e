// Package handlers wires HTTP requests to services.
package handlers

import (
	"time"

	"kobopay/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles everything SetupRoutes needs.
type Handlers struct {
	Auth        *AuthHandler
	Wallet      *WalletHandler
	Payment     *PaymentHandler
	Webhook     *WebhookHandler
	Transaction *TransactionHandler
	KYC         *KYCHandler
	Admin       *AdminHandler
}

// SetupRoutes registers all routes on the fiber app.
func SetupRoutes(app *fiber.App, h Handlers, rdb *redis.Client) {
	api := app.Group("/api/v1")

	api.Get("/health", Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)

	// Provider callbacks carry no bearer token; the rate limiter throttles
	// the pre-verification evidence writes instead.
	api.Post("/webhooks/paystack",
		middleware.RateLimit(rdb, "webhook", 60, time.Minute),
		h.Webhook.Paystack)

	user := api.Group("/", middleware.Auth())
	user.Get("/wallet", h.Wallet.GetWallet)
	user.Post("/wallet/transfer", h.Wallet.Transfer)
	user.Post("/payments/deposit", h.Payment.InitializeDeposit)
	user.Get("/transactions", h.Transaction.History)
	user.Get("/transactions/:reference", h.Transaction.ByReference)
	user.Post("/kyc", h.KYC.Submit)
	user.Get("/kyc", h.KYC.Status)

	adminGroup := api.Group("/admin", middleware.Auth(), middleware.RequireRole("admin"))
	adminGroup.Get("/users", h.Admin.ListUsers)
	adminGroup.Get("/transactions", h.Admin.ListTransactions)
	adminGroup.Post("/kyc/status", h.KYC.SetStatus)
	adminGroup.Post("/wallet/credit", h.Wallet.TestCredit)
	adminGroup.Post("/wallet/debit", h.Wallet.TestDebit)
}
