// Package main is the entry point for the wallet ledger server.
package main

import (
	"log"
	"time"

	"kobopay/internal/config"
	"kobopay/internal/handlers"
	"kobopay/internal/repositories"
	"kobopay/internal/services/admin"
	"kobopay/internal/services/auth"
	"kobopay/internal/services/kyc"
	"kobopay/internal/services/ledger"
	"kobopay/internal/services/payment"
	"kobopay/internal/services/settlement"
	"kobopay/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	db := repositories.DB

	// Bootstrap contract: the clearing wallet must exist before any traffic.
	if err := repositories.EnsureClearingWallet(db, ledger.DefaultCurrency); err != nil {
		log.Fatalf("failed to ensure clearing wallet: %v", err)
	}

	rdb := repositories.NewRedisClient()
	defer rdb.Close()

	// Repositories
	store := repositories.NewLedgerStore(db)
	userRepo := repositories.NewUserRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	// Services
	ledgerSvc := ledger.NewService(store, userRepo, kycRepo, ledger.Config{})
	paystack := payment.NewPaystackClient(config.PaystackBaseURL(), config.PaystackSecretKey())
	paymentSvc := payment.NewService(store, userRepo, paystack, payment.Config{})
	settlementSvc := settlement.NewService(store, ledgerSvc, settlement.Config{
		Provider:  "paystack",
		SecretKey: config.PaystackSecretKey(),
	})
	authSvc := auth.NewService(userRepo, db)
	kycSvc := kyc.NewService(kycRepo)
	txnSvc := transaction.NewService(txnRepo)
	adminSvc := admin.NewService(db, txnRepo)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	handlers.SetupRoutes(app, handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authSvc),
		Wallet:      handlers.NewWalletHandler(store, ledgerSvc),
		Payment:     handlers.NewPaymentHandler(paymentSvc),
		Webhook:     handlers.NewWebhookHandler(settlementSvc),
		Transaction: handlers.NewTransactionHandler(txnSvc),
		KYC:         handlers.NewKYCHandler(kycSvc),
		Admin:       handlers.NewAdminHandler(adminSvc),
	}, rdb)

	go logPoolStats()

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

func logPoolStats() {
	sqlDB, err := repositories.DB.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		stats := sqlDB.Stats()
		log.Printf("db stats: open=%d idle=%d inUse=%d waitCount=%d",
			stats.OpenConnections, stats.Idle, stats.InUse, stats.WaitCount)
	}
}
