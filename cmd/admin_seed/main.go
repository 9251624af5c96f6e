// Seeds the admin account and the clearing wallet. Run once per environment
// before the server takes traffic.
package main

import (
	"log"
	"os"

	"kobopay/internal/config"
	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/services/ledger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := repositories.EnsureClearingWallet(repositories.DB, ledger.DefaultCurrency); err != nil {
		log.Fatalf("failed to ensure clearing wallet: %v", err)
	}

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password:", err)
	}

	admin := models.User{
		FullName: "Administrator",
		Email:    adminEmail,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin user:", err)
	}

	log.Println("admin account created")
}
