package repositories

import (
	"log"

	"kobopay/internal/models"

	"gorm.io/gorm"
)

// CreateWallet opens a zero-balance wallet for a user.
func CreateWallet(db *gorm.DB, userID uint, currency string) (*models.Wallet, error) {
	wallet := &models.Wallet{
		UserID:   &userID,
		Balance:  0,
		Currency: currency,
	}
	if err := db.Create(wallet).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}

// EnsureClearingWallet creates the system wallet for a currency if it does
// not exist yet. Called at startup before the server accepts traffic; every
// money operation assumes the row is there.
func EnsureClearingWallet(db *gorm.DB, currency string) error {
	var existing models.Wallet
	err := db.Where("is_system = ? AND currency = ?", true, currency).First(&existing).Error
	if err == nil {
		log.Printf("clearing wallet already exists: id=%d currency=%s", existing.ID, existing.Currency)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	wallet := models.Wallet{
		UserID:   nil,
		Balance:  0,
		Currency: currency,
		IsSystem: true,
	}
	if err := db.Create(&wallet).Error; err != nil {
		return err
	}
	log.Printf("clearing wallet created: id=%d currency=%s", wallet.ID, currency)
	return nil
}
