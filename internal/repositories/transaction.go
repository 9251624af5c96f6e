package repositories

import (
	"errors"

	"kobopay/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository serves read paths: history listings and reference
// lookups. Money movement never goes through here.
type TransactionRepository interface {
	ListByUser(userID uint, limit, offset int) ([]models.Transaction, int64, error)
	GetByUserAndReference(userID uint, reference string) (*models.Transaction, error)
	ListAll(status string, limit, offset int) ([]models.Transaction, int64, error)
}

type gormTransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &gormTransactionRepository{db: db}
}

func (r *gormTransactionRepository) ListByUser(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var txns []models.Transaction
	var total int64

	if err := r.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Entries").
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (r *gormTransactionRepository) GetByUserAndReference(userID uint, reference string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.Where("user_id = ? AND reference = ?", userID, reference).
		Preload("Entries").
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *gormTransactionRepository) ListAll(status string, limit, offset int) ([]models.Transaction, int64, error) {
	var txns []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
