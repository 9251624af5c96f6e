package repositories

import (
	"kobopay/internal/models"

	"gorm.io/gorm"
)

// KYCRepository reads and writes identity verification records.
type KYCRepository interface {
	GetByUserID(userID uint) (*models.KYCRecord, error)
	Create(record *models.KYCRecord) error
	UpdateStatus(userID uint, status string) error
}

type gormKYCRepository struct {
	db *gorm.DB
}

func NewKYCRepository(db *gorm.DB) KYCRepository {
	return &gormKYCRepository{db: db}
}

func (r *gormKYCRepository) GetByUserID(userID uint) (*models.KYCRecord, error) {
	var record models.KYCRecord
	if err := r.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gormKYCRepository) Create(record *models.KYCRecord) error {
	return r.db.Create(record).Error
}

func (r *gormKYCRepository) UpdateStatus(userID uint, status string) error {
	res := r.db.Model(&models.KYCRecord{}).
		Where("user_id = ?", userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
