// Package admin provides back-office listings.
package admin

import (
	"kobopay/internal/models"
	"kobopay/internal/repositories"

	"gorm.io/gorm"
)

type UserPage struct {
	Users []models.User `json:"users"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
	Total        int64                `json:"total"`
}

type Service interface {
	ListUsers(page, limit int) (*UserPage, error)
	ListTransactions(status string, page, limit int) (*TransactionPage, error)
}

type service struct {
	db   *gorm.DB
	txns repositories.TransactionRepository
}

func NewService(db *gorm.DB, txns repositories.TransactionRepository) Service {
	return &service{db: db, txns: txns}
}

func (s *service) ListUsers(page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var users []models.User
	var total int64

	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}
	err := s.db.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Preload("Wallet").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return &UserPage{Users: users, Page: page, Limit: limit, Total: total}, nil
}

func (s *service) ListTransactions(status string, page, limit int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	txns, total, err := s.txns.ListAll(status, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &TransactionPage{Transactions: txns, Page: page, Limit: limit, Total: total}, nil
}
