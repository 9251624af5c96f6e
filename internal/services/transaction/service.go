// Package transaction serves read-only transaction history.
package transaction

import (
	"kobopay/internal/models"
	"kobopay/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a paginated slice of a user's transaction history.
type Page struct {
	Items      []models.Transaction `json:"items"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int64                `json:"total"`
	TotalPages int64                `json:"total_pages"`
}

type Service interface {
	History(userID uint, page, limit int) (*Page, error)
	ByReference(userID uint, reference string) (*models.Transaction, error)
}

type service struct {
	repo repositories.TransactionRepository
}

func NewService(repo repositories.TransactionRepository) Service {
	return &service{repo: repo}
}

func (s *service) History(userID uint, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.repo.ListByUser(userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &Page{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ByReference(userID uint, reference string) (*models.Transaction, error) {
	return s.repo.GetByUserAndReference(userID, reference)
}
