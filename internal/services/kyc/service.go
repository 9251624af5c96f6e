// Package kyc stores identity verification records. The ledger consumes only
// the VERIFIED result; moving a record to VERIFIED is an admin action here.
package kyc

import (
	"kobopay/internal/models"
	"kobopay/internal/repositories"
)

type Service interface {
	Submit(userID uint, documentID string) (*models.KYCRecord, error)
	GetStatus(userID uint) (*models.KYCRecord, error)
	SetStatus(userID uint, status string) error
}

type service struct {
	repo repositories.KYCRepository
}

func NewService(repo repositories.KYCRepository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(userID uint, documentID string) (*models.KYCRecord, error) {
	record := &models.KYCRecord{
		UserID:     userID,
		DocumentID: documentID,
		Status:     models.KYCStatusPending,
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) GetStatus(userID uint) (*models.KYCRecord, error) {
	return s.repo.GetByUserID(userID)
}

func (s *service) SetStatus(userID uint, status string) error {
	return s.repo.UpdateStatus(userID, status)
}
