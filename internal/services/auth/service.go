// Package auth handles registration and login. Token issuing is the only
// crypto it owns; identity verification (KYC) lives elsewhere.
package auth

import (
	"errors"
	"log"

	"kobopay/internal/models"
	"kobopay/internal/repositories"
	"kobopay/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service interface {
	Register(fullName, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
}

type service struct {
	userRepo repositories.UserRepository
	db       *gorm.DB
}

func NewService(userRepo repositories.UserRepository, db *gorm.DB) Service {
	return &service{
		userRepo: userRepo,
		db:       db,
	}
}

// Register creates a user and opens their wallet in one transaction.
func (s *service) Register(fullName, email, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: fullName,
		Email:    email,
		Password: string(hash),
		Role:     "user",
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		wallet, err := repositories.CreateWallet(tx, user.ID, "NGN")
		if err != nil {
			return err
		}
		user.Wallet = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("login failed: no user for email %s", email)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: wrong password for user %d", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
