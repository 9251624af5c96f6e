package ledger

import "errors"

// Service errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be a positive integer in kobo")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum")
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrKYCRequired         = errors.New("kyc verification required to make transfers")
)
