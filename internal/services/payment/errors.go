package payment

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProviderRejected = errors.New("payment provider rejected the request")
)
