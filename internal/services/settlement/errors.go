package settlement

import "errors"

var ErrInvalidSignature = errors.New("invalid webhook signature")
