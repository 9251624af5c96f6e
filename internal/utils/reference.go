package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// NewReference returns a transaction reference like TX-1770679146975-596969.
// The reference is handed to the payment provider and must never be reused;
// the transactions table enforces uniqueness on top of this.
func NewReference() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// crypto/rand failing means the process is in real trouble
		panic("failed to read random bytes: " + err.Error())
	}
	return fmt.Sprintf("TX-%d-%06d", time.Now().UnixMilli(), n.Int64())
}
