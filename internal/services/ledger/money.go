package ledger

import (
	"math"
)

// NairaToKobo converts a caller-supplied naira amount to kobo. It rejects
// non-finite, non-positive and non-integral results (e.g. ₦10.005), so every
// stored amount is an exact positive integer. Pure function, no side effects.
func NairaToKobo(naira float64) (int64, error) {
	if math.IsNaN(naira) || math.IsInf(naira, 0) || naira <= 0 {
		return 0, ErrInvalidAmount
	}

	scaled := naira * 100
	kobo := math.Round(scaled)
	if math.Abs(scaled-kobo) > 1e-6 {
		return 0, ErrInvalidAmount
	}
	// float64(math.MaxInt64) rounds up to 2^63, so anything at or above it
	// would overflow the int64 conversion.
	if kobo <= 0 || kobo >= float64(math.MaxInt64) {
		return 0, ErrInvalidAmount
	}

	return int64(kobo), nil
}

// KoboToNaira converts kobo back to naira for display.
func KoboToNaira(kobo int64) float64 {
	return float64(kobo) / 100
}

// ValidateAmount applies the uniform positive-integer check plus the upper
// bound. Every money-movement entry point runs it, deposits included.
func ValidateAmount(amount, max int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > max {
		return ErrAmountTooLarge
	}
	return nil
}
