package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNairaToKobo(t *testing.T) {
	tests := []struct {
		name    string
		naira   float64
		want    int64
		wantErr bool
	}{
		{name: "whole naira", naira: 2000, want: 200000},
		{name: "naira with kobo", naira: 50.50, want: 5050},
		{name: "one kobo", naira: 0.01, want: 1},
		{name: "zero", naira: 0, wantErr: true},
		{name: "negative", naira: -10, wantErr: true},
		{name: "fractional kobo", naira: 10.005, wantErr: true},
		{name: "overflows int64 kobo", naira: float64(math.MaxInt64) / 100, wantErr: true},
		{name: "far beyond int64 kobo", naira: 1e30, wantErr: true},
		{name: "NaN", naira: math.NaN(), wantErr: true},
		{name: "positive infinity", naira: math.Inf(1), wantErr: true},
		{name: "negative infinity", naira: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NairaToKobo(tt.naira)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKoboToNaira(t *testing.T) {
	assert.Equal(t, 20.5, KoboToNaira(2050))
	assert.Equal(t, 0.01, KoboToNaira(1))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1, DefaultMaxAmountKobo))
	assert.NoError(t, ValidateAmount(DefaultMaxAmountKobo, DefaultMaxAmountKobo))
	assert.ErrorIs(t, ValidateAmount(0, DefaultMaxAmountKobo), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(-500, DefaultMaxAmountKobo), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(DefaultMaxAmountKobo+1, DefaultMaxAmountKobo), ErrAmountTooLarge)
}
