package model

import (
	"fmt"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
)

const (
	// AmountScale is the number of decimal places money is stored with
	AmountScale = 2
	// AmountIntDigits is the number of integer digits a numeric(20,2) column holds
	AmountIntDigits = 18
)

// CheckAmount accepts positive amounts that fit the money columns.
// Size is checked on the coefficient and exponent before any rescaling.
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be positive", apperr.ErrInvalidAmount)
	}

	exp := int64(amount.Exponent())
	digits := int64(len(amount.Coefficient().Text(10)))

	if digits+exp > AmountIntDigits {
		return fmt.Errorf("%w: more than %d integer digits", apperr.ErrInvalidAmount, AmountIntDigits)
	}

	// the coefficient cannot end in more zeros than it has digits
	if -exp-AmountScale > digits {
		return fmt.Errorf("%w: at most %d decimal places", apperr.ErrInvalidAmount, AmountScale)
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: at most %d decimal places", apperr.ErrInvalidAmount, AmountScale)
	}

	return nil
}
