package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is a display-only price. The cart never does arithmetic on it.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}
