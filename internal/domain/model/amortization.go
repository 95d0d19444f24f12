package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is one period of a fixed-payment amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}
