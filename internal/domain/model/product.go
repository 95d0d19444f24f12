package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a mortgage product offered by a partner lender.
type Product struct {
	ID             uuid.UUID
	LenderName     string
	LoanType       string
	Rate           decimal.Decimal
	APR            decimal.Decimal
	TermMonths     int
	Fees           decimal.Decimal
	MinCreditScore int
	// MinDownPayment is a fraction of the property price, e.g. 0.20.
	MinDownPayment decimal.Decimal
	MaxLoanAmount  decimal.Decimal
	Features       []string
}

// Eligibility is what an applicant brings to a product match.
type Eligibility struct {
	CreditScore int
	LoanAmount  decimal.Decimal
	DownPayment decimal.Decimal
}

// Accepts reports whether the applicant meets the product's minimums.
func (p Product) Accepts(e Eligibility) bool {
	if e.CreditScore < p.MinCreditScore {
		return false
	}
	if e.LoanAmount.GreaterThan(p.MaxLoanAmount) {
		return false
	}
	price := e.LoanAmount.Add(e.DownPayment)
	if !price.IsPositive() {
		return false
	}
	return e.DownPayment.Div(price).GreaterThanOrEqual(p.MinDownPayment)
}
