package service

import (
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/model"
)

// ProductQuote is a product together with the applicant's estimated payment.
type ProductQuote struct {
	Product        model.Product
	MonthlyPayment decimal.Decimal
}

// MatchProducts keeps the products whose minimums the applicant meets and
// quotes each at its own rate and term. Catalog order is preserved.
func MatchProducts(products []model.Product, e model.Eligibility) []ProductQuote {
	quotes := make([]ProductQuote, 0, len(products))
	loan := e.LoanAmount.InexactFloat64()
	for _, p := range products {
		if !p.Accepts(e) {
			continue
		}
		payment := PaymentForTerm(loan, p.Rate.InexactFloat64(), p.TermMonths)
		quotes = append(quotes, ProductQuote{Product: p, MonthlyPayment: round(payment, 2)})
	}
	return quotes
}

// RoundMoney rounds v to cents. NaN and infinities become zero.
func RoundMoney(v float64) decimal.Decimal { return round(v, 2) }
