package catalog

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/model"
)

// productNamespace seeds deterministic product IDs so they stay stable
// across restarts and replicas.
var productNamespace = uuid.MustParse("6f1c7d52-3a7e-4c1b-9d4e-2b8f5a0c9e31")

// StaticCatalog serves a fixed partner product list from memory.
type StaticCatalog struct {
	products []model.Product
}

// NewStaticCatalog returns a catalog over products, or the built-in partner
// list when none are given.
func NewStaticCatalog(products ...model.Product) *StaticCatalog {
	if len(products) == 0 {
		products = DefaultProducts()
	}
	return &StaticCatalog{products: slices.Clone(products)}
}

func (c *StaticCatalog) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(c.products))
	for i, p := range c.products {
		p.Features = slices.Clone(p.Features)
		out[i] = p
	}
	return out, nil
}

// DefaultProducts is the partner lender list.
func DefaultProducts() []model.Product {
	return []model.Product{
		product("Prime Lending", "fixed", "5.75", "5.95", 360, 2500, 700, "0.20", 1_000_000,
			"No prepayment penalty", "Rate lock for 60 days", "Free appraisal"),
		product("Community Bank", "fixed", "6.00", "6.15", 360, 1800, 680, "0.15", 750_000,
			"Low closing costs", "First-time buyer programs", "Flexible documentation"),
		product("Digital Mortgage Co", "variable", "5.25", "5.60", 360, 2000, 720, "0.20", 1_500_000,
			"Fully digital process", "Fast approval", "Mobile app included"),
		product("First Home Finance", "fixed", "6.25", "6.40", 180, 1500, 660, "0.10", 500_000,
			"15-year term", "Lower total interest", "Faster equity building"),
	}
}

func product(
	lender, loanType, rate, apr string, term int, fees int64,
	minScore int, minDown string, maxLoan int64, features ...string,
) model.Product {
	return model.Product{
		ID:             uuid.NewSHA1(productNamespace, []byte(lender)),
		LenderName:     lender,
		LoanType:       loanType,
		Rate:           decimal.RequireFromString(rate),
		APR:            decimal.RequireFromString(apr),
		TermMonths:     term,
		Fees:           decimal.NewFromInt(fees),
		MinCreditScore: minScore,
		MinDownPayment: decimal.RequireFromString(minDown),
		MaxLoanAmount:  decimal.NewFromInt(maxLoan),
		Features:       features,
	}
}
