package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/model"
)

// ---------------------------------------------------------------------------
// AmortizationSolver – level payment and its inverse
// ---------------------------------------------------------------------------

// AmortizationSolver computes fixed-rate payments over the policy term.
// Arithmetic is float64 at full precision; callers round at the boundary.
type AmortizationSolver struct {
	termMonths int
	dtiCeiling float64
}

func NewAmortizationSolver(p Policy) *AmortizationSolver {
	return &AmortizationSolver{termMonths: p.TermMonths, dtiCeiling: p.DTICeiling}
}

// TermMonths is the number of payments the solver amortizes over.
func (s *AmortizationSolver) TermMonths() int { return s.termMonths }

// MonthlyPayment is the level payment for loanAmount at annualRate percent
// over the policy term.
func (s *AmortizationSolver) MonthlyPayment(loanAmount, annualRate float64) float64 {
	return PaymentForTerm(loanAmount, annualRate, s.termMonths)
}

// MaxMonthlyPayment is the share of monthly income left for a mortgage
// payment under the DTI ceiling. It may be negative.
func (s *AmortizationSolver) MaxMonthlyPayment(monthlyIncome, monthlyDebts float64) float64 {
	return monthlyIncome*s.dtiCeiling - monthlyDebts
}

// MaxLoan inverts the payment formula for the affordable payment. When the
// rate is zero or nothing is affordable it returns the requested amount.
func (s *AmortizationSolver) MaxLoan(monthlyIncome, monthlyDebts, annualRate, requested float64) float64 {
	r := annualRate / 100 / 12
	mmp := s.MaxMonthlyPayment(monthlyIncome, monthlyDebts)
	if r <= 0 || mmp <= 0 {
		return requested
	}
	factor := math.Pow(1+r, float64(s.termMonths))
	return mmp * (factor - 1) / (r * factor)
}

// PaymentForTerm is the standard amortizing payment
// P * r * (1+r)^n / ((1+r)^n - 1), or P/n at a zero rate.
func PaymentForTerm(principal, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	n := float64(termMonths)
	r := annualRate / 100 / 12
	if r == 0 {
		return principal / n
	}
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

// Schedule splits each payment into principal and interest. The payment is
// rounded to cents and the last period absorbs the rounding so the balance
// ends at exactly zero. termMonths <= 0 uses the policy term.
func (s *AmortizationSolver) Schedule(
	principal decimal.Decimal,
	annualRate float64,
	termMonths int,
	startDate time.Time,
) []model.AmortizationEntry {
	if termMonths <= 0 {
		termMonths = s.termMonths
	}
	if !principal.IsPositive() {
		return nil
	}

	payment := round(PaymentForTerm(principal.InexactFloat64(), annualRate, termMonths), 2)
	monthlyRate := decimal.NewFromFloat(finiteOr(annualRate, 0)).Div(decimal.NewFromInt(1200))

	schedule := make([]model.AmortizationEntry, 0, termMonths)
	remaining := principal
	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, model.AmortizationEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return schedule
}
