package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary inputs are either zero or between MinAmount and MaxAmount.
var (
	MinAmount = decimal.New(1, -2)
	MaxAmount = decimal.New(1, 12)
)

// CheckAmount rejects sub-cent fractions and amounts beyond MaxAmount, which
// keeps every derived ratio and payment finite.
func CheckAmount(field string, v decimal.Decimal) error {
	if v.IsZero() {
		return nil
	}
	if v.LessThan(MinAmount) || v.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s must be between %s and %s", ErrValidation, field, MinAmount, MaxAmount)
	}
	return nil
}

// DefaultPropertyType is assumed when the caller does not say what is being financed.
const DefaultPropertyType = "primary"

// LoanRequest is the self-reported input to a pre-qualification. Income and
// debts are already combined across co-borrowers.
type LoanRequest struct {
	LoanAmount   decimal.Decimal
	DownPayment  decimal.Decimal
	AnnualIncome decimal.Decimal
	MonthlyDebts decimal.Decimal
	// CreditScore overrides any score stored on the applicant profile.
	CreditScore      *int
	EmploymentStatus string
	// PropertyType is informational and does not feed any rule.
	PropertyType string
}

// Validate enforces the boundary contract. The engine itself never rejects input.
func (r LoanRequest) Validate() error {
	if !r.LoanAmount.IsPositive() {
		return fmt.Errorf("%w: loan_amount must be greater than zero", ErrValidation)
	}
	if r.DownPayment.IsNegative() {
		return fmt.Errorf("%w: down_payment must not be negative", ErrValidation)
	}
	if r.AnnualIncome.IsNegative() {
		return fmt.Errorf("%w: annual_income must not be negative", ErrValidation)
	}
	if r.MonthlyDebts.IsNegative() {
		return fmt.Errorf("%w: monthly_debts must not be negative", ErrValidation)
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"loan_amount", r.LoanAmount},
		{"down_payment", r.DownPayment},
		{"annual_income", r.AnnualIncome},
		{"monthly_debts", r.MonthlyDebts},
	} {
		if err := CheckAmount(f.name, f.v); err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.EmploymentStatus) == "" {
		return fmt.Errorf("%w: employment_status is required", ErrValidation)
	}
	return nil
}

// ApplicantContext is the read-only snapshot of stored applicant data the
// engine may consult.
type ApplicantContext struct {
	CreditScore *int
}
