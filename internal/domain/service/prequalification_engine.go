package service

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/model"
)

// ---------------------------------------------------------------------------
// PreQualificationEngine – pure pipeline from request to verdict
// ---------------------------------------------------------------------------

// PreQualificationEngine composes the normalizer, metrics, rate, decision,
// amortization and explanation stages. It holds no mutable state and is
// safe for concurrent use.
type PreQualificationEngine struct {
	policy      Policy
	rates       *RateEstimator
	decisions   *DecisionResolver
	amortizer   *AmortizationSolver
	explanation *ExplanationGenerator
}

// NewPreQualificationEngine copies the policy; later changes to p do not
// affect the engine.
func NewPreQualificationEngine(p Policy) *PreQualificationEngine {
	p = p.clone()
	return &PreQualificationEngine{
		policy:      p,
		rates:       NewRateEstimator(p),
		decisions:   NewDecisionResolver(p),
		amortizer:   NewAmortizationSolver(p),
		explanation: NewExplanationGenerator(),
	}
}

// Policy returns a copy of the engine's policy.
func (e *PreQualificationEngine) Policy() Policy { return e.policy.clone() }

// Amortizer exposes the engine's solver for payment quotes outside a full
// evaluation.
func (e *PreQualificationEngine) Amortizer() *AmortizationSolver { return e.amortizer }

// Evaluate never fails. The request is expected to have passed Validate.
func (e *PreQualificationEngine) Evaluate(req model.LoanRequest, applicant model.ApplicantContext) model.QualificationResult {
	score := e.policy.ResolveCreditScore(req.CreditScore, applicant.CreditScore)

	loan := req.LoanAmount.InexactFloat64()
	debts := req.MonthlyDebts.InexactFloat64()
	metrics := ComputeAffordability(loan, req.DownPayment.InexactFloat64(), req.AnnualIncome.InexactFloat64(), debts)

	rate := e.rates.Estimate(score, metrics.LTV)

	decision := e.decisions.Resolve(RuleInput{
		CreditScore:      score,
		DTI:              metrics.DTI,
		LTV:              metrics.LTV,
		EmploymentStatus: req.EmploymentStatus,
	})

	payment := e.amortizer.MonthlyPayment(loan, rate)
	maxLoan := e.amortizer.MaxLoan(metrics.MonthlyIncome, debts, rate, loan)

	explanation := e.explanation.Generate(ExplanationInput{
		CreditScore:      score,
		DTI:              metrics.DTI,
		LTV:              metrics.LTV,
		EmploymentStatus: req.EmploymentStatus,
		Status:           decision.Status.String(),
		LoanAmount:       loan,
		Conditions:       decision.Conditions,
	})

	return model.QualificationResult{
		Status:         decision.Status,
		CreditScore:    score,
		DTI:            round(metrics.DTI, 2),
		LTV:            round(metrics.LTV, 2),
		EstimatedRate:  round(rate, 3),
		MonthlyPayment: round(payment, 2),
		MaxLoanAmount:  round(maxLoan, 2),
		Conditions:     slices.Clone(decision.Conditions),
		Explanation:    explanation,
	}
}

// round converts v at the boundary. NaN and infinities become zero.
func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(finiteOr(v, 0)).Round(places)
}
