package model

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/event"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
)

// QualificationResult is the engine's verdict for one request. Percentages and
// currency amounts are already rounded for presentation.
type QualificationResult struct {
	Status         valueobject.QualificationStatus
	CreditScore    int
	DTI            decimal.Decimal
	LTV            decimal.Decimal
	EstimatedRate  decimal.Decimal
	MonthlyPayment decimal.Decimal
	MaxLoanAmount  decimal.Decimal
	Conditions     []string
	Explanation    string
}

// ---------------------------------------------------------------------------
// PreQualification – append-only history record
// ---------------------------------------------------------------------------

// PreQualification is a recorded pre-qualification. It is never updated after
// creation.
type PreQualification struct {
	id           uuid.UUID
	userID       uuid.UUID
	loanAmount   decimal.Decimal
	downPayment  decimal.Decimal
	result       QualificationResult
	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// NewPreQualification records a result for the given user and raises
// PreQualificationCompleted.
func NewPreQualification(userID uuid.UUID, req LoanRequest, result QualificationResult, now time.Time) (PreQualification, error) {
	if userID == uuid.Nil {
		return PreQualification{}, errors.New("user ID is required")
	}
	if result.Status.IsZero() {
		return PreQualification{}, errors.New("qualification status is required")
	}

	result.Conditions = slices.Clone(result.Conditions)
	p := PreQualification{
		id:          uuid.New(),
		userID:      userID,
		loanAmount:  req.LoanAmount,
		downPayment: req.DownPayment,
		result:      result,
		createdAt:   now,
	}
	p.domainEvents = []event.DomainEvent{event.NewPreQualificationCompleted(
		p.id, userID, result.Status.String(), result.CreditScore,
		req.LoanAmount, result.EstimatedRate, result.MaxLoanAmount, len(result.Conditions), now,
	)}
	return p, nil
}

// ReconstructPreQualification rebuilds a record from persistence.
func ReconstructPreQualification(
	id, userID uuid.UUID,
	loanAmount, downPayment decimal.Decimal,
	result QualificationResult,
	createdAt time.Time,
) PreQualification {
	return PreQualification{
		id:          id,
		userID:      userID,
		loanAmount:  loanAmount,
		downPayment: downPayment,
		result:      result,
		createdAt:   createdAt,
	}
}

func (p PreQualification) ID() uuid.UUID                     { return p.id }
func (p PreQualification) UserID() uuid.UUID                 { return p.userID }
func (p PreQualification) LoanAmount() decimal.Decimal       { return p.loanAmount }
func (p PreQualification) DownPayment() decimal.Decimal      { return p.downPayment }
func (p PreQualification) Result() QualificationResult       { return p.result }
func (p PreQualification) CreatedAt() time.Time              { return p.createdAt }
func (p PreQualification) DomainEvents() []event.DomainEvent { return p.domainEvents }
