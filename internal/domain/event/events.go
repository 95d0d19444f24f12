package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypePreQualificationCompleted = "prequal.completed"
	TypeProfileKYCPending         = "profile.kyc_pending"
	TypeApplicationCreated        = "application.created"
	TypeApplicationSubmitted      = "application.submitted"
)

// ---------------------------------------------------------------------------
// Pre-qualification events
// ---------------------------------------------------------------------------

// PreQualificationCompleted is raised after a pre-qualification is recorded.
type PreQualificationCompleted struct {
	events.BaseEvent
	UserID        uuid.UUID       `json:"user_id"`
	Status        string          `json:"status"`
	CreditScore   int             `json:"credit_score"`
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	EstimatedRate decimal.Decimal `json:"estimated_rate"`
	MaxLoanAmount decimal.Decimal `json:"max_loan_amount"`
	Conditions    int             `json:"condition_count"`
}

func NewPreQualificationCompleted(
	prequalID, userID uuid.UUID, status string, creditScore int,
	loanAmount, rate, maxLoan decimal.Decimal, conditions int, at time.Time,
) PreQualificationCompleted {
	return PreQualificationCompleted{
		BaseEvent:     events.NewBaseEvent(TypePreQualificationCompleted, prequalID, "PreQualification", at),
		UserID:        userID,
		Status:        status,
		CreditScore:   creditScore,
		LoanAmount:    loanAmount,
		EstimatedRate: rate,
		MaxLoanAmount: maxLoan,
		Conditions:    conditions,
	}
}

// ---------------------------------------------------------------------------
// Profile events
// ---------------------------------------------------------------------------

// ProfileKYCPending is raised when a profile becomes complete enough for
// identity verification.
type ProfileKYCPending struct {
	events.BaseEvent
	UserID uuid.UUID `json:"user_id"`
}

func NewProfileKYCPending(profileID, userID uuid.UUID, at time.Time) ProfileKYCPending {
	return ProfileKYCPending{
		BaseEvent: events.NewBaseEvent(TypeProfileKYCPending, profileID, "Profile", at),
		UserID:    userID,
	}
}

// ---------------------------------------------------------------------------
// Application events
// ---------------------------------------------------------------------------

// ApplicationCreated is raised when a draft application is opened.
type ApplicationCreated struct {
	events.BaseEvent
	UserID     uuid.UUID       `json:"user_id"`
	LoanAmount decimal.Decimal `json:"loan_amount"`
	LoanType   string          `json:"loan_type"`
	Purpose    string          `json:"purpose"`
}

func NewApplicationCreated(
	applicationID, userID uuid.UUID, loanAmount decimal.Decimal, loanType, purpose string, at time.Time,
) ApplicationCreated {
	return ApplicationCreated{
		BaseEvent:  events.NewBaseEvent(TypeApplicationCreated, applicationID, "Application", at),
		UserID:     userID,
		LoanAmount: loanAmount,
		LoanType:   loanType,
		Purpose:    purpose,
	}
}

// ApplicationSubmitted is raised when an applicant submits a draft.
type ApplicationSubmitted struct {
	events.BaseEvent
	UserID      uuid.UUID       `json:"user_id"`
	LoanAmount  decimal.Decimal `json:"loan_amount"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

func NewApplicationSubmitted(applicationID, userID uuid.UUID, loanAmount decimal.Decimal, at time.Time) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:   events.NewBaseEvent(TypeApplicationSubmitted, applicationID, "Application", at),
		UserID:      userID,
		LoanAmount:  loanAmount,
		SubmittedAt: at,
	}
}
