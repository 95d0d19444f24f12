package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/event"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Application aggregate root
// ---------------------------------------------------------------------------

// Application is a mortgage application. It is immutable; transitions return copies.
type Application struct {
	id              uuid.UUID
	userID          uuid.UUID
	loanAmount      decimal.Decimal
	loanType        string
	propertyAddress map[string]string
	propertyValue   decimal.Decimal
	downPayment     decimal.Decimal
	purpose         valueobject.LoanPurpose
	status          valueobject.ApplicationStatus
	submittedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// ApplicationDraft holds the caller-supplied fields of a new application.
type ApplicationDraft struct {
	LoanAmount      decimal.Decimal
	LoanType        string
	PropertyAddress map[string]string
	PropertyValue   decimal.Decimal
	DownPayment     decimal.Decimal
	Purpose         string
}

// NewApplication opens a draft application.
func NewApplication(userID uuid.UUID, d ApplicationDraft, now time.Time) (Application, error) {
	if userID == uuid.Nil {
		return Application{}, errors.New("user ID is required")
	}
	if !d.LoanAmount.IsPositive() {
		return Application{}, fmt.Errorf("%w: loan_amount must be greater than zero", ErrValidation)
	}
	if !d.PropertyValue.IsPositive() {
		return Application{}, fmt.Errorf("%w: property_value must be greater than zero", ErrValidation)
	}
	if d.DownPayment.IsNegative() {
		return Application{}, fmt.Errorf("%w: down_payment must not be negative", ErrValidation)
	}
	if strings.TrimSpace(d.LoanType) == "" {
		return Application{}, fmt.Errorf("%w: loan_type is required", ErrValidation)
	}
	purpose, err := valueobject.NewLoanPurpose(d.Purpose)
	if err != nil {
		return Application{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	app := Application{
		id:              uuid.New(),
		userID:          userID,
		loanAmount:      d.LoanAmount,
		loanType:        strings.TrimSpace(d.LoanType),
		propertyAddress: maps.Clone(d.PropertyAddress),
		propertyValue:   d.PropertyValue,
		downPayment:     d.DownPayment,
		purpose:         purpose,
		status:          valueobject.ApplicationDraft,
		createdAt:       now,
		updatedAt:       now,
	}
	app.domainEvents = append(app.domainEvents, event.NewApplicationCreated(
		app.id, userID, d.LoanAmount, app.loanType, purpose.String(), now,
	))
	return app, nil
}

// ApplicationSnapshot is the flat persisted form of an Application.
type ApplicationSnapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	LoanAmount      decimal.Decimal
	LoanType        string
	PropertyAddress map[string]string
	PropertyValue   decimal.Decimal
	DownPayment     decimal.Decimal
	Purpose         valueobject.LoanPurpose
	Status          valueobject.ApplicationStatus
	SubmittedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructApplication rebuilds an aggregate from persistence without side effects.
func ReconstructApplication(s ApplicationSnapshot) Application {
	return Application{
		id:              s.ID,
		userID:          s.UserID,
		loanAmount:      s.LoanAmount,
		loanType:        s.LoanType,
		propertyAddress: maps.Clone(s.PropertyAddress),
		propertyValue:   s.PropertyValue,
		downPayment:     s.DownPayment,
		purpose:         s.Purpose,
		status:          s.Status,
		submittedAt:     s.SubmittedAt,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

// Snapshot flattens the aggregate for persistence.
func (a Application) Snapshot() ApplicationSnapshot {
	return ApplicationSnapshot{
		ID:              a.id,
		UserID:          a.userID,
		LoanAmount:      a.loanAmount,
		LoanType:        a.loanType,
		PropertyAddress: maps.Clone(a.propertyAddress),
		PropertyValue:   a.propertyValue,
		DownPayment:     a.downPayment,
		Purpose:         a.purpose,
		Status:          a.status,
		SubmittedAt:     a.submittedAt,
		CreatedAt:       a.createdAt,
		UpdatedAt:       a.updatedAt,
	}
}

// Submit transitions draft -> submitted and raises ApplicationSubmitted.
func (a Application) Submit(now time.Time) (Application, error) {
	if !a.status.CanTransitionTo(valueobject.ApplicationSubmitted) {
		return a, fmt.Errorf("%w: %s -> %s", valueobject.ErrInvalidStatusTransition,
			a.status, valueobject.ApplicationSubmitted)
	}
	next := a
	next.status = valueobject.ApplicationSubmitted
	submitted := now
	next.submittedAt = &submitted
	next.updatedAt = now
	next.domainEvents = slices.Clone(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationSubmitted(a.id, a.userID, a.loanAmount, now))
	return next, nil
}

func (a Application) ID() uuid.UUID                         { return a.id }
func (a Application) UserID() uuid.UUID                     { return a.userID }
func (a Application) LoanAmount() decimal.Decimal           { return a.loanAmount }
func (a Application) Status() valueobject.ApplicationStatus { return a.status }
func (a Application) SubmittedAt() *time.Time               { return a.submittedAt }
func (a Application) UpdatedAt() time.Time                  { return a.updatedAt }
func (a Application) DomainEvents() []event.DomainEvent     { return a.domainEvents }
