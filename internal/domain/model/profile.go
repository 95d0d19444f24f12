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
// Profile aggregate – applicant financial and identity data
// ---------------------------------------------------------------------------

// Profile is an immutable aggregate. Every mutation returns a new copy.
type Profile struct {
	id               uuid.UUID
	userID           uuid.UUID
	firstName        string
	lastName         string
	dob              string
	ssnLast4         string
	address          map[string]string
	employmentStatus string
	employerName     string
	annualIncome     decimal.NullDecimal
	monthlyIncome    decimal.NullDecimal
	assets           decimal.NullDecimal
	liabilities      decimal.NullDecimal
	creditScore      *int
	kycStatus        valueobject.KYCStatus
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []event.DomainEvent
}

// ProfileUpdate carries a partial update. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName        *string
	LastName         *string
	DOB              *string
	SSNLast4         *string
	Address          map[string]string
	EmploymentStatus *string
	EmployerName     *string
	AnnualIncome     *decimal.Decimal
	MonthlyIncome    *decimal.Decimal
	Assets           *decimal.Decimal
	Liabilities      *decimal.Decimal
}

// NewProfile creates an empty profile in the incomplete KYC state.
func NewProfile(userID uuid.UUID, now time.Time) (Profile, error) {
	if userID == uuid.Nil {
		return Profile{}, errors.New("user ID is required")
	}
	return Profile{
		id:        uuid.New(),
		userID:    userID,
		kycStatus: valueobject.KYCIncomplete,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ProfileSnapshot is the flat persisted form of a Profile.
type ProfileSnapshot struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	FirstName        string
	LastName         string
	DOB              string
	SSNLast4         string
	Address          map[string]string
	EmploymentStatus string
	EmployerName     string
	AnnualIncome     decimal.NullDecimal
	MonthlyIncome    decimal.NullDecimal
	Assets           decimal.NullDecimal
	Liabilities      decimal.NullDecimal
	CreditScore      *int
	KYCStatus        valueobject.KYCStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructProfile rebuilds a profile from persistence without side effects.
func ReconstructProfile(s ProfileSnapshot) Profile {
	return Profile{
		id:               s.ID,
		userID:           s.UserID,
		firstName:        s.FirstName,
		lastName:         s.LastName,
		dob:              s.DOB,
		ssnLast4:         s.SSNLast4,
		address:          maps.Clone(s.Address),
		employmentStatus: s.EmploymentStatus,
		employerName:     s.EmployerName,
		annualIncome:     s.AnnualIncome,
		monthlyIncome:    s.MonthlyIncome,
		assets:           s.Assets,
		liabilities:      s.Liabilities,
		creditScore:      s.CreditScore,
		kycStatus:        s.KYCStatus,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

// Snapshot flattens the profile for persistence and caching.
func (p Profile) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{
		ID:               p.id,
		UserID:           p.userID,
		FirstName:        p.firstName,
		LastName:         p.lastName,
		DOB:              p.dob,
		SSNLast4:         p.ssnLast4,
		Address:          maps.Clone(p.address),
		EmploymentStatus: p.employmentStatus,
		EmployerName:     p.employerName,
		AnnualIncome:     p.annualIncome,
		MonthlyIncome:    p.monthlyIncome,
		Assets:           p.assets,
		Liabilities:      p.liabilities,
		CreditScore:      p.creditScore,
		KYCStatus:        p.kycStatus,
		CreatedAt:        p.createdAt,
		UpdatedAt:        p.updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Apply merges a partial update. Once every KYC field is filled in, an
// incomplete profile moves to pending and raises ProfileKYCPending.
func (p Profile) Apply(u ProfileUpdate, now time.Time) (Profile, error) {
	if u.SSNLast4 != nil && !validSSNLast4(*u.SSNLast4) {
		return p, fmt.Errorf("%w: ssn_last4 must be exactly four digits", ErrValidation)
	}
	for _, amount := range []*decimal.Decimal{u.AnnualIncome, u.MonthlyIncome, u.Assets, u.Liabilities} {
		if amount != nil && amount.IsNegative() {
			return p, fmt.Errorf("%w: monetary profile fields must not be negative", ErrValidation)
		}
	}

	next := p
	next.domainEvents = slices.Clone(p.domainEvents)
	setString(&next.firstName, u.FirstName)
	setString(&next.lastName, u.LastName)
	setString(&next.dob, u.DOB)
	setString(&next.ssnLast4, u.SSNLast4)
	setString(&next.employmentStatus, u.EmploymentStatus)
	setString(&next.employerName, u.EmployerName)
	if u.Address != nil {
		next.address = maps.Clone(u.Address)
	}
	setDecimal(&next.annualIncome, u.AnnualIncome)
	setDecimal(&next.monthlyIncome, u.MonthlyIncome)
	setDecimal(&next.assets, u.Assets)
	setDecimal(&next.liabilities, u.Liabilities)
	next.updatedAt = now

	if next.kycStatus.Equal(valueobject.KYCIncomplete) && next.KYCComplete() {
		next.kycStatus = valueobject.KYCPending
		next.domainEvents = append(next.domainEvents, event.NewProfileKYCPending(next.id, next.userID, now))
	}
	return next, nil
}

// KYCComplete reports whether every field required for identity verification
// is present. A zero annual income counts as missing.
func (p Profile) KYCComplete() bool {
	return p.firstName != "" &&
		p.lastName != "" &&
		p.dob != "" &&
		len(p.address) > 0 &&
		p.employmentStatus != "" &&
		p.annualIncome.Valid && !p.annualIncome.Decimal.IsZero()
}

// WithCreditScore stores a bureau score on the profile.
func (p Profile) WithCreditScore(score int, now time.Time) Profile {
	next := p
	next.creditScore = &score
	next.updatedAt = now
	return next
}

// ApplicantContext exposes the data the decision engine may read.
func (p Profile) ApplicantContext() ApplicantContext {
	if p.creditScore == nil {
		return ApplicantContext{}
	}
	score := *p.creditScore
	return ApplicantContext{CreditScore: &score}
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (p Profile) ClearEvents() Profile {
	next := p
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p Profile) ID() uuid.UUID                     { return p.id }
func (p Profile) UserID() uuid.UUID                 { return p.userID }
func (p Profile) FirstName() string                 { return p.firstName }
func (p Profile) LastName() string                  { return p.lastName }
func (p Profile) EmploymentStatus() string          { return p.employmentStatus }
func (p Profile) AnnualIncome() decimal.NullDecimal { return p.annualIncome }
func (p Profile) CreditScore() *int                 { return p.creditScore }
func (p Profile) KYCStatus() valueobject.KYCStatus  { return p.kycStatus }
func (p Profile) UpdatedAt() time.Time              { return p.updatedAt }
func (p Profile) DomainEvents() []event.DomainEvent { return p.domainEvents }

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDecimal(dst *decimal.NullDecimal, v *decimal.Decimal) {
	if v != nil {
		*dst = decimal.NewNullDecimal(*v)
	}
}

func validSSNLast4(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
