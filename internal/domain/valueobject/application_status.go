package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidStatusTransition is returned when a lifecycle move is not allowed.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// ApplicationStatus is the lifecycle stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusDraft     = "draft"
	appStatusSubmitted = "submitted"
)

var (
	ApplicationDraft     = ApplicationStatus{value: appStatusDraft}
	ApplicationSubmitted = ApplicationStatus{value: appStatusSubmitted}
)

var applicationTransitions = map[string][]string{
	appStatusDraft: {appStatusSubmitted},
}

// NewApplicationStatus parses a raw application status string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	switch s {
	case appStatusDraft:
		return ApplicationDraft, nil
	case appStatusSubmitted:
		return ApplicationSubmitted, nil
	default:
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s.value] {
		if allowed == next.value {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) String() string { return s.value }

func (s ApplicationStatus) IsZero() bool { return s.value == "" }

func (s ApplicationStatus) Equal(other ApplicationStatus) bool { return s.value == other.value }

// MarshalText implements encoding.TextMarshaler.
func (s ApplicationStatus) MarshalText() ([]byte, error) { return []byte(s.value), nil }

// ---------------------------------------------------------------------------
// LoanPurpose
// ---------------------------------------------------------------------------

// LoanPurpose is why the applicant is borrowing.
type LoanPurpose struct {
	value string
}

var (
	PurposePurchase  = LoanPurpose{value: "purchase"}
	PurposeRefinance = LoanPurpose{value: "refinance"}
)

// NewLoanPurpose parses a purpose; an empty string means purchase.
func NewLoanPurpose(s string) (LoanPurpose, error) {
	switch s {
	case "", PurposePurchase.value:
		return PurposePurchase, nil
	case PurposeRefinance.value:
		return PurposeRefinance, nil
	default:
		return LoanPurpose{}, fmt.Errorf("invalid loan purpose: %q", s)
	}
}

func (p LoanPurpose) String() string { return p.value }
