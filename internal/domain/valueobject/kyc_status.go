package valueobject

import "fmt"

// KYCStatus tracks how far an applicant has progressed through identity checks.
type KYCStatus struct {
	value string
}

const (
	kycIncomplete = "incomplete"
	kycPending    = "pending"
	kycVerified   = "verified"
)

var (
	KYCIncomplete = KYCStatus{value: kycIncomplete}
	KYCPending    = KYCStatus{value: kycPending}
	KYCVerified   = KYCStatus{value: kycVerified}
)

// NewKYCStatus parses a raw KYC status string.
func NewKYCStatus(s string) (KYCStatus, error) {
	switch s {
	case kycIncomplete:
		return KYCIncomplete, nil
	case kycPending:
		return KYCPending, nil
	case kycVerified:
		return KYCVerified, nil
	default:
		return KYCStatus{}, fmt.Errorf("invalid kyc status: %q", s)
	}
}

func (s KYCStatus) String() string { return s.value }

func (s KYCStatus) IsZero() bool { return s.value == "" }

func (s KYCStatus) Equal(other KYCStatus) bool { return s.value == other.value }

// MarshalText implements encoding.TextMarshaler.
func (s KYCStatus) MarshalText() ([]byte, error) { return []byte(s.value), nil }
