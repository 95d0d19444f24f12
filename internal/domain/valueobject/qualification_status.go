package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// QualificationStatus – totally ordered verdict of a pre-qualification
// ---------------------------------------------------------------------------

// QualificationStatus is the outcome of a pre-qualification. The zero value is
// not a valid status. Statuses are ordered approved < conditional < denied.
type QualificationStatus struct {
	value    string
	severity int
}

const (
	qualificationApproved    = "approved"
	qualificationConditional = "conditional"
	qualificationDenied      = "denied"
)

var (
	QualificationApproved    = QualificationStatus{value: qualificationApproved, severity: 1}
	QualificationConditional = QualificationStatus{value: qualificationConditional, severity: 2}
	QualificationDenied      = QualificationStatus{value: qualificationDenied, severity: 3}
)

var validQualificationStatuses = map[string]QualificationStatus{
	qualificationApproved:    QualificationApproved,
	qualificationConditional: QualificationConditional,
	qualificationDenied:      QualificationDenied,
}

// NewQualificationStatus parses a raw status string.
func NewQualificationStatus(s string) (QualificationStatus, error) {
	v, ok := validQualificationStatuses[s]
	if !ok {
		return QualificationStatus{}, fmt.Errorf("invalid qualification status: %q", s)
	}
	return v, nil
}

// Worsen merges two verdicts and keeps the more severe one. A status can only
// move towards denied through Worsen, never back.
func (s QualificationStatus) Worsen(other QualificationStatus) QualificationStatus {
	if other.severity > s.severity {
		return other
	}
	return s
}

// WorseThan reports whether s is strictly more severe than other.
func (s QualificationStatus) WorseThan(other QualificationStatus) bool {
	return s.severity > other.severity
}

func (s QualificationStatus) String() string { return s.value }

func (s QualificationStatus) IsZero() bool { return s.value == "" }

func (s QualificationStatus) Equal(other QualificationStatus) bool { return s.value == other.value }

// MarshalText implements encoding.TextMarshaler.
func (s QualificationStatus) MarshalText() ([]byte, error) { return []byte(s.value), nil }
