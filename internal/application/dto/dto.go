package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Pre-qualification
// ---------------------------------------------------------------------------

// PrequalifyRequest carries a loan request for the authenticated user.
type PrequalifyRequest struct {
	UserID           uuid.UUID       `json:"-"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	AnnualIncome     decimal.Decimal `json:"annual_income"`
	MonthlyDebts     decimal.Decimal `json:"monthly_debts"`
	CreditScore      *int            `json:"credit_score,omitempty"`
	EmploymentStatus string          `json:"employment_status"`
	PropertyType     string          `json:"property_type,omitempty"`
}

// PrequalHistoryRequest identifies whose history to list.
type PrequalHistoryRequest struct {
	UserID uuid.UUID `json:"-"`
}

// PreQualificationResponse is the external representation of a recorded
// pre-qualification.
type PreQualificationResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	CreditScore    int             `json:"credit_score"`
	DTI            decimal.Decimal `json:"dti"`
	LTV            decimal.Decimal `json:"ltv"`
	Status         string          `json:"status"`
	MaxLoanAmount  decimal.Decimal `json:"max_loan_amount"`
	EstimatedRate  decimal.Decimal `json:"estimated_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Conditions     []string        `json:"conditions"`
	Explanation    string          `json:"explanation"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PrequalHistoryResponse lists recent pre-qualifications, newest first.
type PrequalHistoryResponse struct {
	Results []PreQualificationResponse `json:"results"`
}

// ScheduleRequest asks for a month-by-month amortization table.
type ScheduleRequest struct {
	LoanAmount decimal.Decimal `json:"loan_amount"`
	Rate       decimal.Decimal `json:"rate"`
	TermMonths int             `json:"term_months,omitempty"`
}

// ScheduleEntry is one period of an amortization table.
type ScheduleEntry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// ScheduleResponse is the amortization table with its totals.
type ScheduleResponse struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TermMonths     int             `json:"term_months"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Entries        []ScheduleEntry `json:"entries"`
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

// GetProfileRequest identifies a profile by owner.
type GetProfileRequest struct {
	UserID uuid.UUID `json:"-"`
}

// UpdateProfileRequest is a partial update; absent fields are unchanged.
type UpdateProfileRequest struct {
	UserID           uuid.UUID         `json:"-"`
	FirstName        *string           `json:"first_name,omitempty"`
	LastName         *string           `json:"last_name,omitempty"`
	DOB              *string           `json:"dob,omitempty"`
	SSNLast4         *string           `json:"ssn_last4,omitempty"`
	Address          map[string]string `json:"address,omitempty"`
	EmploymentStatus *string           `json:"employment_status,omitempty"`
	EmployerName     *string           `json:"employer_name,omitempty"`
	AnnualIncome     *decimal.Decimal  `json:"annual_income,omitempty"`
	MonthlyIncome    *decimal.Decimal  `json:"monthly_income,omitempty"`
	Assets           *decimal.Decimal  `json:"assets,omitempty"`
	Liabilities      *decimal.Decimal  `json:"liabilities,omitempty"`
}

// ProfileResponse is the external representation of an applicant profile.
type ProfileResponse struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user_id"`
	FirstName        string              `json:"first_name,omitempty"`
	LastName         string              `json:"last_name,omitempty"`
	DOB              string              `json:"dob,omitempty"`
	SSNLast4         string              `json:"ssn_last4,omitempty"`
	Address          map[string]string   `json:"address,omitempty"`
	EmploymentStatus string              `json:"employment_status,omitempty"`
	EmployerName     string              `json:"employer_name,omitempty"`
	AnnualIncome     decimal.NullDecimal `json:"annual_income"`
	MonthlyIncome    decimal.NullDecimal `json:"monthly_income"`
	Assets           decimal.NullDecimal `json:"assets"`
	Liabilities      decimal.NullDecimal `json:"liabilities"`
	CreditScore      *int                `json:"credit_score"`
	KYCStatus        string              `json:"kyc_status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// ListProductsRequest optionally narrows the catalog to products the
// applicant matches. Matching applies only when all three fields are set.
type ListProductsRequest struct {
	CreditScore *int             `json:"credit_score,omitempty"`
	LoanAmount  *decimal.Decimal `json:"loan_amount,omitempty"`
	DownPayment *decimal.Decimal `json:"down_payment,omitempty"`
}

// ProductResponse is the external representation of a mortgage product.
type ProductResponse struct {
	ID                      uuid.UUID        `json:"id"`
	LenderName              string           `json:"lender_name"`
	LoanType                string           `json:"loan_type"`
	Rate                    decimal.Decimal  `json:"rate"`
	APR                     decimal.Decimal  `json:"apr"`
	Term                    int              `json:"term"`
	Fees                    decimal.Decimal  `json:"fees"`
	MinCreditScore          int              `json:"min_credit_score"`
	MinDownPayment          decimal.Decimal  `json:"min_down_payment"`
	MaxLoanAmount           decimal.Decimal  `json:"max_loan_amount"`
	Features                []string         `json:"features"`
	EstimatedMonthlyPayment *decimal.Decimal `json:"estimated_monthly_payment,omitempty"`
}

// ProductListResponse wraps the catalog listing.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// ---------------------------------------------------------------------------
// Applications
// ---------------------------------------------------------------------------

// CreateApplicationRequest opens a draft application.
type CreateApplicationRequest struct {
	UserID          uuid.UUID         `json:"-"`
	LoanAmount      decimal.Decimal   `json:"loan_amount"`
	LoanType        string            `json:"loan_type"`
	PropertyAddress map[string]string `json:"property_address"`
	PropertyValue   decimal.Decimal   `json:"property_value"`
	DownPayment     decimal.Decimal   `json:"down_payment"`
	Purpose         string            `json:"purpose,omitempty"`
}

// GetApplicationRequest identifies an application owned by UserID.
type GetApplicationRequest struct {
	UserID        uuid.UUID `json:"-"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// SubmitApplicationRequest identifies a draft to submit.
type SubmitApplicationRequest struct {
	UserID        uuid.UUID `json:"-"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// ListApplicationsRequest identifies whose applications to list.
type ListApplicationsRequest struct {
	UserID uuid.UUID `json:"-"`
}

// ApplicationResponse is the external representation of a loan application.
type ApplicationResponse struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	LoanAmount      decimal.Decimal   `json:"loan_amount"`
	LoanType        string            `json:"loan_type"`
	PropertyAddress map[string]string `json:"property_address"`
	PropertyValue   decimal.Decimal   `json:"property_value"`
	DownPayment     decimal.Decimal   `json:"down_payment"`
	Purpose         string            `json:"purpose"`
	Status          string            `json:"status"`
	SubmittedAt     *time.Time        `json:"submitted_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ApplicationListResponse lists applications, most recently updated first.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// ---------------------------------------------------------------------------
// Assistant
// ---------------------------------------------------------------------------

// ClassifyIntentRequest carries one assistant message.
type ClassifyIntentRequest struct {
	Message string `json:"message"`
}

// IntentResponse is the detected intent, null when nothing matched.
type IntentResponse struct {
	Intent      *string  `json:"intent"`
	Suggestions []string `json:"suggestions"`
}
