package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
)

// ProfileRepo implements port.ProfileRepository.
type ProfileRepo struct {
	db DB
}

// NewProfileRepo creates a new repository backed by PostgreSQL.
func NewProfileRepo(db DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Save upserts the profile keyed by user.
func (r *ProfileRepo) Save(ctx context.Context, p model.Profile) error {
	s := p.Snapshot()
	query := `
		INSERT INTO profiles (
			id, user_id, first_name, last_name, dob, ssn_last4, address,
			employment_status, employer_name, annual_income, monthly_income,
			assets, liabilities, credit_score, kyc_status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name        = EXCLUDED.first_name,
			last_name         = EXCLUDED.last_name,
			dob               = EXCLUDED.dob,
			ssn_last4         = EXCLUDED.ssn_last4,
			address           = EXCLUDED.address,
			employment_status = EXCLUDED.employment_status,
			employer_name     = EXCLUDED.employer_name,
			annual_income     = EXCLUDED.annual_income,
			monthly_income    = EXCLUDED.monthly_income,
			assets            = EXCLUDED.assets,
			liabilities       = EXCLUDED.liabilities,
			credit_score      = EXCLUDED.credit_score,
			kyc_status        = EXCLUDED.kyc_status,
			updated_at        = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.FirstName, s.LastName, s.DOB, s.SSNLast4, s.Address,
		s.EmploymentStatus, s.EmployerName, s.AnnualIncome, s.MonthlyIncome,
		s.Assets, s.Liabilities, s.CreditScore, s.KYCStatus.String(), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// FindByUserID retrieves the profile owned by userID.
func (r *ProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	query := `
		SELECT id, user_id, first_name, last_name, dob, ssn_last4, address,
		       employment_status, employer_name, annual_income, monthly_income,
		       assets, liabilities, credit_score, kyc_status, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	return scanProfile(r.db.QueryRow(ctx, query, userID))
}

func scanProfile(row scannable) (model.Profile, error) {
	var (
		s      model.ProfileSnapshot
		kycStr string
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.DOB, &s.SSNLast4, &s.Address,
		&s.EmploymentStatus, &s.EmployerName, &s.AnnualIncome, &s.MonthlyIncome,
		&s.Assets, &s.Liabilities, &s.CreditScore, &kycStr, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return model.Profile{}, notFound(err, "profile")
	}

	s.KYCStatus, err = valueobject.NewKYCStatus(kycStr)
	if err != nil {
		return model.Profile{}, fmt.Errorf("parse kyc status: %w", err)
	}
	return model.ReconstructProfile(s), nil
}
