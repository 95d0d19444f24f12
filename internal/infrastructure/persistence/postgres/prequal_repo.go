package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
)

// PreQualificationRepo implements port.PreQualificationRepository.
type PreQualificationRepo struct {
	db DB
}

// NewPreQualificationRepo creates a new repository backed by PostgreSQL.
func NewPreQualificationRepo(db DB) *PreQualificationRepo {
	return &PreQualificationRepo{db: db}
}

// Save appends a record. History rows are never updated.
func (r *PreQualificationRepo) Save(ctx context.Context, p model.PreQualification) error {
	res := p.Result()
	conditions := res.Conditions
	if conditions == nil {
		conditions = []string{}
	}
	query := `
		INSERT INTO prequal_results (
			id, user_id, loan_amount, down_payment, credit_score, dti, ltv,
			status, max_loan_amount, estimated_rate, monthly_payment,
			conditions, explanation, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID(), p.UserID(), p.LoanAmount(), p.DownPayment(), res.CreditScore, res.DTI, res.LTV,
		res.Status.String(), res.MaxLoanAmount, res.EstimatedRate, res.MonthlyPayment,
		conditions, res.Explanation, p.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save pre-qualification: %w", err)
	}
	return nil
}

// ListByUserID returns up to limit records, newest first.
func (r *PreQualificationRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.PreQualification, error) {
	query := `
		SELECT id, user_id, loan_amount, down_payment, credit_score, dti, ltv,
		       status, max_loan_amount, estimated_rate, monthly_payment,
		       conditions, explanation, created_at
		FROM prequal_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query pre-qualifications: %w", err)
	}
	defer rows.Close()

	result := make([]model.PreQualification, 0, limit)
	for rows.Next() {
		p, err := scanPreQualification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanPreQualification(row scannable) (model.PreQualification, error) {
	var (
		id, userID              uuid.UUID
		loanAmount, downPayment decimal.Decimal
		res                     model.QualificationResult
		statusStr               string
		createdAt               time.Time
	)
	err := row.Scan(
		&id, &userID, &loanAmount, &downPayment, &res.CreditScore, &res.DTI, &res.LTV,
		&statusStr, &res.MaxLoanAmount, &res.EstimatedRate, &res.MonthlyPayment,
		&res.Conditions, &res.Explanation, &createdAt,
	)
	if err != nil {
		return model.PreQualification{}, notFound(err, "pre-qualification")
	}

	res.Status, err = valueobject.NewQualificationStatus(statusStr)
	if err != nil {
		return model.PreQualification{}, fmt.Errorf("parse status: %w", err)
	}
	return model.ReconstructPreQualification(id, userID, loanAmount, downPayment, res, createdAt), nil
}
