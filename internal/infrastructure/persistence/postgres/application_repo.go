package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
	pkgpostgres "github.com/hearthloan/prequal/pkg/postgres"
)

const applicationColumns = `
	id, user_id, loan_amount, loan_type, property_address, property_value,
	down_payment, purpose, status, submitted_at, created_at, updated_at`

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	db DB
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(db DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Save upserts an application by ID.
func (r *ApplicationRepo) Save(ctx context.Context, app model.Application) error {
	return saveApplication(ctx, r.db, app)
}

// FindByID retrieves an application owned by userID.
func (r *ApplicationRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 AND id = $2`
	return scanApplication(r.db.QueryRow(ctx, query, userID, id))
}

// ListByUserID returns up to limit applications, most recently updated first.
func (r *ApplicationRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	result := make([]model.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// Update locks the row, applies fn and saves the result in one transaction.
func (r *ApplicationRepo) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	fn func(model.Application) (model.Application, error),
) (model.Application, error) {
	var updated model.Application
	err := pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 AND id = $2 FOR UPDATE`
		current, err := scanApplication(tx.QueryRow(ctx, query, userID, id))
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := saveApplication(ctx, tx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return model.Application{}, err
	}
	return updated, nil
}

func saveApplication(ctx context.Context, q pkgpostgres.Querier, app model.Application) error {
	s := app.Snapshot()
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			status       = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			updated_at   = EXCLUDED.updated_at
	`
	_, err := q.Exec(ctx, query,
		s.ID, s.UserID, s.LoanAmount, s.LoanType, s.PropertyAddress, s.PropertyValue,
		s.DownPayment, s.Purpose.String(), s.Status.String(), s.SubmittedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	return nil
}

func scanApplication(row scannable) (model.Application, error) {
	var (
		s                    model.ApplicationSnapshot
		purposeStr, stateStr string
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.LoanAmount, &s.LoanType, &s.PropertyAddress, &s.PropertyValue,
		&s.DownPayment, &purposeStr, &stateStr, &s.SubmittedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return model.Application{}, notFound(err, "application")
	}

	if s.Purpose, err = valueobject.NewLoanPurpose(purposeStr); err != nil {
		return model.Application{}, fmt.Errorf("parse purpose: %w", err)
	}
	if s.Status, err = valueobject.NewApplicationStatus(stateStr); err != nil {
		return model.Application{}, fmt.Errorf("parse status: %w", err)
	}
	return model.ReconstructApplication(s), nil
}
