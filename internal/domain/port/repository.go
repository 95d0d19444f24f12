package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hearthloan/prequal/internal/domain/event"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/service"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ProfileRepository persists applicant profiles, one per user.
type ProfileRepository interface {
	Save(ctx context.Context, p model.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error)
}

// PreQualificationRepository is the append-only pre-qualification history.
type PreQualificationRepository interface {
	Save(ctx context.Context, p model.PreQualification) error
	// ListByUserID returns up to limit records, newest first.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.PreQualification, error)
}

// ApplicationRepository persists loan applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.Application) error
	// FindByID only returns applications owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (model.Application, error)
	// ListByUserID returns up to limit applications, most recently updated first.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.Application, error)
	// Update runs fn against the stored application inside a transaction and
	// saves what fn returns.
	Update(ctx context.Context, userID, id uuid.UUID, fn func(model.Application) (model.Application, error)) (model.Application, error)
}

// ProductCatalog lists the mortgage products on offer.
type ProductCatalog interface {
	List(ctx context.Context) ([]model.Product, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// CreditBureau performs a soft credit inquiry.
type CreditBureau interface {
	SoftPull(ctx context.Context, userID uuid.UUID) (int, error)
}

// IntentClassifier routes an assistant message to an intent.
type IntentClassifier interface {
	Classify(message string) service.Intent
	Suggestions(intent service.Intent) []string
}

// MetricsRecorder records business metrics for pre-qualifications.
type MetricsRecorder interface {
	RecordPreQualification(ctx context.Context, status string, creditScore int, elapsed time.Duration)
	RecordApplicationSubmitted(ctx context.Context)
}
