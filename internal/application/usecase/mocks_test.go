package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hearthloan/prequal/internal/domain/event"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
)

// --- Mock implementations ---

type mockProfileRepository struct {
	saveFunc         func(ctx context.Context, p model.Profile) error
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	savedProfiles    []model.Profile
}

func (m *mockProfileRepository) Save(ctx context.Context, p model.Profile) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	m.savedProfiles = append(m.savedProfiles, p)
	return nil
}

func (m *mockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return model.Profile{}, port.ErrNotFound
}

type mockPreQualificationRepository struct {
	saveFunc  func(ctx context.Context, p model.PreQualification) error
	listFunc  func(ctx context.Context, userID uuid.UUID, limit int) ([]model.PreQualification, error)
	saved     []model.PreQualification
	lastLimit int
}

func (m *mockPreQualificationRepository) Save(ctx context.Context, p model.PreQualification) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	m.saved = append(m.saved, p)
	return nil
}

func (m *mockPreQualificationRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.PreQualification, error) {
	m.lastLimit = limit
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, limit)
	}
	return nil, nil
}

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.Application) error
	findByIDFunc func(ctx context.Context, userID, id uuid.UUID) (model.Application, error)
	listFunc     func(ctx context.Context, userID uuid.UUID, limit int) ([]model.Application, error)
	updateFunc   func(ctx context.Context, userID, id uuid.UUID, fn func(model.Application) (model.Application, error)) (model.Application, error)
	savedApps    []model.Application
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.Application) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (model.Application, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, userID, id)
	}
	return model.Application{}, port.ErrNotFound
}

func (m *mockApplicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.Application, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockApplicationRepository) Update(
	ctx context.Context, userID, id uuid.UUID, fn func(model.Application) (model.Application, error),
) (model.Application, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, id, fn)
	}
	current, err := m.FindByID(ctx, userID, id)
	if err != nil {
		return model.Application{}, err
	}
	next, err := fn(current)
	if err != nil {
		return model.Application{}, err
	}
	m.savedApps = append(m.savedApps, next)
	return next, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockCreditBureau struct {
	softPullFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	calls        int
}

func (m *mockCreditBureau) SoftPull(ctx context.Context, userID uuid.UUID) (int, error) {
	m.calls++
	if m.softPullFunc != nil {
		return m.softPullFunc(ctx, userID)
	}
	return 735, nil
}

type mockMetricsRecorder struct {
	mu        sync.Mutex
	statuses  []string
	submitted int
}

func (m *mockMetricsRecorder) RecordPreQualification(_ context.Context, status string, _ int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
}

func (m *mockMetricsRecorder) RecordApplicationSubmitted(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted++
}
