package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
)

// ApplicationListLimit caps how many applications are listed.
const ApplicationListLimit = 50

// CreateApplicationUseCase opens a draft application.
type CreateApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
}

// NewCreateApplicationUseCase wires dependencies.
func NewCreateApplicationUseCase(appRepo port.ApplicationRepository, publisher port.EventPublisher) *CreateApplicationUseCase {
	return &CreateApplicationUseCase{appRepo: appRepo, publisher: publisher}
}

// Execute creates and persists the draft.
func (uc *CreateApplicationUseCase) Execute(
	ctx context.Context,
	req dto.CreateApplicationRequest,
) (dto.ApplicationResponse, error) {
	// 1. Create the aggregate.
	app, err := model.NewApplication(req.UserID, model.ApplicationDraft{
		LoanAmount:      req.LoanAmount,
		LoanType:        req.LoanType,
		PropertyAddress: req.PropertyAddress,
		PropertyValue:   req.PropertyValue,
		DownPayment:     req.DownPayment,
		Purpose:         req.Purpose,
	}, time.Now().UTC())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 2. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 3. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}

// GetApplicationUseCase retrieves one of the caller's applications.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute returns the application if the caller owns it.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.ApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, req.UserID, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListApplicationsUseCase lists the caller's applications.
type ListApplicationsUseCase struct {
	appRepo port.ApplicationRepository
}

// NewListApplicationsUseCase wires dependencies.
func NewListApplicationsUseCase(appRepo port.ApplicationRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{appRepo: appRepo}
}

// Execute returns up to ApplicationListLimit applications.
func (uc *ListApplicationsUseCase) Execute(
	ctx context.Context,
	req dto.ListApplicationsRequest,
) (dto.ApplicationListResponse, error) {
	apps, err := uc.appRepo.ListByUserID(ctx, req.UserID, ApplicationListLimit)
	if err != nil {
		return dto.ApplicationListResponse{}, fmt.Errorf("list applications: %w", err)
	}
	resp := dto.ApplicationListResponse{Applications: make([]dto.ApplicationResponse, 0, len(apps))}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(app))
	}
	return resp, nil
}

// SubmitApplicationUseCase moves a draft to submitted.
type SubmitApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{appRepo: appRepo, publisher: publisher, metrics: metrics}
}

// Execute submits the draft. Submitting twice is an invalid transition.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	// 1. Transition inside the repository's transaction.
	app, err := uc.appRepo.Update(ctx, req.UserID, req.ApplicationID, func(current model.Application) (model.Application, error) {
		return current.Submit(time.Now().UTC())
	})
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("submit application: %w", err)
	}

	// 2. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.metrics.RecordApplicationSubmitted(ctx)
	return toApplicationResponse(app), nil
}
