package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/service"
)

const tracerName = "github.com/hearthloan/prequal/internal/application/usecase"

// HistoryLimit is how many past pre-qualifications a user sees.
const HistoryLimit = 10

// PrequalifyUseCase runs the decision engine for a user and records the result.
type PrequalifyUseCase struct {
	profiles  port.ProfileRepository
	prequals  port.PreQualificationRepository
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	engine    *service.PreQualificationEngine
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewPrequalifyUseCase wires dependencies.
func NewPrequalifyUseCase(
	profiles port.ProfileRepository,
	prequals port.PreQualificationRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	engine *service.PreQualificationEngine,
	logger *slog.Logger,
) *PrequalifyUseCase {
	return &PrequalifyUseCase{
		profiles:  profiles,
		prequals:  prequals,
		publisher: publisher,
		metrics:   metrics,
		engine:    engine,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Execute validates, evaluates, persists and publishes a pre-qualification.
func (uc *PrequalifyUseCase) Execute(
	ctx context.Context,
	req dto.PrequalifyRequest,
) (resp dto.PreQualificationResponse, err error) {
	start := time.Now()
	ctx, span := uc.tracer.Start(ctx, "Prequalify", trace.WithAttributes(
		attribute.String("user_id", req.UserID.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("prequal.status", resp.Status))
		}
		span.End()
	}()

	// 1. Validate at the boundary; the engine never rejects input.
	loanReq := model.LoanRequest{
		LoanAmount:       req.LoanAmount,
		DownPayment:      req.DownPayment,
		AnnualIncome:     req.AnnualIncome,
		MonthlyDebts:     req.MonthlyDebts,
		CreditScore:      req.CreditScore,
		EmploymentStatus: req.EmploymentStatus,
		PropertyType:     req.PropertyType,
	}
	if loanReq.PropertyType == "" {
		loanReq.PropertyType = model.DefaultPropertyType
	}
	if err := loanReq.Validate(); err != nil {
		return dto.PreQualificationResponse{}, fmt.Errorf("validate request: %w", err)
	}

	// 2. Look up the stored profile score, if any.
	var applicant model.ApplicantContext
	profile, err := uc.profiles.FindByUserID(ctx, req.UserID)
	switch {
	case err == nil:
		applicant = profile.ApplicantContext()
	case errors.Is(err, port.ErrNotFound):
	default:
		return dto.PreQualificationResponse{}, fmt.Errorf("find profile: %w", err)
	}

	// 3. Run the engine.
	result := uc.engine.Evaluate(loanReq, applicant)

	// 4. Record the result.
	prequal, err := model.NewPreQualification(req.UserID, loanReq, result, time.Now().UTC())
	if err != nil {
		return dto.PreQualificationResponse{}, fmt.Errorf("create pre-qualification: %w", err)
	}
	if err := uc.prequals.Save(ctx, prequal); err != nil {
		return dto.PreQualificationResponse{}, fmt.Errorf("save pre-qualification: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, prequal.DomainEvents()...); err != nil {
		return dto.PreQualificationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// 6. Metrics.
	uc.metrics.RecordPreQualification(ctx, result.Status.String(), result.CreditScore, time.Since(start))
	uc.logger.InfoContext(ctx, "pre-qualification recorded",
		"prequal_id", prequal.ID(),
		"user_id", req.UserID,
		"status", result.Status.String(),
		"conditions", len(result.Conditions),
	)

	return toPreQualificationResponse(prequal), nil
}

// GetPrequalHistoryUseCase lists a user's recent pre-qualifications.
type GetPrequalHistoryUseCase struct {
	prequals port.PreQualificationRepository
}

// NewGetPrequalHistoryUseCase wires dependencies.
func NewGetPrequalHistoryUseCase(prequals port.PreQualificationRepository) *GetPrequalHistoryUseCase {
	return &GetPrequalHistoryUseCase{prequals: prequals}
}

// Execute returns at most HistoryLimit records, newest first.
func (uc *GetPrequalHistoryUseCase) Execute(
	ctx context.Context,
	req dto.PrequalHistoryRequest,
) (dto.PrequalHistoryResponse, error) {
	records, err := uc.prequals.ListByUserID(ctx, req.UserID, HistoryLimit)
	if err != nil {
		return dto.PrequalHistoryResponse{}, fmt.Errorf("list pre-qualifications: %w", err)
	}
	resp := dto.PrequalHistoryResponse{Results: make([]dto.PreQualificationResponse, 0, len(records))}
	for _, r := range records {
		resp.Results = append(resp.Results, toPreQualificationResponse(r))
	}
	return resp, nil
}
