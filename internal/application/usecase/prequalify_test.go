package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/application/usecase"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/service"
	"github.com/hearthloan/prequal/pkg/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validPrequalifyRequest() dto.PrequalifyRequest {
	return dto.PrequalifyRequest{
		UserID:           testutil.TestUserID1,
		LoanAmount:       decimal.NewFromInt(300000),
		DownPayment:      decimal.NewFromInt(60000),
		AnnualIncome:     decimal.NewFromInt(90000),
		MonthlyDebts:     decimal.NewFromInt(500),
		CreditScore:      testutil.IntPtr(720),
		EmploymentStatus: "employed",
	}
}

func newPrequalifyUseCase(
	profiles *mockProfileRepository,
	prequals *mockPreQualificationRepository,
	publisher *mockEventPublisher,
	metrics *mockMetricsRecorder,
) *usecase.PrequalifyUseCase {
	return usecase.NewPrequalifyUseCase(
		profiles, prequals, publisher, metrics,
		service.NewPreQualificationEngine(service.DefaultPolicy()),
		discardLogger(),
	)
}

func TestPrequalify_Execute(t *testing.T) {
	t.Run("records and publishes an approved pre-qualification", func(t *testing.T) {
		prequals := &mockPreQualificationRepository{}
		publisher := &mockEventPublisher{}
		metrics := &mockMetricsRecorder{}
		uc := newPrequalifyUseCase(&mockProfileRepository{}, prequals, publisher, metrics)

		resp, err := uc.Execute(context.Background(), validPrequalifyRequest())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, testutil.TestUserID1, resp.UserID)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, 720, resp.CreditScore)
		testutil.AssertDecimal(t, "6.25", resp.EstimatedRate)
		assert.Equal(t, []string{}, resp.Conditions)

		require.Len(t, prequals.saved, 1)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "prequal.completed", publisher.publishedEvents[0].EventType())
		assert.Equal(t, []string{"approved"}, metrics.statuses)
	})

	t.Run("falls back to the stored profile score", func(t *testing.T) {
		profiles := &mockProfileRepository{
			findByUserIDFunc: func(_ context.Context, userID uuid.UUID) (model.Profile, error) {
				p, err := model.NewProfile(userID, testutil.TestNow)
				require.NoError(t, err)
				return p.WithCreditScore(600, testutil.TestNow), nil
			},
		}
		uc := newPrequalifyUseCase(profiles, &mockPreQualificationRepository{}, &mockEventPublisher{}, &mockMetricsRecorder{})

		req := validPrequalifyRequest()
		req.CreditScore = nil
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 600, resp.CreditScore)
		assert.Equal(t, "denied", resp.Status)
	})

	t.Run("uses the default score without a profile", func(t *testing.T) {
		uc := newPrequalifyUseCase(&mockProfileRepository{}, &mockPreQualificationRepository{}, &mockEventPublisher{}, &mockMetricsRecorder{})

		req := validPrequalifyRequest()
		req.CreditScore = nil
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 680, resp.CreditScore)
	})

	t.Run("rejects a missing employment status", func(t *testing.T) {
		prequals := &mockPreQualificationRepository{}
		uc := newPrequalifyUseCase(&mockProfileRepository{}, prequals, &mockEventPublisher{}, &mockMetricsRecorder{})

		req := validPrequalifyRequest()
		req.EmploymentStatus = ""
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Contains(t, err.Error(), "validate request")
		assert.Empty(t, prequals.saved)
	})

	t.Run("fails when profile lookup fails", func(t *testing.T) {
		profiles := &mockProfileRepository{
			findByUserIDFunc: func(context.Context, uuid.UUID) (model.Profile, error) {
				return model.Profile{}, errors.New("connection reset")
			},
		}
		uc := newPrequalifyUseCase(profiles, &mockPreQualificationRepository{}, &mockEventPublisher{}, &mockMetricsRecorder{})

		_, err := uc.Execute(context.Background(), validPrequalifyRequest())
		testutil.AssertErrorContains(t, err, "find profile")
	})

	t.Run("fails when save fails", func(t *testing.T) {
		prequals := &mockPreQualificationRepository{
			saveFunc: func(context.Context, model.PreQualification) error { return fmt.Errorf("database unavailable") },
		}
		publisher := &mockEventPublisher{}
		uc := newPrequalifyUseCase(&mockProfileRepository{}, prequals, publisher, &mockMetricsRecorder{})

		_, err := uc.Execute(context.Background(), validPrequalifyRequest())
		testutil.AssertErrorContains(t, err, "save pre-qualification")
		assert.Empty(t, publisher.publishedEvents)
	})
}

func TestPrequalify_Tracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var repoSawSpan bool
	profiles := &mockProfileRepository{
		findByUserIDFunc: func(ctx context.Context, _ uuid.UUID) (model.Profile, error) {
			repoSawSpan = trace.SpanFromContext(ctx).SpanContext().IsValid()
			return model.Profile{}, port.ErrNotFound
		},
	}
	uc := newPrequalifyUseCase(profiles, &mockPreQualificationRepository{}, &mockEventPublisher{}, &mockMetricsRecorder{})

	t.Run("success", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), validPrequalifyRequest())
		require.NoError(t, err)
		assert.True(t, repoSawSpan, "repository calls run inside the use case span")

		spans := rec.Ended()
		require.NotEmpty(t, spans)
		last := spans[len(spans)-1]
		assert.Equal(t, "Prequalify", last.Name())
		assert.Contains(t, last.Attributes(), attribute.String("prequal.status", "approved"))
		assert.Equal(t, codes.Unset, last.Status().Code)
	})

	t.Run("failure marks the span", func(t *testing.T) {
		req := validPrequalifyRequest()
		req.EmploymentStatus = ""
		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)

		spans := rec.Ended()
		assert.Equal(t, codes.Error, spans[len(spans)-1].Status().Code)
	})
}

func TestGetPrequalHistory_Execute(t *testing.T) {
	engine := service.NewPreQualificationEngine(service.DefaultPolicy())
	req := model.LoanRequest{
		LoanAmount:       decimal.NewFromInt(300000),
		DownPayment:      decimal.NewFromInt(60000),
		AnnualIncome:     decimal.NewFromInt(90000),
		MonthlyDebts:     decimal.NewFromInt(500),
		EmploymentStatus: "employed",
	}
	record, err := model.NewPreQualification(testutil.TestUserID1, req, engine.Evaluate(req, model.ApplicantContext{}), testutil.TestNow)
	require.NoError(t, err)

	prequals := &mockPreQualificationRepository{
		listFunc: func(_ context.Context, userID uuid.UUID, _ int) ([]model.PreQualification, error) {
			assert.Equal(t, testutil.TestUserID1, userID)
			return []model.PreQualification{record}, nil
		},
	}
	uc := usecase.NewGetPrequalHistoryUseCase(prequals)

	resp, err := uc.Execute(context.Background(), dto.PrequalHistoryRequest{UserID: testutil.TestUserID1})

	require.NoError(t, err)
	assert.Equal(t, usecase.HistoryLimit, prequals.lastLimit)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, record.ID(), resp.Results[0].ID)
	assert.Equal(t, testutil.TestNow, resp.Results[0].CreatedAt)
}

func TestAmortizationSchedule_Execute(t *testing.T) {
	uc := usecase.NewAmortizationScheduleUseCase(service.NewAmortizationSolver(service.DefaultPolicy()))

	t.Run("defaults to the policy term", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ScheduleRequest{
			LoanAmount: decimal.NewFromInt(100000),
			Rate:       decimal.NewFromInt(6),
		})
		require.NoError(t, err)
		assert.Equal(t, 360, resp.TermMonths)
		assert.Len(t, resp.Entries, 360)
		testutil.AssertDecimal(t, "599.55", resp.MonthlyPayment)
		assert.True(t, resp.TotalPaid.Sub(resp.TotalInterest).Equal(decimal.NewFromInt(100000)))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, req := range []dto.ScheduleRequest{
			{LoanAmount: decimal.Zero, Rate: decimal.NewFromInt(6)},
			{LoanAmount: decimal.NewFromInt(1000), Rate: decimal.NewFromInt(-1)},
			{LoanAmount: decimal.NewFromInt(1000), Rate: decimal.NewFromInt(6), TermMonths: 1000},
			{LoanAmount: decimal.RequireFromString("1e400"), Rate: decimal.NewFromInt(6)},
			{LoanAmount: decimal.NewFromInt(1000), Rate: decimal.RequireFromString("1e400")},
		} {
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, model.ErrValidation)
		}
	})
}
