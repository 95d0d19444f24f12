package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/application/usecase"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
	"github.com/hearthloan/prequal/pkg/auth"
)

// PrequalHandler serves PrequalService on top of the application use cases.
// The caller's identity always comes from the validated token, never the
// request body.
type PrequalHandler struct {
	UnimplementedPrequalServiceServer
	uc     usecase.Set
	logger *slog.Logger
}

func NewPrequalHandler(uc usecase.Set, logger *slog.Logger) *PrequalHandler {
	return &PrequalHandler{uc: uc, logger: logger}
}

func (h *PrequalHandler) Prequalify(ctx context.Context, req *dto.PrequalifyRequest) (*dto.PreQualificationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	resp, err := h.uc.Prequalify.Execute(ctx, *req)
	return respond(ctx, h.logger, resp, err)
}

func (h *PrequalHandler) GetPrequalHistory(ctx context.Context, _ *dto.PrequalHistoryRequest) (*dto.PrequalHistoryResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.PrequalHistory.Execute(ctx, dto.PrequalHistoryRequest{UserID: userID})
	return respond(ctx, h.logger, resp, err)
}

func (h *PrequalHandler) ListProducts(ctx context.Context, req *dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	resp, err := h.uc.ListProducts.Execute(ctx, *req)
	return respond(ctx, h.logger, resp, err)
}

func (h *PrequalHandler) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	resp, err := h.uc.GetApplication.Execute(ctx, *req)
	return respond(ctx, h.logger, resp, err)
}

func (h *PrequalHandler) SubmitApplication(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	resp, err := h.uc.SubmitApplication.Execute(ctx, *req)
	return respond(ctx, h.logger, resp, err)
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.UserID == uuid.Nil {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing caller identity")
	}
	return claims.UserID, nil
}

func respond[T any](ctx context.Context, logger *slog.Logger, resp T, err error) (*T, error) {
	if err != nil {
		return nil, toStatus(ctx, logger, err)
	}
	return &resp, nil
}

// toStatus maps domain errors onto gRPC codes. Anything unrecognised is
// logged and reported as Internal without leaking details.
func toStatus(ctx context.Context, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.ErrorContext(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
