package usecase

import (
	"context"

	"github.com/hearthloan/prequal/internal/application/dto"
)

// UseCase is the shape every use case in this package satisfies.
type UseCase[Req, Resp any] interface {
	Execute(ctx context.Context, req Req) (Resp, error)
}

// Set bundles the use cases the transports expose.
type Set struct {
	Prequalify        UseCase[dto.PrequalifyRequest, dto.PreQualificationResponse]
	PrequalHistory    UseCase[dto.PrequalHistoryRequest, dto.PrequalHistoryResponse]
	Schedule          UseCase[dto.ScheduleRequest, dto.ScheduleResponse]
	GetProfile        UseCase[dto.GetProfileRequest, dto.ProfileResponse]
	UpdateProfile     UseCase[dto.UpdateProfileRequest, dto.ProfileResponse]
	ListProducts      UseCase[dto.ListProductsRequest, dto.ProductListResponse]
	CreateApplication UseCase[dto.CreateApplicationRequest, dto.ApplicationResponse]
	GetApplication    UseCase[dto.GetApplicationRequest, dto.ApplicationResponse]
	ListApplications  UseCase[dto.ListApplicationsRequest, dto.ApplicationListResponse]
	SubmitApplication UseCase[dto.SubmitApplicationRequest, dto.ApplicationResponse]
	ClassifyIntent    UseCase[dto.ClassifyIntentRequest, dto.IntentResponse]
}

// Func adapts a plain function to UseCase.
type Func[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

func (f Func[Req, Resp]) Execute(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}
