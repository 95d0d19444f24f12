package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/event"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
)

// GetProfileUseCase returns the caller's profile, creating an empty one on
// first access.
type GetProfileUseCase struct {
	profiles port.ProfileRepository
}

// NewGetProfileUseCase wires dependencies.
func NewGetProfileUseCase(profiles port.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profiles: profiles}
}

// Execute returns the stored profile or a freshly persisted empty one.
func (uc *GetProfileUseCase) Execute(ctx context.Context, req dto.GetProfileRequest) (dto.ProfileResponse, error) {
	profile, err := loadOrCreateProfile(ctx, uc.profiles, req.UserID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return toProfileResponse(profile), nil
}

// UpdateProfileUseCase merges a partial update and advances KYC.
type UpdateProfileUseCase struct {
	profiles  port.ProfileRepository
	bureau    port.CreditBureau
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUpdateProfileUseCase wires dependencies.
func NewUpdateProfileUseCase(
	profiles port.ProfileRepository,
	bureau port.CreditBureau,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profiles:  profiles,
		bureau:    bureau,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute applies the update. When the profile becomes ready for KYC a soft
// credit pull is attempted; a bureau failure does not fail the update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, req dto.UpdateProfileRequest) (dto.ProfileResponse, error) {
	now := time.Now().UTC()

	// 1. Load the current profile.
	profile, err := loadOrCreateProfile(ctx, uc.profiles, req.UserID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	// 2. Merge the update.
	updated, err := profile.Apply(model.ProfileUpdate{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DOB:              req.DOB,
		SSNLast4:         req.SSNLast4,
		Address:          req.Address,
		EmploymentStatus: req.EmploymentStatus,
		EmployerName:     req.EmployerName,
		AnnualIncome:     req.AnnualIncome,
		MonthlyIncome:    req.MonthlyIncome,
		Assets:           req.Assets,
		Liabilities:      req.Liabilities,
	}, now)
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("apply profile update: %w", err)
	}

	// 3. Soft pull once the profile enters KYC review.
	if becamePending(updated.DomainEvents()) {
		score, err := uc.bureau.SoftPull(ctx, req.UserID)
		if err != nil {
			uc.logger.WarnContext(ctx, "soft credit pull failed", "user_id", req.UserID, "error", err)
		} else {
			updated = updated.WithCreditScore(score, now)
		}
	}

	// 4. Persist.
	if err := uc.profiles.Save(ctx, updated); err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("save profile: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toProfileResponse(updated.ClearEvents()), nil
}

func loadOrCreateProfile(ctx context.Context, profiles port.ProfileRepository, userID uuid.UUID) (model.Profile, error) {
	profile, err := profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return model.Profile{}, fmt.Errorf("find profile: %w", err)
	}

	profile, err = model.NewProfile(userID, time.Now().UTC())
	if err != nil {
		return model.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	if err := profiles.Save(ctx, profile); err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func becamePending(events []event.DomainEvent) bool {
	for _, e := range events {
		if e.EventType() == event.TypeProfileKYCPending {
			return true
		}
	}
	return false
}
