package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
)

const profileKeyPrefix = "prequal:profile:"

// ProfileCache is a cache-aside decorator over a ProfileRepository. Redis
// failures degrade to the underlying repository and are only logged.
type ProfileCache struct {
	next   port.ProfileRepository
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewProfileCache(next port.ProfileRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *ProfileCache {
	return &ProfileCache{next: next, client: client, ttl: ttl, logger: logger}
}

// Save writes through and drops the cached copy.
func (c *ProfileCache) Save(ctx context.Context, p model.Profile) error {
	if err := c.next.Save(ctx, p); err != nil {
		return err
	}
	if err := c.client.Del(ctx, profileKey(p.UserID())).Err(); err != nil {
		c.logger.WarnContext(ctx, "profile cache invalidation failed", "user_id", p.UserID(), "error", err)
	}
	return nil
}

// FindByUserID serves from Redis when possible and fills it on a miss.
func (c *ProfileCache) FindByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	key := profileKey(userID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		p, decodeErr := decodeProfile(raw)
		if decodeErr == nil {
			return p, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt cached profile", "user_id", userID, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "profile cache read failed", "user_id", userID, "error", err)
	}

	p, err := c.next.FindByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	encoded, err := encodeProfile(p)
	if err != nil {
		c.logger.WarnContext(ctx, "profile cache encode failed", "user_id", userID, "error", err)
		return p, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "profile cache write failed", "user_id", userID, "error", err)
	}
	return p, nil
}

func profileKey(userID uuid.UUID) string {
	return profileKeyPrefix + userID.String()
}

// ---------------------------------------------------------------------------
// wire format
// ---------------------------------------------------------------------------

type cachedProfile struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user_id"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	DOB              string              `json:"dob"`
	SSNLast4         string              `json:"ssn_last4"`
	Address          map[string]string   `json:"address"`
	EmploymentStatus string              `json:"employment_status"`
	EmployerName     string              `json:"employer_name"`
	AnnualIncome     decimal.NullDecimal `json:"annual_income"`
	MonthlyIncome    decimal.NullDecimal `json:"monthly_income"`
	Assets           decimal.NullDecimal `json:"assets"`
	Liabilities      decimal.NullDecimal `json:"liabilities"`
	CreditScore      *int                `json:"credit_score"`
	KYCStatus        string              `json:"kyc_status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func encodeProfile(p model.Profile) ([]byte, error) {
	s := p.Snapshot()
	return json.Marshal(cachedProfile{
		ID:               s.ID,
		UserID:           s.UserID,
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		DOB:              s.DOB,
		SSNLast4:         s.SSNLast4,
		Address:          s.Address,
		EmploymentStatus: s.EmploymentStatus,
		EmployerName:     s.EmployerName,
		AnnualIncome:     s.AnnualIncome,
		MonthlyIncome:    s.MonthlyIncome,
		Assets:           s.Assets,
		Liabilities:      s.Liabilities,
		CreditScore:      s.CreditScore,
		KYCStatus:        s.KYCStatus.String(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	})
}

func decodeProfile(raw []byte) (model.Profile, error) {
	var c cachedProfile
	if err := json.Unmarshal(raw, &c); err != nil {
		return model.Profile{}, fmt.Errorf("unmarshal cached profile: %w", err)
	}
	kyc, err := valueobject.NewKYCStatus(c.KYCStatus)
	if err != nil {
		return model.Profile{}, err
	}
	return model.ReconstructProfile(model.ProfileSnapshot{
		ID:               c.ID,
		UserID:           c.UserID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		DOB:              c.DOB,
		SSNLast4:         c.SSNLast4,
		Address:          c.Address,
		EmploymentStatus: c.EmploymentStatus,
		EmployerName:     c.EmployerName,
		AnnualIncome:     c.AnnualIncome,
		MonthlyIncome:    c.MonthlyIncome,
		Assets:           c.Assets,
		Liabilities:      c.Liabilities,
		CreditScore:      c.CreditScore,
		KYCStatus:        kyc,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}), nil
}
