package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
	"github.com/hearthloan/prequal/pkg/testutil"
)

func completeUpdate() model.ProfileUpdate {
	income := decimal.NewFromInt(120000)
	return model.ProfileUpdate{
		FirstName:        testutil.StrPtr("Ada"),
		LastName:         testutil.StrPtr("Lovelace"),
		DOB:              testutil.StrPtr("1985-12-10"),
		Address:          map[string]string{"city": "Austin", "state": "TX"},
		EmploymentStatus: testutil.StrPtr("employed"),
		AnnualIncome:     &income,
	}
}

func TestNewProfile(t *testing.T) {
	p, err := model.NewProfile(testutil.TestUserID1, testutil.TestNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, testutil.TestUserID1, p.UserID())
	assert.Equal(t, valueobject.KYCIncomplete, p.KYCStatus())
	assert.Nil(t, p.CreditScore())
	assert.Empty(t, p.DomainEvents())
}

func TestNewProfile_MissingUserID(t *testing.T) {
	_, err := model.NewProfile(uuid.Nil, testutil.TestNow)
	testutil.AssertErrorContains(t, err, "user ID is required")
}

func TestProfile_Apply(t *testing.T) {
	base, err := model.NewProfile(testutil.TestUserID1, testutil.TestNow)
	require.NoError(t, err)

	t.Run("partial update stays incomplete", func(t *testing.T) {
		next, err := base.Apply(model.ProfileUpdate{FirstName: testutil.StrPtr(" Ada ")}, testutil.TestNow)
		require.NoError(t, err)

		assert.Equal(t, "Ada", next.FirstName())
		assert.Equal(t, valueobject.KYCIncomplete, next.KYCStatus())
		assert.Empty(t, next.DomainEvents())
		assert.Empty(t, base.FirstName(), "original must be unchanged")
	})

	t.Run("complete update moves to pending", func(t *testing.T) {
		next, err := base.Apply(completeUpdate(), testutil.TestNow)
		require.NoError(t, err)

		assert.Equal(t, valueobject.KYCPending, next.KYCStatus())
		require.Len(t, next.DomainEvents(), 1)
		assert.Equal(t, "profile.kyc_pending", next.DomainEvents()[0].EventType())
	})

	t.Run("zero income does not count", func(t *testing.T) {
		u := completeUpdate()
		zero := decimal.Zero
		u.AnnualIncome = &zero
		next, err := base.Apply(u, testutil.TestNow)
		require.NoError(t, err)
		assert.Equal(t, valueobject.KYCIncomplete, next.KYCStatus())
	})

	t.Run("pending is not re-raised", func(t *testing.T) {
		pending, err := base.Apply(completeUpdate(), testutil.TestNow)
		require.NoError(t, err)
		pending = pending.ClearEvents()

		next, err := pending.Apply(model.ProfileUpdate{EmployerName: testutil.StrPtr("Acme")}, testutil.TestNow)
		require.NoError(t, err)
		assert.Equal(t, valueobject.KYCPending, next.KYCStatus())
		assert.Empty(t, next.DomainEvents())
	})

	t.Run("verified is never downgraded", func(t *testing.T) {
		s := base.Snapshot()
		s.KYCStatus = valueobject.KYCVerified
		verified := model.ReconstructProfile(s)

		next, err := verified.Apply(model.ProfileUpdate{FirstName: testutil.StrPtr("Grace")}, testutil.TestNow)
		require.NoError(t, err)
		assert.Equal(t, valueobject.KYCVerified, next.KYCStatus())
	})

	t.Run("invalid ssn", func(t *testing.T) {
		_, err := base.Apply(model.ProfileUpdate{SSNLast4: testutil.StrPtr("12a4")}, testutil.TestNow)
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("negative income", func(t *testing.T) {
		neg := decimal.NewFromInt(-1)
		_, err := base.Apply(model.ProfileUpdate{AnnualIncome: &neg}, testutil.TestNow)
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestProfile_ApplicantContext(t *testing.T) {
	p, err := model.NewProfile(testutil.TestUserID1, testutil.TestNow)
	require.NoError(t, err)
	assert.Nil(t, p.ApplicantContext().CreditScore)

	scored := p.WithCreditScore(742, testutil.TestNow)
	require.NotNil(t, scored.ApplicantContext().CreditScore)
	assert.Equal(t, 742, *scored.ApplicantContext().CreditScore)
	assert.Nil(t, p.CreditScore())
}
