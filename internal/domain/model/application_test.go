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

func validDraft() model.ApplicationDraft {
	return model.ApplicationDraft{
		LoanAmount:      decimal.NewFromInt(300000),
		LoanType:        "30yr_fixed",
		PropertyAddress: map[string]string{"street": "1 Main St"},
		PropertyValue:   decimal.NewFromInt(360000),
		DownPayment:     decimal.NewFromInt(60000),
	}
}

func TestNewApplication(t *testing.T) {
	app, err := model.NewApplication(testutil.TestUserID1, validDraft(), testutil.TestNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, app.ID())
	assert.Equal(t, valueobject.ApplicationDraft, app.Status())
	assert.Nil(t, app.SubmittedAt())
	assert.Equal(t, valueobject.PurposePurchase, app.Snapshot().Purpose)
	require.Len(t, app.DomainEvents(), 1)
	assert.Equal(t, "application.created", app.DomainEvents()[0].EventType())
}

func TestNewApplication_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ApplicationDraft)
	}{
		{"zero loan amount", func(d *model.ApplicationDraft) { d.LoanAmount = decimal.Zero }},
		{"zero property value", func(d *model.ApplicationDraft) { d.PropertyValue = decimal.Zero }},
		{"negative down payment", func(d *model.ApplicationDraft) { d.DownPayment = decimal.NewFromInt(-1) }},
		{"missing loan type", func(d *model.ApplicationDraft) { d.LoanType = " " }},
		{"unknown purpose", func(d *model.ApplicationDraft) { d.Purpose = "cash-out" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := model.NewApplication(testutil.TestUserID1, d, testutil.TestNow)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestApplication_Submit(t *testing.T) {
	app, err := model.NewApplication(testutil.TestUserID1, validDraft(), testutil.TestNow)
	require.NoError(t, err)

	submitted, err := app.Submit(testutil.TestNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ApplicationSubmitted, submitted.Status())
	require.NotNil(t, submitted.SubmittedAt())
	assert.Equal(t, testutil.TestNow, *submitted.SubmittedAt())
	require.Len(t, submitted.DomainEvents(), 2)
	assert.Equal(t, "application.submitted", submitted.DomainEvents()[1].EventType())
	assert.Equal(t, valueobject.ApplicationDraft, app.Status(), "original must be unchanged")

	_, err = submitted.Submit(testutil.TestNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}
