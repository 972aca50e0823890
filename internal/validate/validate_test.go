package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/moneydash/moneydash/internal/types"
	"github.com/moneydash/moneydash/internal/validate"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		err   error
	}{
		{"user@example.com", nil},
		{" user@example.com ", nil},
		{"userexample.com", validate.ErrInvalidEmail},
		{"user@", validate.ErrInvalidEmail},
		{"", validate.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.ErrorIs(t, validate.Email(tt.email), tt.err)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		err      error
	}{
		{"valid", "Secret!123", nil},
		{"too short", "Ab!2", validate.ErrWeakPassword},
		{"no uppercase", "secret!123", validate.ErrWeakPassword},
		{"no special character", "Secret1234", validate.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validate.Password(tt.password), tt.err)
		})
	}
}

func TestRequired(t *testing.T) {
	assert.Nil(t, validate.Required("name"))
	assert.ErrorIs(t, validate.Required("   "), validate.ErrRequired)
}

func TestPositiveAmount(t *testing.T) {
	assert.Nil(t, validate.PositiveAmount(decimal.NewFromFloat(0.01)))
	assert.ErrorIs(t, validate.PositiveAmount(decimal.Zero), validate.ErrAmountNotPositive)
	assert.ErrorIs(t, validate.PositiveAmount(decimal.NewFromInt(-1)), validate.ErrAmountNotPositive)
}

func TestDateNotFuture(t *testing.T) {
	now := time.Date(2025, 8, 20, 15, 0, 0, 0, time.UTC)

	assert.Nil(t, validate.DateNotFuture(types.NewDate(2025, 8, 20), now))
	assert.Nil(t, validate.DateNotFuture(types.NewDate(2025, 8, 1), now))
	assert.Nil(t, validate.DateNotFuture(types.Date{}, now))
	assert.ErrorIs(t, validate.DateNotFuture(types.NewDate(2025, 8, 21), now), validate.ErrDateInFuture)
}

func TestUniqueName(t *testing.T) {
	existing := []string{"Food", "Rent "}

	assert.Nil(t, validate.UniqueName("Travel", existing))
	assert.ErrorIs(t, validate.UniqueName("food", existing), validate.ErrDuplicateName)
	assert.ErrorIs(t, validate.UniqueName(" RENT", existing), validate.ErrDuplicateName)
}
