package types_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/types"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected decimal.Decimal
	}{
		{"number", `123.45`, decimal.NewFromFloat(123.45)},
		{"numeric string", `"67.80"`, decimal.NewFromFloat(67.8)},
		{"null", `null`, decimal.Zero},
		{"empty string", `""`, decimal.Zero},
		{"garbage", `"abc"`, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a types.Amount
			err := json.Unmarshal([]byte(tt.json), &a)

			// Malformed amounts contribute zero, they do not error.
			require.Nil(t, err)
			assert.True(t, tt.expected.Equal(a.Decimal), "got %s", a.Decimal)
		})
	}
}

func TestAmountMissingField(t *testing.T) {
	var target struct {
		Amount types.Amount `json:"amount"`
	}
	err := json.Unmarshal([]byte(`{}`), &target)

	require.Nil(t, err)
	assert.True(t, target.Amount.IsZero())
}
