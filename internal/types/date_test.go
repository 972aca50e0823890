package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/types"
)

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		valid    bool
		expected types.Date
	}{
		{"plain date", `"2025-08-14"`, true, types.NewDate(2025, 8, 14)},
		{"RFC3339", `"2025-08-14T10:30:00Z"`, true, types.NewDate(2025, 8, 14)},
		{"null", `null`, false, types.Date{}},
		{"empty string", `""`, false, types.Date{}},
		{"garbage", `"14/08/2025"`, false, types.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d types.Date
			err := json.Unmarshal([]byte(tt.json), &d)

			// Malformed dates are not an error, the date is just invalid.
			require.Nil(t, err)
			assert.Equal(t, tt.valid, d.Valid)
			if tt.valid {
				assert.True(t, d.Time.Equal(tt.expected.Time))
			}
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	data, err := json.Marshal(types.NewDate(2025, 1, 2))
	assert.Nil(t, err)
	assert.Equal(t, `"2025-01-02"`, string(data))

	data, err = json.Marshal(types.Date{})
	assert.Nil(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDateMonth(t *testing.T) {
	assert.True(t, types.NewMonth(2025, 8).Equal(types.NewDate(2025, 8, 14).Month()))
}
