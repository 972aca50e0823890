package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary amount as sent by the backend.
//
// Decoding is fail-soft: numbers and numeric strings are accepted, anything
// else (null, empty, garbage) decodes as zero so that a single malformed
// record cannot break aggregation over a whole collection.
type Amount struct {
	decimal.Decimal
}

// NewAmount returns an Amount for a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromFloat returns an Amount for a float value.
func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Amount) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}

	a.Decimal = d
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}
