package types

import (
	"strings"
	"time"
)

// datePatterns are the formats the backend has been observed to send for
// transaction dates.
var datePatterns = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Date is a calendar date without time precision.
//
// Records can carry missing or malformed dates. Those are not decode errors:
// such a date simply has Valid set to false and the record is excluded from
// time-bucketed views while staying visible everywhere else.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// DateOf returns the Date of the time instant.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// String returns the date formatted as YYYY-MM-DD, or an empty string for an
// invalid date.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// Month returns the calendar month the date falls in.
func (d Date) Month() Month {
	return MonthOf(d.Time)
}

// Before reports whether d is before the time instant t. Invalid dates are
// never before anything.
func (d Date) Before(t time.Time) bool {
	return d.Valid && d.Time.Before(t)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Unparsable values are decoded as an invalid Date, not rejected: one corrupt
// record must not take down a whole collection decode.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	for _, pattern := range datePatterns {
		t, err := time.Parse(pattern, value)
		if err == nil {
			*d = DateOf(t)
			return nil
		}
	}

	*d = Date{}
	return nil
}
