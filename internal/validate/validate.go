// Package validate implements the client-side form checks.
//
// These checks block a submit before any request is made; the backend may or
// may not enforce the same rules.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/types"
)

var (
	ErrRequired          = errors.New("this field is required")
	ErrInvalidEmail      = errors.New("please enter a valid email address")
	ErrWeakPassword      = errors.New("password must be at least 8 characters with an uppercase letter and a special character")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrDateInFuture      = errors.New("date must not be in the future")
	ErrDuplicateName     = errors.New("a record with this name already exists")
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	specialPattern   = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// Required rejects empty or whitespace-only values.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	return nil
}

// Email checks the address shape.
func Email(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// Password requires at least 8 characters, one uppercase letter and one
// special character.
func Password(password string) error {
	trimmed := strings.TrimSpace(password)
	if len(trimmed) < 8 || !uppercasePattern.MatchString(trimmed) || !specialPattern.MatchString(trimmed) {
		return ErrWeakPassword
	}
	return nil
}

// PositiveAmount rejects zero and negative amounts.
func PositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

// DateNotFuture rejects dates after today. Invalid dates pass; missing dates
// are handled by Required on the form field.
func DateNotFuture(date types.Date, now time.Time) error {
	if !date.Valid {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Time.After(today) {
		return ErrDateInFuture
	}
	return nil
}

// UniqueName rejects names that already exist, ignoring case and surrounding
// whitespace.
func UniqueName(name string, existing []string) error {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, e := range existing {
		if strings.ToLower(strings.TrimSpace(e)) == normalized {
			return ErrDuplicateName
		}
	}
	return nil
}
