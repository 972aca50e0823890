package models

import (
	"github.com/google/uuid"
	"github.com/moneydash/moneydash/internal/types"
	"github.com/shopspring/decimal"
)

// Budget is a spending limit for one expense category in one month.
//
// There is one budget per (category, month); the backend upserts on POST.
// SpentAmount and Remaining are derived server-side; Remaining may be
// negative, overspending is valid state.
type Budget struct {
	ID           uuid.UUID       `json:"id,omitempty"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Month        types.Month     `json:"month"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	SpentAmount  decimal.Decimal `json:"spentAmount"`
	Remaining    decimal.Decimal `json:"remaining"`
	Status       string          `json:"status,omitempty"`
}
