package models

import (
	"github.com/shopspring/decimal"
	"github.com/moneydash/moneydash/internal/types"
)

// TrendDirection indicates how spending moved against the prior month.
type TrendDirection string

const (
	TrendUp   TrendDirection = "UP"
	TrendDown TrendDirection = "DOWN"
	TrendFlat TrendDirection = "FLAT"
)

// DashboardSummary is the backend's precomputed dashboard payload.
type DashboardSummary struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpense       decimal.Decimal `json:"totalExpense"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	ChangePercentage   decimal.Decimal `json:"changePercentage"`
	TrendDirection     TrendDirection  `json:"trendDirection"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
}

// SortOrder for filter queries.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterRequest is the search form sent to POST /filter.
type FilterRequest struct {
	Type      TransactionType `json:"type"`
	StartDate types.Date      `json:"startDate"`
	EndDate   types.Date      `json:"endDate"`
	Keyword   string          `json:"keyword,omitempty"`
	SortField string          `json:"sortField,omitempty"`
	SortOrder SortOrder       `json:"sortOrder,omitempty"`
}
