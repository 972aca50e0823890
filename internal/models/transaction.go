package models

import (
	"github.com/moneydash/moneydash/internal/types"
)

// TransactionType discriminates income from expense records. The backend
// keeps the two in separate collections; the type only travels in request
// bodies and filter queries.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense record.
//
// CategoryID is 0 when the record has no category. Amount and Date decode
// fail-soft, see the types package.
type Transaction struct {
	ID         int64           `json:"id,omitempty"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon,omitempty"`
	Amount     types.Amount    `json:"amount"`
	Date       types.Date      `json:"date"`
	CategoryID int64           `json:"categoryId,omitempty"`
	Type       TransactionType `json:"type,omitempty"`
}
