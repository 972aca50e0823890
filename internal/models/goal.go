package models

import (
	"github.com/google/uuid"
	"github.com/moneydash/moneydash/internal/types"
	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount to save towards by a deadline.
//
// SavedAmount only ever grows through contributions; there is no withdrawal.
type SavingsGoal struct {
	ID           uuid.UUID       `json:"id,omitempty"`
	GoalName     string          `json:"goalName"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Deadline     types.Date      `json:"deadline"`
}

// Completed reports whether the goal has reached its target.
func (g SavingsGoal) Completed() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}
