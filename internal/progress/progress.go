// Package progress derives display state for budgets and savings goals.
package progress

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/models"
)

// ErrInvalidAmount is returned for contributions that are zero or negative.
var ErrInvalidAmount = errors.New("contribution amount must be positive")

var hundred = decimal.NewFromInt(100)

// Severity classifies how far a budget has been consumed.
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityOver    Severity = "over"
)

// GoalStatus classifies a savings goal.
type GoalStatus string

const (
	StatusCompleted GoalStatus = "completed"
	StatusOverdue   GoalStatus = "overdue"
	StatusOnTrack   GoalStatus = "onTrack"
)

// BudgetProgress is the derived display state of one budget.
type BudgetProgress struct {
	// Percentage is clamped to [0, 100] for display.
	Percentage decimal.Decimal
	Severity   Severity
}

// GoalProgress is the derived display state of one savings goal.
type GoalProgress struct {
	Percentage decimal.Decimal
	Status     GoalStatus
}

// Budget computes the spend ratio of a budget.
//
// The percentage is clamped for rendering, but the severity uses the
// unclamped ratio so that overspending is still detected: below 80% is
// normal, 80-100% a warning, above 100% over.
func Budget(b models.Budget) BudgetProgress {
	if !b.BudgetAmount.IsPositive() {
		return BudgetProgress{Percentage: decimal.Zero, Severity: SeverityNormal}
	}

	ratio := b.SpentAmount.Div(b.BudgetAmount).Mul(hundred)

	severity := SeverityNormal
	switch {
	case ratio.GreaterThan(hundred):
		severity = SeverityOver
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(80)):
		severity = SeverityWarning
	}

	return BudgetProgress{Percentage: clamp(ratio), Severity: severity}
}

// Goal computes the completion state of a savings goal. Completion takes
// priority over the deadline: a goal reached after its deadline is completed,
// not overdue.
func Goal(g models.SavingsGoal, today time.Time) GoalProgress {
	percentage := decimal.Zero
	if g.TargetAmount.IsPositive() {
		percentage = clamp(g.SavedAmount.Div(g.TargetAmount).Mul(hundred))
	}

	status := StatusOnTrack
	switch {
	case g.Completed():
		status = StatusCompleted
	case g.Deadline.Before(today):
		status = StatusOverdue
	}

	return GoalProgress{Percentage: percentage, Status: status}
}

// Contribute returns a copy of the goal with the amount added to its saved
// total. The input goal is not modified; persisting the result is the
// caller's job.
func Contribute(g models.SavingsGoal, amount decimal.Decimal) (models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return models.SavingsGoal{}, ErrInvalidAmount
	}

	g.SavedAmount = g.SavedAmount.Add(amount)
	return g, nil
}

func clamp(percentage decimal.Decimal) decimal.Decimal {
	if percentage.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if percentage.GreaterThan(hundred) {
		return hundred
	}
	return percentage
}
