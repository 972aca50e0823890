// Package dashboard composes the analytics views shown on the home screen.
//
// The flow is explicit: fetch a snapshot, then derive everything from it with
// pure functions. Nothing here caches; a new snapshot means a full recompute.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/moneydash/moneydash/internal/analytics"
	"github.com/moneydash/moneydash/internal/api"
	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/progress"
	"github.com/moneydash/moneydash/internal/types"
)

// Snapshot is a point-in-time copy of all collections the dashboard needs.
type Snapshot struct {
	Income     []models.Transaction
	Expenses   []models.Transaction
	Categories []models.Category
	Budgets    []models.Budget
	Goals      []models.SavingsGoal
}

// Load fetches all collections in parallel. It returns the first error and
// cancels the remaining requests; a caller tearing down a view cancels ctx
// and no result leaks past that.
func Load(ctx context.Context, client *api.Client, month types.Month) (*Snapshot, error) {
	var snapshot Snapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		income, err := client.Income(ctx)
		snapshot.Income = income
		return err
	})
	g.Go(func() error {
		expenses, err := client.Expenses(ctx)
		snapshot.Expenses = expenses
		return err
	})
	g.Go(func() error {
		categories, err := client.Categories(ctx)
		snapshot.Categories = categories
		return err
	})
	g.Go(func() error {
		budgets, err := client.Budgets(ctx, month)
		snapshot.Budgets = budgets
		return err
	})
	g.Go(func() error {
		goals, err := client.Goals(ctx)
		snapshot.Goals = goals
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// BudgetView pairs a budget with its derived progress.
type BudgetView struct {
	Budget   models.Budget
	Progress progress.BudgetProgress
}

// GoalView pairs a goal with its derived progress.
type GoalView struct {
	Goal     models.SavingsGoal
	Progress progress.GoalProgress
}

// Overview is everything the dashboard renders, derived from one snapshot.
type Overview struct {
	ThisMonthIncome  decimal.Decimal
	ThisMonthExpense decimal.Decimal
	SpendingChange   decimal.Decimal
	Trend            models.TrendDirection
	HighestCategory  analytics.HighestCategory
	HasHighest       bool
	SpendingTrend    []analytics.MonthBucket
	Comparison       []analytics.ComparisonPoint
	TopCategories    []analytics.CategoryTotal
	Budgets          []BudgetView
	Goals            []GoalView
}

// BuildOverview derives the dashboard from a snapshot. Pure; safe to call on
// every change.
func BuildOverview(s *Snapshot, now time.Time) Overview {
	months := analytics.LastMonths(now, analytics.DefaultWindow)

	change := analytics.PercentChange(s.Expenses, now)
	trend := models.TrendFlat
	switch {
	case change.IsPositive():
		trend = models.TrendUp
	case change.IsNegative():
		trend = models.TrendDown
	}

	highest, hasHighest := analytics.HighestSpendingCategory(s.Expenses, s.Categories)

	overview := Overview{
		ThisMonthIncome:  analytics.CurrentMonthTotal(s.Income, now),
		ThisMonthExpense: analytics.CurrentMonthTotal(s.Expenses, now),
		SpendingChange:   change,
		Trend:            trend,
		HighestCategory:  highest,
		HasHighest:       hasHighest,
		SpendingTrend:    analytics.MonthlyTotals(s.Expenses, months),
		Comparison:       analytics.Comparison(s.Income, s.Expenses, months),
		TopCategories:    analytics.CategoryRollup(s.Expenses, s.Categories, analytics.DefaultTopN),
	}

	for _, b := range s.Budgets {
		overview.Budgets = append(overview.Budgets, BudgetView{Budget: b, Progress: progress.Budget(b)})
	}
	for _, g := range s.Goals {
		overview.Goals = append(overview.Goals, GoalView{Goal: g, Progress: progress.Goal(g, now)})
	}

	return overview
}
