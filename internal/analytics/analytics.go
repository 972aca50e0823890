// Package analytics derives dashboard views from transaction snapshots.
//
// All functions are pure: they never mutate their inputs, never perform I/O
// and never fail on malformed records. A transaction without a usable date is
// excluded from time-bucketed views, one without a usable amount contributes
// zero. Results are recomputed from scratch on every call.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/types"
)

// DefaultWindow is the number of trailing months shown in trend views.
const DefaultWindow = 6

// DefaultTopN is the number of categories kept in rollups.
const DefaultTopN = 10

// MonthBucket is the total for one calendar month.
type MonthBucket struct {
	Month types.Month
	Total decimal.Decimal
}

// LastMonths returns n chronologically ordered months ending at the month of
// the reference date, inclusive.
func LastMonths(ref time.Time, n int) []types.Month {
	months := make([]types.Month, 0, n)
	current := types.MonthOf(ref)

	for i := n - 1; i >= 0; i-- {
		months = append(months, current.AddDate(0, -i))
	}

	return months
}

// MonthlyTotals sums transaction amounts per month. The result has exactly
// one bucket per given month, in the same order, zero-filled for months
// without transactions. Transactions with invalid dates or dates outside the
// window are skipped.
func MonthlyTotals(transactions []models.Transaction, months []types.Month) []MonthBucket {
	totals := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		totals[m.String()] = decimal.Zero
	}

	for _, t := range transactions {
		if !t.Date.Valid {
			continue
		}

		key := t.Date.Month().String()
		if total, ok := totals[key]; ok {
			totals[key] = total.Add(t.Amount.Decimal)
		}
	}

	buckets := make([]MonthBucket, 0, len(months))
	for _, m := range months {
		buckets = append(buckets, MonthBucket{Month: m, Total: totals[m.String()]})
	}

	return buckets
}

// CurrentMonthTotal sums the amounts of all transactions dated in the
// reference date's calendar month.
func CurrentMonthTotal(transactions []models.Transaction, ref time.Time) decimal.Decimal {
	month := types.MonthOf(ref)
	total := decimal.Zero

	for _, t := range transactions {
		if t.Date.Valid && month.Contains(t.Date.Time) {
			total = total.Add(t.Amount.Decimal)
		}
	}

	return total
}

// PercentChange is the month-over-month change of the reference month's total
// against the prior month's, in percent. Positive means an increase.
//
// When the prior month's total is exactly zero the change is defined as 0.
// That is a policy choice to avoid division by zero, not a mathematical
// identity: a jump from nothing to something reads as "no comparison", not
// as an infinite increase.
func PercentChange(transactions []models.Transaction, ref time.Time) decimal.Decimal {
	current := types.MonthOf(ref)
	prior := current.AddDate(0, -1)

	currentTotal := decimal.Zero
	priorTotal := decimal.Zero

	for _, t := range transactions {
		if !t.Date.Valid {
			continue
		}

		switch {
		case current.Contains(t.Date.Time):
			currentTotal = currentTotal.Add(t.Amount.Decimal)
		case prior.Contains(t.Date.Time):
			priorTotal = priorTotal.Add(t.Amount.Decimal)
		}
	}

	if priorTotal.IsZero() {
		return decimal.Zero
	}

	return currentTotal.Sub(priorTotal).Div(priorTotal).Mul(decimal.NewFromInt(100))
}
