package analytics

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/types"
)

// SeriesPoint is one month of a chart line.
type SeriesPoint struct {
	Month  types.Month
	Label  string
	Amount decimal.Decimal
}

// ComparisonPoint pairs income and expense totals for one month.
type ComparisonPoint struct {
	Month   types.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlySeries groups transactions by month and returns all months that
// occur in the data, chronologically, with display labels. Unlike
// MonthlyTotals there is no fixed window; the series spans whatever the data
// contains.
func MonthlySeries(transactions []models.Transaction) []SeriesPoint {
	totals := map[string]decimal.Decimal{}
	months := map[string]types.Month{}

	for _, t := range transactions {
		if !t.Date.Valid {
			continue
		}

		m := t.Date.Month()
		key := m.String()
		totals[key] = totals[key].Add(t.Amount.Decimal)
		months[key] = m
	}

	series := make([]SeriesPoint, 0, len(totals))
	for key, m := range months {
		series = append(series, SeriesPoint{Month: m, Label: m.Label(), Amount: totals[key]})
	}

	slices.SortFunc(series, func(a, b SeriesPoint) int {
		if a.Month.Before(b.Month) {
			return -1
		}
		if a.Month.After(b.Month) {
			return 1
		}
		return 0
	})

	return series
}

// Comparison builds the income-versus-expense series over the given months,
// one point per month in order, zero-filled.
func Comparison(incomes, expenses []models.Transaction, months []types.Month) []ComparisonPoint {
	incomeBuckets := MonthlyTotals(incomes, months)
	expenseBuckets := MonthlyTotals(expenses, months)

	points := make([]ComparisonPoint, 0, len(months))
	for i, m := range months {
		points = append(points, ComparisonPoint{
			Month:   m,
			Income:  incomeBuckets[i].Total,
			Expense: expenseBuckets[i].Total,
		})
	}

	return points
}
