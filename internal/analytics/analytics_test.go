package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/analytics"
	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/types"
)

func transaction(amount float64, date types.Date, categoryID int64) models.Transaction {
	return models.Transaction{
		Name:       "test",
		Amount:     types.AmountFromFloat(amount),
		Date:       date,
		CategoryID: categoryID,
	}
}

func TestLastMonths(t *testing.T) {
	tests := []struct {
		name     string
		ref      time.Time
		expected []string
	}{
		{
			"mid year",
			time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC),
			[]string{"2025-03", "2025-04", "2025-05", "2025-06", "2025-07", "2025-08"},
		},
		{
			"across year boundary",
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			[]string{"2024-09", "2024-10", "2024-11", "2024-12", "2025-01", "2025-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			months := analytics.LastMonths(tt.ref, 6)

			require.Len(t, months, 6)
			for i, m := range months {
				assert.Equal(t, tt.expected[i], m.String())
			}
			assert.True(t, types.MonthOf(tt.ref).Equal(months[5]))
		})
	}
}

func TestMonthlyTotals(t *testing.T) {
	ref := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	months := analytics.LastMonths(ref, 6)

	transactions := []models.Transaction{
		transaction(100, types.NewDate(2025, 8, 1), 0),
		transaction(50, types.NewDate(2025, 8, 30), 0),
		transaction(25, types.NewDate(2025, 4, 15), 0),
		// Outside the window.
		transaction(999, types.NewDate(2024, 8, 1), 0),
		// No usable date.
		transaction(999, types.Date{}, 0),
	}

	buckets := analytics.MonthlyTotals(transactions, months)

	require.Len(t, buckets, 6)
	for i, bucket := range buckets {
		assert.True(t, months[i].Equal(bucket.Month))
	}

	sum := decimal.Zero
	for _, bucket := range buckets {
		sum = sum.Add(bucket.Total)
	}
	assert.True(t, decimal.NewFromInt(175).Equal(sum), "window sum is %s", sum)

	assert.True(t, decimal.NewFromInt(150).Equal(buckets[5].Total))
	assert.True(t, decimal.NewFromInt(25).Equal(buckets[1].Total))
	assert.True(t, buckets[0].Total.IsZero())
}

func TestMonthlyTotalsEmpty(t *testing.T) {
	months := analytics.LastMonths(time.Now(), 6)
	buckets := analytics.MonthlyTotals(nil, months)

	require.Len(t, buckets, 6)
	for _, bucket := range buckets {
		assert.True(t, bucket.Total.IsZero())
	}
}

func TestCurrentMonthTotal(t *testing.T) {
	ref := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	total := analytics.CurrentMonthTotal([]models.Transaction{
		transaction(100, types.NewDate(2025, 8, 1), 0),
		transaction(50, types.NewDate(2025, 7, 1), 0),
		transaction(10, types.Date{}, 0),
	}, ref)

	assert.True(t, decimal.NewFromInt(100).Equal(total), "got %s", total)
}

func TestPercentChange(t *testing.T) {
	ref := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		transactions []models.Transaction
		expected     int64
	}{
		{
			"doubled spending",
			[]models.Transaction{
				transaction(100, types.NewDate(2025, 8, 5), 0),
				transaction(50, types.NewDate(2025, 7, 5), 0),
			},
			100,
		},
		{
			"halved spending",
			[]models.Transaction{
				transaction(50, types.NewDate(2025, 8, 5), 0),
				transaction(100, types.NewDate(2025, 7, 5), 0),
			},
			-50,
		},
		{"prior month zero", []models.Transaction{transaction(100, types.NewDate(2025, 8, 5), 0)}, 0},
		{"both months zero", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := analytics.PercentChange(tt.transactions, ref)
			assert.True(t, decimal.NewFromInt(tt.expected).Equal(change), "got %s", change)
		})
	}
}

func TestInputsAreNotMutated(t *testing.T) {
	ref := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		transaction(100, types.NewDate(2025, 8, 1), 1),
		transaction(50, types.NewDate(2025, 7, 1), 2),
	}
	original := make([]models.Transaction, len(transactions))
	copy(original, transactions)

	categories := []models.Category{{ID: 1, Name: "Food", Icon: "🍔", Type: models.CategoryExpense}}

	_ = analytics.MonthlyTotals(transactions, analytics.LastMonths(ref, 6))
	_ = analytics.CategoryRollup(transactions, categories, analytics.DefaultTopN)
	_ = analytics.PercentChange(transactions, ref)
	_, _ = analytics.HighestSpendingCategory(transactions, categories)

	assert.Equal(t, original, transactions)
}

// TestDashboardScenario is the full walk through the dashboard numbers for a
// small fixture: one expense this month, one last month, one category.
func TestDashboardScenario(t *testing.T) {
	ref := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	expenses := []models.Transaction{
		transaction(100, types.NewDate(2025, 8, 10), 1),
		transaction(50, types.NewDate(2025, 7, 10), 1),
	}
	categories := []models.Category{{ID: 1, Name: "Food", Icon: "🍔", Type: models.CategoryExpense}}

	assert.True(t, decimal.NewFromInt(100).Equal(analytics.CurrentMonthTotal(expenses, ref)))
	assert.True(t, decimal.NewFromInt(100).Equal(analytics.PercentChange(expenses, ref)))

	highest, ok := analytics.HighestSpendingCategory(expenses, categories)
	require.True(t, ok)
	assert.Equal(t, "Food", highest.Name)
	assert.Equal(t, "🍔", highest.Icon)
	assert.True(t, decimal.NewFromInt(150).Equal(highest.Amount))
}
