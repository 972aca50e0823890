package analytics

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/moneydash/moneydash/internal/models"
)

// UnknownLabel is the display label for transactions whose category cannot
// be resolved.
const UnknownLabel = "Unknown"

// UnknownIcon is the fallback glyph for an unresolved category.
const UnknownIcon = "📊"

// CategoryTotal is one entry of a category rollup.
type CategoryTotal struct {
	CategoryID int64
	Label      string
	Total      decimal.Decimal
}

// HighestCategory is the category with the largest summed spending.
type HighestCategory struct {
	CategoryID int64
	Name       string
	Icon       string
	Amount     decimal.Decimal
}

// CategoryRollup groups transactions by category, sums their amounts and
// returns the top n entries sorted by descending total. Transactions without
// a category are excluded; transactions referencing a category that does not
// exist are kept under the "Unknown" label.
func CategoryRollup(transactions []models.Transaction, categories []models.Category, n int) []CategoryTotal {
	totals := map[int64]decimal.Decimal{}
	order := []int64{}

	for _, t := range transactions {
		if t.CategoryID == 0 {
			continue
		}

		if _, ok := totals[t.CategoryID]; !ok {
			order = append(order, t.CategoryID)
		}
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount.Decimal)
	}

	rollup := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		label := UnknownLabel
		if category, ok := findCategory(categories, id); ok {
			label = category.Label()
		}

		rollup = append(rollup, CategoryTotal{CategoryID: id, Label: label, Total: totals[id]})
	}

	// SortStableFunc keeps the first-seen order between equal totals so that
	// truncation never reorders the retained prefix.
	slices.SortStableFunc(rollup, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})

	if n > 0 && len(rollup) > n {
		rollup = rollup[:n]
	}

	return rollup
}

// HighestSpendingCategory returns the rollup entry with the largest total.
// The second return value is false when no transaction has a category.
func HighestSpendingCategory(transactions []models.Transaction, categories []models.Category) (HighestCategory, bool) {
	rollup := CategoryRollup(transactions, categories, 0)
	if len(rollup) == 0 {
		return HighestCategory{}, false
	}

	top := rollup[0]
	highest := HighestCategory{
		CategoryID: top.CategoryID,
		Name:       UnknownLabel,
		Icon:       UnknownIcon,
		Amount:     top.Total,
	}

	if category, ok := findCategory(categories, top.CategoryID); ok {
		highest.Name = category.Name
		if category.Icon != "" {
			highest.Icon = category.Icon
		}
	}

	return highest, true
}

func findCategory(categories []models.Category, id int64) (models.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}
