package models

// CategoryType is the kind of transactions a category applies to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category groups transactions for rollups and budgets.
type Category struct {
	ID   int64        `json:"id,omitempty"`
	Name string       `json:"name"`
	Icon string       `json:"icon,omitempty"`
	Type CategoryType `json:"type"`
}

// Label is the display form used in rollups and charts.
func (c Category) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}
