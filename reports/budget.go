package reports

import (
	"math"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
)

type CategorySummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Allocated       float64   `json:"allocated"`
	Spent           float64   `json:"spent"`
	Remaining       float64   `json:"remaining"`
	SpentPercentage float64   `json:"spentPercentage"`
	Estimated       float64   `json:"estimated"`
	OverBudget      bool      `json:"overBudget"`
}

type BudgetSummary struct {
	TotalBudget        float64           `json:"totalBudget"`
	TotalSpent         float64           `json:"totalSpent"`
	Remaining          float64           `json:"remaining"`
	SpentPercentage    float64           `json:"spentPercentage"`
	UncategorizedSpent float64           `json:"uncategorizedSpent"`
	Categories         []CategorySummary `json:"categories"`
	Currency           string            `json:"currency,omitempty"`
	Formatted          map[string]string `json:"formatted,omitempty"`
}

// SpentPercentage is spent/allocated*100 rounded to two decimals, and 0 when
// nothing was allocated.
func SpentPercentage(allocated, spent float64) float64 {
	if allocated == 0 || math.IsNaN(allocated) || math.IsNaN(spent) {
		return 0
	}
	p := spent / allocated * 100
	if math.IsInf(p, 0) || math.IsNaN(p) {
		return 0
	}
	return round2(p)
}

// SummarizeBudget totals allocations and spend. Expenses whose category is
// unknown count toward TotalSpent and UncategorizedSpent only.
func SummarizeBudget(categories []models.BudgetCategory, items []models.BudgetItem, expenses []models.Expense) BudgetSummary {
	spentByCategory := make(map[uuid.UUID]float64, len(categories))
	estimatedByCategory := make(map[uuid.UUID]float64, len(categories))
	known := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		if !c.DeletedAt.Valid {
			known[c.ID] = true
		}
	}
	for _, it := range items {
		if !it.DeletedAt.Valid {
			estimatedByCategory[it.CategoryID] += it.EstimatedAmount
		}
	}

	var summary BudgetSummary
	summary.Categories = []CategorySummary{}
	for _, e := range expenses {
		if e.DeletedAt.Valid {
			continue
		}
		summary.TotalSpent += e.Amount
		if e.CategoryID != nil && known[*e.CategoryID] {
			spentByCategory[*e.CategoryID] += e.Amount
		} else {
			summary.UncategorizedSpent += e.Amount
		}
	}

	for _, c := range categories {
		if c.DeletedAt.Valid {
			continue
		}
		spent := spentByCategory[c.ID]
		summary.TotalBudget += c.AllocatedAmount
		summary.Categories = append(summary.Categories, CategorySummary{
			ID:              c.ID,
			Name:            c.Name,
			Allocated:       round2(c.AllocatedAmount),
			Spent:           round2(spent),
			Remaining:       round2(c.AllocatedAmount - spent),
			SpentPercentage: SpentPercentage(c.AllocatedAmount, spent),
			Estimated:       round2(estimatedByCategory[c.ID]),
			OverBudget:      spent > c.AllocatedAmount,
		})
	}

	summary.TotalBudget = round2(summary.TotalBudget)
	summary.TotalSpent = round2(summary.TotalSpent)
	summary.UncategorizedSpent = round2(summary.UncategorizedSpent)
	summary.Remaining = round2(summary.TotalBudget - summary.TotalSpent)
	summary.SpentPercentage = SpentPercentage(summary.TotalBudget, summary.TotalSpent)
	return summary
}

// WithCurrency fills the display strings for the headline totals.
func (s BudgetSummary) WithCurrency(code string) BudgetSummary {
	s.Currency = code
	s.Formatted = map[string]string{
		"totalBudget": FormatCurrency(s.TotalBudget, code),
		"totalSpent":  FormatCurrency(s.TotalSpent, code),
		"remaining":   FormatCurrency(s.Remaining, code),
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
