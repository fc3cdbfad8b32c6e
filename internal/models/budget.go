package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	BudgetPeriodWeekly  = "weekly"
	BudgetPeriodMonthly = "monthly"
	BudgetPeriodCustom  = "custom"
)

var (
	ErrInvalidBudgetPeriod  = errors.New("invalid budget period")
	ErrNegativeAllocation   = errors.New("budget allocations must be non-negative")
	ErrMissingBudgetWindow  = errors.New("custom budgets require an explicit end date")
	ErrMissingBudgetStart   = errors.New("budget start date is required")
	ErrEmptyBudgetCategory  = errors.New("budget category name cannot be empty")
	ErrNoBudgetedCategories = errors.New("budget must allocate at least one category")
)

// Budget maps spending categories to allocated amounts over a period. The
// category set is fixed once analysis has run against the budget; analyzers
// copy rather than mutate it.
type Budget struct {
	Name       string                     `json:"name"`
	Period     string                     `json:"period"`
	Categories map[string]decimal.Decimal `json:"categories"`
	StartDate  time.Time                  `json:"start_date"`
	EndDate    time.Time                  `json:"end_date"`
}

// Validate enforces period and allocation invariants.
func (b *Budget) Validate() error {
	switch b.Period {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodCustom:
	default:
		return ErrInvalidBudgetPeriod
	}
	if b.StartDate.IsZero() {
		return ErrMissingBudgetStart
	}
	if b.Period == BudgetPeriodCustom && b.EndDate.IsZero() {
		return ErrMissingBudgetWindow
	}
	if len(b.Categories) == 0 {
		return ErrNoBudgetedCategories
	}
	for category, allocated := range b.Categories {
		if category == "" {
			return ErrEmptyBudgetCategory
		}
		if allocated.IsNegative() {
			return ErrNegativeAllocation
		}
	}
	return nil
}

// ResolveEndDate returns the budget's end date, deriving it from the period
// when absent: one week or one calendar month past the start.
func (b *Budget) ResolveEndDate() time.Time {
	if !b.EndDate.IsZero() {
		return b.EndDate
	}
	switch b.Period {
	case BudgetPeriodWeekly:
		return b.StartDate.AddDate(0, 0, 7)
	default:
		return b.StartDate.AddDate(0, 1, 0)
	}
}

// TotalAllocated sums all category allocations.
func (b *Budget) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, allocated := range b.Categories {
		total = total.Add(allocated)
	}
	return total
}
