package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BudgetStatusOnTrack    = "on_track"
	BudgetStatusOverBudget = "over_budget"
)

// CategoryUsage compares one budgeted category against actual spending.
// PercentUsed is nil when the allocation is zero: percent-of-nothing is
// reported as undefined rather than dividing.
type CategoryUsage struct {
	Category    string           `json:"category"`
	Allocated   decimal.Decimal  `json:"allocated"`
	ActualSpent decimal.Decimal  `json:"actual_spent"`
	Remaining   decimal.Decimal  `json:"remaining"`
	PercentUsed *decimal.Decimal `json:"percent_used"`
	Status      string           `json:"status"`
}

// BudgetReport is the outcome of comparing a budget against transactions in
// its period. Unbudgeted spending is collected under the "unbudgeted" key.
type BudgetReport struct {
	BudgetName       string           `json:"budget_name"`
	Period           string           `json:"period"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	Categories       []CategoryUsage  `json:"categories"`
	Unbudgeted       decimal.Decimal  `json:"unbudgeted_spent"`
	TotalAllocated   decimal.Decimal  `json:"total_allocated"`
	TotalSpent       decimal.Decimal  `json:"total_spent"`
	TotalRemaining   decimal.Decimal  `json:"total_remaining"`
	PercentUsed      *decimal.Decimal `json:"percent_used"`
	Status           string           `json:"status"`
	TransactionCount int              `json:"transaction_count"`
}
