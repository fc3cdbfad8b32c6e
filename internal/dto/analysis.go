package dto

import (
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// Analysis Request DTOs

// CategorizeRequest carries a batch of transactions to label.
type CategorizeRequest struct {
	Transactions []models.Transaction `json:"transactions" validate:"required,min=1,dive"`
}

// RecurringRequest configures recurring-expense detection over a batch.
type RecurringRequest struct {
	Transactions    []models.Transaction `json:"transactions" validate:"required,min=1,dive"`
	MinOccurrences  int                  `json:"minOccurrences" validate:"required,min=2"`
	AmountTolerance decimal.Decimal      `json:"amountTolerance"`
	WindowDays      int                  `json:"windowDays" validate:"required,min=1"`
	AsOf            *time.Time           `json:"asOf,omitempty"`
}

// AggregateRequest buckets transactions by a grouping dimension.
type AggregateRequest struct {
	Transactions []models.Transaction `json:"transactions" validate:"required,min=1,dive"`
	GroupBy      string               `json:"groupBy" validate:"required,group_by"`
	StartDate    *time.Time           `json:"startDate,omitempty"`
	EndDate      *time.Time           `json:"endDate,omitempty"`
	TopN         int                  `json:"topN" validate:"omitempty,min=1,max=100"`
}

// SearchRequest filters transactions by text and ranges.
type SearchRequest struct {
	Transactions []models.Transaction `json:"transactions" validate:"required,dive"`
	Text         string               `json:"text,omitempty"`
	MinAmount    *decimal.Decimal     `json:"minAmount,omitempty"`
	MaxAmount    *decimal.Decimal     `json:"maxAmount,omitempty"`
	StartDate    *time.Time           `json:"startDate,omitempty"`
	EndDate      *time.Time           `json:"endDate,omitempty"`
}

// MerchantsRequest profiles spending per merchant over a trailing window.
type MerchantsRequest struct {
	Transactions []models.Transaction `json:"transactions" validate:"required,min=1,dive"`
	WindowDays   int                  `json:"windowDays" validate:"required,min=1"`
	TopN         int                  `json:"topN" validate:"omitempty,min=1,max=100"`
	AsOf         *time.Time           `json:"asOf,omitempty"`
}

// BudgetRequest compares a budget against actual spending.
type BudgetRequest struct {
	Budget       models.Budget        `json:"budget" validate:"required"`
	Transactions []models.Transaction `json:"transactions" validate:"required,dive"`
}

// ForecastRequest projects cash flow forward from history.
type ForecastRequest struct {
	Transactions     []models.Transaction      `json:"transactions" validate:"required,dive"`
	StartingBalance  decimal.Decimal           `json:"startingBalance"`
	Recurring        []models.RecurringExpense `json:"recurring,omitempty"`
	HorizonDays      int                       `json:"horizonDays" validate:"required,min=1,max=365"`
	IncludeRecurring bool                      `json:"includeRecurring"`
	ExcludePending   bool                      `json:"excludePending"`
	TrailingWindow   int                       `json:"trailingWindowDays" validate:"omitempty,min=1"`
	AsOf             *time.Time                `json:"asOf,omitempty"`
}

// HealthAssessmentRequest carries the balance sheet for a health score.
type HealthAssessmentRequest struct {
	Accounts     []models.Account     `json:"accounts" validate:"dive"`
	Transactions []models.Transaction `json:"transactions" validate:"dive"`
	Liabilities  []models.Liability   `json:"liabilities,omitempty" validate:"omitempty,dive"`
	AsOf         *time.Time           `json:"asOf,omitempty"`
}

// DebtRequest analyzes liabilities against income.
type DebtRequest struct {
	Liabilities   []models.Liability `json:"liabilities" validate:"required,dive"`
	MonthlyIncome decimal.Decimal    `json:"monthlyIncome"`
}

// SavingsGoalRequest plans the path to a savings target.
type SavingsGoalRequest struct {
	GoalAmount          decimal.Decimal `json:"goalAmount"`
	CurrentSavings      decimal.Decimal `json:"currentSavings"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	AnnualInterestRate  decimal.Decimal `json:"annualInterestRate"`
}

// IncomeRequest profiles income patterns across a transaction history.
type IncomeRequest struct {
	Transactions []models.Transaction `json:"transactions" validate:"required,min=1,dive"`
}

// Analysis Response DTOs

// CategorizeResponse returns the labeled subset plus per-record rejections.
type CategorizeResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Rejected     []models.RecordError `json:"rejected,omitempty"`
}

// RecurringResponse lists detected recurring expenses.
type RecurringResponse struct {
	Recurring []models.RecurringExpense `json:"recurring"`
	Count     int                       `json:"count"`
}

// SearchResponse lists matching transactions.
type SearchResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

// MerchantsResponse lists the top merchant profiles.
type MerchantsResponse struct {
	Merchants []models.MerchantProfile `json:"merchants"`
}
