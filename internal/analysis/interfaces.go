package analysis

import (
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// Every interface in this package is implemented by a pure transformation:
// no I/O, no shared mutable state, safe for concurrent callers.

// CategorizerInterface assigns category labels to transactions.
type CategorizerInterface interface {
	// Categorize returns categorized copies of the well-formed input
	// transactions plus the malformed records it skipped. Idempotent:
	// re-categorizing the output reproduces the same categories.
	Categorize(transactions []models.Transaction) ([]models.Transaction, []models.RecordError)
}

// RecurringParams configures recurring-expense detection.
type RecurringParams struct {
	MinOccurrences  int
	AmountTolerance decimal.Decimal
	WindowDays      int
	// Now anchors the recency window; zero means time.Now truncated to a day.
	Now time.Time
}

// RecurringDetectorInterface finds regularly repeating outflows.
type RecurringDetectorInterface interface {
	DetectRecurring(transactions []models.Transaction, params RecurringParams) ([]models.RecurringExpense, error)
}

// AggregateParams configures spending aggregation. Zero Start/End mean
// unbounded; bounds are inclusive. TopN <= 0 defaults to 5.
type AggregateParams struct {
	GroupBy   string
	StartDate time.Time
	EndDate   time.Time
	TopN      int
}

// SearchQuery filters transactions by text and ranges. Text matches
// description, merchant, and category case-insensitively.
type SearchQuery struct {
	Text      string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

// MerchantParams configures per-merchant spending profiles.
type MerchantParams struct {
	WindowDays int
	TopN       int
	Now        time.Time
}

// AggregatorInterface buckets and ranks transactions.
type AggregatorInterface interface {
	Aggregate(transactions []models.Transaction, params AggregateParams) (*models.Aggregation, error)
	Search(transactions []models.Transaction, query SearchQuery) []models.Transaction
	AnalyzeMerchants(transactions []models.Transaction, params MerchantParams) ([]models.MerchantProfile, error)
}

// BudgetAnalyzerInterface compares budgets against actual spending.
type BudgetAnalyzerInterface interface {
	AnalyzeBudget(budget models.Budget, transactions []models.Transaction) (*models.BudgetReport, error)
}

// ForecastParams configures cash-flow projection. TrailingWindowDays <= 0
// defaults to 90. Zero Now means time.Now truncated to a day.
type ForecastParams struct {
	HorizonDays        int
	IncludeRecurring   bool
	ExcludePending     bool
	TrailingWindowDays int
	Now                time.Time
}

// ForecasterInterface projects future balances from history and recurrences.
type ForecasterInterface interface {
	Forecast(
		transactions []models.Transaction,
		startingBalance decimal.Decimal,
		recurring []models.RecurringExpense,
		params ForecastParams,
	) (*models.ForecastSummary, error)
}

// PlannerInterface derives composite health scores, debt strategies, and
// savings-goal plans.
type PlannerInterface interface {
	AssessHealth(
		accounts []models.Account,
		transactions []models.Transaction,
		liabilities []models.Liability,
		now time.Time,
	) (*models.HealthReport, error)

	AnalyzeDebt(liabilities []models.Liability, monthlyIncome decimal.Decimal) (*models.DebtReport, error)

	PlanSavingsGoal(
		goalAmount, currentSavings, monthlyContribution, annualInterestRate decimal.Decimal,
	) (*models.SavingsPlan, error)
}

// IncomeAnalyzerInterface profiles deposit cadence, stability, and growth
// across a transaction history.
type IncomeAnalyzerInterface interface {
	AnalyzeIncome(transactions []models.Transaction) (*models.IncomeReport, error)
}

// MetricsRecorderInterface abstracts analysis telemetry.
type MetricsRecorderInterface interface {
	RecordAnalysis(operation, status string)
	RecordDuration(operation string, duration time.Duration)
	RecordRejectedRecords(operation string, count int)
}
