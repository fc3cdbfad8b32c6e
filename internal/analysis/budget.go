package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

type budgetAnalyzer struct {
	metrics MetricsRecorderInterface
}

// NewBudgetAnalyzer builds the budget-vs-actual analyzer.
func NewBudgetAnalyzer(metrics MetricsRecorderInterface) BudgetAnalyzerInterface {
	return &budgetAnalyzer{metrics: metrics}
}

func (b *budgetAnalyzer) AnalyzeBudget(budget models.Budget, transactions []models.Transaction) (*models.BudgetReport, error) {
	started := time.Now()

	if err := budget.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, err)
	}

	startDate := budget.StartDate
	endDate := budget.ResolveEndDate()

	// Outflow sums per category within the budget period. Spending in
	// categories the budget does not name lands in the unbudgeted bucket.
	spentByCategory := make(map[string]decimal.Decimal)
	unbudgeted := decimal.Zero
	count := 0

	for _, txn := range transactions {
		if !txn.IsOutflow() || !inDateRange(txn.Date, startDate, endDate) {
			continue
		}
		count++
		category := txn.Category
		if category == "" {
			category = models.CategoryOther
		}
		if _, budgetedCategory := budget.Categories[category]; budgetedCategory {
			spentByCategory[category] = spentByCategory[category].Add(txn.OutflowMagnitude())
		} else {
			unbudgeted = unbudgeted.Add(txn.OutflowMagnitude())
		}
	}

	report := &models.BudgetReport{
		BudgetName:       budget.Name,
		Period:           budget.Period,
		StartDate:        startDate,
		EndDate:          endDate,
		Unbudgeted:       unbudgeted,
		TotalAllocated:   budget.TotalAllocated(),
		TransactionCount: count,
	}

	categories := make([]string, 0, len(budget.Categories))
	for category := range budget.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		allocated := budget.Categories[category]
		spent := spentByCategory[category]
		usage := models.CategoryUsage{
			Category:    category,
			Allocated:   allocated,
			ActualSpent: spent,
			Remaining:   allocated.Sub(spent),
			PercentUsed: percentOf(spent, allocated),
			Status:      budgetStatus(spent, allocated),
		}
		report.Categories = append(report.Categories, usage)
		report.TotalSpent = report.TotalSpent.Add(spent)
	}

	report.TotalSpent = report.TotalSpent.Add(unbudgeted)
	report.TotalRemaining = report.TotalAllocated.Sub(report.TotalSpent)
	report.PercentUsed = percentOf(report.TotalSpent, report.TotalAllocated)
	report.Status = budgetStatus(report.TotalSpent, report.TotalAllocated)

	b.metrics.RecordAnalysis("analyze_budget", "ok")
	b.metrics.RecordDuration("analyze_budget", time.Since(started))

	slog.Info("budget analyzed",
		"budget", budget.Name,
		"categories", len(report.Categories),
		"total_spent", report.TotalSpent.String(),
		"status", report.Status)

	return report, nil
}

// percentOf returns spent/allocated as a percentage, or nil when the
// allocation is zero: percent-of-nothing is undefined, not a division error.
func percentOf(spent, allocated decimal.Decimal) *decimal.Decimal {
	if allocated.IsZero() {
		return nil
	}
	pct := spent.Div(allocated).Mul(oneHundred)
	return &pct
}

func budgetStatus(spent, allocated decimal.Decimal) string {
	if spent.GreaterThan(allocated) {
		return models.BudgetStatusOverBudget
	}
	return models.BudgetStatusOnTrack
}
