package models

import "github.com/shopspring/decimal"

// Debt status bands by debt-to-income percentage.
const (
	DebtStatusExcellent = "excellent"
	DebtStatusGood      = "good"
	DebtStatusFair      = "fair"
	DebtStatusPoor      = "poor"
	DebtStatusCritical  = "critical"
)

// DebtStatusForRatio maps a debt-to-income percentage to its band:
// excellent < 20 <= good < 36 <= fair < 43 <= poor < 50 <= critical.
func DebtStatusForRatio(dtiPct decimal.Decimal) string {
	switch {
	case dtiPct.LessThan(decimal.NewFromInt(20)):
		return DebtStatusExcellent
	case dtiPct.LessThan(decimal.NewFromInt(36)):
		return DebtStatusGood
	case dtiPct.LessThan(decimal.NewFromInt(43)):
		return DebtStatusFair
	case dtiPct.LessThan(decimal.NewFromInt(50)):
		return DebtStatusPoor
	default:
		return DebtStatusCritical
	}
}

// DebtTypeSummary aggregates liabilities of a single type.
type DebtTypeSummary struct {
	Type            string          `json:"type"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
	AverageInterest decimal.Decimal `json:"average_interest_rate"`
	Count           int             `json:"count"`
	PercentOfTotal  decimal.Decimal `json:"percent_of_total"`
}

// DebtPriority is one entry in a repayment ordering.
type DebtPriority struct {
	AccountID    string          `json:"account_id"`
	Type         string          `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Priority     int             `json:"priority"`
}

// DebtReport is the outcome of debt analysis: totals, the debt-to-income
// ratio, per-type summaries, and the two standard repayment orderings
// (avalanche: highest interest first; snowball: smallest balance first).
type DebtReport struct {
	TotalDebt       decimal.Decimal   `json:"total_debt"`
	MonthlyPayments decimal.Decimal   `json:"monthly_payments"`
	DebtToIncomePct decimal.Decimal   `json:"debt_to_income_pct"`
	ByType          []DebtTypeSummary `json:"by_type"`
	Avalanche       []DebtPriority    `json:"avalanche"`
	Snowball        []DebtPriority    `json:"snowball"`
	Status          string            `json:"status"`
	Recommendations []string          `json:"recommendations"`
}
