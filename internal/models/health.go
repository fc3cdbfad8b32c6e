package models

import "github.com/shopspring/decimal"

// Health status bands at fixed composite-score thresholds.
const (
	HealthStatusPoor      = "poor"
	HealthStatusFair      = "fair"
	HealthStatusGood      = "good"
	HealthStatusExcellent = "excellent"
)

// HealthStatusForScore maps a composite [0,100] score to its band:
// poor < 40 <= fair < 60 <= good < 80 <= excellent.
func HealthStatusForScore(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return HealthStatusExcellent
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return HealthStatusGood
	case score.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return HealthStatusFair
	default:
		return HealthStatusPoor
	}
}

// HealthSubScores are the normalized [0,1] components of the composite score.
type HealthSubScores struct {
	SavingsRate       decimal.Decimal `json:"savings_rate"`
	EmergencyFund     decimal.Decimal `json:"emergency_fund"`
	DebtManagement    decimal.Decimal `json:"debt_management"`
	CreditUtilization decimal.Decimal `json:"credit_utilization"`
}

// HealthMetrics are the raw figures the sub-scores derive from.
type HealthMetrics struct {
	TotalAssets          decimal.Decimal `json:"total_assets"`
	TotalLiabilities     decimal.Decimal `json:"total_liabilities"`
	NetWorth             decimal.Decimal `json:"net_worth"`
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses"`
	SavingsRatePct       decimal.Decimal `json:"savings_rate_pct"`
	DebtToIncomePct      decimal.Decimal `json:"debt_to_income_pct"`
	EmergencyFundMonths  decimal.Decimal `json:"emergency_fund_months"`
	CreditUtilizationPct decimal.Decimal `json:"credit_utilization_pct"`
}

// HealthReport is the composite financial-health assessment.
type HealthReport struct {
	Score           decimal.Decimal `json:"score"`
	Status          string          `json:"status"`
	SubScores       HealthSubScores `json:"sub_scores"`
	Metrics         HealthMetrics   `json:"metrics"`
	Recommendations []string        `json:"recommendations"`
}
