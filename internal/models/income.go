package models

import "github.com/shopspring/decimal"

// Pay-day patterns recognized in income histories.
const (
	PayDayBeginningOfMonth = "beginning_of_month"
	PayDayMiddleOfMonth    = "middle_of_month"
	PayDayEndOfMonth       = "end_of_month"
	PayDaySpecificDay      = "specific_day"
	PayDayTwiceMonthly     = "twice_monthly"
	PayDayIrregular        = "irregular"

	// PayFrequencyUnknown is reported when a single deposit leaves no
	// interval to measure.
	PayFrequencyUnknown = "unknown"
)

// MonthlyIncome is one calendar month's income total, keyed "2006-01".
type MonthlyIncome struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// IncomeSource summarizes deposits from a single payer.
type IncomeSource struct {
	Name          string          `json:"name"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// IncomeTrend captures growth between the first and last observed months.
// MonthlyGrowthRatePct is the compound month-over-month rate.
type IncomeTrend struct {
	FirstMonth           string          `json:"first_month"`
	LastMonth            string          `json:"last_month"`
	GrowthAmount         decimal.Decimal `json:"growth_amount"`
	GrowthPercent        decimal.Decimal `json:"growth_percent"`
	MonthlyGrowthRatePct decimal.Decimal `json:"monthly_growth_rate_pct"`
}

// IncomeReport is the outcome of income-pattern analysis: monthly totals,
// the detected pay cadence, stability of month-to-month totals, growth
// trend, and per-source breakdown.
type IncomeReport struct {
	MonthsAnalyzed       int             `json:"months_analyzed"`
	Monthly              []MonthlyIncome `json:"monthly"`
	Trend                IncomeTrend     `json:"trend"`
	PayFrequency         string          `json:"pay_frequency"`
	PayDayPattern        string          `json:"pay_day_pattern"`
	PayDays              []int           `json:"pay_days,omitempty"`
	VariationCoefficient decimal.Decimal `json:"variation_coefficient"`
	Stable               bool            `json:"stable"`
	Sources              []IncomeSource  `json:"sources"`
	PrimarySource        string          `json:"primary_source"`
	TransactionCount     int             `json:"transaction_count"`
}
